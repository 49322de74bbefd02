package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/yungbote/rimas-backend/internal/platform/logger"
	"github.com/yungbote/rimas-backend/internal/semantic"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxInFlight = 4
	tracerName         = "github.com/yungbote/rimas-backend/internal/validation"
)

var errNoScorer = errors.New("validation: no semantic scorer configured")

// Validator is safe for concurrent use. At most MaxInFlight semantic calls
// run at once; the rest wait for a slot or their deadline.
type Validator struct {
	scorer  semantic.Scorer
	log     *logger.Logger
	tracer  trace.Tracer
	timeout time.Duration
	slots   *semaphore.Weighted
}

type Option func(*Validator)

func WithLogger(l *logger.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithTimeout bounds each semantic call, including time spent waiting for a slot.
func WithTimeout(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.timeout = d
		}
	}
}

func WithMaxInFlight(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.slots = semaphore.NewWeighted(int64(n))
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(v *Validator) {
		if t != nil {
			v.tracer = t
		}
	}
}

func New(scorer semantic.Scorer, opts ...Option) *Validator {
	v := &Validator{
		scorer:  scorer,
		log:     logger.Nop(),
		tracer:  otel.Tracer(tracerName),
		timeout: defaultTimeout,
		slots:   semaphore.NewWeighted(defaultMaxInFlight),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate never fails: a semantic stage that errors, times out or returns
// garbage degrades to the neutral assessment.
func (v *Validator) Validate(ctx context.Context, sub Submission) Result {
	ctx, span := v.tracer.Start(ctx, "validation.validate")
	defer span.End()

	alg := ScoreAlgorithmic(sub.Verses)
	span.SetAttributes(
		attribute.Int("validation.verses", len(sub.Verses)),
		attribute.Float64("validation.algorithmic_score", alg.Score),
	)

	var res Result
	if alg.Score < GateThreshold {
		res = rejected(alg)
	} else {
		start := time.Now()
		a, err := v.assess(ctx, sub)
		stage := StageCombined
		if err != nil {
			v.log.Warn("semantic stage failed, using neutral assessment",
				"stage", "semantic",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
				"algorithmic_score", alg.Score,
			)
			a = semantic.Neutral
			stage = StageFallback
		}
		res = combined(alg, a)
		res.Stage = stage
	}

	span.SetAttributes(
		attribute.Bool("validation.gate_passed", res.Stage != StageRejected),
		attribute.Bool("validation.fallback", res.Stage == StageFallback),
		attribute.String("validation.stage", string(res.Stage)),
		attribute.Float64("validation.score", res.Score),
		attribute.Bool("validation.approved", res.Approved),
	)
	return res
}

func (v *Validator) assess(ctx context.Context, sub Submission) (a semantic.Assessment, err error) {
	ctx, span := v.tracer.Start(ctx, "validation.semantic")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if v.scorer == nil {
		return semantic.Assessment{}, errNoScorer
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if err := v.slots.Acquire(ctx, 1); err != nil {
		return semantic.Assessment{}, fmt.Errorf("wait for semantic slot: %w", err)
	}
	defer v.slots.Release(1)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("semantic scorer panic: %v", r)
		}
	}()

	a, err = v.scorer.Score(ctx, semantic.BuildPrompt(sub.Theme, sub.Style, sub.Verses))
	if err != nil {
		return semantic.Assessment{}, err
	}
	return sanitize(a), nil
}

func rejected(alg Algorithmic) Result {
	feedback := strings.Join(alg.Problems, "; ")
	if feedback == "" {
		feedback = fmt.Sprintf("algorithmic score %.1f is below %.1f", alg.Score, GateThreshold)
	}
	res := newResult(alg.Score, feedback, Criteria{Rhyme: alg.Rhyme, Meter: alg.Meter})
	res.AlgorithmicScore = alg.Score
	res.Stage = StageRejected
	res.Problems = alg.Problems
	return res
}

func combined(alg Algorithmic, a semantic.Assessment) Result {
	final := AlgorithmicWeight*alg.Score + SemanticWeight*a.Score
	res := newResult(final, a.Feedback, Criteria{
		Rhyme:       alg.Rhyme,
		Meter:       alg.Meter,
		Coherence:   a.Coherence,
		Originality: a.Originality,
	})
	res.AlgorithmicScore = alg.Score
	res.Problems = alg.Problems
	return res
}

// sanitize keeps a scorer that ignores the 0-10 contract from skewing the blend.
func sanitize(a semantic.Assessment) semantic.Assessment {
	a.Score = clamp(a.Score, 0, 10)
	a.Coherence = clamp(a.Coherence, 0, 10)
	a.Originality = clamp(a.Originality, 0, 10)
	return a
}

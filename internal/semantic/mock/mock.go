package mock

import (
	"context"
	"crypto/sha256"
	"sync/atomic"
	"time"

	"github.com/yungbote/rimas-backend/internal/semantic"
)

// Scorer is an in-process semantic.Scorer. Without a fixed result it derives
// a stable 5-9 assessment from the prompt hash, so local runs without a model
// still exercise the combine path.
type Scorer struct {
	Fixed *semantic.Assessment
	Err   error
	Delay time.Duration

	calls atomic.Int64
}

func New() *Scorer {
	return &Scorer{}
}

func NewFixed(a semantic.Assessment) *Scorer {
	return &Scorer{Fixed: &a}
}

func NewFailing(err error) *Scorer {
	return &Scorer{Err: err}
}

func (s *Scorer) Score(ctx context.Context, prompt string) (semantic.Assessment, error) {
	s.calls.Add(1)
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return semantic.Assessment{}, ctx.Err()
		case <-t.C:
		}
	}
	if s.Err != nil {
		return semantic.Assessment{}, s.Err
	}
	if s.Fixed != nil {
		return *s.Fixed, nil
	}
	h := sha256.Sum256([]byte(prompt))
	return semantic.Assessment{
		Score:       5 + float64(h[0]%41)/10,
		Coherence:   5 + float64(h[1]%41)/10,
		Originality: 5 + float64(h[2]%41)/10,
		Feedback:    "mock: avaliação simulada",
	}, nil
}

func (s *Scorer) Ping(context.Context) error { return nil }

// Calls reports how many times Score was invoked.
func (s *Scorer) Calls() int64 { return s.calls.Load() }

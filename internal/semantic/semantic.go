// Package semantic wraps the external language-model judgment of a drill
// submission behind a small capability interface.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Assessment is the model's view of a submission, every number on 0-10.
type Assessment struct {
	Score       float64 `json:"score"`
	Coherence   float64 `json:"coherence"`
	Originality float64 `json:"originality"`
	Feedback    string  `json:"feedback"`
}

// Scorer produces an Assessment for a prompt. Implementations must honour
// ctx cancellation.
type Scorer interface {
	Score(ctx context.Context, prompt string) (Assessment, error)
}

// Generator is a raw text completion endpoint.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Prober reports whether the model endpoint is reachable.
type Prober interface {
	Ping(ctx context.Context) error
}

var (
	ErrUnparseable   = errors.New("semantic: no usable json object in model response")
	ErrEmptyResponse = errors.New("semantic: empty model response")
)

// Neutral is substituted whenever the model cannot be reached or understood.
var Neutral = Assessment{Score: 6, Coherence: 6, Originality: 6, Feedback: "inconclusive"}

// TextScorer turns a Generator into a Scorer by parsing the completion.
type TextScorer struct {
	gen Generator
}

func NewTextScorer(gen Generator) *TextScorer {
	return &TextScorer{gen: gen}
}

func (s *TextScorer) Score(ctx context.Context, prompt string) (Assessment, error) {
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return Assessment{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Assessment{}, ErrEmptyResponse
	}
	a, err := ParseResponse(text)
	if err != nil {
		return Assessment{}, fmt.Errorf("parse model response: %w", err)
	}
	return a, nil
}

// Ping forwards to the generator when it can probe.
func (s *TextScorer) Ping(ctx context.Context) error {
	if p, ok := s.gen.(Prober); ok {
		return p.Ping(ctx)
	}
	return nil
}

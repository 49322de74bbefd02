// Package validation scores a four-verse drill submission in two stages: a
// cheap algorithmic pass that can reject outright, then a language-model
// judgment blended into the final verdict.
package validation

import "math"

const (
	ExpectedVerses = 4

	MinSyllables = 6
	MaxSyllables = 16

	meterPointsPerVerse = 2.5
	rhymePointsPerPair  = 5.0

	// GateThreshold is the algorithmic score below which the model is never asked.
	GateThreshold = 4.0
	// ApprovalThreshold is the final score a submission needs to pass.
	ApprovalThreshold = 7.0

	AlgorithmicWeight = 0.4
	SemanticWeight    = 0.6
)

type Submission struct {
	Verses []string `json:"verses"`
	Theme  string   `json:"theme"`
	Style  string   `json:"style"`
}

type Criteria struct {
	Rhyme       float64 `json:"rhyme"`
	Meter       float64 `json:"meter"`
	Coherence   float64 `json:"coherence"`
	Originality float64 `json:"originality"`
}

// Stage records which terminal state produced a Result.
type Stage string

const (
	StageRejected Stage = "rejected"
	StageCombined Stage = "combined"
	StageFallback Stage = "fallback"
)

// Result always satisfies Approved == (Score >= ApprovalThreshold).
type Result struct {
	Score            float64  `json:"score"`
	Approved         bool     `json:"approved"`
	Feedback         string   `json:"feedback"`
	Criteria         Criteria `json:"criteria"`
	AlgorithmicScore float64  `json:"algorithmic_score"`
	Stage            Stage    `json:"stage"`
	Problems         []string `json:"problems,omitempty"`
}

func newResult(score float64, feedback string, c Criteria) Result {
	score = clamp(round1(score), 0, 10)
	return Result{
		Score:    score,
		Approved: score >= ApprovalThreshold,
		Feedback: feedback,
		Criteria: c,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

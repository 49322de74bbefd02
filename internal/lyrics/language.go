package lyrics

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageGate decides whether a lyric is Portuguese enough to ingest. The
// detector only knows the languages Brazilian rap is usually confused with.
type LanguageGate struct {
	detector      lingua.LanguageDetector
	minConfidence float64
}

type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Portuguese bool    `json:"portuguese"`
}

func NewLanguageGate(minConfidence float64) *LanguageGate {
	if minConfidence <= 0 || minConfidence > 1 {
		minConfidence = 0.5
	}
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Portuguese, lingua.Spanish, lingua.English, lingua.Italian).
		Build()
	return &LanguageGate{detector: d, minConfidence: minConfidence}
}

// Detect reports the most likely language and the Portuguese confidence.
func (g *LanguageGate) Detect(text string) Detection {
	text = strings.TrimSpace(text)
	if text == "" {
		return Detection{Language: "unknown"}
	}
	lang, ok := g.detector.DetectLanguageOf(text)
	conf := g.detector.ComputeLanguageConfidence(text, lingua.Portuguese)
	d := Detection{Language: "unknown", Confidence: conf}
	if ok {
		d.Language = strings.ToLower(lang.String())
	}
	d.Portuguese = ok && lang == lingua.Portuguese
	return d
}

// Allow rejects only text that is confidently another language; empty or
// undecidable text passes.
func (g *LanguageGate) Allow(text string) (bool, Detection) {
	d := g.Detect(text)
	if d.Language == "unknown" || d.Portuguese {
		return true, d
	}
	return d.Confidence >= g.minConfidence, d
}

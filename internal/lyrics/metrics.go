package lyrics

import (
	"math"

	"github.com/yungbote/rimas-backend/internal/rhyme"
)

// Metrics is recomputed from scratch on every analysis.
type Metrics struct {
	Rhymes            []Record `json:"rhymes"`
	LineCount         int      `json:"line_count"`
	WordCount         int      `json:"word_count"`
	RhymesPerLine     float64  `json:"rhymes_per_line"`
	RhymeDensity      float64  `json:"rhyme_density"`
	VocabularyVariety float64  `json:"vocabulary_variety"`
	QualityScore      float64  `json:"quality_score"`
}

// Quality score weights.
const (
	strengthWeight = 0.5
	densityWeight  = 0.3
	varietyWeight  = 0.2
)

// Aggregate reduces rhyme records and counts into lyric-level metrics.
// tokens feeds vocabulary variety and may be nil. Degenerate input yields
// zero metrics.
func Aggregate(rhymes []Record, lineCount, wordCount int, tokens []rhyme.Token) Metrics {
	if rhymes == nil {
		rhymes = []Record{}
	}
	m := Metrics{Rhymes: rhymes, LineCount: lineCount, WordCount: wordCount}
	if lineCount <= 0 {
		m.LineCount = 0
		return m
	}

	n := float64(len(rhymes))
	lines := float64(lineCount)
	m.RhymesPerLine = n / lines
	m.RhymeDensity = n / (lines / 2)

	if wordCount > 0 && len(tokens) > 0 {
		distinct := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if t.Normalized != "" {
				distinct[t.Normalized] = struct{}{}
			}
		}
		m.VocabularyVariety = math.Min(1, float64(len(distinct))/float64(wordCount))
	}

	var strength float64
	types := make(map[rhyme.Type]struct{}, len(rhyme.Types))
	for _, r := range rhymes {
		strength += r.Strength
		if r.Type != rhyme.None {
			types[r.Type] = struct{}{}
		}
	}
	score := strengthWeight*(strength/lines) +
		densityWeight*m.RhymeDensity +
		varietyWeight*(float64(len(types))/float64(len(rhyme.Types)))
	m.QualityScore = math.Max(0, math.Min(1, score))
	return m
}

// Analyze scans a raw lyric and aggregates its metrics.
func Analyze(text string) Metrics {
	lines := SplitLines(text)
	var tokens []rhyme.Token
	for _, l := range lines {
		tokens = append(tokens, rhyme.Tokenize(l)...)
	}
	return Aggregate(Scan(lines), len(lines), len(tokens), tokens)
}

// EndWords returns the normalized last word of each line, in order, skipping
// words too short to rhyme.
func EndWords(text string) []string {
	out := []string{}
	for _, l := range SplitLines(text) {
		if tok, ok := rhyme.LastToken(l); ok && tok.Len() >= rhyme.MinWordLen {
			out = append(out, tok.Normalized)
		}
	}
	return out
}

package lyrics

import (
	"strings"

	"github.com/yungbote/rimas-backend/internal/rhyme"
)

// Record is one detected rhyme. Word1 and Word2 never share a normalized
// form and both are at least rhyme.MinWordLen long.
type Record struct {
	Word1    rhyme.Token `json:"word1"`
	Word2    rhyme.Token `json:"word2"`
	Line1    string      `json:"line1"`
	Line2    string      `json:"line2"`
	Type     rhyme.Type  `json:"type"`
	Strength float64     `json:"strength"`
}

// internalMinLen filters short function words out of the same-line scan.
const internalMinLen = 3

// Scan returns the end rhymes between consecutive lines followed by the
// internal rhymes of each line. Blank lines are ignored.
func Scan(lines []string) []Record {
	clean := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			clean = append(clean, l)
		}
	}
	out := ScanAdjacent(clean)
	for _, line := range clean {
		out = append(out, ScanInternal(line)...)
	}
	return out
}

// ScanAdjacent classifies the last word of every line against the last word
// of the next one.
func ScanAdjacent(lines []string) []Record {
	out := []Record{}
	for i := 0; i+1 < len(lines); i++ {
		w1, ok1 := rhyme.LastToken(lines[i])
		w2, ok2 := rhyme.LastToken(lines[i+1])
		if !ok1 || !ok2 || w1.Len() < rhyme.MinWordLen || w2.Len() < rhyme.MinWordLen {
			continue
		}
		typ, strength := rhyme.ClassifyNormalized(w1.Normalized, w2.Normalized)
		if typ == rhyme.None {
			continue
		}
		out = append(out, Record{
			Word1:    w1,
			Word2:    w2,
			Line1:    lines[i],
			Line2:    lines[i+1],
			Type:     typ,
			Strength: strength,
		})
	}
	return out
}

// ScanInternal looks for same-line rhymes. For each word it scans forward,
// skipping the immediate neighbour, and keeps only the first word sharing
// its two-letter ending.
func ScanInternal(line string) []Record {
	var words []rhyme.Token
	for _, tok := range rhyme.Tokenize(line) {
		if tok.Len() >= internalMinLen {
			words = append(words, tok)
		}
	}

	out := []Record{}
	for i := range words {
		end := words[i].Normalized[words[i].Len()-rhyme.ConsonantSuffixLen:]
		for j := i + 2; j < len(words); j++ {
			other := words[j].Normalized
			if other == words[i].Normalized || !strings.HasSuffix(other, end) {
				continue
			}
			out = append(out, Record{
				Word1:    words[i],
				Word2:    words[j],
				Line1:    line,
				Line2:    line,
				Type:     rhyme.Internal,
				Strength: rhyme.InternalStrength,
			})
			break
		}
	}
	return out
}

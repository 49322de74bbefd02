package validation

import (
	"fmt"

	"github.com/yungbote/rimas-backend/internal/rhyme"
)

// Algorithmic is the outcome of the first, model-free stage.
type Algorithmic struct {
	Rhyme     float64  `json:"rhyme"`
	Meter     float64  `json:"meter"`
	Score     float64  `json:"score"`
	Syllables []int    `json:"syllables"`
	Problems  []string `json:"problems"`
}

// rhymePairs are the verse indexes whose endings must rhyme (AABB).
var rhymePairs = [][2]int{{0, 1}, {2, 3}}

// ScoreAlgorithmic computes the meter and rhyme sub-scores (0-10 each) of the
// first four verses and averages them. Extra or missing verses are reported
// as problems; missing ones simply earn no points.
func ScoreAlgorithmic(verses []string) Algorithmic {
	a := Algorithmic{Syllables: []int{}, Problems: []string{}}

	if len(verses) != ExpectedVerses {
		a.Problems = append(a.Problems, fmt.Sprintf("expected %d verses, got %d", ExpectedVerses, len(verses)))
	}
	if len(verses) > ExpectedVerses {
		verses = verses[:ExpectedVerses]
	}

	for i, v := range verses {
		n := CountSyllables(v)
		a.Syllables = append(a.Syllables, n)
		switch {
		case n == 0:
			a.Problems = append(a.Problems, fmt.Sprintf("verse %d is empty", i+1))
		case n < MinSyllables || n > MaxSyllables:
			a.Problems = append(a.Problems, fmt.Sprintf("verse %d has %d syllables (expected %d-%d)", i+1, n, MinSyllables, MaxSyllables))
		default:
			a.Meter += meterPointsPerVerse
		}
	}

	for _, p := range rhymePairs {
		if p[1] >= len(verses) {
			a.Problems = append(a.Problems, fmt.Sprintf("verses %d and %d are missing a rhyme partner", p[0]+1, p[1]+1))
			continue
		}
		w1, ok1 := rhyme.LastToken(verses[p[0]])
		w2, ok2 := rhyme.LastToken(verses[p[1]])
		if !ok1 || !ok2 {
			a.Problems = append(a.Problems, fmt.Sprintf("verses %d and %d do not rhyme", p[0]+1, p[1]+1))
			continue
		}
		typ, strength := rhyme.ClassifyNormalized(w1.Normalized, w2.Normalized)
		if typ == rhyme.None {
			a.Problems = append(a.Problems, fmt.Sprintf("verses %d and %d do not rhyme (%s / %s)", p[0]+1, p[1]+1, w1.Display, w2.Display))
			continue
		}
		a.Rhyme += rhymePointsPerPair * strength
	}

	a.Rhyme = round1(a.Rhyme)
	a.Meter = round1(a.Meter)
	a.Score = round1((a.Rhyme + a.Meter) / 2)
	return a
}

// CountSyllables approximates syllables as runs of consecutive vowels within
// each word, so "quebrada" is 3 and "não" is 1.
func CountSyllables(verse string) int {
	n := 0
	for _, tok := range rhyme.Tokenize(verse) {
		inVowel := false
		for i := 0; i < len(tok.Normalized); i++ {
			v := isVowel(tok.Normalized[i])
			if v && !inVowel {
				n++
			}
			inVowel = v
		}
	}
	return n
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

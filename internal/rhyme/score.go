package rhyme

import "sort"

// Score rates how well two words rhyme on a 0-100 scale by counting matching
// trailing characters of their normalized forms. Identical forms score 100.
// It is independent of Classify and only used to rank suggestions.
func Score(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 100
	}
	switch n := commonSuffixLen(na, nb); {
	case n >= 4:
		return 95
	case n == 3:
		return 85
	case n == 2:
		return 70
	case n == 1:
		if isVowel(na[len(na)-1]) {
			return 50
		}
		return 30
	default:
		return 0
	}
}

type Suggestion struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Suggest ranks candidates by Score against word, best first. Candidates that
// normalize to the query word, repeat an earlier candidate, or score zero are
// dropped. limit <= 0 returns every match.
func Suggest(word string, candidates []string, limit int) []Suggestion {
	target := Normalize(word)
	if target == "" {
		return []Suggestion{}
	}
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		nc := Normalize(c)
		if nc == "" || nc == target {
			continue
		}
		if _, dup := seen[nc]; dup {
			continue
		}
		seen[nc] = struct{}{}
		if s := Score(target, nc); s > 0 {
			out = append(out, Suggestion{Word: c, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return Normalize(out[i].Word) < Normalize(out[j].Word)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

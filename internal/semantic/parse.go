package semantic

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var (
	scoreKeys       = []string{"score", "nota"}
	coherenceKeys   = []string{"coerencia", "coherencia", "coerência", "coherence"}
	originalityKeys = []string{"originalidade", "originality"}
	feedbackKeys    = []string{"feedback", "comentario", "comentário"}
)

// ParseResponse finds the first JSON object in free-form model output and
// reads {score, coerencia, originalidade, feedback} from it. Numbers are
// clamped to [0,10]; missing sub-scores fall back to Neutral. A missing
// overall score is an error.
func ParseResponse(text string) (Assessment, error) {
	obj, ok := decodeFirstObject(text)
	if !ok {
		return Assessment{}, ErrUnparseable
	}

	score, ok := lookupNumber(obj, scoreKeys)
	if !ok {
		return Assessment{}, ErrUnparseable
	}
	a := Assessment{Score: clamp10(score), Coherence: Neutral.Coherence, Originality: Neutral.Originality}
	if v, ok := lookupNumber(obj, coherenceKeys); ok {
		a.Coherence = clamp10(v)
	}
	if v, ok := lookupNumber(obj, originalityKeys); ok {
		a.Originality = clamp10(v)
	}
	for _, k := range feedbackKeys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			a.Feedback = strings.TrimSpace(s)
			break
		}
	}
	return a, nil
}

func decodeFirstObject(text string) (map[string]any, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}
	var obj map[string]any
	if end := balancedEnd(text, start); end > start {
		if json.Unmarshal([]byte(text[start:end+1]), &obj) == nil {
			return obj, true
		}
	}
	// Models sometimes close a code fence after an unbalanced brace; retry greedily.
	if end := strings.LastIndexByte(text, '}'); end > start {
		if json.Unmarshal([]byte(text[start:end+1]), &obj) == nil {
			return obj, true
		}
	}
	return nil, false
}

// balancedEnd returns the index of the brace closing the object at start,
// ignoring braces inside strings, or -1.
func balancedEnd(text string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func lookupNumber(obj map[string]any, keys []string) (float64, bool) {
	for _, k := range keys {
		v, present := obj[k]
		if !present {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), ",", "."), 64)
			if err == nil && !math.IsNaN(f) {
				return f, true
			}
		}
	}
	return 0, false
}

func clamp10(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

package rhyme

import "strings"

// Token keeps a word as typed next to its comparison form.
type Token struct {
	Display    string `json:"display"`
	Normalized string `json:"normalized"`
}

func NewToken(word string) Token {
	return Token{Display: word, Normalized: Normalize(word)}
}

// Len is the length of the normalized form.
func (t Token) Len() int { return len(t.Normalized) }

// Tokenize splits on whitespace and drops fields that normalize to nothing
// (bare punctuation, emoji).
func Tokenize(line string) []Token {
	fields := strings.Fields(line)
	out := make([]Token, 0, len(fields))
	for _, f := range fields {
		tok := NewToken(f)
		if tok.Normalized == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// LastToken returns the last whitespace-delimited field of line. ok is false
// for blank lines.
func LastToken(line string) (Token, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Token{}, false
	}
	return NewToken(fields[len(fields)-1]), true
}

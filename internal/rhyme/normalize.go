// Package rhyme holds the Brazilian-Portuguese rhyme primitives shared by
// lyric analysis and drill validation: word normalization, the four-tier
// classifier, and the 0-100 suffix score used for suggestions.
package rhyme

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases word, folds diacritics to their base letter
// (á/à/â/ã→a, ç→c, ...) and keeps only [a-z0-9]. It is total and idempotent.
func Normalize(word string) string {
	if word == "" {
		return ""
	}
	folded, _, err := transform.String(foldChain(), strings.ToLower(word))
	if err != nil {
		folded = strings.ToLower(word)
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// transform.Chain is stateful, so each call gets its own.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// vowels returns the vowel letters of an already normalized word, in order.
func vowels(normalized string) string {
	var b strings.Builder
	for i := 0; i < len(normalized); i++ {
		if isVowel(normalized[i]) {
			b.WriteByte(normalized[i])
		}
	}
	return b.String()
}

// commonSuffixLen counts matching trailing bytes, stopping at the first mismatch.
func commonSuffixLen(a, b string) int {
	n := 0
	for i, j := len(a)-1, len(b)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if a[i] != b[j] {
			break
		}
		n++
	}
	return n
}

func suffix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

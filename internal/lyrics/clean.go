package lyrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	sectionRe   = regexp.MustCompile(`\[[^\]]*\]`)
	headerRe    = regexp.MustCompile(`(?i)^(refr[aã]o|verso\s*\d*|ponte|intro|outro|coro|final)\s*:?\s*(\(\s*\d+\s*x\s*\))?$`)
	separatorRe = regexp.MustCompile(`^[\s|\-_*~]*$`)
	repeatRe    = regexp.MustCompile(`(?i)\s*\(\s*\d+\s*x\s*\)\s*$`)
	spaceRe     = regexp.MustCompile(`[ \t\p{Zs}]+`)
	brRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// Clean strips section markers ([Refrão], Verso 1:), separator lines and
// trailing repeat marks like "(2x)", and collapses runs of spaces. Stanza
// breaks survive as single blank lines.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = sectionRe.ReplaceAllString(text, "")

	var out []string
	blank := true
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
		line = strings.TrimSpace(repeatRe.ReplaceAllString(line, ""))
		if line == "" || separatorRe.MatchString(line) || headerRe.MatchString(line) {
			if !blank {
				out = append(out, "")
				blank = true
			}
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// SplitLines returns the ordered non-blank lines of text, trimmed.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// FromHTML extracts lyric text from an HTML fragment: <br> becomes a line
// break and each <p> a stanza. The result is passed through Clean.
func FromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(brRe.ReplaceAllString(html, "\n")))
	if err != nil {
		return "", fmt.Errorf("parse lyric html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	paragraphs := doc.Find("p")
	if paragraphs.Length() == 0 {
		b.WriteString(doc.Text())
	} else {
		paragraphs.Each(func(_ int, s *goquery.Selection) {
			b.WriteString(s.Text())
			b.WriteString("\n\n")
		})
	}
	return Clean(b.String()), nil
}

package lyrics

import (
	"math"
	"strings"
	"testing"

	"github.com/yungbote/rimas-backend/internal/rhyme"
)

const quebrada = `Na quebrada eu cresci sem ter nada
Mas nunca deixei a peteca virada
Hoje olho pra trás e vejo a estrada
Cada luta valeu, cada batalha passada`

func TestScanAdjacent(t *testing.T) {
	recs := ScanAdjacent(SplitLines(quebrada))
	if len(recs) != 3 {
		t.Fatalf("adjacent=%d %+v", len(recs), recs)
	}
	for _, r := range recs {
		if r.Type != rhyme.Perfect || r.Strength != rhyme.PerfectStrength {
			t.Fatalf("unexpected record %+v", r)
		}
	}
	if recs[0].Word1.Display != "nada" || recs[0].Word2.Display != "virada" {
		t.Fatalf("words=%q/%q", recs[0].Word1.Display, recs[0].Word2.Display)
	}
	if recs[2].Line2 != "Cada luta valeu, cada batalha passada" {
		t.Fatalf("line2=%q", recs[2].Line2)
	}
}

func TestScanAdjacentSkipsShortAndIdentical(t *testing.T) {
	lines := []string{"eu vou pra lá", "e daí o", "quero mais nada", "quero mais nada"}
	if recs := ScanAdjacent(lines); len(recs) != 0 {
		t.Fatalf("want none, got %+v", recs)
	}
}

func TestScanInternalFirstMatchOnly(t *testing.T) {
	recs := ScanInternal("Na quebrada eu cresci sem ter nada")
	if len(recs) != 1 {
		t.Fatalf("internal=%+v", recs)
	}
	if recs[0].Word1.Normalized != "quebrada" || recs[0].Word2.Normalized != "nada" {
		t.Fatalf("got %+v", recs[0])
	}
	if recs[0].Type != rhyme.Internal || recs[0].Strength != rhyme.InternalStrength {
		t.Fatalf("got %+v", recs[0])
	}

	// Each start word reports at most one partner even when several match.
	rep := ScanInternal("mão pão chão vão")
	if len(rep) != 2 {
		t.Fatalf("repetitive line: %+v", rep)
	}
}

func TestScanInternalSkipsNeighbourAndSelf(t *testing.T) {
	if recs := ScanInternal("cada nada"); len(recs) != 0 {
		t.Fatalf("neighbours must not match: %+v", recs)
	}
	if recs := ScanInternal("cada luta cada"); len(recs) != 0 {
		t.Fatalf("self rhyme must not match: %+v", recs)
	}
}

func TestScanFull(t *testing.T) {
	recs := Scan(append(SplitLines(quebrada), "", "   "))
	var adjacent, internal int
	for _, r := range recs {
		if r.Word1.Normalized == r.Word2.Normalized {
			t.Fatalf("self rhyme recorded: %+v", r)
		}
		if r.Word1.Len() < rhyme.MinWordLen || r.Word2.Len() < rhyme.MinWordLen {
			t.Fatalf("short word recorded: %+v", r)
		}
		if r.Type == rhyme.Internal {
			internal++
		} else {
			adjacent++
		}
	}
	if adjacent != 3 || internal != 4 {
		t.Fatalf("adjacent=%d internal=%d", adjacent, internal)
	}
}

func TestAggregate(t *testing.T) {
	recs := []Record{
		{Type: rhyme.Perfect, Strength: rhyme.PerfectStrength},
		{Type: rhyme.Assonant, Strength: rhyme.AssonantStrength},
	}
	var toks []rhyme.Token
	for _, w := range strings.Fields("um dois tres quatro cinco seis sete oito um dois") {
		toks = append(toks, rhyme.NewToken(w))
	}
	m := Aggregate(recs, 8, len(toks), toks)
	if m.RhymesPerLine != 0.25 {
		t.Fatalf("rhymes per line=%v", m.RhymesPerLine)
	}
	if m.RhymeDensity != 0.5 {
		t.Fatalf("density=%v", m.RhymeDensity)
	}
	if m.VocabularyVariety != 0.8 {
		t.Fatalf("variety=%v", m.VocabularyVariety)
	}
	if math.Abs(m.QualityScore-0.35) > 1e-9 {
		t.Fatalf("quality=%v", m.QualityScore)
	}
}

func TestAggregateDegenerate(t *testing.T) {
	m := Aggregate(nil, 0, 0, nil)
	if m.QualityScore != 0 || m.RhymesPerLine != 0 || m.RhymeDensity != 0 || m.VocabularyVariety != 0 {
		t.Fatalf("want zero metrics, got %+v", m)
	}
	if m.Rhymes == nil {
		t.Fatalf("rhymes should be an empty slice")
	}
}

func TestAnalyzeQualityBounded(t *testing.T) {
	inputs := []string{
		"",
		"\n\n  \n",
		"uma linha só",
		quebrada,
		"mão pão chão vão são\nmão pão chão vão são\nmão pão chão vão são",
		strings.Repeat("nada virada estrada passada\n", 20),
	}
	for _, in := range inputs {
		m := Analyze(in)
		if m.QualityScore < 0 || m.QualityScore > 1 {
			t.Fatalf("quality out of range for %q: %v", in, m.QualityScore)
		}
		if m.VocabularyVariety < 0 || m.VocabularyVariety > 1 {
			t.Fatalf("variety out of range for %q: %v", in, m.VocabularyVariety)
		}
	}
	if Analyze("").QualityScore != 0 {
		t.Fatalf("empty lyric must score 0")
	}
}

func TestAnalyzeQuebrada(t *testing.T) {
	m := Analyze(quebrada)
	if m.LineCount != 4 || m.WordCount != 27 {
		t.Fatalf("lines=%d words=%d", m.LineCount, m.WordCount)
	}
	if len(m.Rhymes) != 7 || m.QualityScore != 1 {
		t.Fatalf("rhymes=%d quality=%v", len(m.Rhymes), m.QualityScore)
	}
}

func TestEndWords(t *testing.T) {
	got := EndWords(quebrada + "\nfim é")
	want := []string{"nada", "virada", "estrada", "passada"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v", got)
	}
}

func TestClean(t *testing.T) {
	in := "[Refrão]\nEu sou do   morro  (2x)\n|  |\n\n\nVerso 2:\nNa batida eu vou\r\n"
	want := "Eu sou do morro\n\nNa batida eu vou"
	if got := Clean(in); got != want {
		t.Fatalf("Clean=%q want %q", got, want)
	}
}

func TestFromHTML(t *testing.T) {
	html := `<div class="lyric"><p>Linha um<br>Linha dois</p><p>Linha três<br/>Linha quatro</p><script>track()</script></div>`
	got, err := FromHTML(html)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	want := "Linha um\nLinha dois\n\nLinha três\nLinha quatro"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	plain, err := FromHTML("primeira<br>segunda")
	if err != nil {
		t.Fatalf("FromHTML plain: %v", err)
	}
	if plain != "primeira\nsegunda" {
		t.Fatalf("plain=%q", plain)
	}
}

func TestLanguageGate(t *testing.T) {
	g := NewLanguageGate(0.5)

	pt := "Eu acordei cedo e fui para a escola, mas a professora não estava lá porque estava doente."
	if ok, d := g.Allow(pt); !ok || !d.Portuguese {
		t.Fatalf("portuguese rejected: %+v", d)
	}

	en := "I woke up early and went to school, but the bus never came because of the storm."
	if ok, d := g.Allow(en); ok {
		t.Fatalf("english allowed: %+v", d)
	}

	if ok, _ := g.Allow("   "); !ok {
		t.Fatalf("empty text should pass the gate")
	}
}

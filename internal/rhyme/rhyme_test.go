package rhyme

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"Coração!":      "coracao",
		"É":             "e",
		"pé-de-moleque": "pedemoleque",
		"ÜBER":          "uber",
		"Irmão,":        "irmao",
		"São Paulo 011": "saopaulo011",
		"...":           "",
		"àâãáéêíóôõúç":  "aaaaeeiooouc",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q)=%q want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	words := []string{"Coração", "ÇÃO", "tá ligado?", "rap_123", "ñandú", "", "Ébano!"}
	for _, w := range words {
		once := Normalize(w)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", w, once, twice)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		a, b     string
		wantType Type
		wantStr  float64
	}{
		{"nada", "virada", Perfect, PerfectStrength},
		{"estrada", "passada", Perfect, PerfectStrength},
		{"amor", "dor", Consonant, ConsonantStrength},
		{"casa", "mala", Assonant, AssonantStrength},
		{"coração", "cantam", Consonant, ConsonantStrength},
		{"correr", "falar", Consonant, ConsonantStrength},
		{"partir", "falar", Consonant, ConsonantStrength},
		{"céu", "papel", Consonant, ConsonantStrength},
		{"sol", "mar", None, 0},
		{"a", "casa", None, 0},
		{"Nada", "nadá", None, 0},
		{"sentido", "grande", None, 0},
		{"velha", "pequeno", None, 0},
	}
	for _, tc := range cases {
		gotType, gotStr := Classify(tc.a, tc.b)
		if gotType != tc.wantType || gotStr != tc.wantStr {
			t.Fatalf("Classify(%q,%q)=(%v,%v) want (%v,%v)", tc.a, tc.b, gotType, gotStr, tc.wantType, tc.wantStr)
		}
	}
}

func TestClassifySelfRhymeIsNone(t *testing.T) {
	for _, w := range []string{"nada", "Coração", "rap", "ÉPICO", "mar!"} {
		if got, s := Classify(w, w); got != None || s != 0 {
			t.Fatalf("Classify(%q,%q)=(%v,%v)", w, w, got, s)
		}
	}
}

func TestClassifyCommutative(t *testing.T) {
	words := []string{"nada", "virada", "amor", "dor", "casa", "mala", "coração", "cantam", "correr", "falar", "céu", "papel", "x", "sol", "luz", "paz"}
	for _, a := range words {
		for _, b := range words {
			ta, sa := Classify(a, b)
			tb, sb := Classify(b, a)
			if ta != tb || sa != sb {
				t.Fatalf("Classify(%q,%q)=(%v,%v) but reversed=(%v,%v)", a, b, ta, sa, tb, sb)
			}
		}
	}
}

func TestClassifyShortWordsNeverRhyme(t *testing.T) {
	for _, short := range []string{"", "a", "é", "!", "o,"} {
		for _, other := range []string{"casa", "a", "ao", "nada"} {
			if got, _ := Classify(short, other); got != None {
				t.Fatalf("Classify(%q,%q)=%v", short, other, got)
			}
		}
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"Nada", "nadá", 100},
		{"cantando", "falando", 95},
		{"vento", "momento", 95},
		{"coração", "pão", 70},
		{"bala", "mala", 85},
		{"mar", "lar", 70},
		// Documented example elsewhere claims 85; the suffix rule yields 70.
		{"amor", "dor", 70},
		{"casa", "vida", 50},
		{"paz", "luz", 30},
		{"sol", "mar", 0},
		{"", "mar", 0},
	}
	for _, tc := range cases {
		if got := Score(tc.a, tc.b); got != tc.want {
			t.Fatalf("Score(%q,%q)=%d want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	got := Suggest("amor", []string{"dor", "calor", "amor", "casa", "pé", "Dor", "tambor"}, 0)
	want := []string{"calor", "dor", "tambor"}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i, w := range want {
		if got[i].Word != w || got[i].Score != 70 {
			t.Fatalf("rank %d: got %+v want %s/70", i, got[i], w)
		}
	}

	limited := Suggest("cantando", []string{"falando", "mando", "bando", "dado"}, 2)
	if len(limited) != 2 || limited[0].Score < limited[1].Score {
		t.Fatalf("limited=%+v", limited)
	}
	if len(Suggest("", []string{"casa"}, 0)) != 0 {
		t.Fatalf("empty query should yield nothing")
	}
}

func TestTypeJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		T Type `json:"t"`
	}{Assonant})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"t":"assonant"}` {
		t.Fatalf("got %s", b)
	}
	var out struct {
		T Type `json:"t"`
	}
	if err := json.Unmarshal([]byte(`{"t":"internal"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.T != Internal {
		t.Fatalf("got %v", out.T)
	}
}

func TestTokenize(t *testing.T) {
	toks := Tokenize("  Eu vim da  quebrada , mano! ")
	want := []string{"eu", "vim", "da", "quebrada", "mano"}
	if len(toks) != len(want) {
		t.Fatalf("tokens=%+v", toks)
	}
	for i, w := range want {
		if toks[i].Normalized != w {
			t.Fatalf("token %d=%q want %q", i, toks[i].Normalized, w)
		}
	}
	if toks[4].Display != "mano!" {
		t.Fatalf("display lost punctuation: %q", toks[4].Display)
	}
	if _, ok := LastToken("   "); ok {
		t.Fatalf("blank line has no last token")
	}
}

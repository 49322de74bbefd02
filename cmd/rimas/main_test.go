package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yungbote/rimas-backend/internal/app"
)

func run(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	t.Setenv("RIMAS_CONFIG_PATH", "")
	t.Setenv("RIMAS_SCORER", "mock")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("RIMAS_INGEST_LANGUAGE_GATE", "false")

	a := newApp()
	var out bytes.Buffer
	a.Writer = &out
	a.ErrWriter = &bytes.Buffer{}
	a.ExitErrHandler = func(*cli.Context, error) {}
	err := a.Run(append([]string{"rimas"}, args...))
	return &out, err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const lyric = "[Refrão]\nNa quebrada eu cresci sem ter nada\nMas nunca deixei a peteca virada\n"

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "analyze", writeTemp(t, "song.txt", lyric))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", out.String(), err)
	}
	if got["line_count"].(float64) != 2 {
		t.Fatalf("metrics = %v", got)
	}
}

func TestAnalyzeCommandHTML(t *testing.T) {
	out, err := run(t, "analyze", writeTemp(t, "song.html", "<p>Na quebrada eu cresci sem ter nada<br/>Mas nunca deixei a peteca virada</p>"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["line_count"].(float64) != 2 {
		t.Fatalf("metrics = %v", got)
	}
}

func TestAnalyzeCommandNeedsFile(t *testing.T) {
	if _, err := run(t, "analyze"); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestSuggestCommand(t *testing.T) {
	out, err := run(t, "suggest", "--word", "coração", "mão", "ação", "casa")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0]["word"] != "ação" {
		t.Fatalf("suggestions = %v", got)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "--theme", "superação",
		"Na quebrada eu cresci sem ter nada",
		"Mas nunca deixei a peteca virada",
		"Hoje olho pra trás e vejo a estrada",
		"Cada luta valeu, cada batalha passada",
	)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["stage"] != "combined" || got["algorithmic_score"].(float64) != 10 {
		t.Fatalf("result = %v", got)
	}
}

func TestIngestDryRun(t *testing.T) {
	path := writeTemp(t, "MC Teste - Quebrada.txt", lyric)
	out, err := run(t, "ingest", "--dry-run", path)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	var rep struct {
		Analyzed int `json:"analyzed"`
		Items    []struct {
			Artist string `json:"artist"`
			Title  string `json:"title"`
		} `json:"items"`
	}
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Analyzed != 1 || rep.Items[0].Artist != "MC Teste" || rep.Items[0].Title != "Quebrada" {
		t.Fatalf("report = %+v", rep)
	}
}

func TestDocIdentity(t *testing.T) {
	cases := map[string][2]string{
		"/x/Racionais - Negro Drama.txt": {"Racionais", "Negro Drama"},
		"solo.html":                      {"unknown", "solo"},
	}
	for in, want := range cases {
		a, ti := docIdentity(in)
		if a != want[0] || ti != want[1] {
			t.Fatalf("docIdentity(%q) = %q, %q", in, a, ti)
		}
	}
}

func TestGlobalFlagsDoNotCollide(t *testing.T) {
	out, err := run(t, "--verbose", "suggest", "--word", "amor", "dor")
	if err != nil {
		t.Fatalf("suggest --verbose: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", out.String(), err)
	}
	if len(got) != 1 || got[0]["word"] != "dor" {
		t.Fatalf("suggestions = %v", got)
	}

	out, err = run(t, "-v")
	if err != nil {
		t.Fatalf("-v: %v", err)
	}
	if !strings.Contains(out.String(), "rimas version "+app.Version) {
		t.Fatalf("-v output = %q", out.String())
	}
}

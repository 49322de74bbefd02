package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", 200, time.Millisecond)
	m.APIInflightInc()
	m.ObserveValidation("combined", true, time.Second)
	m.IncSemantic("ok")
	m.AddIngest("stored", 3)

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 503 {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/drills/validate", 200, 30*time.Millisecond)
	m.ObserveAPI("POST", "/api/drills/validate", 200, 2*time.Second)
	m.ObserveValidation("fallback", false, 40*time.Millisecond)
	m.AddIngest("stored", 2)
	m.APIInflightInc()
	m.APIInflightInc()
	m.APIInflightDec()

	var b strings.Builder
	if err := m.WritePrometheus(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		`rimas_api_requests_total{method="POST",route="/api/drills/validate",status="200"} 2`,
		`rimas_api_request_duration_seconds_bucket{method="POST",route="/api/drills/validate",status="200",le="0.05"} 1`,
		`rimas_api_request_duration_seconds_bucket{method="POST",route="/api/drills/validate",status="200",le="+Inf"} 2`,
		`rimas_validations_total{stage="fallback",approved="false"} 1`,
		`rimas_ingest_documents_total{status="stored"} 2`,
		"rimas_api_inflight_requests 1",
		"# TYPE rimas_validation_duration_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLabelString(t *testing.T) {
	if got := labelString([]string{"a", "b"}, []string{`x"y`}); got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString = %s", got)
	}
	if got := withLe("", "1"); got != `{le="1"}` {
		t.Fatalf("withLe = %s", got)
	}
}

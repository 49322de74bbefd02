package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/rimas-backend/internal/semantic"
)

func TestDeterministic(t *testing.T) {
	s := New()
	a1, err := s.Score(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	a2, _ := s.Score(context.Background(), "prompt")
	if a1 != a2 {
		t.Fatalf("not deterministic: %+v vs %+v", a1, a2)
	}
	for _, v := range []float64{a1.Score, a1.Coherence, a1.Originality} {
		if v < 5 || v > 9 {
			t.Fatalf("out of range: %+v", a1)
		}
	}
	if s.Calls() != 2 {
		t.Fatalf("calls=%d", s.Calls())
	}
}

func TestFixedAndFailing(t *testing.T) {
	want := semantic.Assessment{Score: 9, Coherence: 8, Originality: 7, Feedback: "top"}
	if got, _ := NewFixed(want).Score(context.Background(), "x"); got != want {
		t.Fatalf("got %+v", got)
	}
	boom := errors.New("boom")
	if _, err := NewFailing(boom).Score(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestDelayHonoursContext(t *testing.T) {
	s := &Scorer{Delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := s.Score(ctx, "x"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err=%v", err)
	}
}

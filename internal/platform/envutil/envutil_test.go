package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Setenv("RIMAS_TEST_DUR", "")
	if got := Duration("RIMAS_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("default: %v", got)
	}
	t.Setenv("RIMAS_TEST_DUR", "250ms")
	if got := Duration("RIMAS_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("parse: %v", got)
	}
	t.Setenv("RIMAS_TEST_DUR", "7")
	if got := Duration("RIMAS_TEST_DUR", time.Second); got != 7*time.Second {
		t.Fatalf("seconds: %v", got)
	}
	t.Setenv("RIMAS_TEST_DUR", "soon")
	if got := Duration("RIMAS_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("invalid: %v", got)
	}
}

func TestIntFloatBool(t *testing.T) {
	t.Setenv("RIMAS_TEST_INT", "12")
	t.Setenv("RIMAS_TEST_FLOAT", "0.25")
	t.Setenv("RIMAS_TEST_BOOL", "yes")
	if Int("RIMAS_TEST_INT", 1) != 12 {
		t.Fatalf("int")
	}
	if Float("RIMAS_TEST_FLOAT", 1) != 0.25 {
		t.Fatalf("float")
	}
	if !Bool("RIMAS_TEST_BOOL", false) {
		t.Fatalf("bool")
	}
	if Bool("RIMAS_TEST_UNSET_BOOL", true) != true {
		t.Fatalf("bool default")
	}
}

package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessageAndUnwrap(t *testing.T) {
	base := errors.New("boom")
	e := New(http.StatusBadGateway, "upstream", base)
	if e.Error() != "boom" || !errors.Is(e, base) {
		t.Fatalf("unexpected: %v", e)
	}
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("status-only message = %q", got)
	}
	if got := New(0, "code_only", nil).Error(); got != "code_only" {
		t.Fatalf("code-only message = %q", got)
	}
}

func TestStatusOf(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", BadRequest("invalid_body", "missing %s", "verses"))
	if StatusOf(wrapped) != http.StatusBadRequest {
		t.Fatalf("StatusOf(wrapped) = %d", StatusOf(wrapped))
	}
	if StatusOf(errors.New("plain")) != http.StatusInternalServerError {
		t.Fatalf("plain errors map to 500")
	}
	if wrapped.Error() != "handler: missing verses" {
		t.Fatalf("message = %q", wrapped.Error())
	}
}

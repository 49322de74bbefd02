package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rimas-backend/internal/platform/requestid"
)

func TestAttachRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachRequestContext())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = requestid.From(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(requestid.Header, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get(requestid.Header) != "abc-123" {
		t.Fatalf("propagated id: ctx=%q header=%q", seen, rec.Header().Get(requestid.Header))
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if seen == "" || seen == "abc-123" || rec.Header().Get(requestid.Header) != seen {
		t.Fatalf("minted id: ctx=%q header=%q", seen, rec.Header().Get(requestid.Header))
	}
}

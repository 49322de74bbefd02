package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rimas-backend/internal/semantic"
)

type HealthHandler struct {
	prober  semantic.Prober
	timeout time.Duration
}

// NewHealthHandler takes the semantic backend probe; nil reports it as unconfigured.
func NewHealthHandler(prober semantic.Prober, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{prober: prober, timeout: timeout}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type readiness struct {
	Ready    bool   `json:"ready"`
	Semantic string `json:"semantic"`
	Error    string `json:"error,omitempty"`
}

// Ready always answers 200: a down model only means drills fall back to the
// neutral assessment.
func (h *HealthHandler) Ready(c *gin.Context) {
	out := readiness{Ready: true, Semantic: "unconfigured"}
	if h.prober != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.prober.Ping(ctx); err != nil {
			out.Semantic = "down"
			out.Error = err.Error()
		} else {
			out.Semantic = "up"
		}
	}
	c.JSON(http.StatusOK, out)
}

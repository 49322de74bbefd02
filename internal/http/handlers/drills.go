package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rimas-backend/internal/http/response"
	"github.com/yungbote/rimas-backend/internal/observability"
	"github.com/yungbote/rimas-backend/internal/validation"
)

type Validator interface {
	Validate(ctx context.Context, sub validation.Submission) validation.Result
}

type DrillHandler struct {
	validator Validator
	metrics   *observability.Metrics
}

func NewDrillHandler(v Validator, metrics *observability.Metrics) *DrillHandler {
	return &DrillHandler{validator: v, metrics: metrics}
}

// POST /api/drills/validate
//
// A well-formed body always yields 200; rejected drills are a normal result.
func (h *DrillHandler) Validate(c *gin.Context) {
	var sub validation.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	start := time.Now()
	res := h.validator.Validate(c.Request.Context(), sub)
	h.metrics.ObserveValidation(string(res.Stage), res.Approved, time.Since(start))
	switch res.Stage {
	case validation.StageCombined:
		h.metrics.IncSemantic("ok")
	case validation.StageFallback:
		h.metrics.IncSemantic("fallback")
	}
	response.RespondOK(c, res)
}

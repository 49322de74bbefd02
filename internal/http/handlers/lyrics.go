package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rimas-backend/internal/http/response"
	"github.com/yungbote/rimas-backend/internal/ingest"
	"github.com/yungbote/rimas-backend/internal/lyrics"
	"github.com/yungbote/rimas-backend/internal/observability"
	"github.com/yungbote/rimas-backend/internal/platform/apierr"
	"github.com/yungbote/rimas-backend/internal/store"
)

const maxIngestDocuments = 200

type LyricsHandler struct {
	pipeline *ingest.Pipeline
	repo     store.LyricRepo
	metrics  *observability.Metrics
}

func NewLyricsHandler(pipeline *ingest.Pipeline, repo store.LyricRepo, metrics *observability.Metrics) *LyricsHandler {
	return &LyricsHandler{pipeline: pipeline, repo: repo, metrics: metrics}
}

type analyzeRequest struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

type analyzeResponse struct {
	lyrics.Metrics
	EndWords []string `json:"end_words"`
}

// POST /api/lyrics/analyze
func (h *LyricsHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.HTML) == "" {
		response.RespondErr(c, apierr.BadRequest("missing_text", "text or html is required"))
		return
	}
	text, err := ingest.Text(ingest.Document{Text: req.Text, HTML: req.HTML})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_html", err)
		return
	}
	response.RespondOK(c, analyzeResponse{Metrics: lyrics.Analyze(text), EndWords: lyrics.EndWords(text)})
}

type ingestRequest struct {
	Documents []ingest.Document `json:"documents"`
}

// POST /api/lyrics/ingest
func (h *LyricsHandler) Ingest(c *gin.Context) {
	if h.pipeline == nil {
		response.RespondErr(c, apierr.Unavailable("ingest_disabled", errors.New("ingestion is not configured")))
		return
	}
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	switch {
	case len(req.Documents) == 0:
		response.RespondErr(c, apierr.BadRequest("missing_documents", "documents is required"))
		return
	case len(req.Documents) > maxIngestDocuments:
		response.RespondErr(c, apierr.BadRequest("too_many_documents", "at most %d documents per request", maxIngestDocuments))
		return
	}
	rep := h.pipeline.Run(c.Request.Context(), req.Documents)
	h.metrics.AddIngest(string(ingest.StatusStored), rep.Stored)
	h.metrics.AddIngest(string(ingest.StatusAnalyzed), rep.Analyzed)
	h.metrics.AddIngest(string(ingest.StatusSkipped), rep.Skipped)
	h.metrics.AddIngest(string(ingest.StatusFailed), rep.Failed)
	response.RespondOK(c, rep)
}

// GET /api/lyrics?limit=&min_quality=
func (h *LyricsHandler) List(c *gin.Context) {
	if h.repo == nil {
		response.RespondErr(c, apierr.Unavailable("store_disabled", errors.New("lyric store is not configured")))
		return
	}
	limit, err := intQuery(c, "limit", 50)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	minQuality := 0.0
	if raw := strings.TrimSpace(c.Query("min_quality")); raw != "" {
		minQuality, err = strconv.ParseFloat(raw, 64)
		if err != nil || minQuality < 0 || minQuality > 1 {
			response.RespondErr(c, apierr.BadRequest("invalid_min_quality", "min_quality must be a number in [0,1]"))
			return
		}
	}
	rows, err := h.repo.List(c.Request.Context(), limit, minQuality)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"lyrics": rows})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apierr.BadRequest("invalid_"+key, "%s must be a positive integer", key)
	}
	return n, nil
}

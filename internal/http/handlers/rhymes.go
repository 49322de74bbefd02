package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rimas-backend/internal/http/response"
	"github.com/yungbote/rimas-backend/internal/platform/apierr"
	"github.com/yungbote/rimas-backend/internal/platform/logger"
	"github.com/yungbote/rimas-backend/internal/rhyme"
	"github.com/yungbote/rimas-backend/internal/store"
)

const (
	defaultSuggestLimit = 10
	vocabularyLimit     = 5000
)

type RhymeHandler struct {
	repo store.LyricRepo
	log  *logger.Logger
}

// NewRhymeHandler draws suggestion candidates from repo when the caller
// sends none. repo may be nil.
func NewRhymeHandler(repo store.LyricRepo, log *logger.Logger) *RhymeHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RhymeHandler{repo: repo, log: log.With("handler", "RhymeHandler")}
}

type suggestRequest struct {
	Word       string   `json:"word"`
	Candidates []string `json:"candidates"`
	Limit      int      `json:"limit"`
}

type suggestResponse struct {
	Word        string             `json:"word"`
	Normalized  string             `json:"normalized"`
	Suggestions []rhyme.Suggestion `json:"suggestions"`
}

// GET /api/rhymes/suggest?word=&limit=
func (h *RhymeHandler) SuggestQuery(c *gin.Context) {
	limit, err := intQuery(c, "limit", defaultSuggestLimit)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	h.suggest(c, suggestRequest{Word: c.Query("word"), Limit: limit})
}

// POST /api/rhymes/suggest
func (h *RhymeHandler) SuggestBody(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultSuggestLimit
	}
	h.suggest(c, req)
}

func (h *RhymeHandler) suggest(c *gin.Context, req suggestRequest) {
	word := strings.TrimSpace(req.Word)
	if rhyme.Normalize(word) == "" {
		response.RespondErr(c, apierr.BadRequest("missing_word", "word is required"))
		return
	}
	candidates := req.Candidates
	if len(candidates) == 0 && h.repo != nil {
		vocab, err := h.repo.EndWordVocabulary(c.Request.Context(), vocabularyLimit)
		if err != nil {
			h.log.Warn("vocabulary lookup failed", "error", err)
		}
		candidates = vocab
	}
	response.RespondOK(c, suggestResponse{
		Word:        word,
		Normalized:  rhyme.Normalize(word),
		Suggestions: rhyme.Suggest(word, candidates, req.Limit),
	})
}

type classifyRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type classifyResponse struct {
	Type     rhyme.Type `json:"type"`
	Strength float64    `json:"strength"`
	Score    int        `json:"score"`
}

// POST /api/rhymes/classify
func (h *RhymeHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	typ, strength := rhyme.Classify(req.A, req.B)
	response.RespondOK(c, classifyResponse{Type: typ, Strength: strength, Score: rhyme.Score(req.A, req.B)})
}

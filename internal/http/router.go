package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/rimas-backend/internal/http/handlers"
	httpMW "github.com/yungbote/rimas-backend/internal/http/middleware"
	"github.com/yungbote/rimas-backend/internal/observability"
	"github.com/yungbote/rimas-backend/internal/platform/logger"
)

type RouterConfig struct {
	ServiceName  string
	AllowOrigins []string
	Log          *logger.Logger
	Metrics      *observability.Metrics

	HealthHandler *httpH.HealthHandler
	LyricsHandler *httpH.LyricsHandler
	DrillHandler  *httpH.DrillHandler
	RhymeHandler  *httpH.RhymeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Lyrics
		if cfg.LyricsHandler != nil {
			api.POST("/lyrics/analyze", cfg.LyricsHandler.Analyze)
			api.POST("/lyrics/ingest", cfg.LyricsHandler.Ingest)
			api.GET("/lyrics", cfg.LyricsHandler.List)
		}

		// Drills
		if cfg.DrillHandler != nil {
			api.POST("/drills/validate", cfg.DrillHandler.Validate)
		}

		// Rhymes
		if cfg.RhymeHandler != nil {
			api.GET("/rhymes/suggest", cfg.RhymeHandler.SuggestQuery)
			api.POST("/rhymes/suggest", cfg.RhymeHandler.SuggestBody)
			api.POST("/rhymes/classify", cfg.RhymeHandler.Classify)
		}
	}

	return r
}

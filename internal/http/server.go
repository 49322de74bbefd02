package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rimas-backend/internal/config"
)

type Server struct {
	Engine *gin.Engine
	srv    *http.Server
	grace  time.Duration
}

func NewServer(cfg config.HTTPConfig, rc RouterConfig) *Server {
	engine := NewRouter(rc)
	return &Server{
		Engine: engine,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           http.MaxBytesHandler(engine, cfg.MaxRequestBytes),
			ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
			IdleTimeout:       cfg.IdleTimeout.Duration,
		},
		grace: cfg.ShutdownTimeout.Duration,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	grace := s.grace
	if grace <= 0 {
		grace = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/api"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/config"
)

// Server is the HTTP front of the import service.
type Server struct {
	router  *gin.Engine
	backend *Backend
	http    *http.Server
	log     zerolog.Logger
}

// NewServer opens the backend and wires the routes.
func NewServer(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(reg, backend.Coordinator, api.Options{
		Logs:      backend.Logs,
		Records:   backend.Records,
		DB:        backend.DB,
		UploadDir: filepath.Join(config.DataDir(cfg), "uploads"),
		MaxUpload: cfg.MaxUploadBytes(),
		Logger:    log,
	})

	s := &Server{
		router:  newRouter(handler, log),
		backend: backend,
		log:     log,
	}
	return s, nil
}

func newRouter(handler *api.Handler, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), accessLog(log), cors())

	group := router.Group("/api")
	handler.RegisterRoutes(group)
	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		evt := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Run serves on addr until Shutdown.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for running imports and closes the
// database.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if cerr := s.backend.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

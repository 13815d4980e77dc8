package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-nextdoor-leads/internal/models"
	"go-nextdoor-leads/internal/scraper"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunTrigger performs one run on demand
type RunTrigger interface {
	RunOnce(ctx context.Context) (*models.RunReport, error)
}

// RunHistory lists archived runs, newest first
type RunHistory interface {
	RecentRuns(ctx context.Context, limit int) ([]models.RunReport, error)
}

type Server struct {
	runner   RunTrigger
	status   func() string
	history  RunHistory
	registry *prometheus.Registry
	router   *gin.Engine
}

type Option func(*Server)

// WithStatus exposes the orchestrator state on GET /status
func WithStatus(status func() string) Option {
	return func(s *Server) { s.status = status }
}

// WithHistory enables GET /runs
func WithHistory(h RunHistory) Option {
	return func(s *Server) { s.history = h }
}

// WithRegistry serves the registry on GET /metrics
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

func New(runner RunTrigger, opts ...Option) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		runner: runner,
		router: router,
	}
	for _, opt := range opts {
		opt(s)
	}

	router.GET("/", s.handleHealth)
	router.GET("/run-scraper", s.handleRunScraper)
	router.GET("/status", s.handleStatus)
	if s.history != nil {
		router.GET("/runs", s.handleRuns)
	}
	if s.registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then drains in-flight requests
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🌐 Server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "elapsed", time.Since(start))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Nextdoor leads scraper is running!",
		"status":  "healthy",
	})
}

func (s *Server) handleRunScraper(c *gin.Context) {
	// A run outlives a client that hangs up
	report, err := s.runner.RunOnce(context.WithoutCancel(c.Request.Context()))
	switch {
	case errors.Is(err, scraper.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Scraper is already running."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scraper failed to run."})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Scraper ran successfully!",
			"matches": report.Matches,
		})
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	state := "unknown"
	if s.status != nil {
		state = s.status()
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (s *Server) handleRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	runs, err := s.history.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		log.Error("❌ Failed to list runs", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs."})
		return
	}
	if runs == nil {
		runs = []models.RunReport{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

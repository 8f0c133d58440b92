package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quietfeed/quietfeed/pkg/logger"
	"github.com/quietfeed/quietfeed/pkg/models"
)

// HeadlineSource serves the daily headline payload
type HeadlineSource interface {
	FetchHeadlines(ctx context.Context) []models.FormattedHeadline
}

// ThemeLister serves the theme listing with aggregate counts
type ThemeLister interface {
	ListWithCounts(ctx context.Context) ([]models.ThemeWithCount, error)
}

// HealthChecker reports dependency health
type HealthChecker interface {
	Health() error
}

// Server exposes the read API plus liveness/readiness probes
type Server struct {
	http      *http.Server
	headlines HeadlineSource
	themes    ThemeLister
	checks    map[string]HealthChecker
	startTime time.Time
}

// New creates the HTTP server
func New(port string, headlines HeadlineSource, themes ThemeLister, checks map[string]HealthChecker) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		http: &http.Server{
			Addr:         ":" + port,
			Handler:      engine,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		headlines: headlines,
		themes:    themes,
		checks:    checks,
		startTime: time.Now(),
	}

	v1 := engine.Group("/api/v1")
	v1.GET("/headlines", s.handleHeadlines)
	v1.GET("/themes", s.handleThemes)

	engine.GET("/health", s.handleHealth)
	engine.HEAD("/health", s.handleHealth)
	engine.GET("/ready", s.handleReadiness)

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logger.Info("http server starting",
		zap.String("addr", s.http.Addr),
	)

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("stopping http server...")
	return s.http.Shutdown(ctx)
}

// handleHeadlines always answers 200 with a best-effort list; degradation
// happens inside the daily cache
func (s *Server) handleHeadlines(c *gin.Context) {
	headlines := s.headlines.FetchHeadlines(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"data":  headlines,
		"count": len(headlines),
		"meta": gin.H{
			"fetched_at": time.Now().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleThemes(c *gin.Context) {
	themes, err := s.themes.ListWithCounts(c.Request.Context())
	if err != nil {
		logger.Error("failed to list themes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list themes"})
		return
	}

	data := make([]gin.H, 0, len(themes))
	for _, t := range themes {
		data = append(data, gin.H{
			"id":              t.ID,
			"name":            t.Name,
			"description":     t.Description,
			"color":           t.Color,
			"headlines_count": t.HeadlinesCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"count": len(data),
	})
}

// handleHealth is the liveness probe: 200 as long as the process is up,
// with dependency detail behind ?verbose=true
func (s *Server) handleHealth(c *gin.Context) {
	status := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
	}

	if c.Query("verbose") == "true" {
		status["checks"] = s.runChecks()
	}

	c.JSON(http.StatusOK, status)
}

// handleReadiness is the readiness probe: 200 only when every dependency
// is healthy
func (s *Server) handleReadiness(c *gin.Context) {
	checks := s.runChecks()

	ready := true
	for _, result := range checks {
		if result != "healthy" {
			ready = false
			break
		}
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"ready":     ready,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

func (s *Server) runChecks() map[string]string {
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.Health(); err != nil {
			results[name] = "unhealthy: " + err.Error()
		} else {
			results[name] = "healthy"
		}
	}
	return results
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP shell around the recommender: an HTML form,
// a JSON API, health and Prometheus endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/recipe-recommender/internal/clusterindex"
	"github.com/pdiddy/recipe-recommender/internal/recommend"
)

// Server serves recommendations over HTTP.
type Server struct {
	router  *gin.Engine
	http    *http.Server
	rec     *recommend.Recommender
	index   *clusterindex.Index
	metrics *metrics
	logger  *zerolog.Logger
}

// New builds the router. The index must already be initialized; New does
// not block on annotation.
func New(rec *recommend.Recommender, index *clusterindex.Index, logger *zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	reg := prometheus.NewRegistry()
	s := &Server{
		router:  router,
		rec:     rec,
		index:   index,
		metrics: newMetrics(reg),
		logger:  logger,
	}

	s.http = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Use(gin.Recovery(), s.observe())
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/", s.form)
	router.POST("/recommend", s.submit)
	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", s.categories)
		v1.POST("/recommendations", s.recommendJSON)
	}

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until Shutdown is called. It returns nil after a
// clean shutdown, including when Shutdown ran before Start.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// observe logs each request and records request metrics.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		s.metrics.observeRequest(c.Request.Method, route, status, elapsed)

		ev := s.logger.Info()
		if status >= http.StatusInternalServerError {
			ev = s.logger.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"recipes": s.index.Len(),
	})
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sah-raytracer/pkg/config"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/df07/go-sah-raytracer/pkg/output"
	"github.com/df07/go-sah-raytracer/pkg/scene"
)

var logger = log.New("server")

// ShutdownTimeout bounds how long in-flight renders may finish on shutdown
const ShutdownTimeout = 10 * time.Second

// Server exposes scene listing, rendering and inspection over HTTP
type Server struct {
	cfg      config.Config
	echo     *echo.Echo
	uploader *output.S3Uploader // nil when no bucket is configured
}

// New creates a server and registers its routes
func New(cfg config.Config) (*Server, error) {
	if cfg.ScenesDir == "" {
		cfg.ScenesDir = config.Defaults().ScenesDir
	}
	s := &Server{cfg: cfg, echo: echo.New()}
	s.echo.HideBanner = true

	if cfg.UploadEnabled() {
		uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			return nil, err
		}
		s.uploader = uploader
	}

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.POST("/api/render", s.handleRenderUpload)
	s.echo.GET("/api/inspect", s.handleInspect)

	return s, nil
}

// ServeHTTP makes the server usable as a plain http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Noticef("listening on %s", s.cfg.ServerAddress)
		errCh <- s.echo.Start(s.cfg.ServerAddress)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	logger.Notice("shutting down")
	return s.echo.Shutdown(shutdownCtx)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and the scene files on disk
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.cfg.ScenesDir)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, response)
}

func jsonError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseBoolParam(values url.Values, key string) (*bool, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", key, value)
	}
	return &parsed, nil
}

package server

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sah-raytracer/pkg/job"
	"github.com/df07/go-sah-raytracer/pkg/output"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
	"github.com/df07/go-sah-raytracer/pkg/scene"
)

// Limits applied to render requests
const (
	maxImageSide = 2000
	maxSamples   = 10000
	maxDepth     = 1000
)

// UploadResponse is returned after a render has been stored in the bucket
type UploadResponse struct {
	Key   string      `json:"key"`
	Stats RenderStats `json:"stats"`
}

// RenderStats represents render statistics
type RenderStats struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Pixels          int     `json:"pixels"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	TotalSamples    int64   `json:"totalSamples"`
	Primitives      int     `json:"primitives"`
	UsedBVH         bool    `json:"usedBvh"`
	ElapsedMs       int64   `json:"elapsedMs"`
	SamplesPerSec   float64 `json:"samplesPerSec"`
}

func newRenderStats(stats renderer.RenderStats) RenderStats {
	return RenderStats{
		Width:           stats.Width,
		Height:          stats.Height,
		Pixels:          stats.TotalPixels(),
		SamplesPerPixel: stats.SamplesPerPixel,
		TotalSamples:    stats.TotalSamples,
		Primitives:      stats.Primitives,
		UsedBVH:         stats.BVH != nil,
		ElapsedMs:       stats.Duration.Milliseconds(),
		SamplesPerSec:   stats.SamplesPerSecond(),
	}
}

// parseRenderRequest reads job options from the query string. Missing values
// keep the scene's own settings.
func (s *Server) parseRenderRequest(c echo.Context) (job.Options, error) {
	query := c.QueryParams()
	opts := job.Options{Scene: query.Get("scene"), ScenesDir: s.cfg.ScenesDir, Workers: s.cfg.Workers, Frames: 1}
	if opts.Scene == "" {
		opts.Scene = "default"
	}

	var err error
	if opts.Width, err = parseIntParam(query, "width", 0, 1, maxImageSide); err != nil {
		return opts, err
	}
	if opts.Height, err = parseIntParam(query, "height", 0, 1, maxImageSide); err != nil {
		return opts, err
	}
	if opts.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 1, maxSamples); err != nil {
		return opts, err
	}
	if opts.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 1, maxDepth); err != nil {
		return opts, err
	}
	if seed := query.Get("seed"); seed != "" {
		if opts.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return opts, fmt.Errorf("invalid seed: %s", seed)
		}
	}
	if opts.BVH, err = parseBoolParam(query, "bvh"); err != nil {
		return opts, err
	}
	normals, err := parseBoolParam(query, "normals")
	if err != nil {
		return opts, err
	}
	opts.Normals = normals != nil && *normals

	return opts, nil
}

// renderFrame runs a single-frame job for the request
func (s *Server) renderFrame(c echo.Context) (*renderer.Frame, renderer.RenderStats, int, error) {
	opts, err := s.parseRenderRequest(c)
	if err != nil {
		return nil, renderer.RenderStats{}, http.StatusBadRequest, err
	}

	var frame *renderer.Frame
	var stats renderer.RenderStats
	_, err = job.Run(c.Request().Context(), opts, func(_ int, f *renderer.Frame, st renderer.RenderStats) error {
		frame, stats = f, st
		return nil
	})
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, stats, http.StatusNotFound, err
	}
	if err != nil {
		return nil, stats, http.StatusInternalServerError, err
	}
	return frame, stats, http.StatusOK, nil
}

// handleRender renders one frame and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	frame, stats, status, err := s.renderFrame(c)
	if err != nil {
		return jsonError(c, status, err)
	}

	data, err := output.PNGBytes(frame)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	c.Response().Header().Set("X-Render-Time", stats.Duration.String())
	return c.Blob(http.StatusOK, "image/png", data)
}

// handleRenderUpload renders one frame and stores it in the S3 bucket
func (s *Server) handleRenderUpload(c echo.Context) error {
	if s.uploader == nil {
		return jsonError(c, http.StatusServiceUnavailable, output.ErrNoBucket)
	}

	frame, stats, status, err := s.renderFrame(c)
	if err != nil {
		return jsonError(c, status, err)
	}

	data, err := output.PNGBytes(frame)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	key := c.QueryParam("key")
	if key == "" {
		key = path.Join("renders", fmt.Sprintf("%s-%d.png", path.Base(c.QueryParam("scene")), stats.Duration.Nanoseconds()))
	}
	if err := s.uploader.UploadPNG(c.Request().Context(), key, data); err != nil {
		return jsonError(c, http.StatusBadGateway, err)
	}

	return c.JSON(http.StatusOK, UploadResponse{Key: key, Stats: newRenderStats(stats)})
}

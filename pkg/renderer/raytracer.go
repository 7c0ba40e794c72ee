package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/integrator"
	"github.com/df07/go-sah-raytracer/pkg/log"
)

var logger = log.New("renderer")

// Config contains image and sampling settings for a render
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Workers         int   // <= 0 selects DefaultWorkers
	Seed            int64 // Base seed; every row derives its own generator from it
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 64,
		Seed:            42,
	}
}

// Validate checks the config for values that cannot produce an image
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	return nil
}

// ErrNilWorld is returned when rendering without anything to intersect
var ErrNilWorld = errors.New("renderer: nil world")

// Raytracer renders frames by averaging jittered camera samples per pixel
type Raytracer struct {
	world      geometry.Hittable
	integrator integrator.Integrator
	config     Config
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Hittable, integ integrator.Integrator, config Config) *Raytracer {
	return &Raytracer{
		world:      world,
		integrator: integ,
		config:     config,
	}
}

// rowSeed derives a per-row seed so output does not depend on worker scheduling
func rowSeed(seed int64, frame, row int) int64 {
	return seed + int64(frame)<<32 + int64(row)
}

// Render traces one frame through camera. Rows are rendered in parallel and
// progress is logged roughly every percent.
func (rt *Raytracer) Render(ctx context.Context, camera *Camera, frame int) (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if rt.world == nil {
		return nil, RenderStats{}, ErrNilWorld
	}

	workers := rt.config.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	width, height := rt.config.Width, rt.config.Height
	out := NewFrame(width, height)

	progressStep := height / 100
	if progressStep == 0 {
		progressStep = 1
	}
	var rowsDone int64

	start := time.Now()
	err := runRows(ctx, height, workers, func(ctx context.Context, y int) error {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(rowSeed(rt.config.Seed, frame, y))))
		rt.renderRow(camera, sampler, out.Row(y), y)

		if done := atomic.AddInt64(&rowsDone, 1); done%int64(progressStep) == 0 {
			logger.Infof("frame %d: %d%%", frame, done*100/int64(height))
		}
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("rendering frame %d: %w", frame, err)
	}

	stats := RenderStats{
		Frame:           frame,
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		TotalSamples:    int64(width) * int64(height) * int64(rt.config.SamplesPerPixel),
		Workers:         workers,
		Duration:        time.Since(start),
	}
	logger.Noticef("done raycasting frame %d in %s", frame, stats.Duration)

	return out, stats, nil
}

// renderRow fills row y, averaging SamplesPerPixel jittered samples per pixel
func (rt *Raytracer) renderRow(camera *Camera, sampler core.Sampler, row []core.Vec3, y int) {
	width := float32(rt.config.Width)
	height := float32(rt.config.Height)
	samples := rt.config.SamplesPerPixel

	for x := range row {
		var colour core.Vec3
		for s := 0; s < samples; s++ {
			u := (float32(x) + sampler.Get1D()) / width
			v := (float32(y) + sampler.Get1D()) / height
			colour = colour.Add(rt.integrator.RayColour(camera.GetRay(u, v), rt.world, sampler))
		}
		row[x] = colour.Divide(float32(samples))
	}
}

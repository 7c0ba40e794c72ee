// Package job turns a scene name plus overrides into rendered frames. It is
// shared by the CLI and the HTTP server.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/df07/go-sah-raytracer/pkg/integrator"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
	"github.com/df07/go-sah-raytracer/pkg/scene"
)

var logger = log.New("job")

// AnimationFPS is the rate used to sample the camera path between frames
const AnimationFPS = 24

// Options selects a scene and overrides its settings. Zero values keep the
// scene's own configuration.
type Options struct {
	Scene     string // Built-in name or path to a JSON scene file
	ScenesDir string // When set, scene files must sit under this directory
	MeshPath  string // Optional OBJ/glTF model added to the default scene

	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	Seed            int64

	BVH     *bool // nil uses the scene's setting
	Frames  int   // Number of frames; the camera origin moves between frames
	Normals bool  // Shade by surface normal with one sample per pixel
}

// FrameFunc receives each finished frame in order. Returning an error stops
// the job.
type FrameFunc func(index int, frame *renderer.Frame, stats renderer.RenderStats) error

// Result summarises a finished job
type Result struct {
	Scene  string
	Frames int
	Total  renderer.RenderStats // Samples and durations summed over frames
}

// Resolve loads the scene named by opts
func Resolve(opts Options) (*scene.Scene, error) {
	if opts.MeshPath != "" {
		if opts.Scene != "" && opts.Scene != "default" {
			return nil, errors.New("a mesh can only be added to the default scene")
		}
		mesh, err := scene.LoadMesh(opts.MeshPath)
		if err != nil {
			return nil, fmt.Errorf("loading mesh: %w", err)
		}
		return scene.NewMeshScene(mesh), nil
	}

	name := opts.Scene
	if name == "" {
		name = "default"
	}
	if opts.ScenesDir != "" {
		return scene.LookupIn(opts.ScenesDir, name)
	}
	return scene.Lookup(name)
}

// Run renders every requested frame and hands each one to onFrame
func Run(ctx context.Context, opts Options, onFrame FrameFunc) (Result, error) {
	sc, err := Resolve(opts)
	if err != nil {
		return Result{}, err
	}

	sampling := sc.SamplingConfig
	override(&sampling.Width, opts.Width)
	override(&sampling.Height, opts.Height)
	override(&sampling.SamplesPerPixel, opts.SamplesPerPixel)
	override(&sampling.MaxDepth, opts.MaxDepth)

	integConfig := integrator.DefaultConfig()
	integConfig.MaxDepth = sampling.MaxDepth
	if opts.Normals {
		integConfig.NormalShading = true
		sampling.SamplesPerPixel = 1
	}

	useBVH := sc.UseBVH
	if opts.BVH != nil {
		useBVH = *opts.BVH
	}

	world, bvhStats, err := sc.World(useBVH)
	if err != nil {
		return Result{}, err
	}

	config := renderer.Config{
		Width:           sampling.Width,
		Height:          sampling.Height,
		SamplesPerPixel: sampling.SamplesPerPixel,
		Workers:         opts.Workers,
		Seed:            opts.Seed,
	}
	rt := renderer.NewRaytracer(world, integrator.NewPathTracer(integConfig), config)

	frames := opts.Frames
	if frames <= 0 {
		frames = 1
	}

	camera := sc.CameraConfig.NewCamera(sampling.Width, sampling.Height)
	path := renderer.NewSteppedCameraPath(camera.Origin(), renderer.DefaultStep, frames, AnimationFPS)
	origins := path.Origins(frames)

	logger.Noticef("rendering %q: %dx%d, %d spp, %d frame(s), bvh=%t", sc.Name, sampling.Width, sampling.Height, sampling.SamplesPerPixel, frames, useBVH)

	result := Result{Scene: sc.Name, Frames: frames}
	for i, origin := range origins {
		frame, stats, err := rt.Render(ctx, camera.WithOrigin(origin), i)
		if err != nil {
			return result, err
		}
		stats.Primitives = len(sc.Primitives)
		stats.BVH = bvhStats

		if i == 0 {
			result.Total = stats
		} else {
			result.Total = result.Total.Merge(stats)
		}

		if onFrame != nil {
			if err := onFrame(i, frame, stats); err != nil {
				return result, fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}

	return result, nil
}

func override(dst *int, value int) {
	if value > 0 {
		*dst = value
	}
}

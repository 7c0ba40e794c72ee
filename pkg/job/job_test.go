package job

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-sah-raytracer/pkg/renderer"
	"github.com/df07/go-sah-raytracer/pkg/scene"
)

func TestRun_OverridesAndFrames(t *testing.T) {
	useBVH := true
	opts := Options{
		Scene:           "default",
		Width:           8,
		Height:          4,
		SamplesPerPixel: 2,
		MaxDepth:        5,
		Workers:         2,
		Seed:            7,
		BVH:             &useBVH,
		Frames:          3,
	}

	var frames []*renderer.Frame
	result, err := Run(context.Background(), opts, func(i int, frame *renderer.Frame, stats renderer.RenderStats) error {
		if stats.Frame != i {
			t.Errorf("stats for frame %d report frame %d", i, stats.Frame)
		}
		if stats.BVH == nil || stats.Primitives != 6 {
			t.Errorf("frame %d: primitives %d, BVH stats %v", i, stats.Primitives, stats.BVH)
		}
		frames = append(frames, frame)
		return nil
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(frames) != 3 || result.Frames != 3 {
		t.Fatalf("got %d frames (result %d), want 3", len(frames), result.Frames)
	}
	if frames[0].Width != 8 || frames[0].Height != 4 {
		t.Errorf("frame size %dx%d, want 8x4", frames[0].Width, frames[0].Height)
	}
	if want := int64(3 * 8 * 4 * 2); result.Total.TotalSamples != want {
		t.Errorf("total samples %d, want %d", result.Total.TotalSamples, want)
	}
}

func TestRun_Normals(t *testing.T) {
	result, err := Run(context.Background(), Options{Scene: "cubes", Width: 4, Height: 4, SamplesPerPixel: 16, Normals: true}, nil)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Total.SamplesPerPixel != 1 {
		t.Errorf("normal shading should use 1 sample per pixel, got %d", result.Total.SamplesPerPixel)
	}
	if result.Total.BVH != nil {
		t.Errorf("cube scene renders without a BVH by default")
	}
}

func TestRun_FrameCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	_, err := Run(context.Background(), Options{Width: 2, Height: 2, SamplesPerPixel: 1, Frames: 4}, func(int, *renderer.Frame, renderer.RenderStats) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("err = %v after %d calls, want stop after 1", err, calls)
	}
}

func TestResolve(t *testing.T) {
	if _, err := Resolve(Options{Scene: "missing"}); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("error = %v, want ErrUnknownScene", err)
	}

	obj := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(obj, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("failed to write mesh: %v", err)
	}

	s, err := Resolve(Options{MeshPath: obj})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(s.Primitives) != 7 || !s.UseBVH {
		t.Errorf("mesh scene has %d primitives, bvh=%t", len(s.Primitives), s.UseBVH)
	}

	if _, err := Resolve(Options{Scene: "grid", MeshPath: obj}); err == nil {
		t.Errorf("expected an error when adding a mesh to a non-default scene")
	}
}

package renderer

import (
	"testing"

	"github.com/df07/go-sah-raytracer/pkg/core"
)

func TestCameraPath_Origins(t *testing.T) {
	start := core.NewVec3(0, 0, 0)
	path := NewSteppedCameraPath(start, DefaultStep, 10, 30)

	origins := path.Origins(10)
	if len(origins) != 10 {
		t.Fatalf("Expected 10 origins, got %d", len(origins))
	}
	if !origins[0].Equals(start) {
		t.Errorf("First frame should start at %v, got %v", start, origins[0])
	}

	target := start.Add(DefaultStep.Multiply(10))
	for i := 1; i < len(origins); i++ {
		if origins[i].X < origins[i-1].X {
			t.Errorf("Frame %d moved backwards: %v after %v", i, origins[i], origins[i-1])
		}
		if origins[i].X > target.X+1e-4 {
			t.Errorf("Frame %d overshot the target: %v", i, origins[i])
		}
		if origins[i].Y != 0 {
			t.Errorf("Frame %d should not move vertically: %v", i, origins[i])
		}
	}
}

func TestCameraPath_Settles(t *testing.T) {
	target := core.NewVec3(1, 2, -3)
	path := NewCameraPath(core.Vec3{}, target, 60)

	for i := 0; i < 600; i++ {
		path.Advance()
	}
	if !path.Position().ApproxEquals(target, 1e-2) {
		t.Errorf("Expected to settle at %v, got %v", target, path.Position())
	}
}

package renderer

import (
	"time"

	"github.com/df07/go-sah-raytracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Frame           int
	Width           int
	Height          int
	SamplesPerPixel int
	TotalSamples    int64 // Camera rays traced
	Workers         int
	Duration        time.Duration

	Primitives int
	BVH        *geometry.BVHStats // nil when the linear scene was used
}

// TotalPixels returns the number of pixels in the frame
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// Merge folds the statistics of another frame into s
func (s RenderStats) Merge(other RenderStats) RenderStats {
	s.TotalSamples += other.TotalSamples
	s.Duration += other.Duration
	return s
}

package core

import (
	"math/rand"
	"testing"
)

func randomBox(random *rand.Rand) AABB {
	a := NewVec3(random.Float32()*20-10, random.Float32()*20-10, random.Float32()*20-10)
	b := NewVec3(random.Float32()*20-10, random.Float32()*20-10, random.Float32()*20-10)
	return NewAABBFromPoints(a, b)
}

func TestAABB_UnionIsTightAndCommutative(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		a := randomBox(random)
		b := randomBox(random)
		u := a.Union(b)

		if !u.Contains(a) || !u.Contains(b) {
			t.Fatalf("Union %v does not contain inputs %v and %v", u, a, b)
		}
		if u != b.Union(a) {
			t.Fatalf("Union is not commutative: %v vs %v", u, b.Union(a))
		}

		// Every face of the union must touch one of the inputs, so no tighter box exists
		expected := NewAABB(a.Min.Min(b.Min), a.Max.Max(b.Max))
		if u != expected {
			t.Fatalf("Expected tight union %v, got %v", expected, u)
		}
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float32
		tMax     float32
		expected bool
	}{
		{"Head on", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, Inf, true},
		{"Pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0, Inf, false},
		{"Miss to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), 0, Inf, false},
		{"Diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), 0, Inf, true},
		{"Interval ends before box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, 3, false},
		{"Interval starts after box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 7, Inf, false},
		{"Parallel inside slab", NewRay(NewVec3(0.5, 0.5, 5), NewVec3(0, 0, -1)), 0, Inf, true},
		{"Parallel outside slab", NewRay(NewVec3(1.5, 0.5, 5), NewVec3(0, 0, -1)), 0, Inf, false},
		{"Origin inside", NewRay(NewVec3(0.2, -0.3, 0.1), NewVec3(1, 2, 3)), 0, Inf, true},
		{"Zero direction inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 0)), 0, Inf, true},
		{"Zero direction outside", NewRay(NewVec3(5, 0, 0), NewVec3(0, 0, 0)), 0, Inf, false},
		{"In min X face plane", NewRay(NewVec3(-1, 0, 5), NewVec3(0, 0, -1)), 0, Inf, true},
		{"In max X face plane", NewRay(NewVec3(1, 0, 5), NewVec3(0, 0, -1)), 0, Inf, true},
		{"Along min corner edge", NewRay(NewVec3(-1, -1, 5), NewVec3(0, 0, -1)), 0, Inf, true},
		{"In min Z face plane", NewRay(NewVec3(-5, 0, -1), NewVec3(1, 0, 0)), 0, Inf, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_HitFromInside(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		box := randomBox(random)
		size := box.Size()
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			continue
		}

		// Strictly interior point
		origin := NewVec3(
			box.Min.X+size.X*(0.05+0.9*random.Float32()),
			box.Min.Y+size.Y*(0.05+0.9*random.Float32()),
			box.Min.Z+size.Z*(0.05+0.9*random.Float32()),
		)
		direction := NewVec3(random.Float32()*2-1, random.Float32()*2-1, random.Float32()*2-1)

		if !box.Hit(NewRay(origin, direction), 0, Inf) {
			t.Fatalf("Ray from interior point %v with direction %v missed %v", origin, direction, box)
		}
	}
}

func TestAABB_Area(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	// 2 * (1*2 + 2*3 + 3*1) = 22
	if area := box.Area(); area != 22 {
		t.Errorf("Expected area 22, got %f", area)
	}

	point := NewAABBFromPoints(NewVec3(1, 1, 1))
	if area := point.Area(); area != 0 {
		t.Errorf("Expected degenerate box area 0, got %f", area)
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		size     Vec3
		expected Axis
	}{
		{"X longest", NewVec3(3, 1, 1), AxisX},
		{"Y longest", NewVec3(1, 3, 1), AxisY},
		{"Z longest", NewVec3(1, 1, 3), AxisZ},
		{"X and Y tie", NewVec3(2, 2, 1), AxisY},
		{"Y and Z tie", NewVec3(1, 2, 2), AxisZ},
		{"All equal", NewVec3(1, 1, 1), AxisZ},
		{"X and Z tie", NewVec3(2, 1, 2), AxisZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewAABB(NewVec3(0, 0, 0), tt.size)
			if got := box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNewAABBFromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 5, 0), NewVec3(0, 0, 4))
	expected := NewAABB(NewVec3(-1, -2, 0), NewVec3(1, 5, 4))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}
	if center := box.Center(); !center.Equals(NewVec3(0, 1.5, 2)) {
		t.Errorf("Expected center (0, 1.5, 2), got %v", center)
	}
}

package geometry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

func randomVec(random *rand.Rand, scale float32) core.Vec3 {
	return core.NewVec3(
		(random.Float32()*2-1)*scale,
		(random.Float32()*2-1)*scale,
		(random.Float32()*2-1)*scale,
	)
}

// randomPrimitives builds a mixed scene of spheres, cubes and triangles
func randomPrimitives(random *rand.Rand, count int) []Primitive {
	prims := make([]Primitive, 0, count)
	for i := 0; i < count; i++ {
		center := randomVec(random, 10)
		size := 0.1 + random.Float32()*0.9
		colour := core.NewVec3(random.Float32(), random.Float32(), random.Float32())
		switch i % 3 {
		case 0:
			prims = append(prims, NewSphere(center, size, colour, material.NewDiffuse()))
		case 1:
			prims = append(prims, NewCube(center, size, colour, material.NewMetal(0.2)))
		default:
			prims = append(prims, NewTriangle(
				center,
				center.Add(randomVec(random, 1.5)),
				center.Add(randomVec(random, 1.5)),
				core.Vec3{}, colour, material.NewDiffuse(),
			))
		}
	}
	return prims
}

func TestNewBVH_Empty(t *testing.T) {
	bvh, err := NewBVH(nil, 0, 0)
	if !errors.Is(err, ErrEmptyPrimitiveList) {
		t.Fatalf("Expected ErrEmptyPrimitiveList, got %v", err)
	}
	if bvh != nil {
		t.Error("Expected no tree for an empty primitive list")
	}
}

func TestNewBVH_SinglePrimitive(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 0.5, white, material.NewDiffuse())
	bvh, err := NewBVH([]Primitive{sphere}, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stats := bvh.Stats()
	if stats.Nodes != 0 || stats.Leaves != 1 || stats.MaxDepth != 0 {
		t.Errorf("Expected a bare leaf root, got %+v", stats)
	}
	if box := bvh.BoundingBox(0, 0); box != sphere.BoundingBox(0, 0) {
		t.Errorf("Expected root box %v, got %v", sphere.BoundingBox(0, 0), box)
	}

	hit, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 1e-5, 999.9)
	if !ok || math32.Abs(hit.T-4.5) > tolerance {
		t.Errorf("Expected hit at t=4.5, got ok=%v hit=%+v", ok, hit)
	}
}

func TestBVH_RootBoxIsUnion(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	prims := randomPrimitives(random, 100)

	bvh, err := NewBVH(prims, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := NewScene(prims).BoundingBox(0, 0)
	if box := bvh.BoundingBox(0, 0); !box.ApproxEquals(expected, tolerance) {
		t.Errorf("Expected root box %v, got %v", expected, box)
	}

	// Every interior node must enclose both children
	for i, node := range bvh.nodes {
		for _, child := range []nodeRef{node.Left, node.Right} {
			var childBox core.AABB
			if child.isLeaf() {
				childBox = bvh.primitives[child.primitive()].BoundingBox(0, 0)
			} else {
				childBox = bvh.nodes[child].Box
			}
			if !node.Box.Contains(childBox) {
				t.Errorf("Node %d box %v does not contain child box %v", i, node.Box, childBox)
			}
		}
	}
}

func TestBVH_StrictTree(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	prims := randomPrimitives(random, 57)

	bvh, err := NewBVH(prims, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	seen := make(map[int]int)
	for _, idx := range bvh.leaves(bvh.root) {
		seen[idx]++
	}
	if len(seen) != len(prims) {
		t.Fatalf("Expected %d distinct leaves, got %d", len(prims), len(seen))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("Primitive %d referenced %d times", idx, count)
		}
	}

	stats := bvh.Stats()
	if stats.Leaves != len(prims) || stats.Nodes != len(prims)-1 {
		t.Errorf("Expected %d leaves and %d nodes, got %+v", len(prims), len(prims)-1, stats)
	}
}

func TestBVH_SplitSeparatesSmallestMinX(t *testing.T) {
	// Disjoint boxes along X, given out of order
	a := NewCube(core.NewVec3(0, 0, 0), 1, white, material.NewDiffuse())
	b := NewCube(core.NewVec3(5, 0, 0), 1, white, material.NewDiffuse())
	c := NewCube(core.NewVec3(10, 0, 0), 1, white, material.NewDiffuse())
	prims := []Primitive{c, a, b}

	bvh, err := NewBVH(prims, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if bvh.root.isLeaf() {
		t.Fatal("Expected an interior root")
	}

	root := bvh.nodes[bvh.root]
	left := bvh.leaves(root.Left)
	right := bvh.leaves(root.Right)

	// SAH(0) = 2*64 = 128, SAH(1) = 64 + 24 = 88: split after the second box
	if len(left) != 2 || len(right) != 1 {
		t.Fatalf("Expected a 2/1 split, got left=%v right=%v", left, right)
	}
	if !containsIndex(left, 1) {
		t.Errorf("Primitive with smallest min X should be on the left, got left=%v", left)
	}
	if right[0] != 0 {
		t.Errorf("Primitive with largest min X should be on the right, got right=%v", right)
	}
}

func TestBVH_MatchesLinearScene(t *testing.T) {
	random := rand.New(rand.NewSource(1234))
	prims := randomPrimitives(random, 300)

	scene := NewScene(prims)
	bvh, err := NewBVH(prims, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := randomVec(random, 20)
		target := randomVec(random, 10)
		ray := core.NewRay(origin, target.Subtract(origin))

		expected, expectedOk := scene.Hit(ray, 1e-5, 999.9)
		got, gotOk := bvh.Hit(ray, 1e-5, 999.9)

		if expectedOk != gotOk {
			t.Fatalf("Ray %d: linear scene hit=%v, BVH hit=%v", i, expectedOk, gotOk)
		}
		if !expectedOk {
			continue
		}
		hits++
		if math32.Abs(expected.T-got.T) > tolerance {
			t.Errorf("Ray %d: linear scene t=%f, BVH t=%f", i, expected.T, got.T)
		}
	}

	if hits == 0 {
		t.Error("Expected at least some rays to hit the scene")
	}
}

func TestBVH_MatchesLinearScene_FacePlaneRays(t *testing.T) {
	prims := []Primitive{
		NewCube(core.NewVec3(0, 0, -5), 1, white, material.NewDiffuse()),
		NewSphere(core.NewVec3(5, 0, -5), 1, white, material.NewDiffuse()),
	}
	scene := NewScene(prims)
	bvh, err := NewBVH(prims, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Axis-aligned rays lying exactly in the cube's face planes
	tests := []struct {
		name   string
		origin core.Vec3
	}{
		{"min X face", core.NewVec3(-1, 0, 0)},
		{"max X face", core.NewVec3(1, 0, 0)},
		{"min Y face", core.NewVec3(0, -1, 0)},
		{"max Y face", core.NewVec3(0, 1, 0)},
		{"min X min Y edge", core.NewVec3(-1, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			expected, expectedOk := scene.Hit(ray, 1e-5, 999.9)
			got, gotOk := bvh.Hit(ray, 1e-5, 999.9)

			if !expectedOk || !gotOk {
				t.Fatalf("Expected both to hit, linear scene hit=%v, BVH hit=%v", expectedOk, gotOk)
			}
			if math32.Abs(expected.T-4) > tolerance || math32.Abs(got.T-expected.T) > tolerance {
				t.Errorf("Expected t=4 from both, linear scene t=%f, BVH t=%f", expected.T, got.T)
			}
		})
	}
}

func TestBVH_CopiesInput(t *testing.T) {
	prims := []Primitive{
		NewSphere(core.NewVec3(0, 0, -5), 0.5, white, material.NewDiffuse()),
		NewSphere(core.NewVec3(3, 0, -5), 0.5, white, material.NewDiffuse()),
	}
	bvh, err := NewBVH(prims, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	prims[0].Center = core.NewVec3(100, 100, 100)
	if _, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 1e-5, 999.9); !ok {
		t.Error("Mutating the input slice should not affect the built tree")
	}
}

// leaves returns the primitive indices below ref
func (bvh *BVH) leaves(ref nodeRef) []int {
	if ref.isLeaf() {
		return []int{ref.primitive()}
	}
	node := bvh.nodes[ref]
	return append(bvh.leaves(node.Left), bvh.leaves(node.Right)...)
}

func containsIndex(indices []int, want int) bool {
	for _, idx := range indices {
		if idx == want {
			return true
		}
	}
	return false
}

func BenchmarkBVHHit(b *testing.B) {
	random := rand.New(rand.NewSource(42))
	bvh, err := NewBVH(randomPrimitives(random, 1000), 0, 0)
	if err != nil {
		b.Fatal(err)
	}
	ray := core.NewRay(core.NewVec3(0, 0, 25), core.NewVec3(0.1, 0.05, -1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bvh.Hit(ray, 1e-5, 999.9)
	}
}

func BenchmarkSceneHit(b *testing.B) {
	random := rand.New(rand.NewSource(42))
	scene := NewScene(randomPrimitives(random, 1000))
	ray := core.NewRay(core.NewVec3(0, 0, 25), core.NewVec3(0.1, 0.05, -1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scene.Hit(ray, 1e-5, 999.9)
	}
}

package geometry

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// ErrEmptyPrimitiveList is returned when a BVH is requested for no primitives
var ErrEmptyPrimitiveList = errors.New("bvh: empty primitive list")

var logger = log.New("bvh")

// nodeRef references either an arena node (ref >= 0) or a primitive leaf
// (ref < 0, primitive index = -ref - 1).
type nodeRef int32

func leafRef(primitive int) nodeRef {
	return nodeRef(-primitive - 1)
}

func (r nodeRef) isLeaf() bool {
	return r < 0
}

func (r nodeRef) primitive() int {
	return int(-r - 1)
}

// bvhNode is an interior node. Both children are always present.
type bvhNode struct {
	Box         core.AABB
	Left, Right nodeRef
}

// BVH is a bounding volume hierarchy built with the surface area heuristic.
// Nodes live in a contiguous arena and reference each other by index. The
// tree is immutable once built and safe for concurrent Hit calls.
type BVH struct {
	primitives []Primitive
	nodes      []bvhNode
	root       nodeRef
	box        core.AABB
	buildTime  time.Duration
}

// BVHStats describes the shape of a built BVH
type BVHStats struct {
	Primitives int
	Nodes      int // interior nodes
	Leaves     int
	MaxDepth   int
	BuildTime  time.Duration
}

type bvhBuilder struct {
	boxes []core.AABB
	nodes []bvhNode
}

// NewBVH builds a BVH over prims. The primitives are copied, so later changes
// to the input slice do not affect the tree.
func NewBVH(prims []Primitive, tMin, tMax float32) (*BVH, error) {
	if len(prims) == 0 {
		return nil, ErrEmptyPrimitiveList
	}

	start := time.Now()

	owned := make([]Primitive, len(prims))
	copy(owned, prims)

	b := &bvhBuilder{
		boxes: make([]core.AABB, len(owned)),
		nodes: make([]bvhNode, 0, len(owned)),
	}
	indices := make([]int, len(owned))
	for i := range owned {
		b.boxes[i] = owned[i].BoundingBox(tMin, tMax)
		indices[i] = i
	}

	bvh := &BVH{
		primitives: owned,
		root:       b.build(indices),
	}
	bvh.nodes = b.nodes
	bvh.box = bvh.refBox(bvh.root, b.boxes)
	bvh.buildTime = time.Since(start)

	stats := bvh.Stats()
	logger.Debugf(
		"BVH tree build time: %d ms, primitives: %d, maxDepth: %d, nodes: %d, leafs: %d",
		stats.BuildTime.Milliseconds(),
		stats.Primitives, stats.MaxDepth, stats.Nodes, stats.Leaves,
	)

	return bvh, nil
}

// build partitions indices and returns a reference to the resulting subtree
func (b *bvhBuilder) build(indices []int) nodeRef {
	n := len(indices)
	if n == 1 {
		return leafRef(indices[0])
	}

	box := b.boxes[indices[0]]
	for _, idx := range indices[1:] {
		box = box.Union(b.boxes[idx])
	}

	axis := box.LongestAxis()
	sort.SliceStable(indices, func(i, j int) bool {
		return b.boxes[indices[i]].Min.Axis(axis) < b.boxes[indices[j]].Min.Axis(axis)
	})

	// leftArea[i] covers items 0..i, rightArea[i] covers items i..n-1
	leftArea := make([]float32, n-1)
	leftBox := b.boxes[indices[0]]
	leftArea[0] = leftBox.Area()
	for i := 1; i < n-1; i++ {
		leftBox = leftBox.Union(b.boxes[indices[i]])
		leftArea[i] = leftBox.Area()
	}

	rightArea := make([]float32, n)
	rightBox := b.boxes[indices[n-1]]
	rightArea[n-1] = rightBox.Area()
	for i := n - 2; i >= 1; i-- {
		rightBox = rightBox.Union(b.boxes[indices[i]])
		rightArea[i] = rightBox.Area()
	}

	var minCost float32 = math.MaxFloat32
	split := 0
	for i := 0; i < n-1; i++ {
		cost := float32(i)*leftArea[i] + float32(n-1-i)*rightArea[i+1]
		if cost < minCost {
			minCost = cost
			split = i
		}
	}

	// Reserve the slot before recursing so the parent precedes its children
	self := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{Box: box})

	left := b.build(indices[:split+1])
	right := b.build(indices[split+1:])

	b.nodes[self].Left = left
	b.nodes[self].Right = right
	return nodeRef(self)
}

func (bvh *BVH) refBox(ref nodeRef, boxes []core.AABB) core.AABB {
	if ref.isLeaf() {
		return boxes[ref.primitive()]
	}
	return bvh.nodes[ref].Box
}

// Hit returns the nearest intersection found in the tree
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	return bvh.hitRef(bvh.root, ray, tMin, tMax)
}

func (bvh *BVH) hitRef(ref nodeRef, ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	if ref.isLeaf() {
		return bvh.primitives[ref.primitive()].Hit(ray, tMin, tMax)
	}

	node := &bvh.nodes[ref]
	if !node.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	left, hitLeft := bvh.hitRef(node.Left, ray, tMin, tMax)
	right, hitRight := bvh.hitRef(node.Right, ray, tMin, tMax)

	switch {
	case hitLeft && hitRight:
		if left.T < right.T {
			return left, true
		}
		return right, true
	case hitLeft:
		return left, true
	case hitRight:
		return right, true
	default:
		return nil, false
	}
}

// BoundingBox returns the box of the root, which is the union of every
// primitive box
func (bvh *BVH) BoundingBox(tMin, tMax float32) core.AABB {
	return bvh.box
}

// Stats walks the tree and reports its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{
		Primitives: len(bvh.primitives),
		Nodes:      len(bvh.nodes),
		BuildTime:  bvh.buildTime,
	}
	bvh.collectStats(bvh.root, 0, &stats)
	return stats
}

func (bvh *BVH) collectStats(ref nodeRef, depth int, stats *BVHStats) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	if ref.isLeaf() {
		stats.Leaves++
		return
	}
	node := &bvh.nodes[ref]
	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}

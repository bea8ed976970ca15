package roam

import (
	"fmt"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
)

// GridPoint is a sample position in terrain grid coordinates.
type GridPoint struct {
	X, Y int
}

// midpoint returns the grid point halfway between p and q.
func (p GridPoint) midpoint(q GridPoint) GridPoint {
	return GridPoint{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// VarianceTree holds, for every node of one triangle's bintree, the largest
// elevation error its subtree would show if collapsed into the node.
//
// Node indices start at 1 for the root; node n has children 2n and 2n+1.
// The tree is read-only after construction.
type VarianceTree struct {
	maxDepth  int
	variances []float32
	minY      float32
	maxY      float32
}

// NewVarianceTree computes the variance table for the triangle (left,
// right, apex) whose legs are patchSize grid cells long.
func NewVarianceTree(data terrain.TerrainData, patchSize int, left, right, apex GridPoint) (*VarianceTree, error) {
	if !isPowerOfTwo(patchSize) {
		return nil, fmt.Errorf("variance tree for size %d: %w", patchSize, ErrNotPowerOfTwo)
	}

	maxDepth := 2*log2(patchSize) + 1
	vt := &VarianceTree{
		maxDepth:  maxDepth,
		variances: make([]float32, 1<<maxDepth),
	}

	h := data.Coordinate(left.X, left.Y).Y
	vt.minY, vt.maxY = h, h
	vt.build(data, 1, 1, left, right, apex)
	return vt, nil
}

// MaxDepth is the depth of the smallest triangles. Nodes shallower than
// this can be split.
func (vt *VarianceTree) MaxDepth() int { return vt.maxDepth }

// Variance returns the precomputed variance of a node, or 0 for indices
// outside the table.
func (vt *VarianceTree) Variance(node int) float32 {
	if node < 1 || node >= len(vt.variances) {
		return 0
	}
	return vt.variances[node]
}

// MinY returns the lowest sample elevation in the triangle.
func (vt *VarianceTree) MinY() float32 { return vt.minY }

// MaxY returns the highest sample elevation in the triangle.
func (vt *VarianceTree) MaxY() float32 { return vt.maxY }

func (vt *VarianceTree) build(data terrain.TerrainData, node, depth int, left, right, apex GridPoint) float32 {
	hl := data.Coordinate(left.X, left.Y).Y
	hr := data.Coordinate(right.X, right.Y).Y
	ha := data.Coordinate(apex.X, apex.Y).Y
	vt.extend(hl)
	vt.extend(hr)
	vt.extend(ha)

	if depth >= vt.maxDepth {
		return 0
	}

	mid := left.midpoint(right)
	hm := data.Coordinate(mid.X, mid.Y).Y

	v := abs32(hm - (hl+hr)*0.5)
	v = max(v, vt.build(data, 2*node, depth+1, apex, left, mid))
	v = max(v, vt.build(data, 2*node+1, depth+1, right, apex, mid))

	vt.variances[node] = v
	return v
}

func (vt *VarianceTree) extend(h float32) {
	if h < vt.minY {
		vt.minY = h
	}
	if h > vt.maxY {
		vt.maxY = h
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

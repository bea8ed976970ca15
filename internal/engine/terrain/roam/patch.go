package roam

import (
	"fmt"
	"image"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

// Patch is one square region of terrain, patchSize grid cells on a side,
// meshed as two bintrees: NW above the (x0,y0)-(x1,y1) diagonal and SE
// below it.
type Patch struct {
	data       terrain.TerrainData
	size       int
	pool       *NodePool
	frustum    terrain.ViewFrustum
	hasColor   bool
	hasTexture bool
	texOffset  [2]float32

	origin GridPoint   // Grid coordinate of the south-west corner
	tile   image.Point // Tile coordinate

	nwTree, seTree         *TreeNode
	nwVariance, seVariance *VarianceTree
	minY, maxY             float32
	bounds                 terrain.Bounds

	north, south, east, west *Patch

	vertexData *VertexData
	appearance *terrain.Appearance
	active     bool

	splits, merges int // Lifetime counters
}

// NewPatch creates an inactive patch. Call SetOrigin to place it.
func NewPatch(data terrain.TerrainData, patchSize int, frustum terrain.ViewFrustum, pool *NodePool) (*Patch, error) {
	if !isPowerOfTwo(patchSize) {
		return nil, fmt.Errorf("patch size %d: %w", patchSize, ErrNotPowerOfTwo)
	}
	if pool == nil {
		pool = NewNodePool(0)
	}
	if frustum == nil {
		frustum = noFrustum{}
	}
	return &Patch{
		data:       data,
		size:       patchSize,
		pool:       pool,
		frustum:    frustum,
		hasColor:   data.HasColor(),
		hasTexture: data.HasTexture(),
		vertexData: NewVertexData(patchSize, data.HasTexture(), data.HasColor()),
	}, nil
}

// SetOrigin places the patch with its south-west corner at the given grid
// coordinate and builds fresh trees. Any previous trees must have been
// released with Clear.
func (p *Patch) SetOrigin(gridX, gridY int) {
	if p.nwTree != nil {
		p.Clear()
	}

	p.origin = GridPoint{gridX, gridY}
	p.tile = image.Pt(floorDiv(gridX, p.size), floorDiv(gridY, p.size))
	if _, ok := p.data.(terrain.TiledTerrainData); ok {
		p.texOffset = [2]float32{float32(p.tile.X), float32(p.tile.Y)}
	} else {
		p.texOffset = [2]float32{}
	}

	x0, y0 := gridX, gridY
	x1, y1 := gridX+p.size, gridY+p.size
	sw, ne := GridPoint{x0, y0}, GridPoint{x1, y1}
	nw, se := GridPoint{x0, y1}, GridPoint{x1, y0}

	// Sizes were validated by NewPatch
	p.nwVariance, _ = NewVarianceTree(p.data, p.size, sw, ne, nw)
	p.seVariance, _ = NewVarianceTree(p.data, p.size, ne, sw, se)

	p.nwTree = p.pool.get()
	p.seTree = p.pool.get()
	p.nwTree.init(p, p.nwVariance, sw, ne, nw, 1, 1, nil)
	p.seTree.init(p, p.seVariance, ne, sw, se, 1, 1, nil)
	p.nwTree.baseNeighbour = p.seTree
	p.seTree.baseNeighbour = p.nwTree

	p.minY = min(p.nwVariance.MinY(), p.seVariance.MinY())
	p.maxY = max(p.nwVariance.MaxY(), p.seVariance.MaxY())

	xs, ys := p.data.GridXStep(), p.data.GridYStep()
	p.bounds = terrain.Bounds{
		Min: [3]float32{float32(x0) * xs, p.minY, -float32(y1) * ys},
		Max: [3]float32{float32(x1) * xs, p.maxY, -float32(y0) * ys},
	}

	p.vertexData.Reset()
}

// MakeActive marks the patch as live.
func (p *Patch) MakeActive() {
	p.active = p.nwTree != nil
}

// Active reports whether the patch is live.
func (p *Patch) Active() bool { return p.active }

// Clear takes the patch out of service: it detaches from its neighbours,
// returns every node to the pool and empties the vertex buffer. Queues
// must not hold any of its nodes.
func (p *Patch) Clear() {
	p.active = false
	p.vertexData.Reset()

	if p.nwTree == nil {
		return
	}

	p.unlinkWest()
	p.unlinkEast()
	p.unlinkNorth()
	p.unlinkSouth()

	p.pool.put(p.nwTree)
	p.pool.put(p.seTree)
	p.nwTree, p.seTree = nil, nil
}

// Reset collapses both trees back to their two root triangles while
// keeping neighbour patches attached.
func (p *Patch) Reset(position math.Vec3, qm *QueueManager) {
	if p.nwTree == nil {
		return
	}
	gx, gy := p.origin.X, p.origin.Y
	w, e, n, s := p.west, p.east, p.north, p.south
	p.Clear()
	p.SetOrigin(gx, gy)
	p.MakeActive()
	p.SetWestNeighbour(w, position, qm)
	p.SetEastNeighbour(e, position, qm)
	p.SetNorthNeighbour(n, position, qm)
	p.SetSouthNeighbour(s, position, qm)
}

// SetView refreshes visibility and priorities for a new viewpoint and
// queues split and merge candidates.
func (p *Patch) SetView(position math.Vec3, frustum terrain.ViewFrustum, qm *QueueManager) {
	if p.nwTree == nil {
		return
	}
	if frustum != nil {
		p.frustum = frustum
	}
	p.nwTree.updateTree(position, p.frustum, terrain.Undefined, qm)
	p.seTree.updateTree(position, p.frustum, terrain.Undefined, qm)
}

// UpdateGeometry rebuilds the vertex buffer from the visible leaves.
func (p *Patch) UpdateGeometry() {
	p.vertexData.Reset()
	if !p.active || p.nwTree == nil {
		return
	}
	if p.nwTree.visible != terrain.Out {
		p.nwTree.triangles(p.vertexData)
	}
	if p.seTree.visible != terrain.Out {
		p.seTree.triangles(p.vertexData)
	}
}

// SetWestNeighbour attaches w along the west edge, splitting either side
// as needed so the shared edge has no cracks. nil detaches.
func (p *Patch) SetWestNeighbour(w *Patch, position math.Vec3, qm *QueueManager) {
	p.unlinkWest()
	if w == nil || p.nwTree == nil || w.nwTree == nil {
		return
	}
	w.unlinkEast()
	p.west, w.east = w, p
	p.nwTree.edgeSplit(w.seTree, LeftToLeft, position, p.frustum, qm)
}

// SetEastNeighbour attaches e along the east edge. nil detaches.
func (p *Patch) SetEastNeighbour(e *Patch, position math.Vec3, qm *QueueManager) {
	p.unlinkEast()
	if e == nil || p.nwTree == nil || e.nwTree == nil {
		return
	}
	e.unlinkWest()
	p.east, e.west = e, p
	p.seTree.edgeSplit(e.nwTree, LeftToLeft, position, p.frustum, qm)
}

// SetNorthNeighbour attaches n along the north edge. nil detaches.
func (p *Patch) SetNorthNeighbour(n *Patch, position math.Vec3, qm *QueueManager) {
	p.unlinkNorth()
	if n == nil || p.nwTree == nil || n.nwTree == nil {
		return
	}
	n.unlinkSouth()
	p.north, n.south = n, p
	p.nwTree.edgeSplit(n.seTree, RightToRight, position, p.frustum, qm)
}

// SetSouthNeighbour attaches s along the south edge. nil detaches.
func (p *Patch) SetSouthNeighbour(s *Patch, position math.Vec3, qm *QueueManager) {
	p.unlinkSouth()
	if s == nil || p.nwTree == nil || s.nwTree == nil {
		return
	}
	s.unlinkNorth()
	p.south, s.north = s, p
	p.seTree.edgeSplit(s.nwTree, RightToRight, position, p.frustum, qm)
}

func (p *Patch) unlinkWest() {
	if w := p.west; w != nil {
		if p.nwTree != nil {
			p.nwTree.detachEdge(RoleLeft)
		}
		if w.seTree != nil {
			w.seTree.detachEdge(RoleLeft)
		}
		w.east = nil
		p.west = nil
	}
}

func (p *Patch) unlinkEast() {
	if e := p.east; e != nil {
		if p.seTree != nil {
			p.seTree.detachEdge(RoleLeft)
		}
		if e.nwTree != nil {
			e.nwTree.detachEdge(RoleLeft)
		}
		e.west = nil
		p.east = nil
	}
}

func (p *Patch) unlinkNorth() {
	if n := p.north; n != nil {
		if p.nwTree != nil {
			p.nwTree.detachEdge(RoleRight)
		}
		if n.seTree != nil {
			n.seTree.detachEdge(RoleRight)
		}
		n.south = nil
		p.north = nil
	}
}

func (p *Patch) unlinkSouth() {
	if s := p.south; s != nil {
		if p.seTree != nil {
			p.seTree.detachEdge(RoleRight)
		}
		if s.nwTree != nil {
			s.nwTree.detachEdge(RoleRight)
		}
		s.north = nil
		p.south = nil
	}
}

// Neighbours returns the attached west, east, north and south patches.
func (p *Patch) Neighbours() (west, east, north, south *Patch) {
	return p.west, p.east, p.north, p.south
}

// Trees returns the NW and SE root nodes, nil while cleared.
func (p *Patch) Trees() (nw, se *TreeNode) { return p.nwTree, p.seTree }

// MaxDepth returns the depth of the finest triangles.
func (p *Patch) MaxDepth() int { return 2*log2(p.size) + 1 }

// Size returns the patch side length in grid cells.
func (p *Patch) Size() int { return p.size }

// Origin returns the grid coordinate of the south-west corner.
func (p *Patch) Origin() GridPoint { return p.origin }

// TileOrigin returns the tile coordinate of the patch.
func (p *Patch) TileOrigin() image.Point { return p.tile }

// Bounds returns the world-space bounding box.
func (p *Patch) Bounds() terrain.Bounds { return p.bounds }

// VertexData returns the triangle buffer built by UpdateGeometry.
func (p *Patch) VertexData() *VertexData { return p.vertexData }

// TriangleCount returns the number of triangles in the vertex buffer.
func (p *Patch) TriangleCount() int { return p.vertexData.VertexCount() / 3 }

// LeafCount returns the number of leaf triangles in both trees, visible
// or not.
func (p *Patch) LeafCount() int {
	if p.nwTree == nil {
		return 0
	}
	count := 0
	inc := func(*TreeNode) { count++ }
	p.nwTree.leaves(inc)
	p.seTree.leaves(inc)
	return count
}

// Appearance returns the appearance assigned by the landscape.
func (p *Patch) Appearance() *terrain.Appearance { return p.appearance }

// SetAppearance assigns the patch appearance.
func (p *Patch) SetAppearance(a *terrain.Appearance) { p.appearance = a }

// String returns a short description for logs.
func (p *Patch) String() string {
	return fmt.Sprintf("patch(%d,%d)", p.tile.X, p.tile.Y)
}

// noFrustum treats every triangle as visible.
type noFrustum struct{}

func (noFrustum) TriangleVisibility(p1, p2, p3 math.Vec3) terrain.Visibility { return terrain.In }
func (noFrustum) ViewingPlatformMoved()                                      {}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

package roam

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-roam/internal/engine/camera"
	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

var everything = camera.Everything{}

// flatGrid returns an all-zero static grid of size x size samples.
func flatGrid(t *testing.T, size int) *terrain.Heightmap {
	t.Helper()
	hm, err := terrain.NewHeightmap(size, size, make([]float32, size*size), 1, 1)
	require.NoError(t, err)
	return hm
}

// hills is a smooth height field with features at several scales.
func hills(x, z float32) float32 {
	return 6*math32.Sin(x*0.21)*math32.Cos(z*0.17) +
		2*math32.Sin(x*0.9+1)*math32.Sin(z*0.7)
}

// hillGrid returns a static grid of size x size samples over hills.
func hillGrid(t *testing.T, size int) *terrain.Heightmap {
	t.Helper()
	hm, err := terrain.NewHeightmapFunc(size, size, 1, 1, hills)
	require.NoError(t, err)
	return hm
}

func newQueues() *QueueManager {
	return NewQueueManager(DefaultQueueOptions())
}

// newTestPatch builds a standalone active patch at a grid origin.
func newTestPatch(t *testing.T, data terrain.TerrainData, size, gx, gy int, pool *NodePool) *Patch {
	t.Helper()
	p, err := NewPatch(data, size, everything, pool)
	require.NoError(t, err)
	p.SetOrigin(gx, gy)
	p.MakeActive()
	return p
}

// allLeaves collects the leaves of every given patch.
func allLeaves(patches ...*Patch) []*TreeNode {
	var out []*TreeNode
	for _, p := range patches {
		nw, se := p.Trees()
		if nw == nil {
			continue
		}
		collect := func(n *TreeNode) { out = append(out, n) }
		nw.leaves(collect)
		se.leaves(collect)
	}
	return out
}

func sameSegment(a1, a2, b1, b2 GridPoint) bool {
	return (a1 == b1 && a2 == b2) || (a1 == b2 && a2 == b1)
}

// requireConsistent checks that every leaf neighbour link is mutual and
// joins identical edges.
func requireConsistent(t *testing.T, patches ...*Patch) {
	t.Helper()
	for _, n := range allLeaves(patches...) {
		for _, r := range []Role{RoleLeft, RoleRight, RoleBase} {
			m := n.Neighbour(r)
			if m == nil {
				continue
			}
			require.False(t, m.pooled, "leaf %d links to a released node", n.node)
			back, ok := m.roleOf(n)
			require.True(t, ok, "neighbour of leaf %d across %s does not link back", n.node, r)
			require.True(t, m.IsLeaf(), "leaf %d links to internal node %d", n.node, m.node)
			a1, a2 := n.edgeEnds(r)
			b1, b2 := m.edgeEnds(back)
			require.True(t, sameSegment(a1, a2, b1, b2),
				"leaf %d %s edge %v-%v faces %v-%v", n.node, r, a1, a2, b1, b2)
		}
	}
}

// requireCrackFree checks that no mesh vertex lies inside any leaf edge,
// which is where T-junctions open cracks.
func requireCrackFree(t *testing.T, patches ...*Patch) {
	t.Helper()
	leaves := allLeaves(patches...)
	verts := make(map[GridPoint]bool)
	for _, n := range leaves {
		verts[n.left] = true
		verts[n.right] = true
		verts[n.apex] = true
	}

	for _, n := range leaves {
		for _, r := range []Role{RoleLeft, RoleRight, RoleBase} {
			a, b := n.edgeEnds(r)
			dx, dy := b.X-a.X, b.Y-a.Y
			steps := gcd(abs(dx), abs(dy))
			for i := 1; i < steps; i++ {
				p := GridPoint{a.X + dx/steps*i, a.Y + dy/steps*i}
				require.False(t, verts[p], "vertex %v splits edge %v-%v of leaf %d", p, a, b, n.node)
			}
		}
	}
}

// requireDepthBound checks that no node is deeper than the patch allows.
func requireDepthBound(t *testing.T, patches ...*Patch) {
	t.Helper()
	for _, p := range patches {
		nw, se := p.Trees()
		if nw == nil {
			continue
		}
		check := func(n *TreeNode) {
			require.LessOrEqual(t, n.depth, p.MaxDepth())
		}
		nw.walk(check)
		se.walk(check)
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// vertexSet returns the grid vertices of all leaves.
func vertexSet(patches ...*Patch) map[GridPoint]bool {
	set := make(map[GridPoint]bool)
	for _, n := range allLeaves(patches...) {
		set[n.left] = true
		set[n.right] = true
		set[n.apex] = true
	}
	return set
}

// overhead is a viewer position high above grid (x, y).
func overhead(x, y, height float32) math.Vec3 {
	return math.Vec3{X: x, Y: height, Z: -y}
}

var down = math.Vec3{Y: -1}

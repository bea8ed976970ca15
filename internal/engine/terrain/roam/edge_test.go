package roam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitRoot splits the NW root of a fresh patch and cuts the edge its
// children share, returning the patch and the two halves.
func splitRoot(t *testing.T, qm *QueueManager) (p *Patch, lc, rc *TreeNode) {
	t.Helper()
	p = newTestPatch(t, flatGrid(t, 9), 8, 0, 0, nil)
	nw, _ := p.Trees()
	require.Equal(t, 2, nw.split(down, everything, qm))
	lc, rc = nw.Children()
	lc.detachEdge(RoleLeft)
	rc.detachEdge(RoleRight)
	require.Nil(t, lc.Neighbour(RoleLeft))
	require.Nil(t, rc.Neighbour(RoleRight))
	return p, lc, rc
}

func TestEdgeSplitRelinksLeaves(t *testing.T) {
	tests := []struct {
		name    string
		forward bool
		o       Orientation
	}{
		{"left to right", true, LeftToRight},
		{"right to left", false, RightToLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qm := newQueues()
			p, lc, rc := splitRoot(t, qm)

			var added int
			if tt.forward {
				added = lc.edgeSplit(rc, tt.o, down, everything, qm)
			} else {
				added = rc.edgeSplit(lc, tt.o, down, everything, qm)
			}
			assert.Zero(t, added)
			assert.Same(t, rc, lc.Neighbour(RoleLeft))
			assert.Same(t, lc, rc.Neighbour(RoleRight))
			requireConsistent(t, p)
			requireCrackFree(t, p)
		})
	}
}

func TestEdgeSplitRefinesCoarseSide(t *testing.T) {
	tests := []struct {
		name    string
		forward bool
		o       Orientation
	}{
		{"left to right", true, LeftToRight},
		{"right to left", false, RightToLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qm := newQueues()
			p, lc, rc := splitRoot(t, qm)

			// Put a vertex on the cut edge from the lc side only
			require.Positive(t, lc.split(down, everything, qm))
			edge, _ := lc.Children()
			require.Nil(t, edge.Neighbour(RoleBase))
			require.Equal(t, 1, edge.split2(down, everything, qm))
			require.True(t, rc.IsLeaf())
			before := p.LeafCount()

			var added int
			if tt.forward {
				added = lc.edgeSplit(rc, tt.o, down, everything, qm)
			} else {
				added = rc.edgeSplit(lc, tt.o, down, everything, qm)
			}
			assert.Positive(t, added)
			assert.Equal(t, before+added, p.LeafCount())
			assert.False(t, rc.IsLeaf(), "the coarse side is split to match")
			requireConsistent(t, p)
			requireCrackFree(t, p)
			requireDepthBound(t, p)
		})
	}
}

func TestEdgeSplitBaseToBase(t *testing.T) {
	qm := newQueues()
	p := newTestPatch(t, flatGrid(t, 9), 8, 0, 0, nil)
	nw, se := p.Trees()
	nw.detachEdge(RoleBase)
	se.detachEdge(RoleBase)

	// With the diagonal cut nw splits alone
	require.Equal(t, 1, nw.split(down, everything, qm))
	require.True(t, se.IsLeaf())

	assert.Equal(t, 1, nw.edgeSplit(se, BaseToBase, down, everything, qm))
	assert.False(t, se.IsLeaf())
	assert.Same(t, se, nw.Neighbour(RoleBase))
	assert.Same(t, nw, se.Neighbour(RoleBase))
	assert.Equal(t, 4, p.LeafCount())
	requireConsistent(t, p)
	requireCrackFree(t, p)

	// Joining an already matched edge adds nothing
	assert.Zero(t, se.edgeSplit(nw, BaseToBase, down, everything, qm))
	assert.Equal(t, 4, p.LeafCount())
}

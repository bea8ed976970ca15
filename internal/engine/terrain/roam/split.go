package roam

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

// split divides a leaf together with its base neighbour so that no
// T-junction appears. A coarser base neighbour is split first. It returns
// the number of triangles added.
func (n *TreeNode) split(position math.Vec3, frustum terrain.ViewFrustum, qm *QueueManager) int {
	if !n.IsLeaf() || !n.canSplit() {
		return 0
	}

	count := 0
	if bn := n.baseNeighbour; bn != nil && bn.baseNeighbour != n {
		// bn is one level coarser; splitting it hands n a same-level base
		count += bn.split(position, frustum, qm)
		if n.baseNeighbour == bn {
			// bn could not split; leave n alone rather than crack the edge
			return count
		}
	}

	bn := n.baseNeighbour
	count += n.split2(position, frustum, qm)

	if bn != nil {
		if bn.IsLeaf() {
			count += bn.split2(position, frustum, qm)
		}
		n.crossLink(bn)
	}

	n.registerDiamond(position, qm)
	return count
}

// crossLink joins the children of a freshly split pair across the shared
// base edge.
func (n *TreeNode) crossLink(bn *TreeNode) {
	n.leftChild.rightNeighbour = bn.rightChild
	n.rightChild.leftNeighbour = bn.leftChild
	bn.leftChild.rightNeighbour = n.rightChild
	bn.rightChild.leftNeighbour = n.leftChild
}

// split2 splits a single leaf without regard for its base neighbour.
func (n *TreeNode) split2(position math.Vec3, frustum terrain.ViewFrustum, qm *QueueManager) int {
	if n.parent != nil {
		n.parent.unregisterDiamond(qm)
	}
	qm.RemoveTriangle(n)

	pool := n.patch.pool
	mid := n.left.midpoint(n.right)

	lc := pool.get()
	rc := pool.get()
	lc.init(n.patch, n.vt, n.apex, n.left, mid, 2*n.node, n.depth+1, n)
	rc.init(n.patch, n.vt, n.right, n.apex, mid, 2*n.node+1, n.depth+1, n)
	n.leftChild, n.rightChild = lc, rc

	lc.leftNeighbour = rc
	rc.rightNeighbour = lc

	lc.baseNeighbour = n.leftNeighbour
	if n.leftNeighbour != nil {
		n.leftNeighbour.replaceNeighbour(n, lc)
	}
	rc.baseNeighbour = n.rightNeighbour
	if n.rightNeighbour != nil {
		n.rightNeighbour.replaceNeighbour(n, rc)
	}

	for _, c := range [2]*TreeNode{lc, rc} {
		c.inheritVisibility(n.visible, frustum)
		if c.canSplit() && c.visible != terrain.Out {
			c.computeVariance(position)
			qm.AddTriangle(c)
		}
	}

	n.patch.splits++
	return 1
}

// isMergeable reports whether n and its base neighbour form a diamond whose
// children are all leaves.
func (n *TreeNode) isMergeable() bool {
	if n.IsLeaf() || !n.leftChild.IsLeaf() || !n.rightChild.IsLeaf() {
		return false
	}
	bn := n.baseNeighbour
	if bn == nil {
		return true
	}
	return bn.baseNeighbour == n && !bn.IsLeaf() &&
		bn.leftChild.IsLeaf() && bn.rightChild.IsLeaf()
}

// registerDiamond queues the diamond formed by n and its base neighbour if
// it can be merged. Each diamond is queued once, through its representative.
func (n *TreeNode) registerDiamond(position math.Vec3, qm *QueueManager) {
	if n == nil || !n.isMergeable() {
		return
	}

	rep := n
	bn := n.baseNeighbour
	if bn != nil && bn.diamond {
		rep = bn
	}

	n.computeVariance(position)
	dv := float32(0)
	visible := false
	if n.visible != terrain.Out {
		dv = n.variance
		visible = true
	}
	if bn != nil {
		bn.computeVariance(position)
		if bn.visible != terrain.Out {
			dv = max(dv, bn.variance)
			visible = true
		}
	}
	if !visible {
		// Hidden diamonds merge first
		dv = math32.SmallestNonzeroFloat32
	}

	rep.diamond = true
	rep.diamondVariance = dv
	qm.AddDiamond(rep)
}

// unregisterDiamond drops the diamond containing n from the merge queue.
func (n *TreeNode) unregisterDiamond(qm *QueueManager) {
	if n.diamond {
		n.diamond = false
		qm.RemoveDiamond(n)
	}
	if bn := n.baseNeighbour; bn != nil && bn.baseNeighbour == n && bn.diamond {
		bn.diamond = false
		qm.RemoveDiamond(bn)
	}
}

// merge collapses the diamond represented by n. It returns the number of
// triangles removed, 0 when n is not a mergeable diamond.
func (n *TreeNode) merge(position math.Vec3, qm *QueueManager) int {
	if !n.isMergeable() {
		n.unregisterDiamond(qm)
		return 0
	}

	bn := n.baseNeighbour
	n.unregisterDiamond(qm)

	count := n.merge2(position, qm)
	if bn != nil {
		count += bn.merge2(position, qm)
	}

	n.parent.registerDiamond(position, qm)
	if bn != nil && bn.parent != n.parent {
		bn.parent.registerDiamond(position, qm)
	}
	return count
}

// merge2 turns an internal node with two leaf children back into a leaf.
func (n *TreeNode) merge2(position math.Vec3, qm *QueueManager) int {
	lc, rc := n.leftChild, n.rightChild

	n.leftNeighbour = lc.baseNeighbour
	if n.leftNeighbour != nil {
		n.leftNeighbour.replaceNeighbour(lc, n)
	}
	n.rightNeighbour = rc.baseNeighbour
	if n.rightNeighbour != nil {
		n.rightNeighbour.replaceNeighbour(rc, n)
	}

	qm.RemoveTriangle(lc)
	qm.RemoveTriangle(rc)
	n.leftChild, n.rightChild = nil, nil
	n.patch.pool.put(lc)
	n.patch.pool.put(rc)

	if n.canSplit() && n.visible != terrain.Out {
		n.computeVariance(position)
		qm.AddTriangle(n)
	}

	n.patch.merges++
	return 1
}

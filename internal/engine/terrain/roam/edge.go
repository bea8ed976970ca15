package roam

import (
	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

// edgeSplit joins the edge of n named by o.Self to the edge of other named
// by o.Other. Both edges must cover the same grid segment. Whichever side
// is coarser along the edge is split until both subdivisions match, then
// facing leaves are linked. It returns the number of triangles added.
func (n *TreeNode) edgeSplit(other *TreeNode, o Orientation, position math.Vec3, frustum terrain.ViewFrustum, qm *QueueManager) int {
	total := 0
	for {
		added := reconcileEdge(n, o.Self, other, o.Other, position, frustum, qm)
		total += added
		if added == 0 {
			return total
		}
	}
}

// descendEdge follows an edge down an internal node until the edge is
// either owned by a leaf or is the base of an internal node.
func descendEdge(n *TreeNode, r Role) (*TreeNode, Role) {
	for !n.IsLeaf() && r != RoleBase {
		if r == RoleLeft {
			n = n.leftChild
		} else {
			n = n.rightChild
		}
		r = RoleBase
	}
	return n, r
}

func reconcileEdge(a *TreeNode, ra Role, b *TreeNode, rb Role, position math.Vec3, frustum terrain.ViewFrustum, qm *QueueManager) int {
	added := 0
	for {
		a, ra = descendEdge(a, ra)
		b, rb = descendEdge(b, rb)

		switch {
		case a.IsLeaf() && b.IsLeaf():
			a.setNeighbour(ra, b)
			b.setNeighbour(rb, a)
			return added

		case !a.IsLeaf() && !b.IsLeaf():
			// Both bases are halved; pair the halves that share an end
			a.baseNeighbour = b
			b.baseNeighbour = a
			if a.left == b.left {
				added += reconcileEdge(a.leftChild, RoleRight, b.leftChild, RoleRight, position, frustum, qm)
				added += reconcileEdge(a.rightChild, RoleLeft, b.rightChild, RoleLeft, position, frustum, qm)
			} else {
				added += reconcileEdge(a.leftChild, RoleRight, b.rightChild, RoleLeft, position, frustum, qm)
				added += reconcileEdge(a.rightChild, RoleLeft, b.leftChild, RoleRight, position, frustum, qm)
			}
			return added

		default:
			if a.IsLeaf() {
				a, ra, b, rb = b, rb, a, ra
			}
			// a is halved, the leaf b is not
			if rb == RoleBase {
				b.baseNeighbour = a
				a.baseNeighbour = b
			}
			n := b.split(position, frustum, qm)
			if n == 0 {
				return added
			}
			added += n
		}
	}
}

// detachEdge clears every neighbour reference along one edge of the
// subtree.
func (n *TreeNode) detachEdge(r Role) {
	n.setNeighbour(r, nil)
	if n.IsLeaf() {
		return
	}
	switch r {
	case RoleLeft:
		n.leftChild.detachEdge(RoleBase)
	case RoleRight:
		n.rightChild.detachEdge(RoleBase)
	default:
		n.leftChild.detachEdge(RoleRight)
		n.rightChild.detachEdge(RoleLeft)
	}
}

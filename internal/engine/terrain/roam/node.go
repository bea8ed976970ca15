package roam

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

// Role names one of the three edges of a triangle.
//
// For a triangle (left, right, apex) the base edge runs left-right, the
// left edge apex-left and the right edge right-apex.
type Role uint8

// Edge roles.
const (
	RoleLeft Role = iota
	RoleRight
	RoleBase
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleLeft:
		return "Left"
	case RoleRight:
		return "Right"
	case RoleBase:
		return "Base"
	}
	return "Unknown"
}

// Orientation pairs the edge role on one side of a shared edge with the
// role on the other side.
type Orientation struct {
	Self, Other Role
}

// Common orientations.
var (
	LeftToRight  = Orientation{RoleLeft, RoleRight}
	RightToLeft  = Orientation{RoleRight, RoleLeft}
	BaseToBase   = Orientation{RoleBase, RoleBase}
	LeftToLeft   = Orientation{RoleLeft, RoleLeft}
	RightToRight = Orientation{RoleRight, RoleRight}
)

// queueLink is the intrusive list entry used by FastQueue.
type queueLink struct {
	next, prev *TreeNode
	bucket     int // -1 when not queued
}

// TreeNode is one triangle of a patch bintree.
type TreeNode struct {
	left, right, apex GridPoint

	node  int // Bintree index, root is 1
	depth int // Root is 1

	variance        float32 // Split priority
	diamondVariance float32 // Merge priority, valid on diamond representatives
	visible         terrain.Visibility

	// diamond is set on the node that represents a registered mergeable
	// pair (this node and its base neighbour).
	diamond bool

	parent                *TreeNode
	leftChild, rightChild *TreeNode
	leftNeighbour         *TreeNode
	rightNeighbour        *TreeNode
	baseNeighbour         *TreeNode
	patch                 *Patch
	vt                    *VarianceTree
	triLink, diamondLink  queueLink
	pooled                bool

	// World-space vertices in left, right, apex order.
	pos   [3]math.Vec3
	color [3][3]float32
	tex   [3][2]float32
}

// init sets up a node fetched from the pool.
func (n *TreeNode) init(p *Patch, vt *VarianceTree, left, right, apex GridPoint, node, depth int, parent *TreeNode) {
	n.left, n.right, n.apex = left, right, apex
	n.node = node
	n.depth = depth
	n.parent = parent
	n.patch = p
	n.vt = vt
	n.variance = 0
	n.diamondVariance = 0
	n.visible = terrain.Undefined
	n.diamond = false

	data := p.data
	for i, g := range [3]GridPoint{left, right, apex} {
		n.pos[i] = data.Coordinate(g.X, g.Y)
		if p.hasColor {
			n.color[i] = data.Color(g.X, g.Y)
		}
		if p.hasTexture {
			tc := data.TexCoord(g.X, g.Y)
			n.tex[i] = [2]float32{tc[0] - p.texOffset[0], tc[1] - p.texOffset[1]}
		}
	}
}

// reset clears every reference so the node can sit in the pool.
func (n *TreeNode) reset() {
	n.parent = nil
	n.leftChild, n.rightChild = nil, nil
	n.leftNeighbour, n.rightNeighbour, n.baseNeighbour = nil, nil, nil
	n.patch = nil
	n.vt = nil
	n.diamond = false
	n.visible = terrain.Undefined
	n.triLink = queueLink{bucket: -1}
	n.diamondLink = queueLink{bucket: -1}
}

// IsLeaf reports whether the node has no children.
func (n *TreeNode) IsLeaf() bool {
	return n.leftChild == nil
}

// Depth returns the node depth, 1 for a patch root.
func (n *TreeNode) Depth() int { return n.depth }

// Index returns the bintree index.
func (n *TreeNode) Index() int { return n.node }

// Variance returns the split priority computed for the current view.
func (n *TreeNode) Variance() float32 { return n.variance }

// DiamondVariance returns the merge priority of the diamond this node
// represents.
func (n *TreeNode) DiamondVariance() float32 { return n.diamondVariance }

// Visibility returns the last frustum classification.
func (n *TreeNode) Visibility() terrain.Visibility { return n.visible }

// Vertices returns the grid positions of the left, right and apex vertices.
func (n *TreeNode) Vertices() (left, right, apex GridPoint) {
	return n.left, n.right, n.apex
}

// Neighbour returns the neighbour across the given edge.
func (n *TreeNode) Neighbour(r Role) *TreeNode {
	switch r {
	case RoleLeft:
		return n.leftNeighbour
	case RoleRight:
		return n.rightNeighbour
	default:
		return n.baseNeighbour
	}
}

// Children returns the two children, nil for a leaf.
func (n *TreeNode) Children() (left, right *TreeNode) {
	return n.leftChild, n.rightChild
}

func (n *TreeNode) setNeighbour(r Role, m *TreeNode) {
	switch r {
	case RoleLeft:
		n.leftNeighbour = m
	case RoleRight:
		n.rightNeighbour = m
	default:
		n.baseNeighbour = m
	}
}

// roleOf returns which slot of n references m.
func (n *TreeNode) roleOf(m *TreeNode) (Role, bool) {
	switch m {
	case nil:
		return 0, false
	case n.leftNeighbour:
		return RoleLeft, true
	case n.rightNeighbour:
		return RoleRight, true
	case n.baseNeighbour:
		return RoleBase, true
	}
	return 0, false
}

// replaceNeighbour redirects the slot that referenced old to repl. It is a
// no-op when no slot references old.
func (n *TreeNode) replaceNeighbour(old, repl *TreeNode) {
	if r, ok := n.roleOf(old); ok {
		n.setNeighbour(r, repl)
	}
}

// edgeEnds returns the grid end points of one edge.
func (n *TreeNode) edgeEnds(r Role) (a, b GridPoint) {
	switch r {
	case RoleLeft:
		return n.apex, n.left
	case RoleRight:
		return n.right, n.apex
	default:
		return n.left, n.right
	}
}

// canSplit reports whether the node is above the depth bound.
func (n *TreeNode) canSplit() bool {
	return n.depth < n.vt.maxDepth
}

// computeVariance scores the node for the current viewer position as the
// angle subtended by its variance seen from the viewer.
func (n *TreeNode) computeVariance(position math.Vec3) {
	v := n.vt.Variance(n.node)
	d := position.Distance(n.pos[0].Midpoint(n.pos[1]))
	switch {
	case d > 0:
		n.variance = math32.Atan(v / d)
	case v > 0:
		n.variance = math32.Pi / 2
	default:
		n.variance = 0
	}
}

// checkVisibility tests the triangle against the frustum.
func (n *TreeNode) checkVisibility(frustum terrain.ViewFrustum) terrain.Visibility {
	return frustum.TriangleVisibility(n.pos[0], n.pos[1], n.pos[2])
}

// inheritVisibility sets the node visibility from its parent, testing
// against the frustum only when the parent straddles it or is untested.
func (n *TreeNode) inheritVisibility(parentVisible terrain.Visibility, frustum terrain.ViewFrustum) {
	if parentVisible == terrain.Undefined || parentVisible == terrain.Clipped {
		n.visible = n.checkVisibility(frustum)
		return
	}
	n.visible = parentVisible
}

// updateTree refreshes visibility and priorities of the subtree for a new
// view and feeds split and merge candidates to the queues.
func (n *TreeNode) updateTree(position math.Vec3, frustum terrain.ViewFrustum, parentVisible terrain.Visibility, qm *QueueManager) {
	n.inheritVisibility(parentVisible, frustum)

	if n.IsLeaf() {
		if n.canSplit() && n.visible != terrain.Out {
			n.computeVariance(position)
			qm.AddTriangle(n)
		}
		return
	}

	n.leftChild.updateTree(position, frustum, n.visible, qm)
	n.rightChild.updateTree(position, frustum, n.visible, qm)

	n.registerDiamond(position, qm)
}

// triangles appends the visible leaves of the subtree in order.
func (n *TreeNode) triangles(vd *VertexData) {
	if !n.IsLeaf() {
		n.leftChild.triangles(vd)
		n.rightChild.triangles(vd)
		return
	}
	if n.visible == terrain.Out || n.visible == terrain.Undefined {
		return
	}
	for i := range n.pos {
		vd.AddVertex(n.pos[i], n.color[i], n.tex[i])
	}
}

// leaves calls fn for every leaf of the subtree.
func (n *TreeNode) leaves(fn func(*TreeNode)) {
	if n.IsLeaf() {
		fn(n)
		return
	}
	n.leftChild.leaves(fn)
	n.rightChild.leaves(fn)
}

// walk calls fn for every node of the subtree, parents first.
func (n *TreeNode) walk(fn func(*TreeNode)) {
	fn(n)
	if !n.IsLeaf() {
		n.leftChild.walk(fn)
		n.rightChild.walk(fn)
	}
}

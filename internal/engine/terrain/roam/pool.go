package roam

// DefaultPoolSize is the default maximum number of idle nodes kept.
const DefaultPoolSize = 1 << 16

// NodePool is a free list of tree nodes shared by the patches of one
// landscape. It is not safe for concurrent use.
type NodePool struct {
	free      []*TreeNode
	limit     int
	allocated int
}

// NewNodePool creates a pool holding at most size idle nodes.
func NewNodePool(size int) *NodePool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &NodePool{limit: size}
}

// get returns an idle node, or a new one when the pool is empty.
func (p *NodePool) get() *TreeNode {
	index := len(p.free) - 1
	if index < 0 {
		p.allocated++
		n := &TreeNode{}
		n.reset()
		return n
	}
	n := p.free[index]
	p.free[index] = nil
	p.free = p.free[:index]
	n.pooled = false
	return n
}

// put returns a subtree to the pool. Nodes must already be out of every
// queue. Releasing a node twice is ignored.
func (p *NodePool) put(n *TreeNode) {
	if n == nil || n.pooled {
		return
	}
	if !n.IsLeaf() {
		p.put(n.leftChild)
		p.put(n.rightChild)
	}
	n.reset()
	n.pooled = true
	if len(p.free) < p.limit {
		p.free = append(p.free, n)
	} else {
		p.allocated--
	}
}

// Allocated returns the number of nodes created and not yet dropped.
func (p *NodePool) Allocated() int { return p.allocated }

// Free returns the number of idle nodes.
func (p *NodePool) Free() int { return len(p.free) }

// InUse returns the number of nodes currently handed out.
func (p *NodePool) InUse() int { return p.allocated - len(p.free) }

package roam

// Queue defaults.
const (
	DefaultBuckets  = 2048
	DefaultQueueTop = 0.2 // Radians; higher scores share the overflow bucket
)

// QueueOptions tunes the resolution of the priority queues.
type QueueOptions struct {
	Buckets int     `yaml:"buckets" toml:"buckets"`
	Top     float32 `yaml:"top" toml:"top"`
}

// DefaultQueueOptions returns 2048 buckets spanning [0, 0.2].
func DefaultQueueOptions() QueueOptions {
	return QueueOptions{Buckets: DefaultBuckets, Top: DefaultQueueTop}
}

func (o QueueOptions) normalized() QueueOptions {
	if o.Buckets <= 0 {
		o.Buckets = DefaultBuckets
	}
	if o.Top <= 0 {
		o.Top = DefaultQueueTop
	}
	return o
}

type queueKind uint8

const (
	triangleQueue queueKind = iota
	diamondQueue
)

// FastQueue is a bucketed priority queue of tree nodes. Scores are
// bucketed over [0, Top] with one overflow bucket above Top; each bucket is
// an intrusive doubly linked list, so add and remove are O(1). Only the
// extreme bucket is searched when a candidate is taken.
type FastQueue struct {
	kind     queueKind
	buckets  []*TreeNode
	scale    float32
	largest  int
	smallest int
	length   int
}

// newFastQueue creates an empty queue of the given kind.
func newFastQueue(kind queueKind, opts QueueOptions) *FastQueue {
	opts = opts.normalized()
	q := &FastQueue{
		kind:    kind,
		buckets: make([]*TreeNode, opts.Buckets+1),
		scale:   float32(opts.Buckets) / opts.Top,
	}
	q.resetBounds()
	return q
}

func (q *FastQueue) resetBounds() {
	q.largest = 0
	q.smallest = len(q.buckets) - 1
}

func (q *FastQueue) link(n *TreeNode) *queueLink {
	if q.kind == diamondQueue {
		return &n.diamondLink
	}
	return &n.triLink
}

func (q *FastQueue) score(n *TreeNode) float32 {
	if q.kind == diamondQueue {
		return n.diamondVariance
	}
	return n.variance
}

// bucketFor maps a score to its bucket index.
func (q *FastQueue) bucketFor(v float32) int {
	overflow := len(q.buckets) - 1
	switch {
	case !(v > 0): // zero, negative, NaN
		return 0
	case v*q.scale >= float32(overflow):
		return overflow
	}
	return int(v * q.scale)
}

// Add inserts n at its current score. It returns false when n was already
// queued; the node is then moved to the bucket of its current score.
func (q *FastQueue) Add(n *TreeNode) bool {
	fresh := !q.Remove(n)

	b := q.bucketFor(q.score(n))
	l := q.link(n)
	head := q.buckets[b]
	l.next = head
	l.prev = nil
	l.bucket = b
	if head != nil {
		q.link(head).prev = n
	}
	q.buckets[b] = n
	q.length++

	q.largest = max(q.largest, b)
	q.smallest = min(q.smallest, b)
	return fresh
}

// Remove unlinks n. It returns false when n was not queued.
func (q *FastQueue) Remove(n *TreeNode) bool {
	l := q.link(n)
	if l.bucket < 0 || l.bucket >= len(q.buckets) {
		return false
	}

	if l.prev != nil {
		q.link(l.prev).next = l.next
	} else if q.buckets[l.bucket] == n {
		q.buckets[l.bucket] = l.next
	} else {
		// Stale link from another queue generation
		*l = queueLink{bucket: -1}
		return false
	}
	if l.next != nil {
		q.link(l.next).prev = l.prev
	}
	*l = queueLink{bucket: -1}
	q.length--
	return true
}

// Contains reports whether n is queued.
func (q *FastQueue) Contains(n *TreeNode) bool {
	return q.link(n).bucket >= 0
}

// Last returns the node with the highest score, or nil. Scores inside
// bucket 0 are all below Top/Buckets and count as equal.
func (q *FastQueue) Last() *TreeNode {
	if q.length == 0 {
		q.resetBounds()
		return nil
	}
	for q.buckets[q.largest] == nil {
		q.largest--
	}
	return q.extreme(q.largest, 1)
}

// First returns the node with the lowest score, or nil. Scores inside
// bucket 0 count as equal.
func (q *FastQueue) First() *TreeNode {
	if q.length == 0 {
		q.resetBounds()
		return nil
	}
	for q.buckets[q.smallest] == nil {
		q.smallest++
	}
	return q.extreme(q.smallest, -1)
}

// extreme scans one bucket for its highest (sign 1) or lowest (sign -1)
// score.
func (q *FastQueue) extreme(bucket int, sign float32) *TreeNode {
	best := q.buckets[bucket]
	if bucket == 0 {
		return best
	}
	for n := q.link(best).next; n != nil; n = q.link(n).next {
		if sign*q.score(n) > sign*q.score(best) {
			best = n
		}
	}
	return best
}

// Len returns the number of queued nodes.
func (q *FastQueue) Len() int { return q.length }

// Clear unlinks every queued node.
func (q *FastQueue) Clear() {
	for i, head := range q.buckets {
		for n := head; n != nil; {
			l := q.link(n)
			next := l.next
			*l = queueLink{bucket: -1}
			n = next
		}
		q.buckets[i] = nil
	}
	q.length = 0
	q.resetBounds()
}

// QueueManager holds the split queue of leaf triangles and the merge queue
// of diamonds.
type QueueManager struct {
	triangles *FastQueue
	diamonds  *FastQueue
}

// NewQueueManager creates empty queues.
func NewQueueManager(opts QueueOptions) *QueueManager {
	return &QueueManager{
		triangles: newFastQueue(triangleQueue, opts),
		diamonds:  newFastQueue(diamondQueue, opts),
	}
}

// AddTriangle queues a leaf as a split candidate.
func (qm *QueueManager) AddTriangle(n *TreeNode) bool { return qm.triangles.Add(n) }

// RemoveTriangle removes a split candidate.
func (qm *QueueManager) RemoveTriangle(n *TreeNode) bool { return qm.triangles.Remove(n) }

// AddDiamond queues a diamond representative as a merge candidate.
func (qm *QueueManager) AddDiamond(n *TreeNode) bool { return qm.diamonds.Add(n) }

// RemoveDiamond removes a merge candidate.
func (qm *QueueManager) RemoveDiamond(n *TreeNode) bool { return qm.diamonds.Remove(n) }

// SplitCandidate returns the triangle with the highest variance, or nil.
func (qm *QueueManager) SplitCandidate() *TreeNode { return qm.triangles.Last() }

// MergeCandidate returns the diamond with the lowest variance, or nil.
func (qm *QueueManager) MergeCandidate() *TreeNode { return qm.diamonds.First() }

// Triangles returns the split queue.
func (qm *QueueManager) Triangles() *FastQueue { return qm.triangles }

// Diamonds returns the merge queue.
func (qm *QueueManager) Diamonds() *FastQueue { return qm.diamonds }

// Clear empties both queues.
func (qm *QueueManager) Clear() {
	qm.triangles.Clear()
	qm.diamonds.Clear()
}

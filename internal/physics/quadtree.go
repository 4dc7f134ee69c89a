package physics

// Quadtree is a bounded-capacity region quadtree for broad-phase collision detection.
// It is rebuilt from scratch every tick and stores body indices, never copies.
//
// A body is placed in every leaf its bounding square touches, so a body that
// straddles a dividing line appears in several leaves. Subdivision stops at
// maxDepth even if a leaf still holds more than capacity bodies. It also stops
// when every quadrant would receive the node's full body set, since such a
// split separates nothing and only repeats the same pairs in four leaves.
type Quadtree struct {
	capacity int
	maxDepth int
	nodes    []Node // nodes[0] is the root; reused between builds
}

// Node is a cell of the quadtree. A leaf holds body indices and no children;
// an internal node holds exactly four children and no bodies.
type Node struct {
	Region Region
	Depth  int
	Bodies []int // Indices into the body slice passed to Build (leaves only)

	child int // Index of the first of four consecutive children, or -1 for a leaf
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.child < 0
}

// NewQuadtree creates a quadtree with the given leaf capacity and depth bound.
func NewQuadtree(capacity, maxDepth int) *Quadtree {
	return &Quadtree{
		capacity: capacity,
		maxDepth: maxDepth,
	}
}

// Capacity returns the leaf capacity K.
func (t *Quadtree) Capacity() int {
	return t.capacity
}

// MaxDepth returns the depth at which subdivision stops.
func (t *Quadtree) MaxDepth() int {
	return t.maxDepth
}

// Build partitions bodies over region. The previous tree is discarded; its
// index slices are reset to [:0] and reused to avoid per-tick allocations.
// The root holds every body regardless of position.
func (t *Quadtree) Build(bodies []Body, region Region) {
	t.nodes = t.nodes[:0]
	root := t.alloc(region, 0)
	for i := range bodies {
		t.nodes[root].Bodies = append(t.nodes[root].Bodies, i)
	}
	t.subdivide(bodies, root)
}

// alloc appends a fresh leaf and returns its index.
func (t *Quadtree) alloc(region Region, depth int) int {
	idx := len(t.nodes)
	if idx < cap(t.nodes) {
		t.nodes = t.nodes[:idx+1]
	} else {
		t.nodes = append(t.nodes, Node{})
	}
	n := &t.nodes[idx]
	n.Region = region
	n.Depth = depth
	n.Bodies = n.Bodies[:0]
	n.child = -1
	return idx
}

// subdivide splits the node at idx into quadrants until each leaf holds at most
// capacity bodies, maxDepth is reached, or a split stops separating bodies.
func (t *Quadtree) subdivide(bodies []Body, idx int) {
	n := &t.nodes[idx]
	if len(n.Bodies) <= t.capacity || n.Depth >= t.maxDepth {
		return
	}

	members := n.Bodies
	depth := n.Depth + 1
	quads := n.Region.Quadrants()

	// alloc may grow t.nodes, so n must not be used past this point
	first := len(t.nodes)
	saturated := true
	for _, q := range quads {
		c := t.alloc(q, depth)
		for _, bi := range members {
			b := &bodies[bi]
			if q.Touches(b.Pos, b.Radius) {
				t.nodes[c].Bodies = append(t.nodes[c].Bodies, bi)
			}
		}
		if len(t.nodes[c].Bodies) < len(members) {
			saturated = false
		}
	}
	if saturated {
		// Drop the children; their slots are reused by the next alloc
		t.nodes = t.nodes[:first]
		return
	}
	t.nodes[idx].child = first
	t.nodes[idx].Bodies = members[:0]

	for i := range quads {
		t.subdivide(bodies, first+i)
	}
}

// Root returns the root node of the last build, or nil before the first build.
func (t *Quadtree) Root() *Node {
	if len(t.nodes) == 0 {
		return nil
	}
	return &t.nodes[0]
}

// Children returns the four children of n in top-left, top-right, bottom-left,
// bottom-right order. ok is false for a leaf.
func (t *Quadtree) Children(n *Node) (children [4]*Node, ok bool) {
	if n.IsLeaf() {
		return children, false
	}
	for i := range children {
		children[i] = &t.nodes[n.child+i]
	}
	return children, true
}

// Walk visits leaves depth-first in quadrant order. Every leaf is visited exactly once.
func (t *Quadtree) Walk(fn func(leaf *Node)) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, fn)
}

func (t *Quadtree) walk(idx int, fn func(leaf *Node)) {
	n := &t.nodes[idx]
	if n.IsLeaf() {
		fn(n)
		return
	}
	first := n.child
	for i := 0; i < 4; i++ {
		t.walk(first+i, fn)
	}
}

// NodeCount returns the number of nodes in the last build.
func (t *Quadtree) NodeCount() int {
	return len(t.nodes)
}

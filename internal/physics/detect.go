package physics

// Pair is an unordered pair of body indices with A < B.
type Pair struct {
	A, B int
}

// MakePair returns the canonical pair for i and j, so MakePair(i, j) == MakePair(j, i).
func MakePair(i, j int) Pair {
	if j < i {
		i, j = j, i
	}
	return Pair{A: i, B: j}
}

// Detector finds touching body pairs in the leaves of a built quadtree.
// The seen set and result slice are reused between calls.
type Detector struct {
	seen  map[Pair]struct{}
	pairs []Pair
}

// NewDetector creates a detector with empty reusable buffers.
func NewDetector() *Detector {
	return &Detector{
		seen: make(map[Pair]struct{}),
	}
}

// Detect returns every pair of distinct bodies sharing a leaf whose distance is
// at most the sum of their radii. A pair found in several straddled leaves is
// reported once. Pairs are returned in discovery order.
//
// The returned slice is only valid until the next call to Detect.
func (d *Detector) Detect(bodies []Body, tree *Quadtree) []Pair {
	clear(d.seen)
	d.pairs = d.pairs[:0]

	tree.Walk(func(leaf *Node) {
		items := leaf.Bodies
		for i := 0; i < len(items); i++ {
			a := &bodies[items[i]]
			for j := i + 1; j < len(items); j++ {
				if !CirclesTouch(a, &bodies[items[j]]) {
					continue
				}
				p := MakePair(items[i], items[j])
				if _, dup := d.seen[p]; dup {
					continue
				}
				d.seen[p] = struct{}{}
				d.pairs = append(d.pairs, p)
			}
		}
	})

	return d.pairs
}

package geom

import "sort"

// bvhNode is a node in the bounding volume hierarchy. Leaf nodes hold a
// small group of shapes for linear search; internal nodes hold children.
type bvhNode struct {
	bounds AABB
	left   *bvhNode
	right  *bvhNode
	shapes []Shape // non-nil for leaf nodes
}

// BVH is a bounding volume hierarchy over scene shapes. It is immutable
// after construction and safe to share across rendering workers.
type BVH struct {
	root *bvhNode
}

// Shapes with at most this count are stored in a leaf and searched linearly.
const leafThreshold = 4

// NewBVH builds a hierarchy over the given shapes using median splits
// along the longest axis. The input slice is copied, not modified.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}
	owned := make([]Shape, len(shapes))
	copy(owned, shapes)
	return &BVH{root: buildNode(owned)}
}

func buildNode(shapes []Shape) *bvhNode {
	bounds := shapes[0].BoundingBox()
	for _, s := range shapes[1:] {
		bounds = bounds.Union(s.BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &bvhNode{bounds: bounds, shapes: shapes}
	}

	axis := bounds.LongestAxis()
	sort.Slice(shapes, func(i, j int) bool {
		ci := shapes[i].BoundingBox().Center()
		cj := shapes[j].BoundingBox().Center()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})

	mid := len(shapes) / 2
	return &bvhNode{
		bounds: bounds,
		left:   buildNode(shapes[:mid]),
		right:  buildNode(shapes[mid:]),
	}
}

// Hit returns the closest intersection along the ray, if any.
func (b *BVH) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if b.root == nil {
		return nil, false
	}
	return b.root.hit(ray, tMin, tMax)
}

func (n *bvhNode) hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if !n.bounds.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if n.shapes != nil {
		var closest *HitRecord
		closestSoFar := tMax
		for _, s := range n.shapes {
			if hit, ok := s.Hit(ray, tMin, closestSoFar); ok {
				closest = hit
				closestSoFar = hit.T
			}
		}
		return closest, closest != nil
	}

	var closest *HitRecord
	closestSoFar := tMax
	if hit, ok := n.left.hit(ray, tMin, closestSoFar); ok {
		closest = hit
		closestSoFar = hit.T
	}
	if hit, ok := n.right.hit(ray, tMin, closestSoFar); ok {
		closest = hit
	}
	return closest, closest != nil
}

// Stats describes the shape of the hierarchy, used by scene inspection.
type Stats struct {
	Nodes    int
	Leaves   int
	Shapes   int
	MaxDepth int
}

// Stats walks the hierarchy and returns its structure counts.
func (b *BVH) Stats() Stats {
	var st Stats
	walkStats(b.root, 1, &st)
	return st
}

func walkStats(n *bvhNode, depth int, st *Stats) {
	if n == nil {
		return
	}
	st.Nodes++
	if depth > st.MaxDepth {
		st.MaxDepth = depth
	}
	if n.shapes != nil {
		st.Leaves++
		st.Shapes += len(n.shapes)
		return
	}
	walkStats(n.left, depth+1, st)
	walkStats(n.right, depth+1, st)
}

// Walk visits every node with its depth and leaf shape count. Internal
// nodes report a shape count of zero. Used to export the tree structure.
func (b *BVH) Walk(visit func(id, parent, depth, shapeCount int)) {
	nextID := 0
	var walk func(n *bvhNode, parent, depth int)
	walk = func(n *bvhNode, parent, depth int) {
		if n == nil {
			return
		}
		id := nextID
		nextID++
		visit(id, parent, depth, len(n.shapes))
		walk(n.left, id, depth+1)
		walk(n.right, id, depth+1)
	}
	walk(b.root, -1, 0)
}

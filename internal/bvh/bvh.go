// Package bvh implements a SAH-built, iteratively-traversed bounding
// volume hierarchy (spec.md §4.2). It is deliberately generic over what
// a "primitive" is: the bottom-level BVH indexes polygons, the top-level
// BVH indexes instances, and both are built and traversed by this same
// package — the caller supplies each primitive's bbox/centroid up front
// and a leaf-test callback at traversal time.
package bvh

import (
	"math"
	"sort"

	"github.com/VKoskiv/c-ray/internal/bbox"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// Primitive is the bbox/centroid a caller precomputes for each item
// going into the hierarchy.
type Primitive struct {
	Bbox   bbox.Box
	Center vecmath.Vector3
}

const (
	defaultLeafThreshold = 4
	sahBuckets           = 12
	traversalCost        = 1.0
)

type node struct {
	box bbox.Box
	// internal node: left/right index into Tree.nodes, count == 0.
	// leaf node: count > 0, start indexes into Tree.order.
	left, right int32
	start, count int32
}

// Tree is a built, read-only bounding volume hierarchy. The zero Tree
// (no nodes) is the "null BVH" from spec.md §4.2: any ray intersection
// against it is defined to be a miss.
type Tree struct {
	nodes []node
	order []int // permutation of the original primitive indices.
}

// Empty reports whether this is the null BVH (no primitives).
func (t *Tree) Empty() bool { return t == nil || len(t.nodes) == 0 }

// NodeCount returns the number of internal+leaf nodes actually built.
// Invariant (spec.md §8.6): for n primitives, NodeCount() <= 2n-1.
func (t *Tree) NodeCount() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Build constructs a BVH over the given primitives using a surface-area
// heuristic split search (spec.md §4.2). leafThreshold<=0 uses the
// recommended default of 4.
func Build(prims []Primitive, leafThreshold int) *Tree {
	if len(prims) == 0 {
		return &Tree{}
	}
	if leafThreshold <= 0 {
		leafThreshold = defaultLeafThreshold
	}
	order := make([]int, len(prims))
	for i := range order {
		order[i] = i
	}
	t := &Tree{}
	t.buildRange(prims, order, 0, len(order), leafThreshold)
	t.order = order
	return t
}

// buildRange recursively builds the hierarchy over order[start:end],
// appending nodes to t.nodes, and returns the index of the node built.
func (t *Tree) buildRange(prims []Primitive, order []int, start, end int, leafThreshold int) int32 {
	box := bbox.Empty()
	for i := start; i < end; i++ {
		box = bbox.Union(box, prims[order[i]].Bbox)
	}
	count := end - start

	if count <= leafThreshold {
		return t.appendLeaf(box, start, count)
	}

	splitAxis, splitIndex, found := chooseSplit(prims, order, start, end, box)
	if !found {
		return t.appendLeaf(box, start, count)
	}

	sub := order[start:end]
	sort.Slice(sub, func(i, j int) bool {
		return prims[sub[i]].Center.Component(splitAxis) < prims[sub[j]].Center.Component(splitAxis)
	})
	mid := start + splitIndex

	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{box: box}) // placeholder, patched below.
	left := t.buildRange(prims, order, start, mid, leafThreshold)
	right := t.buildRange(prims, order, mid, end, leafThreshold)
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	t.nodes[idx].count = 0
	return idx
}

func (t *Tree) appendLeaf(box bbox.Box, start, count int) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{box: box, start: int32(start), count: int32(count)})
	return idx
}

// chooseSplit evaluates the SAH cost of binning the longest axis into K
// buckets, trying the remaining axes in decreasing extent order if the
// longest axis yields no valid split (spec.md §4.2 tie-break), and
// returns the split axis and the position (as an index within
// order[start:end] once sorted along that axis) with the lowest cost,
// or found=false if no split beats the leaf cost.
func chooseSplit(prims []Primitive, order []int, start, end int, parentBox bbox.Box) (axis int, splitAt int, found bool) {
	count := end - start
	leafCost := float64(count)
	parentArea := parentBox.SurfaceArea()
	if parentArea == 0 {
		return 0, 0, false
	}

	bestCost := math.Inf(1)
	bestAxis := -1
	bestSplit := -1

	for _, candidateAxis := range parentBox.AxesByExtentDescending() {
		centroidMin := math.Inf(1)
		centroidMax := math.Inf(-1)
		for i := start; i < end; i++ {
			c := prims[order[i]].Center.Component(candidateAxis)
			centroidMin = math.Min(centroidMin, c)
			centroidMax = math.Max(centroidMax, c)
		}
		if centroidMax-centroidMin < 1e-12 {
			continue // degenerate along this axis, no useful split.
		}

		type bucket struct {
			box   bbox.Box
			count int
		}
		buckets := make([]bucket, sahBuckets)
		for i := range buckets {
			buckets[i].box = bbox.Empty()
		}
		bucketOf := func(c float64) int {
			b := int(float64(sahBuckets) * (c - centroidMin) / (centroidMax - centroidMin))
			if b < 0 {
				b = 0
			}
			if b >= sahBuckets {
				b = sahBuckets - 1
			}
			return b
		}
		for i := start; i < end; i++ {
			p := prims[order[i]]
			b := bucketOf(p.Center.Component(candidateAxis))
			buckets[b].box = bbox.Union(buckets[b].box, p.Bbox)
			buckets[b].count++
		}

		// Evaluate the K-1 candidate planes between buckets.
		for split := 1; split < sahBuckets; split++ {
			leftBox, rightBox := bbox.Empty(), bbox.Empty()
			leftCount, rightCount := 0, 0
			for i := 0; i < split; i++ {
				leftBox = bbox.Union(leftBox, buckets[i].box)
				leftCount += buckets[i].count
			}
			for i := split; i < sahBuckets; i++ {
				rightBox = bbox.Union(rightBox, buckets[i].box)
				rightCount += buckets[i].count
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			cost := traversalCost + (leftBox.SurfaceArea()*float64(leftCount)+rightBox.SurfaceArea()*float64(rightCount))/parentArea
			if cost < bestCost {
				bestCost = cost
				bestAxis = candidateAxis
				// translate bucket split back into a primitive count once sorted.
				bestSplit = leftCount
			}
		}
		if bestAxis == candidateAxis {
			// Found at least one valid split on this (highest-priority
			// remaining) axis; spec.md's tie-break only moves to the next
			// axis when the current one yields nothing, so stop here.
			break
		}
	}

	if bestAxis == -1 || bestCost >= leafCost {
		// No split beats the plain leaf cost on any axis: emit a leaf.
		return 0, 0, false
	}
	return bestAxis, bestSplit, true
}

type stackEntry struct {
	node int32
	tMin float64
}

// Intersect traverses the tree against ray, calling testPrim for every
// primitive index in every leaf whose bbox the ray enters, using the
// nearer-child-first / farther-child-deferred strategy from spec.md
// §4.2. testPrim returns whether it hit and at what ray parameter t;
// the closest reported hit wins. On the null BVH this always misses.
func (t *Tree) Intersect(ray vecmath.Ray, testPrim func(primIndex int) (hit bool, t float64)) (hit bool, closestT float64, closestPrim int) {
	if t.Empty() {
		return false, 0, -1
	}
	closestT = math.Inf(1)
	closestPrim = -1

	stack := make([]stackEntry, 0, 64)
	root := t.nodes[0]
	if ok, tmin := root.box.RayIntersect(ray); ok {
		stack = append(stack, stackEntry{node: 0, tMin: tmin})
	}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if entry.tMin >= closestT {
			continue
		}
		n := t.nodes[entry.node]
		if n.count > 0 {
			for i := n.start; i < n.start+n.count; i++ {
				primIndex := t.order[i]
				if ok, dist := testPrim(primIndex); ok && dist < closestT && dist >= 0 {
					closestT = dist
					closestPrim = primIndex
					hit = true
				}
			}
			continue
		}

		leftHit, leftT := t.nodes[n.left].box.RayIntersect(ray)
		rightHit, rightT := t.nodes[n.right].box.RayIntersect(ray)

		switch {
		case leftHit && rightHit:
			near, far := n.left, n.right
			nearT, farT := leftT, rightT
			if rightT < leftT {
				near, far = n.right, n.left
				nearT, farT = rightT, leftT
			}
			if farT < closestT {
				stack = append(stack, stackEntry{node: far, tMin: farT})
			}
			stack = append(stack, stackEntry{node: near, tMin: nearT})
		case leftHit:
			if leftT < closestT {
				stack = append(stack, stackEntry{node: n.left, tMin: leftT})
			}
		case rightHit:
			if rightT < closestT {
				stack = append(stack, stackEntry{node: n.right, tMin: rightT})
			}
		}
	}
	return hit, closestT, closestPrim
}

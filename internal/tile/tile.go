// Package tile implements the render tile model and the five tile
// reordering strategies of spec.md §4.7, grounded on the original
// C-ray tile.c.
package tile

import "math/rand"

// Tile is one rectangular region of the output image (spec.md §3).
// CompletedSamples and state fields are owned by the render package's
// coordinator, not mutated here; this struct is the plain data model.
type Tile struct {
	BeginX, BeginY int
	EndX, EndY     int
	Width, Height  int
	Num            int

	CompletedSamples int
	IsRendering      bool
	RenderComplete   bool
}

// Order selects how the tile list is traversed by the worker pool.
type Order int

const (
	Normal Order = iota
	TopToBottom
	Random
	FromMiddle
	ToMiddle
)

// Partition splits an imageWidth x imageHeight image into tileSize x
// tileSize tiles, row-major, with the final row/column of tiles
// clipped to the image bounds.
func Partition(imageWidth, imageHeight, tileSize int) []Tile {
	var tiles []Tile
	num := 0
	for y := 0; y < imageHeight; y += tileSize {
		for x := 0; x < imageWidth; x += tileSize {
			endX := min(x+tileSize, imageWidth)
			endY := min(y+tileSize, imageHeight)
			tiles = append(tiles, Tile{
				BeginX: x, BeginY: y,
				EndX: endX, EndY: endY,
				Width: endX - x, Height: endY - y,
				Num: num,
			})
			num++
		}
	}
	return tiles
}

// Reorder returns a permutation of tiles' indices in the traversal
// order named by strategy. rng is used only by Random; pass nil for
// the other strategies.
func Reorder(tiles []Tile, strategy Order, rng *rand.Rand) []int {
	n := len(tiles)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	switch strategy {
	case Normal:
		return order

	case TopToBottom:
		// original_source's reorderTopToBottom reverses the row-major
		// array Normal leaves untouched (bottom row first); mirror that
		// instead of coinciding with Normal.
		reversed := make([]int, n)
		for i, v := range order {
			reversed[n-1-i] = v
		}
		return reversed

	case Random:
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		return order

	case FromMiddle:
		return middleOutOrder(n)

	case ToMiddle:
		fromMiddle := middleOutOrder(n)
		toMiddle := make([]int, n)
		for i, v := range fromMiddle {
			toMiddle[n-1-i] = v
		}
		return toMiddle
	}
	return order
}

// middleOutOrder returns indices [0,n) ordered by increasing distance
// from the center index, center first.
func middleOutOrder(n int) []int {
	if n == 0 {
		return nil
	}
	center := n / 2
	order := make([]int, 0, n)
	order = append(order, center)
	for offset := 1; len(order) < n; offset++ {
		if center-offset >= 0 {
			order = append(order, center-offset)
		}
		if len(order) < n && center+offset < n {
			order = append(order, center+offset)
		}
	}
	return order
}

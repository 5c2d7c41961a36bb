package tile

import (
	"math/rand"
	"testing"
)

func TestPartitionCoversWholeImageExactly(t *testing.T) {
	tiles := Partition(100, 80, 32)
	covered := make([][]bool, 80)
	for i := range covered {
		covered[i] = make([]bool, 100)
	}
	for _, tl := range tiles {
		for y := tl.BeginY; y < tl.EndY; y++ {
			for x := tl.BeginX; x < tl.EndX; x++ {
				if covered[y][x] {
					t.Fatalf("pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[y][x] = true
			}
		}
	}
	for y := range covered {
		for x := range covered[y] {
			if !covered[y][x] {
				t.Fatalf("pixel (%d,%d) not covered by any tile", x, y)
			}
		}
	}
}

func TestReorderNormalIsIdentity(t *testing.T) {
	tiles := Partition(64, 64, 16)
	order := Reorder(tiles, Normal, nil)
	for i, idx := range order {
		if idx != i {
			t.Fatalf("normal order changed index %d -> %d", i, idx)
		}
	}
}

func TestReorderTopToBottomReversesNormal(t *testing.T) {
	tiles := Partition(64, 64, 16)
	normal := Reorder(tiles, Normal, nil)
	topToBottom := Reorder(tiles, TopToBottom, nil)
	n := len(tiles)
	for i := 0; i < n; i++ {
		if topToBottom[i] != normal[n-1-i] {
			t.Fatalf("topToBottom[%d] = %d, want reversed normal %d", i, topToBottom[i], normal[n-1-i])
		}
	}
}

func TestReorderRandomIsPermutation(t *testing.T) {
	tiles := Partition(64, 64, 16)
	order := Reorder(tiles, Random, rand.New(rand.NewSource(42)))
	seen := make(map[int]bool)
	for _, idx := range order {
		seen[idx] = true
	}
	if len(seen) != len(tiles) {
		t.Errorf("random order is not a permutation: got %d distinct of %d", len(seen), len(tiles))
	}
}

func TestReorderFromMiddleStartsAtCenter(t *testing.T) {
	tiles := Partition(64, 64, 16)
	order := Reorder(tiles, FromMiddle, nil)
	if order[0] != len(tiles)/2 {
		t.Errorf("got first index %d, want center %d", order[0], len(tiles)/2)
	}
}

func TestReorderToMiddleEndsAtCenter(t *testing.T) {
	tiles := Partition(64, 64, 16)
	order := Reorder(tiles, ToMiddle, nil)
	if order[len(order)-1] != len(tiles)/2 {
		t.Errorf("got last index %d, want center %d", order[len(order)-1], len(tiles)/2)
	}
}

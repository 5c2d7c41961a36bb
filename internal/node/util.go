package node

import "math"

func hashBits(f float64) uint64 {
	return math.Float64bits(f)
}

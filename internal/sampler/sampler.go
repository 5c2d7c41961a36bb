// Package sampler provides the deterministic, per-pixel low-discrepancy
// source the path tracer draws from. Every dimension pulled during a
// path's lifetime must be decorrelated from the others, and the whole
// sequence must be reproducible from (passIndex, pixelIndex) alone so
// that re-rendering the same tile assignment on a different thread count
// yields identical images (spec.md §4.1, §8 invariant 4/scenario 6).
package sampler

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// maxSamplerDim bounds the precomputed prime table. A path can consume
// roughly half a dozen dimensions per bounce (BSDF sample, Russian
// roulette, disc/sphere sampling), so this comfortably covers any
// realistic bounces setting; dimensions beyond it wrap via modulo in
// basisFor rather than growing the table at render time.
const maxSamplerDim = 1024

// haltonPrimes is the first maxSamplerDim primes, computed once at
// package init and never mutated afterward. Every Sampler reads this
// table concurrently (internal/render/pool.go runs Config.ThreadCount
// worker goroutines, each driving its own Sampler), so it must stay
// read-only for the lifetime of the process: a package-level slice
// that workers both read and append to is a data race, and spec.md §5
// requires the sampler be thread-local with no shared mutable state.
var haltonPrimes = buildPrimeTable(maxSamplerDim)

func buildPrimeTable(n int) []int {
	primes := make([]int, n)
	primes[0] = 2
	for i := 1; i < n; i++ {
		primes[i] = nextPrime(primes[i-1])
	}
	return primes
}

func nextPrime(after int) int {
	candidate := after + 1
	for {
		isPrime := true
		for d := 2; d*d <= candidate; d++ {
			if candidate%d == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			return candidate
		}
		candidate++
	}
}

func basisFor(dim int) int {
	return haltonPrimes[dim%len(haltonPrimes)]
}

// radicalInverse computes the base-b radical inverse of index i, the
// core of the Halton sequence: digits of i in base b are reflected
// around the radix point.
func radicalInverse(i uint64, base int) float64 {
	var result float64
	f := 1.0 / float64(base)
	for i > 0 {
		result += f * float64(i%uint64(base))
		i /= uint64(base)
		f /= float64(base)
	}
	return result
}

// Sampler is a thread-local, deterministic source of [0,1) values.
// Seeded by (passIndex, pixelIndex), every NextDim() call advances to
// the next Halton dimension; two samplers constructed with the same
// seed produce the same sequence regardless of which goroutine owns
// them (no shared mutable state).
type Sampler struct {
	index uint64 // combined (passIndex, pixelIndex) Halton sequence index.
	dim   int    // next dimension (prime base) to draw from.
}

// New seeds a sampler for the given render pass and flattened pixel index.
// The sequence index mixes both so that every (pass, pixel) pair gets its
// own non-overlapping Halton point, not just a different starting dimension.
func New(passIndex, pixelIndex int) *Sampler {
	mixed := uint64(pixelIndex)*0x9E3779B97F4A7C15 + uint64(passIndex) + 1
	return &Sampler{index: mixed}
}

// NextDim returns the next dimension of the Halton sequence in [0,1).
func (s *Sampler) NextDim() float64 {
	base := basisFor(s.dim)
	s.dim++
	return radicalInverse(s.index, base)
}

// RandomCoordOnUnitDisc returns a point (x,y) with x²+y²≤1, sampled via
// the standard polar mapping r=√ξ₁, θ=2πξ₂ (spec.md §4.1).
func (s *Sampler) RandomCoordOnUnitDisc() (x, y float64) {
	r := math.Sqrt(s.NextDim())
	theta := 2 * math.Pi * s.NextDim()
	return r * math.Cos(theta), r * math.Sin(theta)
}

// RandomOnUnitSphere returns a uniformly distributed unit vector.
func (s *Sampler) RandomOnUnitSphere() vecmath.Vector3 {
	u := s.NextDim()
	v := s.NextDim()
	theta := 2 * math.Pi * u
	phi := math.Acos(2*v - 1)
	sinPhi := math.Sin(phi)
	return vecmath.Vector3{X: sinPhi * math.Cos(theta), Y: sinPhi * math.Sin(theta), Z: math.Cos(phi)}
}

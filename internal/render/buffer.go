// Package render implements the tile-scheduled worker pool that drives
// the integrator across an image: the float accumulation buffer, the
// 8-bit output frame, the progress coordinator, and tonemap-on-write
// (spec.md §4.7/§4.8), grounded on the teacher's eg/rt.go worker shape
// and frame.go's render-loop structure.
package render

import "github.com/VKoskiv/c-ray/internal/color"

// Buffer is the float-precision linear-radiance accumulator, distinct
// from the 8-bit output Frame (spec.md §3's "render buffer"). Each
// pixel holds the running average of every sample traced for it.
type Buffer struct {
	Width, Height int
	pixels        []color.Color
	samples       []int
}

// NewBuffer allocates a zeroed accumulation buffer for a width x height
// image.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:   width,
		Height:  height,
		pixels:  make([]color.Color, width*height),
		samples: make([]int, width*height),
	}
}

// Accumulate folds one new sample into pixel (x,y)'s running average
// using the Welford-style incremental update of spec.md §9
// ("running += (new - running)/k"), preferred over the source's
// "(running*(k-1)+new)/k" form because it does not require
// reconstructing the unnormalized sum and is less prone to
// catastrophic cancellation at high k.
func (b *Buffer) Accumulate(x, y int, sample color.Color) color.Color {
	idx := y*b.Width + x
	b.samples[idx]++
	k := float64(b.samples[idx])
	running := b.pixels[idx]
	running.R += (sample.R - running.R) / k
	running.G += (sample.G - running.G) / k
	running.B += (sample.B - running.B) / k
	b.pixels[idx] = running
	return running
}

// At returns the current running average for pixel (x,y).
func (b *Buffer) At(x, y int) color.Color {
	return b.pixels[y*b.Width+x]
}

// Samples returns how many samples have been accumulated into pixel
// (x,y) so far.
func (b *Buffer) Samples(x, y int) int {
	return b.samples[y*b.Width+x]
}

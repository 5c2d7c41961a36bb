package render

import (
	"image"
	imgcolor "image/color"

	"github.com/VKoskiv/c-ray/internal/color"
)

// Frame is the 8-bit sRGB output image, written progressively as each
// pixel's running average improves (spec.md §4.7 step 2's "convert to
// sRGB, write the 8-bit output image pixel"). It wraps a stdlib
// *image.NRGBA so imageio's PNG/BMP encoders can consume it directly.
type Frame struct {
	Img *image.NRGBA
}

// NewFrame allocates an opaque-black width x height frame.
func NewFrame(width, height int) *Frame {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255 // opaque unless a texture declares alpha (spec.md §4.8).
	}
	return &Frame{Img: img}
}

// Set tonemaps linear and writes it as the 8-bit pixel at (x,y).
func (f *Frame) Set(x, y int, linear color.Color) {
	f.Img.SetNRGBA(x, y, imgcolor.NRGBA{
		R: color.ToSRGB8(linear.R),
		G: color.ToSRGB8(linear.G),
		B: color.ToSRGB8(linear.B),
		A: 255,
	})
}

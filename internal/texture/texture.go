// Package texture implements image textures: byte or float pixel
// storage, linear or sRGB colorspace tagging, and filtered/unfiltered
// pixel lookup (spec.md §3), grounded on the original C-ray
// datatypes/image/texture.c.
package texture

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/color"
)

// Precision is the storage representation of a texture's pixels.
type Precision int

const (
	Byte8 Precision = iota
	Float32
)

// Colorspace tags whether stored samples are already linear light or
// need the sRGB-to-linear transfer function applied on read.
type Colorspace int

const (
	Linear Colorspace = iota
	SRGB
)

// Image is a 2D texture. Pixel storage is row-major, origin top-left.
// Exactly one of byteData/floatData is populated, selected by Precision.
type Image struct {
	Width, Height int
	Channels      int
	Precision     Precision
	Colorspace    Colorspace
	HasAlpha      bool

	byteData  []uint8
	floatData []float64
}

// NewByteImage allocates a zeroed 8-bit texture. channels>3 implies an
// alpha channel, matching the source's convention.
func NewByteImage(width, height, channels int) *Image {
	return &Image{
		Width: width, Height: height, Channels: channels,
		Precision: Byte8, HasAlpha: channels > 3,
		byteData: make([]uint8, width*height*channels),
	}
}

// NewFloatImage allocates a zeroed floating-point texture (used for HDR
// environment maps).
func NewFloatImage(width, height, channels int) *Image {
	return &Image{
		Width: width, Height: height, Channels: channels,
		Precision: Float32, HasAlpha: channels > 3,
		floatData: make([]float64, width*height*channels),
	}
}

func (img *Image) index(x, y int) int {
	return (x + y*img.Width) * img.Channels
}

// SetPixel writes c into pixel (x,y), clamping into [0,255] for byte
// storage.
func (img *Image) SetPixel(x, y int, c color.Color) {
	i := img.index(x, y)
	switch img.Precision {
	case Byte8:
		img.byteData[i+0] = clampByte(c.R)
		img.byteData[i+1] = clampByte(c.G)
		img.byteData[i+2] = clampByte(c.B)
		if img.HasAlpha {
			img.byteData[i+3] = 255
		}
	case Float32:
		img.floatData[i+0] = c.R
		img.floatData[i+1] = c.G
		img.floatData[i+2] = c.B
		if img.HasAlpha {
			img.floatData[i+3] = 1
		}
	}
}

func clampByte(v float64) uint8 {
	v *= 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (img *Image) rawPixel(x, y int) color.Color {
	if img.Width == 0 || img.Height == 0 {
		return color.Black
	}
	x = ((x % img.Width) + img.Width) % img.Width
	y = ((y % img.Height) + img.Height) % img.Height
	i := img.index(x, y)

	var r, g, b float64
	switch img.Precision {
	case Byte8:
		r = float64(img.byteData[i+0]) / 255
		if img.Channels == 1 {
			g, b = r, r
		} else {
			g = float64(img.byteData[i+1]) / 255
			b = float64(img.byteData[i+2]) / 255
		}
	case Float32:
		r = img.floatData[i+0]
		if img.Channels == 1 {
			g, b = r, r
		} else {
			g = img.floatData[i+1]
			b = img.floatData[i+2]
		}
	}
	c := color.Color{R: r, G: g, B: b}
	if img.Colorspace == SRGB {
		c = color.Color{R: color.FromSRGB(c.R), G: color.FromSRGB(c.G), B: color.FromSRGB(c.B)}
	}
	return c
}

// GetPixel samples the image (spec.md §3). When filtered is true, (x,y)
// are normalized [0,1) coordinates and the result is bilinearly
// interpolated; otherwise they are integer pixel indices wrapped modulo
// the image dimensions.
func (img *Image) GetPixel(x, y float64, filtered bool) color.Color {
	if !filtered {
		return img.rawPixel(int(x), int(y))
	}
	fx := x * float64(img.Width)
	fy := y * float64(img.Height)
	xCopy := fx - 0.5
	yCopy := fy - 0.5
	xInt := int(math.Floor(xCopy))
	yInt := int(math.Floor(yCopy))

	topLeft := img.rawPixel(xInt, yInt)
	topRight := img.rawPixel(xInt+1, yInt)
	botLeft := img.rawPixel(xInt, yInt+1)
	botRight := img.rawPixel(xInt+1, yInt+1)

	tx := xCopy - float64(xInt)
	ty := yCopy - float64(yInt)
	top := topLeft.Lerp(topRight, tx)
	bot := botLeft.Lerp(botRight, tx)
	return top.Lerp(bot, ty)
}

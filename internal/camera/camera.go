// Package camera implements primary ray construction: subpixel jitter,
// thin-lens depth of field, and the composite transform into world
// space (spec.md §4.6), grounded on the teacher's camera.go location/
// orientation/composite-transform shape.
package camera

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// Camera holds the parameters needed to build primary rays for an
// image of ImageWidth x ImageHeight pixels. Composite maps camera-local
// space into world space.
type Camera struct {
	ImageWidth, ImageHeight int
	FOV                     float64 // radians, horizontal field of view.
	Aperture                float64 // lens radius; 0 disables depth of field.
	FocalDistance           float64
	Composite               vecmath.Matrix4
}

// triangleFilter maps a uniform [0,1) sample to a triangular-filter
// offset in (-1,1), per spec.md §4.6 step 1.
func triangleFilter(u float64) float64 {
	v := 2*u - 1
	sign := 1.0
	if v < 0 {
		sign = -1.0
	}
	return sign * (1 - math.Sqrt(math.Abs(v)))
}

// Ray builds one primary ray for pixel (x,y), seeding its own sampler
// dimensions for subpixel jitter and (when Aperture>0) lens sampling.
// The caller's sampler is the same one used later to path-trace the
// ray, so every dimension pulled here consumes from the pixel's
// deterministic sequence (spec.md §4.1/§4.7).
func (c *Camera) Ray(x, y int, s *sampler.Sampler) vecmath.Ray {
	jx := triangleFilter(s.NextDim())
	jy := triangleFilter(s.NextDim())

	aspect := float64(c.ImageWidth) / float64(c.ImageHeight)
	sensorWidth := 2 * math.Tan(c.FOV/2)
	sensorHeight := sensorWidth / aspect

	forward := vecmath.Vector3{Z: 1}
	right := vecmath.Vector3{X: 1}
	up := vecmath.Vector3{Y: 1}

	pixX := right.Scale(sensorWidth / float64(c.ImageWidth))
	pixY := up.Scale(sensorHeight / float64(c.ImageHeight))

	px := float64(x) - float64(c.ImageWidth)/2 + jx + 0.5
	py := float64(y) - float64(c.ImageHeight)/2 + jy + 0.5

	dir := forward.Add(pixX.Scale(px)).Add(pixY.Scale(py)).Normalize()
	origin := vecmath.Vector3{}

	if c.Aperture > 0 {
		focusT := c.FocalDistance / dir.Dot(forward)
		focusPoint := origin.Add(dir.Scale(focusT))

		lx, ly := s.RandomCoordOnUnitDisc()
		lensOffset := right.Scale(lx * c.Aperture).Add(up.Scale(ly * c.Aperture))
		origin = origin.Add(lensOffset)
		dir = focusPoint.Sub(origin).Normalize()
	}

	return vecmath.Ray{
		Origin:    c.Composite.MulPoint(origin),
		Direction: c.Composite.MulDir(dir).Normalize(),
	}
}

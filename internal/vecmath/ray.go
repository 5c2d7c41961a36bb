package vecmath

// Ray is a parametric ray: point(t) = Origin + t*Direction. Direction is
// not required to be normalized by every producer (e.g. instance-space
// rays after a non-uniform scale), callers that need unit length
// normalize explicitly.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// At returns the point along the ray at parameter t.
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Offset returns a copy of r with the origin pushed along dir by eps,
// used to avoid self-intersection when spawning a new bounce ray.
func (r Ray) Offset(point, dir Vector3, eps float64) Ray {
	return Ray{Origin: point.Add(dir.Scale(eps)), Direction: dir}
}

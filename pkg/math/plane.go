package math

// Plane is the set of points p with Normal.Dot(p) + D == 0.
// Points with a positive signed distance lie in front of the plane.
type Plane struct {
	Normal Vec3
	D      float32
}

// PlaneFromVec4 builds a normalized plane from (a, b, c, d) coefficients.
func PlaneFromVec4(v Vec4) Plane {
	p := Plane{Normal: Vec3{v[0], v[1], v[2]}, D: v[3]}
	return p.Normalize()
}

// Normalize scales the plane so that Normal has unit length.
func (p Plane) Normalize() Plane {
	l := p.Normal.Length()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Scale(1 / l), D: p.D / l}
}

// Distance returns the signed distance from the plane to point v.
func (p Plane) Distance(v Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

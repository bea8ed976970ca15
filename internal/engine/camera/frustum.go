package camera

import (
	"github.com/Faultbox/midgard-roam/internal/engine/terrain"
	"github.com/Faultbox/midgard-roam/pkg/math"
)

// Plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum is a six-plane view volume. It implements terrain.ViewFrustum.
// Plane normals point inwards.
type Frustum struct {
	camera *Camera
	planes [6]math.Plane
}

// NewFrustum creates a frustum tracking cam. cam may be nil, in which case
// planes are set with SetMatrix.
func NewFrustum(cam *Camera) *Frustum {
	f := &Frustum{camera: cam}
	f.ViewingPlatformMoved()
	return f
}

// ViewingPlatformMoved rebuilds the planes from the bound camera.
func (f *Frustum) ViewingPlatformMoved() {
	if f.camera == nil {
		return
	}
	f.SetMatrix(f.camera.ViewProjection())
}

// SetMatrix extracts the planes from a combined projection * view matrix.
func (f *Frustum) SetMatrix(m math.Mat4) {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	f.planes[PlaneLeft] = math.PlaneFromVec4(r3.Add(r0))
	f.planes[PlaneRight] = math.PlaneFromVec4(r3.Sub(r0))
	f.planes[PlaneBottom] = math.PlaneFromVec4(r3.Add(r1))
	f.planes[PlaneTop] = math.PlaneFromVec4(r3.Sub(r1))
	f.planes[PlaneNear] = math.PlaneFromVec4(r3.Add(r2))
	f.planes[PlaneFar] = math.PlaneFromVec4(r3.Sub(r2))
}

// ContainsPoint reports whether p is inside every plane.
func (f *Frustum) ContainsPoint(p math.Vec3) bool {
	for _, pl := range f.planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// TriangleVisibility classifies a triangle: Out when all three vertices are
// behind one plane, Clipped when some vertex is behind some plane, In
// otherwise. The Out test is conservative near frustum corners.
func (f *Frustum) TriangleVisibility(p1, p2, p3 math.Vec3) terrain.Visibility {
	clipped := false
	for _, pl := range f.planes {
		behind := 0
		if pl.Distance(p1) < 0 {
			behind++
		}
		if pl.Distance(p2) < 0 {
			behind++
		}
		if pl.Distance(p3) < 0 {
			behind++
		}
		if behind == 3 {
			return terrain.Out
		}
		if behind > 0 {
			clipped = true
		}
	}
	if clipped {
		return terrain.Clipped
	}
	return terrain.In
}

// Everything is a ViewFrustum that reports every triangle as fully visible.
type Everything struct{}

// TriangleVisibility implements terrain.ViewFrustum.
func (Everything) TriangleVisibility(p1, p2, p3 math.Vec3) terrain.Visibility {
	return terrain.In
}

// ViewingPlatformMoved implements terrain.ViewFrustum.
func (Everything) ViewingPlatformMoved() {}

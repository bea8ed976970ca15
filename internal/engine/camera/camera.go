// Package camera provides the viewpoint and view volume used to drive
// terrain level of detail.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-roam/pkg/math"
)

// Camera is a free-flying viewpoint.
//
// Yaw 0 looks along -Z (towards increasing terrain grid Y); positive yaw
// turns towards +X. Negative pitch looks down.
type Camera struct {
	Pos   math.Vec3
	Yaw   float32 // Horizontal angle (radians)
	Pitch float32 // Vertical angle (radians)

	// Projection
	FovY   float32 // Vertical field of view (radians)
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	// Constraints
	MinPitch float32
	MaxPitch float32
}

// New creates a camera with a 60 degree field of view.
func New() *Camera {
	return &Camera{
		Pos:      math.Vec3{Y: 100},
		Pitch:    -0.3,
		FovY:     math32.Pi / 3,
		Aspect:   16.0 / 9.0,
		Near:     1,
		Far:      5000,
		MinPitch: -1.5,
		MaxPitch: 1.5,
	}
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 {
	return c.Pos
}

// Direction returns the unit gaze vector.
func (c *Camera) Direction() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: math32.Sin(c.Yaw) * cp,
		Y: math32.Sin(c.Pitch),
		Z: -math32.Cos(c.Yaw) * cp,
	}
}

// MoveTo places the camera at p.
func (c *Camera) MoveTo(p math.Vec3) {
	c.Pos = p
}

// LookAlong points the camera along dir. A zero vector is ignored.
func (c *Camera) LookAlong(dir math.Vec3) {
	if dir.Length() == 0 {
		return
	}
	d := dir.Normalize()
	c.Pitch = c.clampPitch(math32.Asin(d.Y))
	if d.X != 0 || d.Z != 0 {
		c.Yaw = math32.Atan2(d.X, -d.Z)
	}
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math.Vec3) {
	c.LookAlong(target.Sub(c.Pos))
}

// Turn rotates the camera by yaw and pitch deltas (radians).
func (c *Camera) Turn(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = c.clampPitch(c.Pitch + dPitch)
}

// Advance moves the camera over the ground, forward along its heading and
// right across it. Altitude is unchanged.
func (c *Camera) Advance(forward, right float32) {
	sin, cos := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	c.Pos.X += sin*forward + cos*right
	c.Pos.Z += -cos*forward + sin*right
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	dir := c.Direction()
	// LookAt degenerates when gazing straight up or down
	if math32.Abs(dir.Y) > 0.999 {
		up = math.Vec3{X: math32.Sin(c.Yaw), Z: -math32.Cos(c.Yaw)}
	}
	return math.LookAt(c.Pos, c.Pos.Add(dir), up)
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

func (c *Camera) clampPitch(p float32) float32 {
	if p < c.MinPitch {
		return c.MinPitch
	}
	if p > c.MaxPitch {
		return c.MaxPitch
	}
	return p
}

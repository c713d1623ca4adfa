package motion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FirstPersonCamera is a position plus yaw and pitch, looking down -Z at zero.
type FirstPersonCamera struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Sensitivity float32
}

// NewFirstPersonCamera places a camera at pos looking down -Z.
func NewFirstPersonCamera(pos mgl32.Vec3, sensitivity float32) *FirstPersonCamera {
	return &FirstPersonCamera{Position: pos, Sensitivity: sensitivity}
}

// Look applies a mouse delta in pixels. Moving right turns right and moving down
// looks down. Pitch stops just short of straight up or down.
func (c *FirstPersonCamera) Look(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	limit := math32.Pi/2 - 1e-3
	c.Pitch = mgl32.Clamp(c.Pitch, -limit, limit)
}

// Orientation returns yaw about +Y followed by pitch about the local X axis.
func (c *FirstPersonCamera) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Yaw, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(c.Pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Forward returns the unit view direction.
func (c *FirstPersonCamera) Forward() mgl32.Vec3 {
	return c.Orientation().Rotate(forwardAxis)
}

// Target returns a point one unit in front of the camera.
func (c *FirstPersonCamera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward())
}

// Move adds d to the position.
func (c *FirstPersonCamera) Move(d mgl32.Vec3) {
	c.Position = c.Position.Add(d)
}

// Package motion turns held keys and mouse movement into camera movement: the
// first-person walk in the showroom and the orbit camera on the podium.
package motion

import (
	"car-showroom/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpeed is the walking speed in world units per second.
const DefaultSpeed float32 = 200

var (
	forwardAxis = mgl32.Vec3{0, 0, -1}
	rightAxis   = mgl32.Vec3{1, 0, 0}
)

// Integrator computes the per-frame walking displacement.
type Integrator struct {
	Speed float32
}

// NewIntegrator returns an integrator moving at speed units per second.
func NewIntegrator(speed float32) Integrator {
	return Integrator{Speed: speed}
}

// Displacement returns how far the camera moves this frame. The camera walks on
// the horizontal plane regardless of pitch, at constant speed along any
// combination of keys. The second result is false when nothing should move:
// the pointer is not locked, no keys are held, opposite keys cancel or the view
// points straight up or down.
func (in Integrator) Displacement(keys input.MovementKeys, orientation mgl32.Quat, locked bool, dt float32) (mgl32.Vec3, bool) {
	if !locked || !keys.Any() {
		return mgl32.Vec3{}, false
	}
	forward := flatten(orientation.Rotate(forwardAxis))
	right := flatten(orientation.Rotate(rightAxis))
	if forward == (mgl32.Vec3{}) && right == (mgl32.Vec3{}) {
		return mgl32.Vec3{}, false
	}

	var dir mgl32.Vec3
	if keys.Forward {
		dir = dir.Add(forward)
	}
	if keys.Backward {
		dir = dir.Sub(forward)
	}
	if keys.Right {
		dir = dir.Add(right)
	}
	if keys.Left {
		dir = dir.Sub(right)
	}
	if dir.Len() < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return dir.Normalize().Mul(in.Speed * dt), true
}

// flatten drops the vertical component and renormalizes. A vector with no
// horizontal extent becomes zero.
func flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	if v.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

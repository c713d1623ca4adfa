package motion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles a target on a sphere. Azimuth is measured around +Y from
// +Z and elevation up from the horizontal plane.
type OrbitCamera struct {
	target    mgl32.Vec3
	position  mgl32.Vec3
	radius    float32
	azimuth   float32
	elevation float32

	MinRadius    float32
	MaxRadius    float32
	MinElevation float32
	MaxElevation float32
	OrbitSpeed   float32
	ZoomSpeed    float32
}

// NewOrbitCamera returns a camera with podium-sized limits framed at pos
// looking at target.
func NewOrbitCamera(pos, target mgl32.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		MinRadius:    10,
		MaxRadius:    2000,
		MinElevation: -0.1,
		MaxElevation: math32.Pi/2 - 0.05,
		OrbitSpeed:   0.005,
		ZoomSpeed:    0.1,
	}
	c.Frame(pos, target)
	return c
}

// Frame puts the camera exactly at pos looking at target. The limits do not
// apply until the next Orbit or Zoom.
func (c *OrbitCamera) Frame(pos, target mgl32.Vec3) {
	c.target = target
	c.position = pos
	off := pos.Sub(target)
	c.radius = off.Len()
	if c.radius < 1e-6 {
		c.azimuth, c.elevation = 0, 0
		return
	}
	c.elevation = math32.Asin(mgl32.Clamp(off[1]/c.radius, -1, 1))
	c.azimuth = math32.Atan2(off[0], off[2])
}

func (c *OrbitCamera) Position() mgl32.Vec3 { return c.position }
func (c *OrbitCamera) Target() mgl32.Vec3   { return c.target }
func (c *OrbitCamera) Radius() float32      { return c.radius }

// Orbit rotates by a drag delta in pixels.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	c.azimuth -= dx * c.OrbitSpeed
	c.elevation += dy * c.OrbitSpeed
	c.elevation = mgl32.Clamp(c.elevation, c.MinElevation, c.MaxElevation)
	c.update()
}

// Zoom scales the radius by a wheel step. Positive steps move closer.
func (c *OrbitCamera) Zoom(steps float32) {
	c.radius *= 1 - steps*c.ZoomSpeed
	c.radius = mgl32.Clamp(c.radius, c.MinRadius, c.MaxRadius)
	c.update()
}

func (c *OrbitCamera) update() {
	cosElev, sinElev := math32.Cos(c.elevation), math32.Sin(c.elevation)
	cosAzim, sinAzim := math32.Cos(c.azimuth), math32.Sin(c.azimuth)
	c.position = mgl32.Vec3{
		c.target[0] + c.radius*cosElev*sinAzim,
		c.target[1] + c.radius*sinElev,
		c.target[2] + c.radius*cosElev*cosAzim,
	}
}

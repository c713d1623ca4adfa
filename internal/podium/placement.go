// Package podium shows one car on a turntable podium: it loads the podium and
// car models, places the car on top, frames the orbit camera, spins the car
// and drives the control panel.
package podium

import (
	"car-showroom/internal/scenegraph"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// CarZOffset moves the car container back from the podium center.
	CarZOffset float32 = 52

	cameraFrontMargin float32 = 20
	cameraSideOffset  float32 = 30
	cameraRise        float32 = 15
	cameraDistance    float32 = 60
	emptyTargetHeight float32 = 10
)

// Placement is everything derived from the podium and car boxes in one pass.
type Placement struct {
	PodiumBox    scenegraph.Box
	PodiumTopY   float32
	PodiumCenter mgl32.Vec3

	HasCar      bool
	CarBox      scenegraph.Box
	PivotOffset mgl32.Vec3
	CarHeight   float32
	HalfHeight  float32

	// Container is the position reported to the control panel. Seated is
	// where the container actually goes: its origin on the podium top, which
	// puts the car's lowest point on the surface.
	Container      mgl32.Vec3
	Seated         mgl32.Vec3
	CameraPosition mgl32.Vec3
	CameraTarget   mgl32.Vec3
}

// Place positions car (which may be nil) for the given podium box. The car's
// local transform is reset, turned by rotY and scaled, then shifted so the
// middle of its footprint and its lowest point sit on the container origin.
// The result depends only on the inputs, so placing again gives the same
// transform.
func Place(podiumBox scenegraph.Box, car *scenegraph.Node, scale mgl32.Vec3, rotY float32) Placement {
	p := Placement{
		PodiumBox:    podiumBox,
		PodiumTopY:   podiumBox.Max[1],
		PodiumCenter: podiumBox.Center(),
	}

	if car != nil {
		car.ResetTransform()
		car.Rotation[1] = rotY
		car.Scale = scale
		box := car.LocalBounds()
		if !box.IsEmpty() {
			center := box.Center()
			p.HasCar = true
			p.CarBox = box
			p.PivotOffset = mgl32.Vec3{center[0], box.Min[1], center[2]}
			p.CarHeight = box.Size()[1]
			p.HalfHeight = p.CarHeight / 2
			car.Position = car.Position.Sub(p.PivotOffset)
		}
	}

	p.Container = mgl32.Vec3{
		p.PodiumCenter[0],
		p.PodiumTopY + p.HalfHeight,
		p.PodiumCenter[2] - CarZOffset,
	}
	p.Seated = mgl32.Vec3{p.Container[0], p.PodiumTopY, p.Container[2]}

	targetY := p.PodiumCenter[1] + emptyTargetHeight
	if p.CarHeight > 0 {
		targetY = p.PodiumCenter[1] + p.CarHeight*0.5
	}
	frontZ := podiumBox.Max[2] + cameraFrontMargin
	p.CameraPosition = mgl32.Vec3{
		p.PodiumCenter[0] + cameraSideOffset,
		targetY + cameraRise,
		frontZ + cameraDistance,
	}
	p.CameraTarget = mgl32.Vec3{p.PodiumCenter[0], targetY, p.PodiumCenter[2]}
	return p
}

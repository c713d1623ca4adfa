package graphics

import (
	"car-showroom/internal/scenegraph"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	sphereRings     = 24
	sphereSlices    = 24
	cylinderSlices  = 48
	planeResolution = 1
)

// primitive is a generated unit mesh. offset moves it into the node's local
// origin before the node transform applies.
type primitive struct {
	mesh   rl.Mesh
	offset rl.Matrix
}

// primitives maps scenegraph primitive keys to meshes. Meshes are created on
// first use so GPU resources are allocated after the window exists.
type primitives struct {
	cache map[string]primitive
}

func newPrimitives() *primitives {
	return &primitives{cache: make(map[string]primitive)}
}

// get returns the mesh for key, generating it on first use.
func (p *primitives) get(key string) (primitive, bool) {
	if c, ok := p.cache[key]; ok {
		return c, true
	}
	var c primitive
	c.offset = rl.MatrixIdentity()
	switch key {
	case scenegraph.PrimitiveCube:
		c.mesh = rl.GenMeshCube(1, 1, 1)
	case scenegraph.PrimitiveSphere:
		c.mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case scenegraph.PrimitiveCylinder:
		// Raylib cylinder: base Y=0, top Y=height.
		c.mesh = rl.GenMeshCylinder(0.5, 1, cylinderSlices)
		c.offset = rl.MatrixTranslate(0, -0.5, 0)
	case scenegraph.PrimitivePlane:
		c.mesh = rl.GenMeshPlane(1, 1, planeResolution, planeResolution)
	default:
		return primitive{}, false
	}
	p.cache[key] = c
	return c, true
}

func (p *primitives) unload() {
	for k, c := range p.cache {
		rl.UnloadMesh(&c.mesh)
		delete(p.cache, k)
	}
}

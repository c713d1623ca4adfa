package scenegraph

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Primitive mesh keys. Primitives are unit sized and centered on the origin;
// the node scale gives their real size.
const (
	PrimitiveCube     = "primitive:cube"
	PrimitiveSphere   = "primitive:sphere"
	PrimitiveCylinder = "primitive:cylinder"
	PrimitivePlane    = "primitive:plane"
)

// IsPrimitive reports whether key names a generated mesh rather than a model file.
func IsPrimitive(key string) bool {
	return strings.HasPrefix(key, "primitive:")
}

func primitiveBounds(key string) Box {
	if key == PrimitivePlane {
		return NewBox(mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, 0, 0.5})
	}
	return NewBox(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5})
}

// NewPrimitive returns a mesh node of the given primitive scaled to size. A
// plane lies in XZ facing +Y; a cylinder stands along Y.
func NewPrimitive(name, key string, size mgl32.Vec3, mat *Material) *Node {
	n := NewMeshNode(name, &Mesh{
		Key:      key,
		Bounds:   primitiveBounds(key),
		Material: mat,
	})
	n.Scale = size
	return n
}

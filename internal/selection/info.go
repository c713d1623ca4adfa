package selection

import (
	"fmt"

	"car-showroom/internal/scenegraph"
)

// Field is one editable transform component of the info panel.
type Field int

const (
	PositionX Field = iota
	PositionY
	PositionZ
	RotationX
	RotationY
	RotationZ
	ScaleX
	ScaleY
	ScaleZ
	fieldCount
)

// Fields lists every field in panel order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

var fieldLabels = [fieldCount]string{"X", "Y", "Z", "X", "Y", "Z", "X", "Y", "Z"}

// Label returns the axis letter.
func (f Field) Label() string { return fieldLabels[f] }

// Group returns the panel section the field belongs to.
func (f Field) Group() string {
	switch {
	case f <= PositionZ:
		return "Position"
	case f <= RotationZ:
		return "Rotation (Radians)"
	default:
		return "Scale"
	}
}

// Step is the increment of one nudge.
func (f Field) Step() float32 {
	switch {
	case f <= PositionZ:
		return 10
	case f <= RotationZ:
		return 0.01
	default:
		return 0.1
	}
}

// Value reads the field from n.
func (f Field) Value(n *scenegraph.Node) float32 {
	axis := int(f) % 3
	switch {
	case f <= PositionZ:
		return n.Position[axis]
	case f <= RotationZ:
		return n.Rotation[axis]
	default:
		return n.Scale[axis]
	}
}

// Set writes v to the field of n.
func (f Field) Set(n *scenegraph.Node, v float32) {
	axis := int(f) % 3
	switch {
	case f <= PositionZ:
		n.Position[axis] = v
	case f <= RotationZ:
		n.Rotation[axis] = v
	default:
		n.Scale[axis] = v
	}
}

// Nudge moves the field of n by dir steps.
func (f Field) Nudge(n *scenegraph.Node, dir int) {
	f.Set(n, f.Value(n)+float32(dir)*f.Step())
}

// Format renders the value the way the panel shows it.
func (f Field) Format(n *scenegraph.Node) string {
	return fmt.Sprintf("%.2f", f.Value(n))
}

// Info is the header of the object info panel.
type Info struct {
	Name string
	UUID string
}

// Describe returns the panel header for n.
func Describe(n *scenegraph.Node) Info {
	name := n.Name
	if name == "" {
		name = "Unnamed Object"
	}
	return Info{Name: name, UUID: n.ID.String()}
}

package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Kind tags a node so callers can tell car roots apart without walking the tree.
type Kind int

const (
	KindGeneric Kind = iota
	KindCarRoot
)

func (k Kind) String() string {
	switch k {
	case KindCarRoot:
		return "car-root"
	default:
		return "generic"
	}
}

// Mesh references renderable geometry owned by the graphics layer. Key identifies
// the source model (asset path or primitive name) and Index the mesh inside it.
type Mesh struct {
	Key      string
	Index    int
	Bounds   Box
	Material *Material
}

// Node is one element of the scene tree. Position, Rotation (Euler XYZ, radians)
// and Scale describe the transform relative to the parent.
type Node struct {
	ID       uuid.UUID
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Mesh  *Mesh
	Label string

	Visible       bool
	Interactive   bool
	CastShadow    bool
	ReceiveShadow bool

	kind     Kind
	carID    string
	parent   *Node
	children []*Node
}

// NewGroup returns an empty generic node with identity transform.
func NewGroup(name string) *Node {
	return &Node{
		ID:      uuid.New(),
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
		kind:    KindGeneric,
	}
}

// NewCarRoot returns the group that owns every node of a showroom car.
func NewCarRoot(name, carID string) *Node {
	n := NewGroup(name)
	n.kind = KindCarRoot
	n.carID = carID
	return n
}

// NewMeshNode returns a generic node drawing mesh.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewGroup(name)
	n.Mesh = mesh
	return n
}

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsCarRoot() bool { return n.kind == KindCarRoot }

// CarID returns the ID of the car root this node belongs to, if any.
func (n *Node) CarID() (string, bool) {
	return n.carID, n.carID != ""
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// AddChild reparents c under n. When n is (or lives under) a car root, the car ID
// is stamped on the whole subtree of c.
func (n *Node) AddChild(c *Node) {
	if c == nil || c == n {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
	if n.carID != "" {
		stampCarID(c, n.carID)
	}
}

// RemoveChild detaches c from n. Nodes below c that are not inside another car
// root lose their car ID.
func (n *Node) RemoveChild(c *Node) {
	for i, child := range n.children {
		if child != c {
			continue
		}
		n.children = append(n.children[:i], n.children[i+1:]...)
		c.parent = nil
		if c.kind != KindCarRoot {
			stampCarID(c, "")
		}
		return
	}
}

// ClearChildren detaches every child.
func (n *Node) ClearChildren() {
	for len(n.children) > 0 {
		n.RemoveChild(n.children[len(n.children)-1])
	}
}

func stampCarID(n *Node, id string) {
	if n.kind == KindCarRoot {
		return
	}
	n.carID = id
	for _, c := range n.children {
		stampCarID(c, id)
	}
}

// Walk visits n and its descendants depth first. Returning false from fn skips
// the subtree of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// ResetTransform sets identity position, rotation and scale.
func (n *Node) ResetTransform() {
	n.Position = mgl32.Vec3{}
	n.Rotation = mgl32.Vec3{}
	n.Scale = mgl32.Vec3{1, 1, 1}
}

// LocalMatrix composes translation, XYZ Euler rotation and scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := mgl32.HomogRotate3DX(n.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation[2]))
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix multiplies local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the origin of n in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldBounds returns the world-space box of every mesh in the subtree of n.
// A subtree without meshes yields an empty box.
func (n *Node) WorldBounds() Box {
	return n.boundsUnder(n.parentMatrix())
}

// LocalBounds returns the box of the subtree of n in its parent's space, as if
// n had no ancestors.
func (n *Node) LocalBounds() Box {
	return n.boundsUnder(mgl32.Ident4())
}

func (n *Node) parentMatrix() mgl32.Mat4 {
	if n.parent == nil {
		return mgl32.Ident4()
	}
	return n.parent.WorldMatrix()
}

func (n *Node) boundsUnder(parent mgl32.Mat4) Box {
	world := parent.Mul4(n.LocalMatrix())
	box := EmptyBox()
	if n.Mesh != nil {
		box = box.Union(n.Mesh.Bounds.Transform(world))
	}
	for _, c := range n.children {
		box = box.Union(c.boundsUnder(world))
	}
	return box
}

// Clone deep copies the subtree of n. Every copy gets a fresh ID and its own
// material; mesh geometry keys are shared. The clone has no parent and keeps
// the car ID only if it is itself a car root.
func (n *Node) Clone() *Node {
	c := &Node{
		ID:            uuid.New(),
		Name:          n.Name,
		Position:      n.Position,
		Rotation:      n.Rotation,
		Scale:         n.Scale,
		Label:         n.Label,
		Visible:       n.Visible,
		Interactive:   n.Interactive,
		CastShadow:    n.CastShadow,
		ReceiveShadow: n.ReceiveShadow,
		kind:          n.kind,
	}
	if n.kind == KindCarRoot {
		c.carID = n.carID
	}
	if n.Mesh != nil {
		m := *n.Mesh
		m.Material = n.Mesh.Material.Clone()
		c.Mesh = &m
	}
	for _, child := range n.children {
		c.AddChild(child.Clone())
	}
	return c
}

// SetMaterial assigns a copy of m to every mesh in the subtree.
func (n *Node) SetMaterial(m *Material) {
	n.Walk(func(x *Node) bool {
		if x.Mesh != nil {
			x.Mesh.Material = m.Clone()
		}
		return true
	})
}

// SetShadows sets the cast and receive flags on every mesh in the subtree.
func (n *Node) SetShadows(cast, receive bool) {
	n.Walk(func(x *Node) bool {
		if x.Mesh != nil {
			x.CastShadow = cast
			x.ReceiveShadow = receive
		}
		return true
	})
}

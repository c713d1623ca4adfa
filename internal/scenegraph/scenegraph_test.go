package scenegraph

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitMesh(key string) *Mesh {
	return &Mesh{
		Key:      key,
		Bounds:   NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}),
		Material: NewMaterial(0x444444, 0.5, 0.8),
	}
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestEmptyBox(t *testing.T) {
	b := EmptyBox()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, mgl32.Vec3{}, b.Center())
	assert.Equal(t, mgl32.Vec3{}, b.Size())

	b = b.ExpandByPoint(mgl32.Vec3{1, 2, 3})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.Max)
}

func TestBoxUnion(t *testing.T) {
	a := NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	b := NewBox(mgl32.Vec3{-2, 0.5, 0}, mgl32.Vec3{0, 3, 0.5})

	u := a.Union(b)
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, u.Min)
	assert.Equal(t, mgl32.Vec3{1, 3, 1}, u.Max)
	assert.Equal(t, a, a.Union(EmptyBox()))
	assert.Equal(t, a, EmptyBox().Union(a))
}

func TestBoxTransform(t *testing.T) {
	b := NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 1, 1})

	moved := b.Transform(mgl32.Translate3D(10, 0, 0))
	assertVec(t, mgl32.Vec3{10, 0, 0}, moved.Min)
	assertVec(t, mgl32.Vec3{12, 1, 1}, moved.Max)

	turned := b.Transform(mgl32.HomogRotate3DY(math32.Pi / 2))
	assertVec(t, mgl32.Vec3{0, 0, -2}, turned.Min)
	assertVec(t, mgl32.Vec3{1, 1, 0}, turned.Max)
}

func TestBoxIntersectRay(t *testing.T) {
	b := NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	d, ok := b.IntersectRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.InDelta(t, 9, d, 1e-5)

	_, ok = b.IntersectRay(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{0, 0, -1})
	assert.False(t, ok)

	_, ok = b.IntersectRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1})
	assert.False(t, ok, "box behind the ray")

	d, ok = b.IntersectRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.Zero(t, d)
}

func TestCarIDStampedOnAttach(t *testing.T) {
	root := NewCarRoot("car", "bugattiBolide")
	body := NewGroup("body")
	wheel := NewMeshNode("wheel", unitMesh("car.glb"))
	body.AddChild(wheel)

	_, ok := wheel.CarID()
	assert.False(t, ok)

	root.AddChild(body)
	id, ok := wheel.CarID()
	assert.True(t, ok)
	assert.Equal(t, "bugattiBolide", id)
	assert.Same(t, root, CarRoot(wheel))

	root.RemoveChild(body)
	_, ok = wheel.CarID()
	assert.False(t, ok)
	assert.Nil(t, CarRoot(wheel))
	assert.Nil(t, body.Parent())
}

func TestNestedCarRootKeepsOwnID(t *testing.T) {
	scene := NewGroup("scene")
	car := NewCarRoot("car", "asparkOwl")
	scene.AddChild(car)

	id, ok := car.CarID()
	assert.True(t, ok)
	assert.Equal(t, "asparkOwl", id)
	assert.Equal(t, KindCarRoot, car.Kind())
	assert.Equal(t, KindGeneric, scene.Kind())

	scene.RemoveChild(car)
	id, _ = car.CarID()
	assert.Equal(t, "asparkOwl", id)
}

func TestAddChildReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)
	assert.Same(t, b, c.Parent())
}

func TestWorldBounds(t *testing.T) {
	scene := NewGroup("scene")
	container := NewGroup("container")
	container.Position = mgl32.Vec3{0, 10, 0}
	container.Scale = mgl32.Vec3{2, 2, 2}
	mesh := NewMeshNode("m", unitMesh("m"))
	mesh.Position = mgl32.Vec3{1, 0, 0}
	container.AddChild(mesh)
	scene.AddChild(container)

	box := container.WorldBounds()
	assertVec(t, mgl32.Vec3{0, 8, -2}, box.Min)
	assertVec(t, mgl32.Vec3{4, 12, 2}, box.Max)
	assertVec(t, mgl32.Vec3{2, 10, 0}, mesh.WorldPosition())

	assert.True(t, NewGroup("empty").WorldBounds().IsEmpty())
}

func TestCloneIsDeep(t *testing.T) {
	tmpl := NewGroup("template")
	part := NewMeshNode("part", unitMesh("car.glb"))
	part.Interactive = true
	tmpl.AddChild(part)

	a := tmpl.Clone()
	b := tmpl.Clone()
	require.Len(t, a.Children(), 1)
	require.Len(t, b.Children(), 1)

	pa, pb := a.Children()[0], b.Children()[0]
	assert.NotEqual(t, tmpl.ID, a.ID)
	assert.NotEqual(t, pa.ID, pb.ID)
	assert.NotSame(t, pa.Mesh, pb.Mesh)
	assert.NotSame(t, pa.Mesh.Material, pb.Mesh.Material)
	assert.True(t, pa.Interactive)

	pa.Mesh.Material.Color = ColorHex(0xff0000)
	assert.Equal(t, ColorHex(0x444444), pb.Mesh.Material.Color)
	assert.Equal(t, ColorHex(0x444444), part.Mesh.Material.Color)
}

func TestCloneUnderCarRoot(t *testing.T) {
	tmpl := NewGroup("template")
	tmpl.AddChild(NewMeshNode("part", unitMesh("car.glb")))

	root := NewCarRoot("car", "gumpertApollo")
	root.AddChild(tmpl.Clone())

	require.Len(t, root.Children(), 1)
	part := root.Children()[0].Children()[0]
	assert.Equal(t, "part", part.Name)
	id, ok := part.CarID()
	assert.True(t, ok)
	assert.Equal(t, "gumpertApollo", id)
	_, ok = tmpl.Children()[0].CarID()
	assert.False(t, ok)
}

func TestRaycastNearestInteractive(t *testing.T) {
	scene := NewGroup("scene")

	near := NewMeshNode("near", unitMesh("a"))
	near.Position = mgl32.Vec3{0, 0, 5}
	near.Interactive = true

	far := NewMeshNode("far", unitMesh("b"))
	far.Interactive = true

	blocker := NewMeshNode("blocker", unitMesh("c"))
	blocker.Position = mgl32.Vec3{0, 0, 8}

	scene.AddChild(far)
	scene.AddChild(near)
	scene.AddChild(blocker)

	hit, ok := Raycast(scene, mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.Same(t, near, hit.Node)
	assert.InDelta(t, 14, hit.Distance, 1e-4)

	near.Visible = false
	hit, ok = Raycast(scene, mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.Same(t, far, hit.Node)

	_, ok = Raycast(scene, mgl32.Vec3{0, 50, 20}, mgl32.Vec3{0, 0, -1})
	assert.False(t, ok)
}

func TestRaycastInheritsInteractive(t *testing.T) {
	scene := NewGroup("scene")
	garage := NewGroup("ShowroomGarage")
	garage.Interactive = true
	wall := NewMeshNode("wall", unitMesh("garage.glb"))
	garage.AddChild(wall)
	scene.AddChild(garage)

	hit, ok := Raycast(scene, mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.Same(t, wall, hit.Node)
	assert.Same(t, garage, InteractiveAncestor(wall))
}

func TestSetMaterialAndShadows(t *testing.T) {
	g := NewGroup("podium")
	a := NewMeshNode("a", unitMesh("p"))
	b := NewMeshNode("b", unitMesh("p"))
	g.AddChild(a)
	g.AddChild(b)

	mat := NewMaterial(0x00ffff, 0.1, 0.2)
	g.SetMaterial(mat)
	g.SetShadows(true, true)

	assert.NotSame(t, a.Mesh.Material, b.Mesh.Material)
	assert.Equal(t, mat.Color, a.Mesh.Material.Color)
	assert.True(t, a.CastShadow)
	assert.True(t, b.ReceiveShadow)
	assert.False(t, g.CastShadow)
}

func TestColorHex(t *testing.T) {
	c := ColorHex(0x336699)
	assert.InDelta(t, 0.2, c[0], 1e-6)
	assert.InDelta(t, 0.4, c[1], 1e-6)
	assert.InDelta(t, 0.6, c[2], 1e-6)
	assert.Equal(t, float32(1), c[3])
}

func TestPrimitiveBounds(t *testing.T) {
	platform := NewPrimitive("platform", PrimitiveCylinder, mgl32.Vec3{72, 10, 72}, NewMaterial(0x333333, 0.6, 0.4))
	platform.Position = mgl32.Vec3{400, -8, 0}
	box := platform.WorldBounds()
	assertVec(t, mgl32.Vec3{364, -13, -36}, box.Min)
	assertVec(t, mgl32.Vec3{436, -3, 36}, box.Max)

	ground := NewPrimitive("ground", PrimitivePlane, mgl32.Vec3{5000, 1, 5000}, nil)
	ground.Position = mgl32.Vec3{0, -5, 0}
	ground.Interactive = true
	hit, ok := Raycast(ground, mgl32.Vec3{0, 100, 0}, mgl32.Vec3{0, -1, 0})
	require.True(t, ok)
	assert.InDelta(t, 105, hit.Distance, 1e-3)

	assert.True(t, IsPrimitive(PrimitiveSphere))
	assert.False(t, IsPrimitive("cars/a/scene.gltf"))
}

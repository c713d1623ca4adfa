package showroom

import (
	"context"
	"errors"
	"io"
	"testing"

	"car-showroom/internal/assets"
	"car-showroom/internal/catalog"
	"car-showroom/internal/scenegraph"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	pending map[string][]chan assets.Result
	calls   []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{pending: make(map[string][]chan assets.Result)}
}

func (f *fakeLoader) Load(_ context.Context, path string) <-chan assets.Result {
	ch := make(chan assets.Result, 1)
	f.calls = append(f.calls, path)
	f.pending[path] = append(f.pending[path], ch)
	return ch
}

func (f *fakeLoader) resolve(path string, n *scenegraph.Node, err error) {
	for _, ch := range f.pending[path] {
		ch <- assets.Result{Path: path, Node: n, Err: err}
	}
	delete(f.pending, path)
}

func carModel() *scenegraph.Node {
	g := scenegraph.NewGroup("model")
	g.AddChild(scenegraph.NewMeshNode("body", &scenegraph.Mesh{
		Key:      "body",
		Bounds:   scenegraph.NewBox(mgl32.Vec3{-1, 0, -2}, mgl32.Vec3{1, 1, 2}),
		Material: scenegraph.NewMaterial(0xffffff, 1, 0),
	}))
	return g
}

func newTestComposer(t *testing.T) (*Composer, *fakeLoader) {
	t.Helper()
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	loader := newFakeLoader()
	cfg := Config{GaragePath: DefaultGaragePath}
	c := NewComposer(loader, cat, cfg, log.New(io.Discard))
	c.Build()
	t.Cleanup(c.Close)
	return c, loader
}

func TestBuildCreatesCarSlots(t *testing.T) {
	c, loader := newTestComposer(t)

	require.Len(t, c.Cars(), 4)
	assert.Equal(t, 5, c.Pending())
	assert.Contains(t, loader.calls, DefaultGaragePath)

	slot, ok := c.Car("asparkOwl")
	require.True(t, ok)
	assert.True(t, slot.Root.IsCarRoot())
	assert.Equal(t, mgl32.Vec3{400, 0, 0}, slot.Root.Position)
	assert.Equal(t, "Loading "+slot.Record.Label()+"...", slot.Label.Label)

	assert.Equal(t, "platform-asparkOwl", slot.Platform.Name)
	assert.InDeltaSlice(t, []float32{400, -8, 0}, slot.Platform.Position[:], 1e-4)
	assert.InDeltaSlice(t, []float32{72, 10, 72}, slot.Platform.Scale[:], 1e-4)
	assert.True(t, slot.Platform.CastShadow)
	assert.Nil(t, slot.Platform.Parent().Parent())
}

func TestCarLoadPlacesModelAndLabel(t *testing.T) {
	c, loader := newTestComposer(t)
	slot, _ := c.Car("asparkOwl")

	loader.resolve(slot.Record.AssetPath, carModel(), nil)
	c.Update()

	require.NotNil(t, slot.Model)
	assert.Equal(t, slot.Record.ShowroomScale, slot.Model.Scale)
	assert.Equal(t, slot.Record.Label(), slot.Label.Label)
	assert.InDelta(t, 40, slot.Label.Position[1], 1e-4)

	id, ok := slot.Model.Children()[0].CarID()
	require.True(t, ok)
	assert.Equal(t, "asparkOwl", id)
	assert.True(t, slot.Model.Children()[0].CastShadow)
	assert.Equal(t, 4, c.Pending())
}

func TestCarLoadFailureKeepsOthers(t *testing.T) {
	c, loader := newTestComposer(t)
	failed, _ := c.Car("bugattiBolide")
	other, _ := c.Car("gumpertApollo")

	loader.resolve(failed.Record.AssetPath, nil, errors.New("missing"))
	loader.resolve(other.Record.AssetPath, carModel(), nil)
	c.Update()

	assert.Error(t, failed.Err)
	assert.Nil(t, failed.Model)
	assert.Equal(t, "Failed to load "+failed.Record.Label(), failed.Label.Label)
	assert.NotNil(t, other.Model)
}

func TestGarageLoad(t *testing.T) {
	c, loader := newTestComposer(t)
	assert.True(t, c.Garage().Interactive)
	assert.Empty(t, c.Garage().Children())

	loader.resolve(DefaultGaragePath, carModel(), nil)
	c.Update()

	require.Len(t, c.Garage().Children(), 1)
	_, isCar := c.Garage().Children()[0].CarID()
	assert.False(t, isCar)
}

func TestPickCarThroughScene(t *testing.T) {
	c, loader := newTestComposer(t)
	slot, _ := c.Car("asparkOwl")
	loader.resolve(slot.Record.AssetPath, carModel(), nil)
	c.Update()

	hit, ok := scenegraph.Raycast(c.Root(), mgl32.Vec3{400, 15, 500}, mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	root := scenegraph.CarRoot(hit.Node)
	require.NotNil(t, root)
	assert.Same(t, slot.Root, root)
}

func TestBuildAgainReplacesScene(t *testing.T) {
	c, _ := newTestComposer(t)
	first := c.Root()
	second := c.Build()

	assert.NotSame(t, first, second)
	assert.Len(t, c.Cars(), 4)
	assert.Equal(t, 5, c.Pending())
}

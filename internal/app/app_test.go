package app

import (
	"context"
	"io"
	"testing"

	"car-showroom/internal/assets"
	"car-showroom/internal/catalog"
	"car-showroom/internal/config"
	"car-showroom/internal/input"
	"car-showroom/internal/navigation"
	"car-showroom/internal/scenegraph"
	"car-showroom/internal/storage"
	"car-showroom/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCarPath = "cars/test_car/scene.gltf"

type fakeLoader struct {
	pending map[string][]chan assets.Result
	calls   []string
}

func (f *fakeLoader) Load(_ context.Context, path string) <-chan assets.Result {
	ch := make(chan assets.Result, 1)
	f.calls = append(f.calls, path)
	f.pending[path] = append(f.pending[path], ch)
	return ch
}

func (f *fakeLoader) resolve(path string, n *scenegraph.Node) {
	for _, ch := range f.pending[path] {
		ch <- assets.Result{Path: path, Node: n}
	}
	delete(f.pending, path)
}

func boxModel() *scenegraph.Node {
	g := scenegraph.NewGroup("model")
	g.AddChild(scenegraph.NewMeshNode("body", &scenegraph.Mesh{
		Key:      "body",
		Bounds:   scenegraph.NewBox(mgl32.Vec3{-1, 0, -2}, mgl32.Vec3{1, 1, 2}),
		Material: scenegraph.NewMaterial(0xffffff, 1, 0),
	}))
	return g
}

// fakePointer locks and unlocks immediately.
type fakePointer struct {
	locked           bool
	onLock, onUnlock func()
	lockCalls        int
}

func (p *fakePointer) Lock() {
	p.lockCalls++
	p.locked = true
	p.onLock()
}

func (p *fakePointer) Unlock() {
	p.locked = false
	p.onUnlock()
}

func (p *fakePointer) IsLocked() bool { return p.locked }

func (p *fakePointer) Subscribe(onLock, onUnlock func()) func() {
	p.onLock, p.onUnlock = onLock, onUnlock
	return func() { p.onLock, p.onUnlock = func() {}, func() {} }
}

type heldKeys map[input.KeyCode]bool

func (h heldKeys) IsKeyDown(k input.KeyCode) bool { return h[k] }

type fixture struct {
	app    *App
	loader *fakeLoader
	store  storage.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.New([]catalog.CarRecord{{
		ID:               "testCar",
		DisplayName:      "Test Car",
		AssetPath:        testCarPath,
		ShowroomScale:    mgl32.Vec3{30, 30, 30},
		ShowroomPosition: mgl32.Vec3{800, 0, 0},
		PodiumScale:      mgl32.Vec3{8, 8, 8},
	}})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Assets.FloorImage = ""
	cfg.Assets.Poster = ""
	cfg.Assets.Stylesheet = ""

	f := &fixture{
		loader: &fakeLoader{pending: make(map[string][]chan assets.Result)},
		store:  storage.NewMemory(),
	}
	f.app = New(Deps{
		Config:  cfg,
		Catalog: cat,
		Storage: f.store,
		Loader:  f.loader,
		Logger:  log.New(io.Discard),
		FPS:     func() int32 { return 60 },
	})
	t.Cleanup(f.app.Close)
	return f
}

func (f *fixture) frame(fr Frame) {
	if fr.ScreenW == 0 {
		fr.ScreenW, fr.ScreenH = 1280, 720
	}
	if fr.Dt == 0 {
		fr.Dt = 1.0 / 60
	}
	f.app.Update(fr)
}

func ray(origin mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: mgl32.Vec3{0, 0, -1}}
}

func TestClickingCarOpensPodium(t *testing.T) {
	f := newFixture(t)
	f.loader.resolve(testCarPath, boxModel())
	f.frame(Frame{})

	f.frame(Frame{Clicked: true, MouseX: 5, MouseY: 300, Cursor: ray(mgl32.Vec3{800, 15, 500})})

	raw, ok, err := f.store.Get(navigation.SlotKey)
	require.NoError(t, err)
	require.True(t, ok)
	snap, err := navigation.DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, testCarPath, snap.Path)
	assert.Equal(t, "Test Car", snap.DisplayName)

	assert.Equal(t, navigation.RoutePodium, f.app.Route())
	assert.True(t, f.app.Store().PodiumViewActive())
	assert.Nil(t, f.app.Store().Selected())
	assert.True(t, f.app.Podium().Mounted())
	assert.Equal(t, testCarPath, f.app.Podium().Snapshot().Path)
	assert.Contains(t, f.loader.calls, config.Default().Podium.Model)
	assert.Same(t, f.app.Podium().Root(), f.app.Scene())
}

func TestClickingObjectSelectsAndCarDoesNot(t *testing.T) {
	f := newFixture(t)
	f.loader.resolve(testCarPath, boxModel())
	f.loader.resolve(config.Default().Assets.Garage, boxModel())
	f.frame(Frame{})

	f.frame(Frame{Clicked: true, MouseX: 5, MouseY: 300, Cursor: ray(mgl32.Vec3{0, -49.85, 0})})
	garage := f.app.Store().Selected()
	require.NotNil(t, garage)
	assert.Equal(t, "body", garage.Name)
	assert.True(t, f.app.Store().ShowObjectInfoPanel())
	assert.Equal(t, []*scenegraph.Node{garage}, f.app.OutlineTargets())

	// The open info panel keeps its object selected while the pointer moves on.
	f.frame(Frame{MouseX: 5, MouseY: 300, Cursor: ray(mgl32.Vec3{800, 15, 500})})
	assert.Same(t, garage, f.app.Store().Selected())

	f.frame(Frame{Clicked: true, MouseX: 5, MouseY: 300, Cursor: ray(mgl32.Vec3{800, 15, 500})})
	assert.Same(t, garage, f.app.Store().Selected())
	assert.True(t, f.app.Store().ShowObjectInfoPanel())
	assert.Equal(t, navigation.RoutePodium, f.app.Route())
}

func TestInfoPanelButtons(t *testing.T) {
	f := newFixture(t)
	f.loader.resolve(config.Default().Assets.Garage, boxModel())
	f.frame(Frame{})
	f.frame(Frame{Clicked: true, MouseX: 5, MouseY: 300, Cursor: ray(mgl32.Vec3{0, -49.85, 0})})
	sel := f.app.Store().Selected()
	require.NotNil(t, sel)
	before := sel.Position[0]

	plus := findItem(t, f.app.Items(), ui.NudgeAction(0, 1))
	f.frame(Frame{Clicked: true, MouseX: plus.Rect.X + 2, MouseY: plus.Rect.Y + 2})
	assert.InDelta(t, before+10, sel.Position[0], 1e-4)

	closeBtn := findItem(t, f.app.Items(), ui.ActionCloseInfo)
	f.frame(Frame{Clicked: true, MouseX: closeBtn.Rect.X + 2, MouseY: closeBtn.Rect.Y + 2})
	assert.False(t, f.app.Store().ShowObjectInfoPanel())
	// With the panel closed, hover resumes and the pointer is no longer on the object.
	assert.Nil(t, f.app.Store().Selected())
}

func findItem(t *testing.T, items []ui.Item, action string) ui.Item {
	t.Helper()
	for _, it := range items {
		if it.Node.Action == action {
			return it
		}
	}
	require.FailNow(t, "no item", action)
	return ui.Item{}
}

func TestStartButtonLocksAndWalks(t *testing.T) {
	f := newFixture(t)
	f.loader.resolve(testCarPath, boxModel())
	f.loader.resolve(config.Default().Assets.Garage, boxModel())
	ptr := &fakePointer{}
	f.app.AttachPointer(ptr)
	f.frame(Frame{})

	start := findItem(t, f.app.Items(), ui.ActionStart)
	f.frame(Frame{Clicked: true, MouseX: start.Rect.X + 2, MouseY: start.Rect.Y + 2})
	require.True(t, ptr.locked)
	assert.Equal(t, 1, ptr.lockCalls)
	assert.False(t, f.app.Store().ShowStartPanel())
	assert.True(t, f.app.Store().IsPointerLocked())

	z := f.app.FirstPerson().Position[2]
	f.frame(Frame{Dt: 0.5, Keys: heldKeys{'W': true}})
	assert.InDelta(t, z-100, f.app.FirstPerson().Position[2], 1e-3)

	f.frame(Frame{Keys: heldKeys{'P': true}})
	assert.False(t, ptr.locked)
	assert.True(t, f.app.Store().ShowStartPanel())

	// Unlocked: keys do not move the camera.
	z = f.app.FirstPerson().Position[2]
	f.frame(Frame{Dt: 0.5, Keys: heldKeys{'W': true}})
	assert.Equal(t, z, f.app.FirstPerson().Position[2])
}

func TestBackButtonReturnsToShowroom(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.app.OpenCar("testCar"))
	f.frame(Frame{})
	require.Equal(t, navigation.RoutePodium, f.app.Route())

	back := findItem(t, f.app.Items(), ui.ActionBack)
	f.frame(Frame{Clicked: true, MouseX: back.Rect.X + 2, MouseY: back.Rect.Y + 2})

	assert.Equal(t, navigation.RouteShowroom, f.app.Route())
	assert.False(t, f.app.Store().PodiumViewActive())
	assert.False(t, f.app.Podium().Mounted())
	_, ok, err := f.store.Get(navigation.SlotKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Same(t, f.app.Showroom().Root(), f.app.Scene())
}

func TestPodiumDragOrbitsCamera(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.app.OpenCar("testCar"))
	f.frame(Frame{})
	before := f.app.Camera()

	f.frame(Frame{Dragging: true, MouseX: 640, MouseY: 600, MouseDX: 40})
	after := f.app.Camera()
	assert.NotEqual(t, before.Position, after.Position)
	assert.Equal(t, before.Target, after.Target)
	assert.Equal(t, float32(45), after.FOV)

	f.frame(Frame{Dragging: true, OverWidget: true, MouseX: 100, MouseY: 300, MouseDX: 40})
	assert.Equal(t, after.Position, f.app.Camera().Position)
}

func TestToggleStats(t *testing.T) {
	f := newFixture(t)
	f.frame(Frame{ToggleStats: true})
	found := false
	for _, it := range f.app.Items() {
		if it.Node.Class == "stats" {
			found = true
			assert.Contains(t, it.Node.Text, "FPS: 60")
		}
	}
	assert.True(t, found)
	assert.True(t, f.app.GridVisible())
	f.frame(Frame{ToggleGrid: true})
	assert.False(t, f.app.GridVisible())
}

package podium

import (
	"context"
	"fmt"

	"car-showroom/internal/assets"
	"car-showroom/internal/motion"
	"car-showroom/internal/navigation"
	"car-showroom/internal/scenegraph"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Stage is where the podium view is in its loading sequence.
type Stage int

const (
	StageLoadingPodium Stage = iota
	StageNoCar
	StagePlacingCar
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageLoadingPodium:
		return "loading-podium"
	case StageNoCar:
		return "podium-ready-no-car"
	case StagePlacingCar:
		return "placing-car"
	case StageReady:
		return "ready"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

const (
	DefaultPodiumPath  = "podium/podium.glb"
	DefaultPodiumScale = 0.5

	MinAutoRotateSpeed     float32 = 0.1
	MaxAutoRotateSpeed     float32 = 3
	DefaultAutoRotateSpeed float32 = 0.5
)

// Config holds the podium scene settings.
type Config struct {
	PodiumPath     string
	PodiumScale    float32
	MaxTextureEdge int
	AutoRotate     AutoRotate
}

// DefaultConfig returns the stock podium setup.
func DefaultConfig() Config {
	return Config{
		PodiumPath:     DefaultPodiumPath,
		PodiumScale:    DefaultPodiumScale,
		MaxTextureEdge: assets.DefaultMaxTextureEdge,
		AutoRotate:     AutoRotate{Enabled: true, Speed: DefaultAutoRotateSpeed},
	}
}

// AutoRotate spins the car container about +Y.
type AutoRotate struct {
	Enabled bool
	Speed   float32 // radians per second
}

// DefaultMaterial is the glowing dark podium surface.
func DefaultMaterial() *scenegraph.Material {
	m := scenegraph.NewMaterial(0x444444, 0.5, 0.8)
	m.Emissive = mgl32.Vec3{0, 1, 1}
	m.EmissiveIntensity = 1.5
	return m
}

type request struct {
	gen    uint64
	cancel context.CancelFunc
	ch     <-chan assets.Result
}

// Composer owns the podium scene. All methods run on the frame loop; loads
// complete in the background and are applied by Update.
type Composer struct {
	loader assets.Loader
	cfg    Config
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64

	snapshot  navigation.Snapshot
	root      *scenegraph.Node
	container *scenegraph.Node
	podium    *scenegraph.Node
	car       *scenegraph.Node

	podiumReq *request
	carReq    *request
	podiumErr error
	carErr    error

	placed    bool
	placement Placement

	camera     *motion.OrbitCamera
	autoRotate AutoRotate
	panel      *ControlPanel
}

// NewComposer returns an unmounted composer.
func NewComposer(loader assets.Loader, cfg Config, logger *log.Logger) *Composer {
	if cfg.PodiumPath == "" {
		cfg.PodiumPath = DefaultPodiumPath
	}
	if cfg.PodiumScale <= 0 {
		cfg.PodiumScale = DefaultPodiumScale
	}
	cfg.AutoRotate.Speed = mgl32.Clamp(cfg.AutoRotate.Speed, MinAutoRotateSpeed, MaxAutoRotateSpeed)
	c := &Composer{
		loader:     loader,
		cfg:        cfg,
		logger:     logger,
		camera:     motion.NewOrbitCamera(mgl32.Vec3{0, 40, 150}, mgl32.Vec3{}),
		autoRotate: cfg.AutoRotate,
	}
	c.panel = newControlPanel(c)
	return c
}

// Mount builds a fresh scene and starts loading the podium and the car of snap.
// A mounted composer is unmounted first.
func (c *Composer) Mount(snap navigation.Snapshot) {
	c.Unmount()
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.root = scenegraph.NewGroup("PodiumScene")
	c.container = scenegraph.NewGroup("CarContainer")
	c.root.AddChild(c.container)
	c.autoRotate = c.cfg.AutoRotate
	c.panel.reset()

	c.gen++
	ctx, cancel := context.WithCancel(c.ctx)
	c.podiumReq = &request{gen: c.gen, cancel: cancel, ch: c.loader.Load(ctx, c.cfg.PodiumPath)}
	c.logger.Info("podium mounted", "car", snap.Label(), "path", snap.Path)
	c.RequestCar(snap)
}

// RequestCar replaces the car shown on the podium. Any car load still in
// flight is cancelled and its result will be ignored.
func (c *Composer) RequestCar(snap navigation.Snapshot) {
	if c.ctx == nil {
		return
	}
	c.gen++
	if c.carReq != nil {
		c.carReq.cancel()
		c.carReq = nil
	}
	if c.car != nil {
		c.container.RemoveChild(c.car)
		c.car = nil
	}
	c.snapshot = snap
	c.carErr = nil
	c.placed = false
	if snap.Path != "" {
		ctx, cancel := context.WithCancel(c.ctx)
		c.carReq = &request{gen: c.gen, cancel: cancel, ch: c.loader.Load(ctx, snap.Path)}
	}
	if c.podium != nil {
		c.place()
	}
}

// Unmount cancels outstanding loads and drops the scene.
func (c *Composer) Unmount() {
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	c.ctx, c.cancel = nil, nil
	c.podiumReq, c.carReq = nil, nil
	c.podiumErr, c.carErr = nil, nil
	c.root, c.container, c.podium, c.car = nil, nil, nil, nil
	c.placed = false
	c.placement = Placement{}
	c.panel.cancelUpload()
}

// Mounted reports whether a scene is live.
func (c *Composer) Mounted() bool { return c.ctx != nil }

// Update applies finished loads and advances auto-rotation by dt seconds.
func (c *Composer) Update(dt float32) {
	if c.ctx == nil {
		return
	}
	if req := c.podiumReq; req != nil {
		if r, ok := assets.Poll(req.ch); ok {
			c.podiumReq = nil
			c.applyPodium(r)
		}
	}
	if req := c.carReq; req != nil {
		if r, ok := assets.Poll(req.ch); ok {
			c.carReq = nil
			if req.gen == c.gen {
				c.applyCar(r)
			}
		}
	}
	c.panel.update()
	if c.autoRotate.Enabled && c.container != nil {
		c.container.Rotation[1] = wrapAngle(c.container.Rotation[1] + c.autoRotate.Speed*dt)
	}
}

// wrapAngle maps a into (-pi, pi].
func wrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

func (c *Composer) applyPodium(r assets.Result) {
	if r.Err != nil {
		c.podiumErr = r.Err
		c.logger.Error("podium load failed", "path", c.cfg.PodiumPath, "err", r.Err)
		return
	}
	p := r.Node
	p.Name = "Podium"
	p.ResetTransform()
	s := c.cfg.PodiumScale
	p.Scale = mgl32.Vec3{s, s, s}
	p.SetShadows(true, true)
	c.podium = p
	c.root.AddChild(p)
	c.applyMaterial()
	c.place()
}

func (c *Composer) applyCar(r assets.Result) {
	if r.Err != nil {
		c.carErr = r.Err
		c.logger.Error("car load failed", "path", c.snapshot.Path, "err", r.Err)
		if c.podium != nil {
			c.place()
		}
		return
	}
	car := r.Node
	if c.snapshot.Name != "" {
		car.Name = c.snapshot.Name
	}
	car.SetShadows(true, true)
	c.container.ClearChildren()
	c.container.AddChild(car)
	c.car = car
	if c.podium != nil {
		c.place()
	}
}

func (c *Composer) place() {
	p := Place(c.podium.WorldBounds(), c.car, c.snapshot.PodiumScale, c.snapshot.ShowroomRotationY)
	c.container.Position = p.Seated
	if c.car == nil {
		c.container.Rotation = mgl32.Vec3{}
	}
	c.camera.Frame(p.CameraPosition, p.CameraTarget)
	c.placement = p
	c.placed = c.car != nil
	c.panel.setDefaults(p.Container, p.Seated)
	c.logger.Debug("car placed", "container", p.Seated, "height", p.CarHeight, "stage", c.Stage())
}

func (c *Composer) applyMaterial() {
	if c.podium != nil {
		c.podium.SetMaterial(c.panel.material())
	}
}

// Stage reports the loading stage.
func (c *Composer) Stage() Stage {
	switch {
	case c.podium == nil:
		return StageLoadingPodium
	case c.car != nil && c.placed:
		return StageReady
	case c.carReq != nil:
		return StagePlacingCar
	default:
		return StageNoCar
	}
}

// Status is the overlay text for the current stage. It is empty once ready.
func (c *Composer) Status() string {
	switch c.Stage() {
	case StageLoadingPodium:
		if c.podiumErr != nil {
			return "Failed to load podium"
		}
		return "Loading assets..."
	case StagePlacingCar:
		return fmt.Sprintf("Loading %s...", c.snapshot.Label())
	case StageNoCar:
		if c.carErr != nil {
			return fmt.Sprintf("Could not load %s", c.snapshot.Label())
		}
		return "No car selected"
	default:
		return ""
	}
}

// Title is the heading shown above the scene.
func (c *Composer) Title() string { return c.snapshot.Label() }

func (c *Composer) Snapshot() navigation.Snapshot { return c.snapshot }
func (c *Composer) Root() *scenegraph.Node        { return c.root }
func (c *Composer) Container() *scenegraph.Node   { return c.container }
func (c *Composer) Podium() *scenegraph.Node      { return c.podium }
func (c *Composer) Car() *scenegraph.Node         { return c.car }
func (c *Composer) Camera() *motion.OrbitCamera   { return c.camera }
func (c *Composer) Panel() *ControlPanel          { return c.panel }

// Placement returns the last placement. The second result is false until the
// podium has loaded.
func (c *Composer) Placement() (Placement, bool) {
	return c.placement, c.podium != nil
}

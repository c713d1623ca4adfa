// Package app wires the showroom components together and advances them one
// frame at a time from an engine-neutral input record.
package app

import (
	"path/filepath"

	"car-showroom/internal/assets"
	"car-showroom/internal/catalog"
	"car-showroom/internal/config"
	"car-showroom/internal/debug"
	"car-showroom/internal/input"
	"car-showroom/internal/motion"
	"car-showroom/internal/navigation"
	"car-showroom/internal/podium"
	"car-showroom/internal/pointerlock"
	"car-showroom/internal/scenegraph"
	"car-showroom/internal/selection"
	"car-showroom/internal/showroom"
	"car-showroom/internal/state"
	"car-showroom/internal/storage"
	"car-showroom/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// Deps are the pieces the application is built from.
type Deps struct {
	Config    config.Config
	ConfigDir string // runtime toggles are saved here; empty disables saving
	Catalog   *catalog.Catalog
	Storage   storage.Store
	Loader    assets.Loader // should share templates, e.g. an assets.TemplateCache
	Logger    *log.Logger
	FPS       func() int32
	LogLines  func() []string // recent log lines for the stats overlay
}

// App is the whole application minus the window.
type App struct {
	cfg       config.Config
	configDir string
	logger    *log.Logger

	store      *state.Store
	router     *navigation.Router
	bridge     *navigation.Bridge
	lock       *pointerlock.Manager
	sampler    *input.Sampler
	integrator motion.Integrator
	camera     *motion.FirstPersonCamera
	selection  *selection.Controller
	hover      selection.Hover

	showroom *showroom.Composer
	podium   *podium.Composer

	ui       *ui.Engine
	overlay  *ui.Overlay
	items    []ui.Item
	styles   *ui.Watcher
	stats    *debug.Stats
	gridShow bool
}

// New builds the application and starts loading the showroom.
func New(d Deps) *App {
	cfg := d.Config
	bindings, err := input.ParseBindings(cfg.Keys)
	if err != nil {
		d.Logger.Warn("bad key bindings, using defaults", "err", err)
		bindings = input.DefaultBindings()
	}

	a := &App{
		cfg:        cfg,
		configDir:  d.ConfigDir,
		logger:     d.Logger,
		store:      state.New(),
		router:     navigation.NewRouter(),
		sampler:    input.NewSampler(bindings),
		integrator: motion.NewIntegrator(cfg.Camera.Speed),
		camera:     motion.NewFirstPersonCamera(mgl32.Vec3(cfg.Camera.Start), cfg.Camera.Sensitivity),
		ui:         ui.New(),
		overlay:    ui.NewOverlay(),
		stats:      debug.New(d.FPS),
		gridShow:   cfg.Debug.GridVisible,
	}
	a.stats.ShowFPS = cfg.Debug.ShowFPS
	a.stats.ShowMemAlloc = cfg.Debug.ShowMemAlloc
	if d.LogLines != nil {
		a.stats.FollowLog(d.LogLines)
	}

	a.bridge = navigation.NewBridge(d.Storage, a.router, d.Catalog, cfg.Assets.DefaultCar, d.Logger)
	a.lock = pointerlock.NewManager(a.store, d.Logger)
	a.selection = selection.NewController(a.store, a.lock, d.Logger)

	a.showroom = showroom.NewComposer(d.Loader, d.Catalog, showroom.Config{
		GaragePath:     cfg.Assets.Garage,
		FloorImage:     a.assetFile(cfg.Assets.FloorImage),
		PosterImage:    a.assetFile(cfg.Assets.Poster),
		MaxTextureEdge: cfg.Assets.MaxTextureEdge,
	}, d.Logger)
	a.podium = podium.NewComposer(d.Loader, podium.Config{
		PodiumPath:     cfg.Podium.Model,
		PodiumScale:    cfg.Podium.Scale,
		MaxTextureEdge: cfg.Assets.MaxTextureEdge,
		AutoRotate:     podium.AutoRotate{Enabled: cfg.Podium.AutoRotate, Speed: cfg.Podium.AutoRotateSpeed},
	}, d.Logger)

	a.router.OnChange(a.routeChanged)
	a.showroom.Build()
	a.loadStylesheet()
	return a
}

func (a *App) assetFile(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.cfg.Assets.Root, p)
}

func (a *App) loadStylesheet() {
	path := a.assetFile(a.cfg.Assets.Stylesheet)
	if path == "" {
		return
	}
	if err := a.ui.LoadCSS(path); err != nil {
		a.logger.Debug("using built-in stylesheet", "path", path, "err", err)
		return
	}
	w, err := ui.Watch(path, a.logger)
	if err != nil {
		a.logger.Warn("stylesheet hot reload disabled", "err", err)
		return
	}
	a.styles = w
}

func (a *App) routeChanged(from, to navigation.Route) {
	a.logger.Info("route changed", "from", from, "to", to)
	switch to {
	case navigation.RoutePodium:
		a.lock.Unlock()
		a.hover.Reset()
		a.store.SetPodiumViewActive(true)
		a.sampler.Reset()
		a.podium.Mount(a.bridge.ReadSnapshot())
	case navigation.RouteShowroom:
		a.podium.Unmount()
		a.store.SetPodiumViewActive(false)
		a.sampler.Reset()
	}
}

// AttachPointer connects the capture device.
func (a *App) AttachPointer(d pointerlock.Device) { a.lock.Attach(d) }

// OpenCar goes straight to the podium with a catalog car.
func (a *App) OpenCar(id string) bool { return a.bridge.SelectCar(id) }

// Close stops background work.
func (a *App) Close() {
	a.podium.Unmount()
	a.showroom.Close()
	a.lock.Detach()
	if a.styles != nil {
		_ = a.styles.Close()
	}
}

func (a *App) Route() navigation.Route                { return a.router.Current() }
func (a *App) Store() *state.Store                    { return a.store }
func (a *App) Showroom() *showroom.Composer           { return a.showroom }
func (a *App) Podium() *podium.Composer               { return a.podium }
func (a *App) UI() *ui.Engine                         { return a.ui }
func (a *App) Items() []ui.Item                       { return a.items }
func (a *App) GridVisible() bool                      { return a.gridShow }
func (a *App) Stats() *debug.Stats                    { return a.stats }
func (a *App) FirstPerson() *motion.FirstPersonCamera { return a.camera }

// Scene returns the root of the scene for the current route.
func (a *App) Scene() *scenegraph.Node {
	if a.router.Current() == navigation.RoutePodium {
		return a.podium.Root()
	}
	return a.showroom.Root()
}

// OutlineTargets returns the nodes drawn with a highlight outline.
func (a *App) OutlineTargets() []*scenegraph.Node {
	if a.router.Current() == navigation.RoutePodium {
		return nil
	}
	return a.selection.OutlineTargets()
}

// PointerCursor reports whether the hand cursor should show.
func (a *App) PointerCursor() bool {
	return !a.lock.IsLocked() && a.hover.PointerCursor()
}

package app

import (
	"car-showroom/internal/config"
	"car-showroom/internal/input"
	"car-showroom/internal/navigation"
	"car-showroom/internal/scenegraph"
	"car-showroom/internal/selection"
	"car-showroom/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a pick ray in world space.
type Ray struct {
	Origin, Dir mgl32.Vec3
}

// Frame is everything the window reports for one frame.
type Frame struct {
	Dt float32
	// Keys is polled for the bound actions.
	Keys input.KeySource
	// Mouse movement in pixels since the last frame.
	MouseDX, MouseDY float32
	MouseX, MouseY   float32
	ScreenW, ScreenH float32
	Clicked          bool // left button went down
	Dragging         bool // left button held
	Wheel            float32
	// Cursor is the ray under the mouse; Center the ray through the crosshair.
	Cursor, Center Ray
	ToggleStats    bool
	ToggleGrid     bool
	// OverWidget is set when the mouse is over a native widget such as the
	// podium control panel; the scene ignores clicks and drags there.
	OverWidget bool
}

// Update advances the application by one frame.
func (a *App) Update(f Frame) {
	if f.Keys != nil {
		a.sampler.Poll(f.Keys)
	}
	if a.styles != nil && a.styles.Changed() {
		if err := a.ui.LoadCSS(a.styles.Path()); err != nil {
			a.logger.Warn("stylesheet reload failed", "err", err)
		} else {
			a.logger.Info("stylesheet reloaded", "path", a.styles.Path())
		}
	}
	a.handleToggles(f)

	overUI := f.OverWidget
	if !overUI && !a.lock.IsLocked() {
		if it, ok := a.ui.HitTest(f.MouseX, f.MouseY); ok {
			overUI = true
			if f.Clicked && it.Node.Action != "" {
				a.handleAction(it.Node.Action)
				f.Clicked = false
			}
		}
	}

	if a.router.Current() == navigation.RoutePodium {
		a.updatePodium(f, overUI)
	} else {
		a.updateShowroom(f, overUI)
	}

	a.stats.Tick()
	a.items = a.ui.Layout(a.nodes(), f.ScreenW, f.ScreenH)
}

func (a *App) handleToggles(f Frame) {
	if !f.ToggleStats && !f.ToggleGrid {
		return
	}
	if f.ToggleStats {
		a.stats.Toggle()
	}
	if f.ToggleGrid {
		a.gridShow = !a.gridShow
	}
	if a.configDir == "" {
		return
	}
	prefs := config.Debug{ShowFPS: a.stats.ShowFPS, ShowMemAlloc: a.stats.ShowMemAlloc, GridVisible: a.gridShow}
	if err := config.SaveDebug(a.configDir, prefs); err != nil {
		a.logger.Warn("could not save debug preferences", "err", err)
	}
}

func (a *App) handleAction(action string) {
	switch action {
	case ui.ActionStart:
		a.store.SetShowStartPanel(false)
		a.lock.Lock()
	case ui.ActionCloseInfo:
		a.selection.ClosePanel()
	case ui.ActionBack:
		a.bridge.Back()
	default:
		field, dir, ok := ui.ParseNudge(action)
		sel := a.store.Selected()
		if ok && sel != nil && field >= 0 && field < len(selection.Fields()) {
			selection.Field(field).Nudge(sel, dir)
		}
	}
}

func (a *App) updateShowroom(f Frame, overUI bool) {
	a.lock.HandlePause(a.sampler.Pressed(input.Pause))
	a.lock.Sync()

	locked := a.lock.IsLocked()
	if locked {
		a.camera.Look(f.MouseDX, f.MouseDY)
	}
	if d, moved := a.integrator.Displacement(a.sampler.Movement(), a.camera.Orientation(), locked, f.Dt); moved {
		a.camera.Move(d)
	}
	a.showroom.Update()

	var picked *scenegraph.Node
	if !overUI {
		ray := f.Cursor
		if locked {
			ray = f.Center
		}
		if hit, ok := scenegraph.Raycast(a.showroom.Root(), ray.Origin, ray.Dir); ok {
			picked = hit.Node
		}
	}
	// An open info panel pins its object: hovering elsewhere must not clear it.
	if !a.store.ShowObjectInfoPanel() {
		a.hover.Update(a.selection, picked)
	}

	if f.Clicked && picked != nil && !a.selection.Click(picked) {
		if id, ok := picked.CarID(); ok {
			a.bridge.SelectCar(id)
		}
	}
}

func (a *App) updatePodium(f Frame, overUI bool) {
	a.podium.Update(f.Dt)
	if overUI {
		return
	}
	cam := a.podium.Camera()
	if f.Dragging {
		cam.Orbit(f.MouseDX, f.MouseDY)
	}
	if f.Wheel != 0 {
		cam.Zoom(f.Wheel)
	}
}

func (a *App) nodes() []*ui.Node {
	if a.router.Current() == navigation.RoutePodium {
		return a.overlay.Podium(ui.PodiumView{
			Title:  a.podium.Title(),
			Status: a.podium.Status(),
			Stats:  a.stats.Lines(),
		})
	}
	v := ui.ShowroomView{
		StartPanel: a.store.ShowStartPanel(),
		Hints:      !a.store.ShowStartPanel(),
		Stats:      a.stats.Lines(),
	}
	if a.showroom.Pending() > 0 {
		v.Loading = "Loading assets..."
	}
	if sel := a.store.Selected(); sel != nil && a.store.ShowObjectInfoPanel() {
		v.Info = infoView(sel)
	}
	return a.overlay.Showroom(v)
}

func infoView(n *scenegraph.Node) *ui.InfoView {
	d := selection.Describe(n)
	v := &ui.InfoView{Name: d.Name, UUID: d.UUID}
	for _, f := range selection.Fields() {
		v.Rows = append(v.Rows, ui.InfoRow{
			Field: int(f),
			Group: f.Group(),
			Label: f.Label(),
			Value: f.Format(n),
		})
	}
	return v
}

// CameraView is the camera the renderer should use this frame.
type CameraView struct {
	Position, Target mgl32.Vec3
	FOV              float32
}

// Camera returns the active camera.
func (a *App) Camera() CameraView {
	if a.router.Current() == navigation.RoutePodium {
		c := a.podium.Camera()
		return CameraView{Position: c.Position(), Target: c.Target(), FOV: a.cfg.Podium.FOV}
	}
	return CameraView{Position: a.camera.Position, Target: a.camera.Target(), FOV: a.cfg.Camera.FOV}
}

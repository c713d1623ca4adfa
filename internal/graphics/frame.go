package graphics

import (
	"car-showroom/internal/app"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Debug toggles.
const (
	keyToggleStats = rl.KeyF3
	keyToggleGrid  = rl.KeyF4
)

// ReadFrame samples raylib input for one frame. Pick rays are cast through
// last frame's camera. overWidget marks the mouse as over the control panel.
func ReadFrame(view app.CameraView, overWidget bool) app.Frame {
	cam := camera3D(view)
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	return app.Frame{
		Dt:          rl.GetFrameTime(),
		Keys:        Keys{},
		MouseDX:     delta.X,
		MouseDY:     delta.Y,
		MouseX:      mouse.X,
		MouseY:      mouse.Y,
		ScreenW:     w,
		ScreenH:     h,
		Clicked:     rl.IsMouseButtonPressed(rl.MouseLeftButton),
		Dragging:    rl.IsMouseButtonDown(rl.MouseLeftButton),
		Wheel:       rl.GetMouseWheelMove(),
		Cursor:      pickRay(mouse, cam),
		Center:      pickRay(rl.NewVector2(w/2, h/2), cam),
		ToggleStats: rl.IsKeyPressed(keyToggleStats),
		ToggleGrid:  rl.IsKeyPressed(keyToggleGrid),
		OverWidget:  overWidget,
	}
}

func pickRay(screen rl.Vector2, cam rl.Camera3D) app.Ray {
	r := rl.GetScreenToWorldRay(screen, cam)
	return app.Ray{Origin: fromRL(r.Position), Dir: fromRL(r.Direction)}
}

func camera3D(view app.CameraView) rl.Camera3D {
	return rl.Camera3D{
		Position:   toRL(view.Position),
		Target:     toRL(view.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       view.FOV,
		Projection: rl.CameraPerspective,
	}
}

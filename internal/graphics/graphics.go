// Package graphics draws the application with raylib: window and main loop,
// cursor capture, model and texture upload, scene drawing and the podium
// control panel. Everything here must run on the thread that opened the window.
package graphics

import (
	"path/filepath"

	"car-showroom/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Open creates the window. The returned function closes it.
func Open(w config.Window) func() {
	var flags uint32 = rl.FlagWindowResizable
	if w.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetExitKey(rl.KeyNull) // ESC releases the cursor in the showroom, not quit; close via window button
	rl.SetTargetFPS(int32(w.TargetFPS))
	return rl.CloseWindow
}

// Loop runs until the window closes. Each frame it calls update (e.g. input), then clears the screen and calls draw.
func Loop(update, draw func()) {
	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(0x42, 0x87, 0xf5, 255))
		draw()
		rl.EndDrawing()
	}
}

// joinAsset resolves p against the assets root unless it is absolute.
func joinAsset(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

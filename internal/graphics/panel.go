package graphics

import (
	"fmt"

	"car-showroom/internal/podium"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth  = 300
	panelMargin = 16
	panelTop    = 70
	rowHeight   = 26
	labelWidth  = 90
	valueWidth  = 50
)

var fieldLabels = map[podium.Field]string{
	podium.PosX: "Position X",
	podium.PosY: "Position Y",
	podium.PosZ: "Position Z",
	podium.RotX: "Rotation X",
	podium.RotY: "Rotation Y",
	podium.RotZ: "Rotation Z",
}

const textureOptions = "Default;Custom Upload"

// Panel draws the podium control panel with raygui. Image files dropped on
// the window become podium texture uploads.
type Panel struct {
	styled bool
}

func NewPanel() *Panel { return &Panel{} }

// style sets up a dark theme for raygui widgets.
func (p *Panel) style() {
	if p.styled {
		return
	}
	p.styled = true
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(30, 30, 35, 230)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(45, 45, 50, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(60, 60, 70, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(70, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(220, 220, 220, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(0x42, 0x87, 0xf5, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(80, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(100, 100, 120, 255)))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(60, 60, 60, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

// Bounds returns where the panel sits on a screen of the given width.
func (p *Panel) Bounds(screenW float32) rl.Rectangle {
	rows := float32(len(podium.Fields()) + 6)
	return rl.NewRectangle(screenW-panelWidth-panelMargin, panelTop, panelWidth, rows*rowHeight+2*panelMargin)
}

// Contains reports whether the mouse is over the panel.
func (p *Panel) Contains(mouse rl.Vector2, screenW float32) bool {
	return rl.CheckCollisionPointRec(mouse, p.Bounds(screenW))
}

// Draw shows the controls for cp and applies any change straight away.
func (p *Panel) Draw(cp *podium.ControlPanel) {
	p.style()
	p.acceptDrops(cp)

	b := p.Bounds(float32(rl.GetScreenWidth()))
	gui.Panel(b, "Car Controls")
	x := b.X + 10
	y := b.Y + 34
	sliderW := b.Width - labelWidth - valueWidth - 20

	for _, f := range podium.Fields() {
		r := cp.Range(f)
		v := cp.Value(f)
		gui.Label(rl.NewRectangle(x, y, labelWidth, rowHeight-6), fieldLabels[f])
		nv := gui.Slider(rl.NewRectangle(x+labelWidth, y, sliderW, rowHeight-6), "", fmt.Sprintf("%.1f", v), v, r.Min, r.Max)
		if nv != v {
			cp.Set(f, snap(nv, r.Step))
		}
		y += rowHeight
	}

	ar := cp.AutoRotate()
	if on := gui.CheckBox(rl.NewRectangle(x, y+4, 16, 16), "Auto Rotate", ar.Enabled); on != ar.Enabled {
		cp.SetAutoRotate(on)
	}
	y += rowHeight
	gui.Label(rl.NewRectangle(x, y, labelWidth, rowHeight-6), "Speed")
	speed := gui.Slider(rl.NewRectangle(x+labelWidth, y, sliderW, rowHeight-6), "", fmt.Sprintf("%.1f", ar.Speed), ar.Speed, podium.MinAutoRotateSpeed, podium.MaxAutoRotateSpeed)
	if speed != ar.Speed {
		cp.SetAutoRotateSpeed(snap(speed, 0.1))
	}
	y += rowHeight

	gui.Label(rl.NewRectangle(x, y, labelWidth, rowHeight-6), "Texture")
	mode := podium.TextureMode(gui.ComboBox(rl.NewRectangle(x+labelWidth, y, b.Width-labelWidth-20, rowHeight-6), textureOptions, int32(cp.TextureMode())))
	if mode != cp.TextureMode() {
		cp.SetTextureMode(mode)
	}
	y += rowHeight

	hint := "Drop an image on the window to upload"
	if cp.Uploading() {
		hint = "Decoding image..."
	}
	gui.Label(rl.NewRectangle(x, y, b.Width-20, rowHeight-6), hint)
	y += rowHeight + 6

	if gui.Button(rl.NewRectangle(x, y, b.Width-20, rowHeight), "Reset Position") {
		cp.Reset()
	}
}

func (p *Panel) acceptDrops(cp *podium.ControlPanel) {
	if !rl.IsFileDropped() {
		return
	}
	files := rl.LoadDroppedFiles()
	rl.UnloadDroppedFiles()
	if len(files) > 0 {
		cp.Upload(files[0])
	}
}

// snap rounds v to the nearest multiple of step.
func snap(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	n := v / step
	if n < 0 {
		n -= 0.5
	} else {
		n += 0.5
	}
	return float32(int(n)) * step
}

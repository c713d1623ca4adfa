package graphics

import (
	"car-showroom/internal/fonts"
	"car-showroom/internal/ui"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontBaseSize = 48
	textSpacing  = 1
)

// extraRunes are drawn by the overlay beyond printable ASCII.
var extraRunes = []rune{'←', '…', '°', '±'}

// Overlay draws laid-out UI items. If a font was found it is used for all
// text; otherwise raylib's default (pixel) font is used.
type Overlay struct {
	font rl.Font
}

// NewOverlay loads the preferred font from dir and hooks text measurement
// into engine. Call after the window exists.
func NewOverlay(dir string, engine *ui.Engine, logger *log.Logger) *Overlay {
	o := &Overlay{}
	if path := fonts.Pick(dir); path != "" {
		runes := make([]rune, 0, 95+len(extraRunes))
		for r := rune(32); r < 127; r++ {
			runes = append(runes, r)
		}
		runes = append(runes, extraRunes...)
		f := rl.LoadFontEx(path, fontBaseSize, runes)
		if f.Texture.ID != 0 {
			rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
			o.font = f
			logger.Info("font loaded", "path", path)
		} else {
			logger.Warn("font failed to load", "path", path)
		}
	}
	engine.SetMeasure(o.Measure)
	return o
}

// Measure returns the width of text at size in pixels.
func (o *Overlay) Measure(text string, size int32) float32 {
	if o.font.Texture.ID == 0 {
		return float32(rl.MeasureText(text, size))
	}
	return rl.MeasureTextEx(o.font, text, float32(size), textSpacing).X
}

// Text draws text with its top-left corner at pos.
func (o *Overlay) Text(text string, pos rl.Vector2, size float32, c rl.Color) {
	if o.font.Texture.ID == 0 {
		rl.DrawText(text, int32(pos.X), int32(pos.Y), int32(size), c)
		return
	}
	rl.DrawTextEx(o.font, text, pos, size, textSpacing, c)
}

// Draw renders items in order.
func (o *Overlay) Draw(items []ui.Item) {
	for _, it := range items {
		style := it.Style
		r := rl.NewRectangle(it.Rect.X, it.Rect.Y, it.Rect.Width, it.Rect.Height)
		if style.Background.A > 0 {
			rl.DrawRectangleRec(r, rgba(style.Background))
		}
		if style.HasBorder && r.Width > 0 && r.Height > 0 {
			rl.DrawRectangleLinesEx(r, 1, rgba(style.Border))
		}
		if it.Node.Text != "" {
			pad := float32(style.Padding)
			size := style.FontSize
			if size <= 0 {
				size = ui.DefaultFontSize
			}
			o.Text(it.Node.Text, rl.NewVector2(r.X+pad, r.Y+pad), float32(size), rgba(style.Color))
		}
	}
}

// Close unloads the font.
func (o *Overlay) Close() {
	if o.font.Texture.ID != 0 {
		rl.UnloadFont(o.font)
	}
}

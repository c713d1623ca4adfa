package ui

import (
	_ "embed"
	"os"
	"strings"
	"sync"
)

//go:embed showroom.css
var defaultCSS string

// MeasureFunc returns the pixel width of text drawn at size.
type MeasureFunc func(text string, size int32) float32

// Item is a node with its resolved style and screen rectangle, in draw order.
type Item struct {
	Node  *Node
	Style ComputedStyle
	Rect  Rect
}

// Engine holds the current stylesheet and lays nodes out on screen.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached per class and id and only recomputed when the sheet changes.
type Engine struct {
	mu      sync.Mutex
	sheet   *Stylesheet
	styles  map[string]ComputedStyle
	measure MeasureFunc
	items   []Item
}

// New creates an engine using the built-in stylesheet.
func New() *Engine {
	e := &Engine{measure: estimateWidth}
	sheet, _ := ParseCSS(defaultCSS)
	e.SetStylesheet(sheet)
	return e
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sheet = sheet
	e.styles = make(map[string]ComputedStyle)
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sheet
}

// SetMeasure replaces the text width estimate, e.g. with the loaded font's metrics.
func (e *Engine) SetMeasure(m MeasureFunc) {
	if m == nil {
		m = estimateWidth
	}
	e.measure = m
}

func estimateWidth(text string, size int32) float32 {
	return float32(len(text)) * float32(size) * 0.55
}

// Style returns the resolved style of n (class and id matched; last wins).
func (e *Engine) Style(n *Node) ComputedStyle {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := n.Class + "#" + n.ID
	if s, ok := e.styles[key]; ok {
		return s
	}
	merged := make(map[string]string)
	if e.sheet != nil {
		for _, rule := range e.sheet.Rules {
			sel := rule.Selector
			if (sel[0] == '.' && n.Class == sel[1:]) || (sel[0] == '#' && n.ID == sel[1:]) {
				for k, v := range rule.Props {
					merged[k] = v
				}
			}
		}
	}
	s := ResolveProps(merged)
	e.styles[key] = s
	return s
}

// Layout resolves every node's rectangle on a screen of the given size. A
// node's position is relative to its parent, which must come earlier in nodes.
// Nodes without a set size are sized to their text.
func (e *Engine) Layout(nodes []*Node, screenW, screenH float32) []Item {
	rects := make(map[*Node]Rect, len(nodes))
	items := make([]Item, 0, len(nodes))
	screen := Rect{Width: screenW, Height: screenH}
	for _, n := range nodes {
		style := e.Style(n)
		parent := screen
		if n.Parent != nil {
			if r, ok := rects[n.Parent]; ok {
				parent = r
			}
		}
		w, h := float32(style.Width), float32(style.Height)
		if n.Text != "" {
			lines := strings.Split(n.Text, "\n")
			if w == 0 {
				for _, l := range lines {
					w = max(w, e.measure(l, style.FontSize))
				}
				w += 2 * float32(style.Padding)
			}
			if h == 0 {
				h = float32(len(lines))*float32(style.FontSize+lineGap) + 2*float32(style.Padding)
			}
		}
		x, y := float32(style.Left), float32(style.Top)
		if style.LeftPct >= 0 {
			x = (parent.Width - w) * float32(style.LeftPct) / 100
		}
		if style.TopPct >= 0 {
			y = (parent.Height - h) * float32(style.TopPct) / 100
		}
		r := Rect{X: parent.X + x + n.OffsetX, Y: parent.Y + y + n.OffsetY, Width: w, Height: h}
		rects[n] = r
		items = append(items, Item{Node: n, Style: style, Rect: r})
	}
	e.items = items
	return items
}

// lineGap separates lines of multi-line text.
const lineGap = 4

// HitTest returns the topmost item of the last Layout under (x, y).
func (e *Engine) HitTest(x, y float32) (Item, bool) {
	for i := len(e.items) - 1; i >= 0; i-- {
		it := e.items[i]
		if it.Rect.Contains(x, y) && (it.Node.Action != "" || it.Style.Background.A > 0) {
			return it, true
		}
	}
	return Item{}, false
}

// ActionAt returns the action of the button under (x, y), if any.
func (e *Engine) ActionAt(x, y float32) string {
	it, ok := e.HitTest(x, y)
	if !ok {
		return ""
	}
	return it.Node.Action
}

package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// Actions reported by the overlay buttons.
const (
	ActionStart     = "start"
	ActionCloseInfo = "close-info"
	ActionBack      = "back"
	nudgePrefix     = "nudge:"
)

// ControlHints are shown once the start panel is dismissed.
var ControlHints = []string{
	"W, A, S, D: Move Camera",
	"Mouse: Look Around (when locked)",
	"Click: Interact / Select Object",
	"P: Unlock Mouse / Pause",
}

// NudgeAction names the button that moves field by dir steps.
func NudgeAction(field, dir int) string {
	return fmt.Sprintf("%s%d:%d", nudgePrefix, field, dir)
}

// ParseNudge reverses NudgeAction.
func ParseNudge(action string) (field, dir int, ok bool) {
	rest, found := strings.CutPrefix(action, nudgePrefix)
	if !found {
		return 0, 0, false
	}
	f, d, found := strings.Cut(rest, ":")
	if !found {
		return 0, 0, false
	}
	field, err := strconv.Atoi(f)
	if err != nil {
		return 0, 0, false
	}
	dir, err = strconv.Atoi(d)
	if err != nil {
		return 0, 0, false
	}
	return field, dir, true
}

// InfoRow is one editable value of the object info panel.
type InfoRow struct {
	Field int
	Group string
	Label string
	Value string
}

// InfoView is the data shown in the object info panel.
// Pass this from the app layer; ui does not depend on the scene graph.
type InfoView struct {
	Name string
	UUID string
	Rows []InfoRow
}

// ShowroomView is what the walk-through screen shows this frame.
type ShowroomView struct {
	StartPanel bool
	Hints      bool
	Info       *InfoView
	Loading    string
	Stats      []string
}

// PodiumView is what the podium screen shows this frame.
type PodiumView struct {
	Title  string
	Status string
	Stats  []string
}

const (
	infoFirstRow  = 70
	infoGroupGap  = 24
	infoRowHeight = 28
	screenMargin  = 16
)

// Overlay owns the 2D nodes of both screens and updates their text on each build.
type Overlay struct {
	startPanel, startTitle, startMessage, startButton *Node
	hints                                             *Node
	infoPanel, infoTitle, infoUUID, infoClose         *Node
	loading                                           *Node
	podiumTitle, backButton, podiumStatus             *Node
	stats                                             *Node
}

// NewOverlay creates the nodes styled by the engine's CSS (.start-panel, .info-panel, etc.).
func NewOverlay() *Overlay {
	o := &Overlay{
		startPanel:   NewNode("panel", "start-panel", "", ""),
		hints:        NewNode("label", "hints", "", strings.Join(ControlHints, "\n")),
		infoPanel:    NewNode("panel", "info-panel", "", ""),
		loading:      NewNode("label", "loading", "", ""),
		podiumTitle:  NewNode("label", "podium-title", "", ""),
		backButton:   NewButton("back-button", "", "← Back to Showroom", ActionBack),
		podiumStatus: NewNode("label", "podium-status", "", ""),
		stats:        NewNode("label", "stats", "", ""),
	}
	o.startTitle = NewNode("label", "start-title", "", "Welcome to the Car Showroom").In(o.startPanel)
	o.startMessage = NewNode("label", "start-message", "", "Click Start to explore.").In(o.startPanel)
	o.startButton = NewButton("start-button", "", "Start", ActionStart).In(o.startPanel)
	o.infoTitle = NewNode("label", "info-title", "", "").In(o.infoPanel)
	o.infoUUID = NewNode("label", "info-uuid", "", "").In(o.infoPanel)
	o.infoClose = NewButton("info-close", "", "X", ActionCloseInfo).In(o.infoPanel)
	o.hints.OffsetY = -screenMargin
	o.infoPanel.OffsetX = -screenMargin
	return o
}

// Showroom returns the nodes for the walk-through screen in draw order.
func (o *Overlay) Showroom(v ShowroomView) []*Node {
	var out []*Node
	if v.StartPanel {
		out = append(out, o.startPanel, o.startTitle, o.startMessage, o.startButton)
	} else if v.Hints {
		out = append(out, o.hints)
	}
	if v.Info != nil {
		out = o.appendInfo(out, *v.Info)
	}
	if v.Loading != "" {
		o.loading.Text = v.Loading
		out = append(out, o.loading)
	}
	return o.appendStats(out, v.Stats)
}

func (o *Overlay) appendInfo(out []*Node, info InfoView) []*Node {
	o.infoTitle.Text = info.Name
	o.infoUUID.Text = info.UUID
	out = append(out, o.infoPanel, o.infoTitle, o.infoUUID, o.infoClose)

	y := float32(infoFirstRow)
	group := ""
	for _, r := range info.Rows {
		if r.Group != group {
			group = r.Group
			h := NewNode("label", "info-group", "", group).In(o.infoPanel)
			h.OffsetY = y
			out = append(out, h)
			y += infoGroupGap
		}
		row := []*Node{
			NewNode("label", "info-label", "", r.Label),
			NewNode("label", "info-value", "", r.Value),
			NewButton("info-minus", "", "-", NudgeAction(r.Field, -1)),
			NewButton("info-plus", "", "+", NudgeAction(r.Field, 1)),
		}
		for _, n := range row {
			n.In(o.infoPanel).OffsetY = y
			out = append(out, n)
		}
		y += infoRowHeight
	}
	return out
}

// Podium returns the nodes for the podium screen in draw order.
func (o *Overlay) Podium(v PodiumView) []*Node {
	o.podiumTitle.Text = v.Title
	out := []*Node{o.backButton}
	if v.Title != "" {
		out = append(out, o.podiumTitle)
	}
	if v.Status != "" {
		o.podiumStatus.Text = v.Status
		out = append(out, o.podiumStatus)
	}
	return o.appendStats(out, v.Stats)
}

func (o *Overlay) appendStats(out []*Node, lines []string) []*Node {
	if len(lines) == 0 {
		return out
	}
	o.stats.Text = strings.Join(lines, "\n")
	o.stats.OffsetX = -screenMargin
	return append(out, o.stats)
}

// LabelStyle returns the style floating 3D labels are drawn with.
func (e *Engine) LabelStyle() ComputedStyle {
	return e.Style(&Node{Class: "car-label"})
}

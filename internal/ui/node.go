package ui

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single UI element: panel, label, button. It has optional class and id for CSS matching,
// an optional parent it is laid out inside, and optional text.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // e.g. "start-panel" for .start-panel
	ID     string // e.g. "start" for #start
	Text   string
	Action string // reported by HitTest for buttons
	Parent *Node
	// Offset is added to the styled position, for rows laid out in code.
	OffsetX, OffsetY float32
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// NewButton creates a button node that reports action when clicked.
func NewButton(class, id, text, action string) *Node {
	n := NewNode("button", class, id, text)
	n.Action = action
	return n
}

// In sets the parent and returns n.
func (n *Node) In(parent *Node) *Node {
	n.Parent = parent
	return n
}

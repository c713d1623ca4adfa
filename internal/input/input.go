// Package input tracks held keys for camera movement and the pause action.
// Key codes follow the GLFW numbering used by raylib, so the graphics layer can
// pass its codes through unchanged.
package input

import (
	"fmt"
	"strings"
)

// KeyCode identifies a physical key.
type KeyCode int32

const (
	KeyNull   KeyCode = 0
	KeySpace  KeyCode = 32
	KeyEscape KeyCode = 256
	KeyRight  KeyCode = 262
	KeyLeft   KeyCode = 263
	KeyDown   KeyCode = 264
	KeyUp     KeyCode = 265
)

// Action is something a key can be bound to.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	Pause
	actionCount
)

var actionNames = [actionCount]string{"forward", "backward", "left", "right", "pause"}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Bindings maps every action to one key.
type Bindings [actionCount]KeyCode

// DefaultBindings returns WASD movement and P for pause.
func DefaultBindings() Bindings {
	return Bindings{
		MoveForward:  'W',
		MoveBackward: 'S',
		MoveLeft:     'A',
		MoveRight:    'D',
		Pause:        'P',
	}
}

var namedKeys = map[string]KeyCode{
	"space":  KeySpace,
	"escape": KeyEscape,
	"esc":    KeyEscape,
	"right":  KeyRight,
	"left":   KeyLeft,
	"down":   KeyDown,
	"up":     KeyUp,
}

// ParseKey accepts a single letter or digit ("w", "P", "7") or a named key
// ("space", "up", "escape").
func ParseKey(s string) (KeyCode, error) {
	s = strings.TrimSpace(s)
	if k, ok := namedKeys[strings.ToLower(s)]; ok {
		return k, nil
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return KeyCode(c), nil
		}
	}
	return KeyNull, fmt.Errorf("unknown key %q", s)
}

// ParseBindings builds bindings from action names to key names, starting from
// the defaults. Unknown actions and keys are errors.
func ParseBindings(m map[string]string) (Bindings, error) {
	b := DefaultBindings()
	for name, key := range m {
		a := actionByName(name)
		if a < 0 {
			return b, fmt.Errorf("unknown action %q", name)
		}
		k, err := ParseKey(key)
		if err != nil {
			return b, fmt.Errorf("bind %s: %w", name, err)
		}
		b[a] = k
	}
	return b, nil
}

func actionByName(name string) Action {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i)
		}
	}
	return -1
}

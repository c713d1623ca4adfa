package input

// KeySource reports whether a key is held right now.
type KeySource interface {
	IsKeyDown(k KeyCode) bool
}

// MovementKeys is the set of held movement keys for one frame.
type MovementKeys struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Any reports whether at least one movement key is held.
func (m MovementKeys) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right
}

// Sampler keeps the current and previous held state of every bound action.
type Sampler struct {
	bindings Bindings
	current  [actionCount]bool
	previous [actionCount]bool
}

// NewSampler returns a sampler with nothing held.
func NewSampler(b Bindings) *Sampler {
	return &Sampler{bindings: b}
}

func (s *Sampler) Bindings() Bindings { return s.bindings }

// Poll advances one frame and reads every bound key from src.
func (s *Sampler) Poll(src KeySource) {
	s.previous = s.current
	for a, k := range s.bindings {
		s.current[a] = src.IsKeyDown(k)
	}
}

// Held reports whether a is held this frame.
func (s *Sampler) Held(a Action) bool { return s.current[a] }

// Pressed reports whether a went down this frame.
func (s *Sampler) Pressed(a Action) bool { return s.current[a] && !s.previous[a] }

// Movement returns the held movement keys.
func (s *Sampler) Movement() MovementKeys {
	return MovementKeys{
		Forward:  s.current[MoveForward],
		Backward: s.current[MoveBackward],
		Left:     s.current[MoveLeft],
		Right:    s.current[MoveRight],
	}
}

// Reset releases everything, e.g. when the window loses focus.
func (s *Sampler) Reset() {
	s.current = [actionCount]bool{}
	s.previous = [actionCount]bool{}
}

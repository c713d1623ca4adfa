package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys map[KeyCode]bool

func (f fakeKeys) IsKeyDown(k KeyCode) bool { return f[k] }

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want KeyCode
		err  bool
	}{
		{"w", 87, false},
		{"P", 80, false},
		{" 7 ", '7', false},
		{"space", KeySpace, false},
		{"Up", KeyUp, false},
		{"ctrl", KeyNull, true},
		{"", KeyNull, true},
		{"#", KeyNull, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string]string{"forward": "up", "Pause": "escape"})
	require.NoError(t, err)
	assert.Equal(t, KeyUp, b[MoveForward])
	assert.Equal(t, KeyEscape, b[Pause])
	assert.Equal(t, KeyCode('A'), b[MoveLeft])

	_, err = ParseBindings(map[string]string{"jump": "space"})
	assert.Error(t, err)
	_, err = ParseBindings(map[string]string{"left": "??"})
	assert.Error(t, err)
}

func TestSamplerMovement(t *testing.T) {
	s := NewSampler(DefaultBindings())
	s.Poll(fakeKeys{'W': true, 'D': true, 'Q': true})

	assert.Equal(t, MovementKeys{Forward: true, Right: true}, s.Movement())
	assert.True(t, s.Movement().Any())

	s.Poll(fakeKeys{'Q': true})
	assert.False(t, s.Movement().Any())
}

func TestSamplerPollEdges(t *testing.T) {
	s := NewSampler(DefaultBindings())
	keys := fakeKeys{'P': true, 'S': true}

	s.Poll(keys)
	assert.True(t, s.Pressed(Pause))
	assert.True(t, s.Held(MoveBackward))

	s.Poll(keys)
	assert.False(t, s.Pressed(Pause), "held key is pressed only on the first frame")
	assert.True(t, s.Held(Pause))

	s.Poll(fakeKeys{})
	assert.False(t, s.Held(Pause))

	s.Poll(keys)
	s.Reset()
	assert.False(t, s.Held(Pause))
	assert.False(t, s.Pressed(Pause))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "forward", MoveForward.String())
	assert.Equal(t, "pause", Pause.String())
	assert.Equal(t, "action(9)", Action(9).String())
}

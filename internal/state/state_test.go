package state

import (
	"testing"

	"car-showroom/internal/scenegraph"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	s := New()
	assert.True(t, s.ShowStartPanel())
	assert.False(t, s.IsPointerLocked())
	assert.False(t, s.ShowObjectInfoPanel())
	assert.False(t, s.PodiumViewActive())
	assert.Nil(t, s.Selected())
}

func TestSubscribeFiresOnChangeOnly(t *testing.T) {
	s := New()
	var got []Store
	s.Subscribe(func(snap Store) { got = append(got, snap) })

	s.SetShowStartPanel(true)
	assert.Empty(t, got)

	n := scenegraph.NewGroup("box")
	s.SetSelected(n)
	s.SetSelected(n)
	s.SetPointerLocked(true)
	s.SetShowObjectInfoPanel(true)
	s.SetPodiumViewActive(true)

	assert.Len(t, got, 4)
	last := got[len(got)-1]
	assert.Same(t, n, last.Selected())
	assert.True(t, last.IsPointerLocked())
	assert.True(t, last.PodiumViewActive())
}

// Package state holds the application-wide UI state shared by the showroom
// components. A Store is created once by the application and passed to the
// components that read or change it.
package state

import "car-showroom/internal/scenegraph"

// Store is the single source of truth for selection, pointer lock and panel
// visibility. It is only touched from the frame loop and is not synchronized.
type Store struct {
	selected            *scenegraph.Node
	isPointerLocked     bool
	showStartPanel      bool
	showObjectInfoPanel bool
	podiumViewActive    bool

	listeners []func(Store)
}

// New returns a store with the start panel visible and nothing selected.
func New() *Store {
	return &Store{showStartPanel: true}
}

// Subscribe registers fn to be called with a snapshot after every change.
func (s *Store) Subscribe(fn func(Store)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) changed() {
	snap := *s
	snap.listeners = nil
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// Selected returns the selected node. The store does not own it.
func (s *Store) Selected() *scenegraph.Node { return s.selected }

func (s *Store) SetSelected(n *scenegraph.Node) {
	if s.selected == n {
		return
	}
	s.selected = n
	s.changed()
}

func (s *Store) IsPointerLocked() bool { return s.isPointerLocked }

func (s *Store) SetPointerLocked(v bool) {
	if s.isPointerLocked == v {
		return
	}
	s.isPointerLocked = v
	s.changed()
}

func (s *Store) ShowStartPanel() bool { return s.showStartPanel }

func (s *Store) SetShowStartPanel(v bool) {
	if s.showStartPanel == v {
		return
	}
	s.showStartPanel = v
	s.changed()
}

func (s *Store) ShowObjectInfoPanel() bool { return s.showObjectInfoPanel }

func (s *Store) SetShowObjectInfoPanel(v bool) {
	if s.showObjectInfoPanel == v {
		return
	}
	s.showObjectInfoPanel = v
	s.changed()
}

func (s *Store) PodiumViewActive() bool { return s.podiumViewActive }

func (s *Store) SetPodiumViewActive(v bool) {
	if s.podiumViewActive == v {
		return
	}
	s.podiumViewActive = v
	s.changed()
}

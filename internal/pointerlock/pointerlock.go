// Package pointerlock manages the mouse capture session of the first-person
// camera and keeps the start panel in step with it.
package pointerlock

import (
	"car-showroom/internal/state"

	"github.com/charmbracelet/log"
)

// Device is a capture-capable pointer. Lock and Unlock are requests: the
// resulting state change is reported later through the subscribed callbacks.
type Device interface {
	Lock()
	Unlock()
	IsLocked() bool
	// Subscribe registers lock and unlock handlers and returns a function that
	// removes them.
	Subscribe(onLock, onUnlock func()) (unsubscribe func())
}

// Manager owns the subscription to a Device and mirrors its events into the
// state store.
type Manager struct {
	store  *state.Store
	logger *log.Logger

	device      Device
	unsubscribe func()
	locked      bool
}

// NewManager returns a manager without a device. Lock and Unlock are no-ops
// until Attach is called.
func NewManager(store *state.Store, logger *log.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Attach subscribes to d. Attaching the same device twice is a no-op; attaching
// a different one detaches the previous device first.
func (m *Manager) Attach(d Device) {
	if d == nil || d == m.device {
		return
	}
	m.Detach()
	m.device = d
	m.locked = d.IsLocked()
	m.unsubscribe = d.Subscribe(m.onLock, m.onUnlock)
}

// Detach removes the device subscription.
func (m *Manager) Detach() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.unsubscribe = nil
	m.device = nil
	m.locked = false
}

func (m *Manager) onLock() {
	m.locked = true
	m.store.SetPointerLocked(true)
	m.store.SetShowStartPanel(false)
}

func (m *Manager) onUnlock() {
	m.locked = false
	m.store.SetPointerLocked(false)
	m.store.SetShowStartPanel(true)
}

// IsLocked reports the last state the device announced.
func (m *Manager) IsLocked() bool { return m.locked }

// Lock requests capture.
func (m *Manager) Lock() {
	switch {
	case m.device == nil:
		m.logger.Debug("lock requested without a capture device")
	case m.device.IsLocked():
		m.logger.Debug("lock requested while already locked")
	default:
		m.device.Lock()
	}
}

// Unlock requests release.
func (m *Manager) Unlock() {
	switch {
	case m.device == nil:
		m.logger.Debug("unlock requested without a capture device")
	case !m.device.IsLocked():
		m.logger.Debug("unlock requested while not locked")
	default:
		m.device.Unlock()
	}
}

// HandlePause releases capture when the pause key goes down while locked.
func (m *Manager) HandlePause(pressed bool) {
	if pressed && m.device != nil && m.device.IsLocked() {
		m.device.Unlock()
	}
}

// Sync requests a lock when the start panel has been dismissed and the session
// is not captured. It runs once per frame.
func (m *Manager) Sync() {
	if !m.store.ShowStartPanel() && !m.store.IsPointerLocked() && m.device != nil && !m.device.IsLocked() {
		m.device.Lock()
	}
}

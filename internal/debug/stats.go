// Package debug tracks the on-screen performance monitor.
package debug

import (
	"fmt"
	"runtime"
)

// updateInterval: only refresh the text every N frames to reduce allocations.
const updateInterval = 30

// logLines is how many recent log lines show under the memory readout.
const logLines = 4

// Stats holds the FPS and heap readouts. Both are off by default.
type Stats struct {
	ShowFPS      bool
	ShowMemAlloc bool

	fps        func() int32
	readMem    func(*runtime.MemStats)
	logSrc     func() []string
	frameCount uint32
	fpsText    string
	memText    string
	logText    []string
	mem        runtime.MemStats
}

// New returns a Stats reading the frame rate from fps.
func New(fps func() int32) *Stats {
	return &Stats{fps: fps, readMem: runtime.ReadMemStats}
}

// FollowLog shows the tail of src together with the memory readout.
func (s *Stats) FollowLog(src func() []string) { s.logSrc = src }

// Toggle flips both overlays together and reports the new state.
func (s *Stats) Toggle() bool {
	on := !(s.ShowFPS || s.ShowMemAlloc)
	s.ShowFPS, s.ShowMemAlloc = on, on
	return on
}

// Tick advances one frame and refreshes the text when due.
func (s *Stats) Tick() {
	s.frameCount++
	update := s.frameCount%updateInterval == 0
	if s.ShowFPS && s.fpsText == "" {
		update = true
	}
	if s.ShowMemAlloc && s.memText == "" {
		update = true
	}
	if !update {
		return
	}
	if s.ShowFPS && s.fps != nil {
		s.fpsText = fmt.Sprintf("FPS: %d", s.fps())
	}
	if s.ShowMemAlloc {
		s.readMem(&s.mem)
		s.memText = fmt.Sprintf("Mem: %.2f MiB", float64(s.mem.Alloc)/(1024*1024))
		if s.logSrc != nil {
			lines := s.logSrc()
			s.logText = append(s.logText[:0], lines[max(0, len(lines)-logLines):]...)
		}
	}
}

// Lines returns the enabled readouts, FPS first.
func (s *Stats) Lines() []string {
	var out []string
	if s.ShowFPS && s.fpsText != "" {
		out = append(out, s.fpsText)
	}
	if s.ShowMemAlloc && s.memText != "" {
		out = append(out, s.memText)
		out = append(out, s.logText...)
	}
	return out
}

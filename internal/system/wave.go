// internal/system/wave.go
package system

import (
	"sort"

	"go-towers/internal/entity"
)

type pendingSpawn struct {
	at    int
	entry entity.ScheduleEntry
}

// WaveSystem holds queued spawns and releases them when their step arrives.
type WaveSystem struct {
	pending []pendingSpawn
}

func NewWaveSystem() *WaveSystem {
	return &WaveSystem{}
}

// Queue adds a wave whose offsets count from step now.
// Spawns due at the same step keep the order they were queued in.
func (s *WaveSystem) Queue(entries []entity.ScheduleEntry, now int) {
	for _, e := range entries {
		at := now + e.Step
		if at < now {
			at = now
		}
		s.pending = append(s.pending, pendingSpawn{at: at, entry: e})
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].at < s.pending[j].at
	})
}

// Release removes and returns every spawn due at or before step now.
func (s *WaveSystem) Release(now int) []entity.ScheduleEntry {
	n := 0
	for n < len(s.pending) && s.pending[n].at <= now {
		n++
	}
	if n == 0 {
		return nil
	}
	due := make([]entity.ScheduleEntry, n)
	for i := range due {
		due[i] = s.pending[i].entry
	}
	s.pending = append(s.pending[:0], s.pending[n:]...)
	return due
}

// Pending is the number of spawns not yet released.
func (s *WaveSystem) Pending() int {
	return len(s.pending)
}

// NextAt is the step of the next release. ok is false when nothing is queued.
func (s *WaveSystem) NextAt() (step int, ok bool) {
	if len(s.pending) == 0 {
		return 0, false
	}
	return s.pending[0].at, true
}

// Reset drops everything queued.
func (s *WaveSystem) Reset() {
	s.pending = nil
}

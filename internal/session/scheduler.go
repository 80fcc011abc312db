package session

import (
	"sync"
	"time"
)

// scheduler is the single debounce slot for deferred draft flushes. At most
// one scheduled flush exists at a time: arming replaces any pending one, so
// a burst of edits produces one flush after the quiet period.
type scheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Arm schedules fn to run after d, replacing any pending schedule.
func (s *scheduler) Arm(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.timer != t {
			// Replaced or canceled after this timer already fired.
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
	s.timer = t
}

// Cancel drops any pending schedule.
func (s *scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a flush is currently scheduled.
func (s *scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

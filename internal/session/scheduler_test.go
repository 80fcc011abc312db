package session

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestSchedulerArmReplaces verifies re-arming replaces the pending schedule:
// only the last fn runs, once.
func TestSchedulerArmReplaces(t *testing.T) {
	var s scheduler
	var first, second atomic.Int32

	s.Arm(30*time.Millisecond, func() { first.Add(1) })
	s.Arm(30*time.Millisecond, func() { second.Add(1) })

	time.Sleep(120 * time.Millisecond)

	if got := first.Load(); got != 0 {
		t.Errorf("replaced schedule fired %d times", got)
	}
	if got := second.Load(); got != 1 {
		t.Errorf("surviving schedule fired %d times, want 1", got)
	}
	if s.Pending() {
		t.Error("still pending after fire")
	}
}

// TestSchedulerCancel verifies a canceled schedule never fires.
func TestSchedulerCancel(t *testing.T) {
	var s scheduler
	var fired atomic.Int32

	s.Arm(30*time.Millisecond, func() { fired.Add(1) })
	if !s.Pending() {
		t.Fatal("not pending after arm")
	}
	s.Cancel()
	if s.Pending() {
		t.Error("pending after cancel")
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("canceled schedule fired %d times", got)
	}
}

// TestSchedulerRearmAfterFire verifies the slot is reusable.
func TestSchedulerRearmAfterFire(t *testing.T) {
	var s scheduler
	var fired atomic.Int32

	s.Arm(10*time.Millisecond, func() { fired.Add(1) })
	time.Sleep(60 * time.Millisecond)
	s.Arm(10*time.Millisecond, func() { fired.Add(1) })
	time.Sleep(60 * time.Millisecond)

	if got := fired.Load(); got != 2 {
		t.Errorf("fired %d times, want 2", got)
	}
}

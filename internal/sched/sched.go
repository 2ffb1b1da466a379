// Package sched is a cooperative timer facility. Callbacks never run on
// their own goroutine: they fire inside Advance, on the caller's goroutine,
// so a single-threaded host can use timers without locks.
package sched

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type timer struct {
	h   Handle
	due time.Duration
	fn  func()
}

// Scheduler keeps a virtual clock that only moves when Advance is called.
type Scheduler struct {
	now     time.Duration
	next    Handle
	pending []timer
}

// New returns a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since New.
func (s *Scheduler) Now() time.Duration { return s.now }

// After schedules fn to run once d has elapsed. Negative durations are
// treated as zero; a zero-delay callback runs on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.next++
	s.pending = append(s.pending, timer{h: s.next, due: s.now + d, fn: fn})
	return s.next
}

// Cancel removes h. It reports whether h was still pending.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, t := range s.pending {
		if t.h == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether h has not fired or been cancelled yet.
func (s *Scheduler) Pending(h Handle) bool {
	for _, t := range s.pending {
		if t.h == h {
			return true
		}
	}
	return false
}

// Len returns the number of pending callbacks.
func (s *Scheduler) Len() int { return len(s.pending) }

// Advance moves the clock forward by dt and runs every callback that became
// due, earliest first and in scheduling order for equal due times. A
// callback may schedule or cancel others; new callbacks due within this
// Advance also run. Each callback sees Now() equal to its own due time.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for {
		i := s.earliest()
		if i < 0 || s.pending[i].due > target {
			break
		}
		t := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}
	s.now = target
}

// earliest returns the index of the next callback to fire, or -1.
func (s *Scheduler) earliest() int {
	if len(s.pending) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(s.pending); i++ {
		p, b := s.pending[i], s.pending[best]
		if p.due < b.due || (p.due == b.due && p.h < b.h) {
			best = i
		}
	}
	return best
}

// Flush runs every pending callback immediately regardless of due time, in
// firing order, including any they schedule. The clock ends at the last due
// time that ran.
func (s *Scheduler) Flush() {
	for {
		i := s.earliest()
		if i < 0 {
			return
		}
		t := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}
}

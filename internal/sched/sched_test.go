package sched

import (
	"reflect"
	"testing"
	"time"
)

func TestScheduler_FiresInDueOrder(t *testing.T) {
	s := New()
	var got []string
	s.After(30*time.Millisecond, func() { got = append(got, "c") })
	s.After(10*time.Millisecond, func() { got = append(got, "a") })
	s.After(10*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(5 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	s.Advance(5 * time.Millisecond)
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	s.Advance(time.Second)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if s.Now() != 1010*time.Millisecond {
		t.Errorf("Now = %v, want 1.01s", s.Now())
	}
}

func TestScheduler_Cancel(t *testing.T) {
	s := New()
	fired := false
	h := s.After(10*time.Millisecond, func() { fired = true })
	if !s.Pending(h) {
		t.Fatal("handle not pending")
	}
	if !s.Cancel(h) {
		t.Fatal("Cancel = false, want true")
	}
	if s.Cancel(h) {
		t.Error("second Cancel = true, want false")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("cancelled callback fired")
	}
}

func TestScheduler_ChainedCallbacksRunWithinAdvance(t *testing.T) {
	s := New()
	var at []time.Duration
	var tick func()
	tick = func() {
		at = append(at, s.Now())
		if len(at) < 4 {
			s.After(20*time.Millisecond, tick)
		}
	}
	s.After(20*time.Millisecond, tick)

	s.Advance(70 * time.Millisecond)
	want := []time.Duration{20 * time.Millisecond, 40 * time.Millisecond, 60 * time.Millisecond}
	if !reflect.DeepEqual(at, want) {
		t.Fatalf("fired at %v, want %v", at, want)
	}
	s.Advance(10 * time.Millisecond)
	if len(at) != 4 {
		t.Fatalf("fired %d times, want 4", len(at))
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestScheduler_CallbackCancelsSibling(t *testing.T) {
	s := New()
	fired := false
	var h Handle
	s.After(10*time.Millisecond, func() { s.Cancel(h) })
	h = s.After(10*time.Millisecond, func() { fired = true })
	s.Advance(10 * time.Millisecond)
	if fired {
		t.Error("sibling fired after being cancelled")
	}
}

func TestScheduler_Flush(t *testing.T) {
	s := New()
	n := 0
	var step func()
	step = func() {
		n++
		if n < 13 {
			s.After(20*time.Millisecond, step)
		}
	}
	s.After(0, step)
	s.Flush()
	if n != 13 {
		t.Errorf("n = %d, want 13", n)
	}
	if s.Now() != 240*time.Millisecond {
		t.Errorf("Now = %v, want 240ms", s.Now())
	}
}

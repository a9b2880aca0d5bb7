// Package anim provides the clocks that drive widget animation and the
// helpers that turn elapsed time into animation state.
package anim

import (
	"sync"
	"time"
)

// Clock reports monotonic elapsed time. Widgets read a Clock once per
// update; they never own one.
type Clock interface {
	Elapsed() time.Duration
}

// Since returns the time elapsed on c after the reading mark.
func Since(c Clock, mark time.Duration) time.Duration {
	return c.Elapsed() - mark
}

// Stopwatch is a pausable Clock backed by the monotonic wall clock. The
// zero value is a stopped stopwatch reading zero.
type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	start   time.Time
	banked  time.Duration
	running bool
}

// NewStopwatch returns a running Stopwatch.
func NewStopwatch() *Stopwatch {
	s := &Stopwatch{}
	s.Resume()
	return s
}

func (s *Stopwatch) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Elapsed returns the running time, excluding time spent paused.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return s.banked
	}
	return s.banked + s.clock().Sub(s.start)
}

// Pause stops the stopwatch. Elapsed holds its value until Resume.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.banked += s.clock().Sub(s.start)
	s.running = false
}

// Resume restarts a paused stopwatch.
func (s *Stopwatch) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.start = s.clock()
	s.running = true
}

// Restart sets the reading to zero and leaves the stopwatch running.
func (s *Stopwatch) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banked = 0
	s.start = s.clock()
	s.running = true
}

// Paused reports whether the stopwatch is stopped.
func (s *Stopwatch) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.running
}

// Fake is a Clock advanced by hand, for tests.
type Fake struct {
	mu sync.Mutex
	t  time.Duration
}

// Elapsed returns the current reading.
func (f *Fake) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t += d
}

// Set moves the clock to t.
func (f *Fake) Set(t time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
}

// Package widget holds the simple animated widgets. Each is a three state
// machine (idle, hovered, pressed) whose colours are interpolated from the
// time spent in the current state.
package widget

import (
	"time"

	"github.com/rjkroege/richui/input"
)

// State is the interaction state of a widget.
type State int

const (
	Idle State = iota
	Hovered
	Pressed
)

func (s State) String() string {
	switch s {
	case Hovered:
		return "hovered"
	case Pressed:
		return "pressed"
	}
	return "idle"
}

// tracker follows the pointer over one widget. A click is a press that
// starts inside the widget and is released while still inside. A drag
// tracker keeps a press alive when the pointer leaves the widget.
type tracker struct {
	hovered  bool
	pressing bool
	down     bool
	drag     bool

	// since is the clock reading when the current state was entered.
	since time.Duration
}

// update records a pointer sample taken at now and reports whether it
// completed a click.
func (t *tracker) update(p input.Pointer, inside, enabled bool, now time.Duration) bool {
	wasHovered, wasPressing := t.hovered, t.pressing
	t.hovered = inside && enabled

	clicked := false
	if p.Pressed != t.down {
		t.down = p.Pressed
		if t.pressing && !t.down && t.hovered {
			clicked = true
		}
		t.pressing = t.down && t.hovered
	}
	if !enabled || (!t.hovered && !t.drag) {
		t.pressing = false
	}

	if wasHovered != t.hovered || (!wasPressing && t.pressing) {
		t.since = now
	}
	return clicked
}

func (t *tracker) state() State {
	switch {
	case t.pressing:
		return Pressed
	case t.hovered:
		return Hovered
	}
	return Idle
}

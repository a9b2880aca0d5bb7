// Package input samples pointer state once per update and turns the
// samples into clicks.
package input

import (
	"image"

	"github.com/rjkroege/richui/draw"
)

// Pointer is the state of the pointer in a widget's local coordinates.
type Pointer struct {
	Pt      image.Point
	Pressed bool // primary button
}

// FromMouse converts a mouse event to a Pointer relative to origin, the
// screen position of the widget's top left corner.
func FromMouse(m draw.Mouse, origin image.Point) Pointer {
	return Pointer{
		Pt:      m.Point.Sub(origin),
		Pressed: m.Buttons&1 != 0,
	}
}

// Clicker detects the transition of the primary button from released to
// pressed. Holding the button down produces one click.
type Clicker struct {
	down bool
}

// Sample records p and reports whether it starts a click.
func (c *Clicker) Sample(p Pointer) bool {
	click := p.Pressed && !c.down
	c.down = p.Pressed
	return click
}

// Down reports whether the button was pressed in the last sample.
func (c *Clicker) Down() bool {
	return c.down
}

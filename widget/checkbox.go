package widget

import (
	"image"
	"time"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/markup"
	"github.com/rjkroege/richui/rich"
)

// CheckState is the value of a Checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

const (
	boxSize   = 18
	labelGap  = 20
	pressGlow = 1500 * time.Millisecond
)

// Checkbox is a box with a label. Clicking toggles between Checked and
// Unchecked; Indeterminate can only be set by the program.
type Checkbox struct {
	Label    string
	Pos      image.Point
	Hue      float64
	Enabled  bool
	OnChange func(CheckState)

	value CheckState
	clock anim.Clock
	fonts *rich.FontSet
	t     tracker
}

// NewCheckbox returns an unchecked, enabled checkbox at pos.
func NewCheckbox(label string, pos image.Point, fonts *rich.FontSet, clock anim.Clock) *Checkbox {
	return &Checkbox{
		Label:   label,
		Pos:     pos,
		Hue:     DefaultHue,
		Enabled: true,
		clock:   clock,
		fonts:   fonts,
	}
}

// Bounds covers the box and the label.
func (c *Checkbox) Bounds() image.Rectangle {
	w := labelGap + c.fonts.Base.StringWidth(c.Label)
	return image.Rectangle{Min: c.Pos, Max: c.Pos.Add(image.Pt(w, boxSize))}
}

// Value returns the current value.
func (c *Checkbox) Value() CheckState {
	return c.value
}

// Checked reports whether the value is anything but Unchecked.
func (c *Checkbox) Checked() bool {
	return c.value != Unchecked
}

// SetValue changes the value, calling OnChange if it differs.
func (c *Checkbox) SetValue(v CheckState) {
	if v == c.value {
		return
	}
	c.value = v
	if c.OnChange != nil {
		c.OnChange(v)
	}
}

// Update samples the pointer and toggles the value on a click.
func (c *Checkbox) Update(p input.Pointer) {
	if c.t.update(p, p.Pt.In(c.Bounds()), c.Enabled, c.clock.Elapsed()) {
		if c.Checked() {
			c.SetValue(Unchecked)
		} else {
			c.SetValue(Checked)
		}
	}
}

// State returns the current interaction state.
func (c *Checkbox) State() State {
	return c.t.state()
}

// Primitives returns the render list of the checkbox.
func (c *Checkbox) Primitives() []rich.Primitive {
	v := 0.6
	elapsed := anim.Since(c.clock, c.t.since)
	switch c.State() {
	case Hovered:
		v = anim.Lerp(anim.Percent(elapsed, 0, hoverFade), 0.6, 0.8)
	case Pressed:
		v = anim.Lerp(anim.Percent(elapsed, 0, pressGlow), 0.8, 1)
	}
	outline := anim.HSV(c.Hue, 0.36, v, 1)
	mark := anim.HSV(c.Hue, 0.6, 0.5, 1)

	box := image.Rectangle{Min: c.Pos, Max: c.Pos.Add(image.Pt(boxSize, boxSize))}
	prims := outlineRect(box, outline)
	inner := box.Inset(4)
	switch c.value {
	case Checked:
		prims = append(prims, rich.Primitive{Kind: rich.PrimFill, Rect: inner, Color: mark})
	case Indeterminate:
		y := inner.Min.Y + inner.Dy()/2
		prims = append(prims, rich.Primitive{Kind: rich.PrimLine, From: image.Pt(inner.Min.X, y), To: image.Pt(inner.Max.X, y), Color: mark})
	}

	f := c.fonts.Base
	at := c.Pos.Add(image.Pt(labelGap, (boxSize-f.Height())/2))
	prims = append(prims, rich.Primitive{
		Kind:  rich.PrimText,
		Rect:  image.Rectangle{Min: at, Max: at.Add(image.Pt(f.StringWidth(c.Label), f.Height()))},
		Text:  c.Label,
		Style: markup.DefaultStyle(),
	})
	return prims
}

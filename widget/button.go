package widget

import (
	"image"
	"image/color"
	"time"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/markup"
	"github.com/rjkroege/richui/rich"
)

// DefaultHue is the hue of widgets that do not set one.
const DefaultHue = 200

const hoverFade = 500 * time.Millisecond

// Button is a labelled push button.
type Button struct {
	Label   string
	Rect    image.Rectangle // widget-local bounds
	Hue     float64
	Enabled bool
	OnClick func()

	clock anim.Clock
	fonts *rich.FontSet
	t     tracker
}

// NewButton returns an enabled button covering r.
func NewButton(label string, r image.Rectangle, fonts *rich.FontSet, clock anim.Clock) *Button {
	return &Button{
		Label:   label,
		Rect:    r,
		Hue:     DefaultHue,
		Enabled: true,
		clock:   clock,
		fonts:   fonts,
	}
}

// Update samples the pointer and runs OnClick when a click completes.
func (b *Button) Update(p input.Pointer) {
	if b.t.update(p, p.Pt.In(b.Rect), b.Enabled, b.clock.Elapsed()) && b.OnClick != nil {
		b.OnClick()
	}
}

// State returns the current interaction state.
func (b *Button) State() State {
	return b.t.state()
}

// colors returns the fill and outline colours for the current state and
// time.
func (b *Button) colors() (fill, outline color.Color) {
	s, bonus := 0.3, 0.0
	elapsed := anim.Since(b.clock, b.t.since)
	switch b.State() {
	case Hovered:
		p := anim.Percent(elapsed, 0, hoverFade)
		s = anim.Lerp(p, 0.3, 0.5)
		bonus = anim.Lerp(p, 0, 0.2)
	case Pressed:
		s, bonus = 0.6, 0.4
	}
	return anim.HSV(b.Hue, s, 0.47+bonus, 1), anim.HSV(b.Hue, s, 0.27+bonus, 1)
}

// Primitives returns the render list of the button.
func (b *Button) Primitives() []rich.Primitive {
	fill, outline := b.colors()
	prims := []rich.Primitive{{Kind: rich.PrimFill, Rect: b.Rect, Color: fill}}
	prims = append(prims, outlineRect(b.Rect, outline)...)

	style := markup.DefaultStyle()
	f := b.fonts.Base
	w, h := f.StringWidth(b.Label), f.Height()
	at := image.Pt(b.Rect.Min.X+(b.Rect.Dx()-w)/2, b.Rect.Min.Y+(b.Rect.Dy()-h)/2)
	prims = append(prims, rich.Primitive{
		Kind:  rich.PrimText,
		Rect:  image.Rectangle{Min: at, Max: at.Add(image.Pt(w, h))},
		Text:  b.Label,
		Style: style,
	})
	return prims
}

func outlineRect(r image.Rectangle, c color.Color) []rich.Primitive {
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	return []rich.Primitive{
		{Kind: rich.PrimLine, From: image.Pt(x0, y0), To: image.Pt(x1, y0), Color: c},
		{Kind: rich.PrimLine, From: image.Pt(x0, y1), To: image.Pt(x1, y1), Color: c},
		{Kind: rich.PrimFill, Rect: image.Rect(x0, y0, x0+1, y1+1), Color: c},
		{Kind: rich.PrimFill, Rect: image.Rect(x1, y0, x1+1, y1+1), Color: c},
	}
}

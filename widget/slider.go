package widget

import (
	"image"
	"image/color"
	"math"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/rich"
)

const (
	padRadius  = 6
	tickTop    = 7
	tickBottom = 15
)

// Slider picks a value in a range by dragging a pad along a horizontal
// track. The drag continues when the pointer leaves the slider.
type Slider struct {
	Pos       image.Point // left end of the track
	Width     int
	Step      float64 // values snap to multiples of Step when positive
	Divisions int     // tick marks between the ends; none when zero
	Hue       float64
	Enabled   bool

	// OnChange runs with the final value when a drag ends.
	OnChange func(float64)

	min, max float64
	value    float64
	clock    anim.Clock
	t        tracker
}

// NewSlider returns an enabled slider over [lo, hi] set to lo.
func NewSlider(pos image.Point, width int, lo, hi float64, clock anim.Clock) *Slider {
	s := &Slider{
		Pos:     pos,
		Width:   width,
		Hue:     DefaultHue,
		Enabled: true,
		clock:   clock,
		t:       tracker{drag: true},
	}
	s.SetRange(lo, hi)
	return s
}

// Range returns the bounds of the value.
func (s *Slider) Range() (lo, hi float64) {
	return s.min, s.max
}

// SetRange changes the bounds, swapping them if reversed, and clamps the
// value into them.
func (s *Slider) SetRange(lo, hi float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.min, s.max = lo, hi
	s.value = s.clamp(s.value)
}

// Value returns the current value.
func (s *Slider) Value() float64 {
	return s.value
}

// SetValue moves the pad to v clamped to the range. OnChange is not run.
func (s *Slider) SetValue(v float64) {
	s.value = s.clamp(v)
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.min, math.Min(s.max, v))
}

// Bounds covers the track and the pad at either end.
func (s *Slider) Bounds() image.Rectangle {
	return image.Rect(s.Pos.X-padRadius, s.Pos.Y-padRadius, s.Pos.X+s.Width+padRadius+1, s.Pos.Y+padRadius+1)
}

// valueAt returns the value under x on the track.
func (s *Slider) valueAt(x int) float64 {
	p := 0.0
	if s.Width > 0 {
		p = math.Max(0, math.Min(1, float64(x-s.Pos.X)/float64(s.Width)))
	}
	v := anim.Lerp(p, s.min, s.max)
	if s.Step > 0 {
		v = math.Round(v/s.Step) * s.Step
	}
	return s.clamp(v)
}

// padX returns the x coordinate of the pad centre.
func (s *Slider) padX() int {
	if s.max <= s.min {
		return s.Pos.X
	}
	return s.Pos.X + int((s.value-s.min)/(s.max-s.min)*float64(s.Width))
}

// Update samples the pointer. While the pad is held the value follows the
// pointer; releasing it runs OnChange.
func (s *Slider) Update(p input.Pointer) {
	wasPressing := s.t.pressing
	s.t.update(p, p.Pt.In(s.Bounds()), s.Enabled, s.clock.Elapsed())
	if s.t.pressing {
		s.value = s.valueAt(p.Pt.X)
	}
	if wasPressing && !s.t.pressing && s.OnChange != nil {
		s.OnChange(s.value)
	}
}

// State returns the current interaction state.
func (s *Slider) State() State {
	return s.t.state()
}

// Primitives returns the render list of the slider: the track, the filled
// part up to the pad, the ticks and then the pad.
func (s *Slider) Primitives() []rich.Primitive {
	x0, x1, y := s.Pos.X, s.Pos.X+s.Width, s.Pos.Y
	line := func(from, to image.Point, c color.Color) rich.Primitive {
		return rich.Primitive{Kind: rich.PrimLine, From: from, To: to, Color: c}
	}

	prims := []rich.Primitive{
		line(image.Pt(x0, y), image.Pt(x1, y), color.Black),
		line(image.Pt(x0, y-1), image.Pt(x1, y-1), anim.HSV(s.Hue, 0.25, 0.25, 1)),
		line(image.Pt(x0, y+1), image.Pt(x1, y+1), anim.HSV(s.Hue, 0.25, 0.5, 1)),
	}

	px := s.padX()
	prims = append(prims, rich.Primitive{
		Kind:  rich.PrimFill,
		Rect:  image.Rect(x0, y-2, px, y+3),
		Color: anim.HSV(s.Hue, 0.75, 1, 0.5),
	})

	if s.Divisions > 0 {
		for i := 0; i <= s.Divisions+1; i++ {
			x := x0 + i*s.Width/(s.Divisions+1)
			prims = append(prims, line(image.Pt(x, y+tickTop), image.Pt(x, y+tickBottom), color.Black))
		}
	}

	fill, glow := anim.HSV(s.Hue, 0.6, 0.65, 1), anim.HSV(s.Hue, 0.6, 0.65, 1)
	switch s.State() {
	case Hovered:
		p := anim.Percent(anim.Since(s.clock, s.t.since), 0, hoverFade)
		glow = anim.HSV(s.Hue, 0.6, anim.Lerp(p, 0.65, 1), 1)
	case Pressed:
		fill, glow = anim.HSV(s.Hue, 0.2, 1, 1), anim.HSV(s.Hue, 0.6, 1, 1)
	}
	pad := image.Rect(px-padRadius, y-padRadius, px+padRadius+1, y+padRadius+1)
	prims = append(prims, rich.Primitive{Kind: rich.PrimFill, Rect: pad, Color: fill})
	return append(prims, outlineRect(pad, glow)...)
}

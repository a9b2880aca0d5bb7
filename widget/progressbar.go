package widget

import (
	"image"
	"math"
	"time"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/rich"
)

const (
	// fullFill is how long the bar takes to animate from empty to full.
	fullFill  = time.Second
	barHeight = 14
)

// ProgressBar shows a fraction in [0, 1] as a horizontal bar. Changes can
// be animated: the bar moves linearly to the new fraction while a lighter
// ghost bar marks where it is heading (growing) or where it came from
// (shrinking).
type ProgressBar struct {
	Pos   image.Point
	Width int
	Hue   float64

	from, percent float64
	since, length time.Duration
	clock         anim.Clock
}

// NewProgressBar returns an empty bar.
func NewProgressBar(pos image.Point, width int, clock anim.Clock) *ProgressBar {
	return &ProgressBar{Pos: pos, Width: width, Hue: DefaultHue, clock: clock}
}

// Bounds covers the bar and its frame.
func (b *ProgressBar) Bounds() image.Rectangle {
	return image.Rectangle{Min: b.Pos, Max: b.Pos.Add(image.Pt(b.Width+2, barHeight))}
}

// Percent returns the fraction the bar is showing or heading to.
func (b *ProgressBar) Percent() float64 {
	return b.percent
}

// SetPercent changes the fraction, clamped to [0, 1]. An animated change
// starts from the fraction currently drawn and lasts in proportion to the
// distance moved.
func (b *ProgressBar) SetPercent(p float64, animate bool) {
	p = math.Max(0, math.Min(1, p))
	if !animate {
		b.from, b.percent = p, p
		return
	}
	b.from = b.Filling()
	b.length = time.Duration(math.Abs(p-b.percent) * float64(fullFill))
	b.since = b.clock.Elapsed()
	b.percent = p
}

// fills returns the drawn fraction of the bar and of the ghost. ok is false
// when no animation is running.
func (b *ProgressBar) fills() (bar, ghost float64, ok bool) {
	elapsed := anim.Since(b.clock, b.since)
	if b.from == b.percent || elapsed >= b.length {
		return b.percent, 0, false
	}
	p := anim.Percent(elapsed, 0, b.length)
	linear := anim.Lerp(p, b.from, b.percent)
	fast := anim.Lerp(math.Pow(p, 1.0/6), b.from, b.percent)
	if b.percent < b.from {
		return fast, linear, true
	}
	return linear, fast, true
}

// Filling returns the fraction currently drawn.
func (b *ProgressBar) Filling() float64 {
	bar, _, _ := b.fills()
	return bar
}

// Animating reports whether the bar is still moving.
func (b *ProgressBar) Animating() bool {
	_, _, ok := b.fills()
	return ok
}

// Primitives returns the render list: the frame, the ghost while
// animating, the bar and its end cap when at rest.
func (b *ProgressBar) Primitives() []rich.Primitive {
	frame := b.Bounds()
	prims := outlineRect(frame, anim.HSV(b.Hue, 0.2, 0.6, 1))

	inner := func(f float64) image.Rectangle {
		x := frame.Min.X + 1 + int(f*float64(b.Width))
		return image.Rect(frame.Min.X+1, frame.Min.Y+1, x, frame.Max.Y-1)
	}

	bar, ghost, animating := b.fills()
	if animating {
		prims = append(prims, rich.Primitive{
			Kind:  rich.PrimFill,
			Rect:  inner(ghost),
			Color: anim.HSV(anim.Lerp(ghost, b.Hue, b.Hue-20)-20, 0.25, 1, 1),
		})
	}

	r := inner(bar)
	prims = append(prims, rich.Primitive{
		Kind:  rich.PrimFill,
		Rect:  r,
		Color: anim.HSV(anim.Lerp(bar, b.Hue, b.Hue-20), 0.65, 0.85, 1),
	})
	if !animating && !r.Empty() {
		prims = append(prims, rich.Primitive{
			Kind:  rich.PrimLine,
			From:  image.Pt(r.Max.X, r.Min.Y),
			To:    image.Pt(r.Max.X, r.Max.Y-1),
			Color: anim.HSV(b.Hue, 0.85, 0.4, 1),
		})
	}
	return prims
}

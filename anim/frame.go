package anim

import (
	"image/color"
	"math"
	"time"
)

// CurrentFrame returns the index of the frame to show after elapsed time
// when each of count frames is shown for d. Single frame images, a zero
// duration and negative elapsed time all select frame 0.
func CurrentFrame(count int, d, elapsed time.Duration) int {
	if count <= 1 || d <= 0 || elapsed < 0 {
		return 0
	}
	return int((elapsed / d) % time.Duration(count))
}

// Percent returns where t falls between from and to, clamped to [0, 1].
func Percent(t, from, to time.Duration) float64 {
	if to <= from {
		if t >= to {
			return 1
		}
		return 0
	}
	p := float64(t-from) / float64(to-from)
	return math.Max(0, math.Min(1, p))
}

// Lerp interpolates linearly between a and b.
func Lerp(p, a, b float64) float64 {
	return a + (b-a)*p
}

// LerpColor interpolates each channel of two colours.
func LerpColor(p float64, a, b color.Color) color.RGBA {
	ca := color.RGBAModel.Convert(a).(color.RGBA)
	cb := color.RGBAModel.Convert(b).(color.RGBA)
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(Lerp(p, float64(x), float64(y))))
	}
	return color.RGBA{R: ch(ca.R, cb.R), G: ch(ca.G, cb.G), B: ch(ca.B, cb.B), A: ch(ca.A, cb.A)}
}

// HSV returns the colour with hue h in degrees and saturation s, value v
// and alpha a in [0, 1].
func HSV(h, s, v, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(1, s))
	v = math.Max(0, math.Min(1, v))
	a = math.Max(0, math.Min(1, a))

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(f float64) uint8 { return uint8(math.Round(f * 255)) }
	return color.NRGBA{R: to8(r + m), G: to8(g + m), B: to8(b + m), A: to8(a)}
}

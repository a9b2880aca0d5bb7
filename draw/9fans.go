package draw

import (
	draw "9fans.net/go/draw"
)

const (
	Refnone = draw.Refnone

	Black       = draw.Black
	Medblue     = draw.Medblue
	Notacolor   = draw.Notacolor
	Paleyellow  = draw.Paleyellow
	Transparent = draw.Transparent
	White       = draw.White
)

// Pix constants for pixel formats.
// These are used when allocating images with specific pixel formats.
var (
	RGBA32 = draw.RGBA32
	ABGR32 = draw.ABGR32
)

type (
	Color       = draw.Color
	drawDisplay = draw.Display
	drawFont    = draw.Font
	drawImage   = draw.Image
	Mousectl    = draw.Mousectl
	Mouse       = draw.Mouse
	Pix         = draw.Pix
)

// NewDisplay opens a window and returns it as a Display. Errors reported
// asynchronously by the display connection arrive on errch.
func NewDisplay(errch chan<- error, fontname, label, winsize string) (Display, error) {
	d, err := draw.Init(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	return &displayImpl{d}, nil
}

// Package draw wraps the subset of 9fans.net/go/draw used to put widgets on
// the screen behind interfaces, so that the layout and rendering code can
// be exercised against mocks.
package draw

import "image"

// Display is a connection to a window that can allocate images and fonts.
type Display interface {
	ScreenImage() Image
	White() Image
	Black() Image

	InitMouse() *Mousectl
	OpenFont(name string) (Font, error)
	AllocImage(r image.Rectangle, pix Pix, repl bool, val Color) (Image, error)
	Attach(ref int) error
	Flush() error
}

// Image is a drawing target or source living on the display.
type Image interface {
	Pix() Pix
	R() image.Rectangle

	Draw(r image.Rectangle, src, mask Image, p1 image.Point)
	Bytes(pt image.Point, src Image, sp image.Point, f Font, b []byte) image.Point
	Free() error
	Load(r image.Rectangle, data []byte) (int, error)
}

// Font supplies the glyph metrics used by layout. Widths and heights are
// in pixels.
type Font interface {
	Name() string
	Height() int
	BytesWidth(b []byte) int
	StringWidth(s string) int
}

// displayImpl implements the Display interface.
type displayImpl struct {
	*drawDisplay
}

var _ = Display((*displayImpl)(nil))

func (d *displayImpl) ScreenImage() Image { return &imageImpl{d.drawDisplay.ScreenImage} }
func (d *displayImpl) White() Image       { return &imageImpl{d.drawDisplay.White} }
func (d *displayImpl) Black() Image       { return &imageImpl{d.drawDisplay.Black} }

func (d *displayImpl) OpenFont(name string) (Font, error) {
	f, err := d.drawDisplay.OpenFont(name)
	if err != nil {
		return nil, err
	}
	return &fontImpl{f}, nil
}

func (d *displayImpl) AllocImage(r image.Rectangle, pix Pix, repl bool, val Color) (Image, error) {
	i, err := d.drawDisplay.AllocImage(r, pix, repl, val)
	if err != nil {
		return nil, err
	}
	return &imageImpl{i}, nil
}

// imageImpl implements the Image interface.
type imageImpl struct {
	*drawImage
}

var _ = Image((*imageImpl)(nil))

func (dst *imageImpl) Pix() Pix           { return dst.drawImage.Pix }
func (dst *imageImpl) R() image.Rectangle { return dst.drawImage.R }

func (dst *imageImpl) Draw(r image.Rectangle, src, mask Image, p1 image.Point) {
	dst.drawImage.Draw(r, toDrawImage(src), toDrawImage(mask), p1)
}

// Bytes draws b with f. Fonts that did not come from the display (such as
// faces measured with golang.org/x/image) cannot be drawn by devdraw and
// are skipped.
func (dst *imageImpl) Bytes(pt image.Point, src Image, sp image.Point, f Font, b []byte) image.Point {
	df, ok := f.(*fontImpl)
	if !ok {
		return pt.Add(image.Pt(f.BytesWidth(b), 0))
	}
	return dst.drawImage.Bytes(pt, toDrawImage(src), sp, df.drawFont, b)
}

func (dst *imageImpl) Load(r image.Rectangle, data []byte) (int, error) {
	return dst.drawImage.Load(r, data)
}

func toDrawImage(i Image) *drawImage {
	if i == nil {
		return nil
	}
	return i.(*imageImpl).drawImage
}

type fontImpl struct {
	*drawFont
}

func (f *fontImpl) Name() string { return f.drawFont.Name }
func (f *fontImpl) Height() int  { return f.drawFont.Height }

// RGBA converts a Plan 9 colour value into its components.
func RGBA(c Color) (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// MakeColor packs components into a Plan 9 colour value.
func MakeColor(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Package drawtest contains mock implementations of the draw interfaces
// that record the operations performed on them.
package drawtest

import (
	"fmt"
	"image"
	"sync"
	"unicode/utf8"

	"github.com/rjkroege/richui/draw"
)

var _ = draw.Display((*mockDisplay)(nil))

// Default metrics of the fonts returned by OpenFont.
const (
	FontWidth  = 13
	FontHeight = 10
)

// GettableDrawOps display implementations can provide a list of the
// executed draw ops.
type GettableDrawOps interface {
	DrawOps() []string
	Clear()
}

// mockDisplay implements draw.Display.
type mockDisplay struct {
	mu          sync.Mutex
	drawops     []string
	screenimage draw.Image
	allocs      int
}

// NewDisplay returns a mock draw.Display with an 800x600 screen image.
func NewDisplay() draw.Display {
	md := &mockDisplay{}
	md.screenimage = newimageimpl(md, "screen-800x600", draw.Notacolor, image.Rect(0, 0, 800, 600))
	return md
}

func (d *mockDisplay) ScreenImage() draw.Image {
	return d.screenimage
}

func (d *mockDisplay) White() draw.Image {
	return newimageimpl(d, "white", draw.White, image.Rectangle{})
}
func (d *mockDisplay) Black() draw.Image {
	return newimageimpl(d, "black", draw.Black, image.Rectangle{})
}
func (d *mockDisplay) InitMouse() *draw.Mousectl { return &draw.Mousectl{} }

func (d *mockDisplay) OpenFont(name string) (draw.Font, error) {
	return NewFont(FontWidth, FontHeight), nil
}

func (d *mockDisplay) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	d.mu.Lock()
	d.allocs++
	n := d.allocs
	d.mu.Unlock()
	return &mockImage{
		d:    d,
		r:    r,
		c:    val,
		n:    fmt.Sprintf("alloc%d", n),
		repl: repl,
	}, nil
}

func (d *mockDisplay) Attach(ref int) error { return nil }
func (d *mockDisplay) Flush() error         { return nil }

func (d *mockDisplay) DrawOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.drawops...)
}

func (d *mockDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = nil
}

func (d *mockDisplay) record(op string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = append(d.drawops, op)
}

var _ = draw.Image((*mockImage)(nil))

// mockImage implements draw.Image.
type mockImage struct {
	r      image.Rectangle
	d      *mockDisplay
	n      string
	c      draw.Color
	repl   bool
	loaded int
}

// newimageimpl creates a new mockImage. Use Notacolor for the situation
// where the name of the image takes precedence.
func newimageimpl(d *mockDisplay, name string, c draw.Color, r image.Rectangle) draw.Image {
	return &mockImage{
		r: r,
		d: d,
		c: c,
		n: name,
	}
}

// NewImage returns a mock draw.Image with the given bounds.
func NewImage(display draw.Display, name string, r image.Rectangle) draw.Image {
	d := display.(*mockDisplay)
	return newimageimpl(d, name, draw.Notacolor, r)
}

func (i *mockImage) Pix() draw.Pix      { return draw.RGBA32 }
func (i *mockImage) R() image.Rectangle { return i.r }

func (i *mockImage) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	srcname := "nil"
	if msrc, ok := src.(*mockImage); ok {
		srcname = msrc.N()
	}
	i.d.record(fmt.Sprintf("%s <- draw r: %v src: %s p1: %v", i.n, r, srcname, p1))
}

func (i *mockImage) Bytes(pt image.Point, src draw.Image, sp image.Point, f draw.Font, b []byte) image.Point {
	srcname := "nil"
	if msrc, ok := src.(*mockImage); ok {
		srcname = msrc.N()
	}
	i.d.record(fmt.Sprintf("%s <- string %q atpoint: %v font: %s fill: %s", i.n, string(b), pt, f.Name(), srcname))
	return pt.Add(image.Pt(f.BytesWidth(b), 0))
}

func (i *mockImage) Free() error { return nil }

func (i *mockImage) Load(r image.Rectangle, data []byte) (int, error) {
	i.loaded += len(data)
	i.d.record(fmt.Sprintf("%s <- load r: %v bytes: %d", i.n, r, len(data)))
	return len(data), nil
}

// N returns a nicename for the image colour.
func (i *mockImage) N() string {
	name := i.n
	if i.c != draw.Notacolor {
		name = fmt.Sprintf("%s-%v", NiceColourName(i.c), i.r)
	}
	if i.repl {
		name += ",tiled"
	}
	return name
}

var _ = draw.Font((*mockFont)(nil))

// mockFont implements draw.Font and mocks as a fixed width font.
type mockFont struct {
	name          string
	width, height int
}

// NewFont returns a draw.Font that mocks a fixed-width font.
func NewFont(width, height int) draw.Font {
	return NewNamedFont(fmt.Sprintf("fixed%dx%d", width, height), width, height)
}

// NewNamedFont is NewFont with a name that shows up in recorded draw ops.
func NewNamedFont(name string, width, height int) draw.Font {
	return &mockFont{
		name:   name,
		width:  width,
		height: height,
	}
}

func (f *mockFont) Name() string             { return f.name }
func (f *mockFont) Height() int              { return f.height }
func (f *mockFont) BytesWidth(b []byte) int  { return f.width * utf8.RuneCount(b) }
func (f *mockFont) StringWidth(s string) int { return f.width * utf8.RuneCountInString(s) }

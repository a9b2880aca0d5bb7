package rich

import (
	"image"
	"image/color"

	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/markup"
	xdraw "golang.org/x/image/draw"
)

// PrimitiveKind identifies a drawable primitive.
type PrimitiveKind int

const (
	PrimText PrimitiveKind = iota
	PrimImage
	PrimLine
	PrimFill
)

// Primitive is one entry of the render list handed to a renderer. Text
// primitives are drawn at Rect.Min with the font for Style. Line primitives
// run from From to To. Fill primitives cover Rect with Color. A nil Color
// means the painter's default ink.
type Primitive struct {
	Kind  PrimitiveKind
	Rect  image.Rectangle
	Text  string
	Style markup.Style
	Frame image.Image
	From  image.Point
	To    image.Point
	Color color.Color
}

// FrameFunc returns the image to show for an asset slot, or nil.
type FrameFunc func(assetIndex int) image.Image

// Primitives converts the layout into a render list. frame supplies the
// current frame of each image.
func (r *Result) Primitives(frame FrameFunc) []Primitive {
	var prims []Primitive
	for _, e := range r.Elements {
		switch e.Kind {
		case ElementText, ElementMarker:
			if e.Text == "" {
				continue
			}
			prims = append(prims, Primitive{Kind: PrimText, Rect: e.Rect, Text: e.Text, Style: e.Style})
			if e.Style.Underline {
				y := e.Rect.Max.Y - 1
				prims = append(prims, Primitive{Kind: PrimLine, From: image.Pt(e.Rect.Min.X, y), To: image.Pt(e.Rect.Max.X, y), Style: e.Style})
			}
			if e.Style.Strikethrough {
				y := (e.Rect.Min.Y + e.Rect.Max.Y) / 2
				prims = append(prims, Primitive{Kind: PrimLine, From: image.Pt(e.Rect.Min.X, y), To: image.Pt(e.Rect.Max.X, y), Style: e.Style})
			}
		case ElementImage:
			var img image.Image
			if frame != nil {
				img = frame(e.AssetIndex)
			}
			if img == nil {
				continue
			}
			prims = append(prims, Primitive{Kind: PrimImage, Rect: e.Rect, Frame: img, Style: e.Style})
		case ElementRule:
			y := r.LineTops[e.Line] + r.LineHeights[e.Line]/2
			prims = append(prims, Primitive{Kind: PrimLine, From: image.Pt(e.Rect.Min.X, y), To: image.Pt(e.Rect.Max.X, y)})
		}
	}
	return prims
}

// Painter draws render lists onto a display image.
type Painter struct {
	Display draw.Display
	Fonts   *FontSet

	Ink  draw.Image // text, underline and rule colour
	Link draw.Image // text carrying a trigger; Ink when nil

	colors map[color.RGBA]draw.Image
}

// Draw renders prims onto dst with their coordinates offset by origin.
// Errors allocating images are skipped: a primitive that cannot be drawn is
// left out.
func (p *Painter) Draw(dst draw.Image, origin image.Point, prims []Primitive) {
	for _, pr := range prims {
		switch pr.Kind {
		case PrimText:
			ink := p.Ink
			if !pr.Style.Trigger.IsZero() && p.Link != nil {
				ink = p.Link
			}
			if pr.Color != nil {
				ink = p.colorImage(pr.Color)
			}
			f := p.Fonts.fontForStyle(pr.Style)
			dst.Bytes(pr.Rect.Min.Add(origin), ink, image.Point{}, f, []byte(pr.Text))
		case PrimLine:
			ink := p.Ink
			if pr.Color != nil {
				ink = p.colorImage(pr.Color)
			}
			r := image.Rect(pr.From.X, pr.From.Y, pr.To.X, pr.To.Y+1).Add(origin)
			dst.Draw(r, ink, nil, image.Point{})
		case PrimFill:
			ink := p.Ink
			if pr.Color != nil {
				ink = p.colorImage(pr.Color)
			}
			dst.Draw(pr.Rect.Add(origin), ink, nil, image.Point{})
		case PrimImage:
			p.drawImage(dst, pr.Rect.Add(origin), pr.Frame)
		}
	}
}

// Free releases the colour images allocated by the painter.
func (p *Painter) Free() {
	for c, img := range p.colors {
		img.Free()
		delete(p.colors, c)
	}
}

// colorImage returns a replicated 1x1 image of c, allocating it once.
func (p *Painter) colorImage(c color.Color) draw.Image {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	if img, ok := p.colors[rgba]; ok {
		return img
	}
	img, err := p.Display.AllocImage(image.Rect(0, 0, 1, 1), p.Display.ScreenImage().Pix(), true, draw.MakeColor(rgba.R, rgba.G, rgba.B, rgba.A))
	if err != nil {
		return p.Ink
	}
	if p.colors == nil {
		p.colors = make(map[color.RGBA]draw.Image)
	}
	p.colors[rgba] = img
	return img
}

// drawImage uploads src to the display and draws it into r.
func (p *Painter) drawImage(dst draw.Image, r image.Rectangle, src image.Image) {
	pix := ConvertToPlan9(src)
	b := src.Bounds()
	srcRect := image.Rect(0, 0, b.Dx(), b.Dy())
	img, err := p.Display.AllocImage(srcRect, draw.ABGR32, false, draw.Transparent)
	if err != nil {
		return
	}
	defer img.Free()
	if _, err := img.Load(srcRect, pix); err != nil {
		return
	}
	dst.Draw(r, img, nil, image.Point{})
}

// ConvertToPlan9 returns the pixels of img as premultiplied R, G, B, A
// bytes, the memory layout of a Plan 9 ABGR32 image.
func ConvertToPlan9(img image.Image) []byte {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*b.Dx() && b.Min == (image.Point{}) {
		return rgba.Pix
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return rgba.Pix
}

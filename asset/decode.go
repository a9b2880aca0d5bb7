package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"time"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned for data that is not in a known image format.
var ErrNotImage = errors.New("not an image")

// Decode decodes data into an asset. Every frame of a GIF is kept. When
// box is not zero, frames larger than box are scaled down to fit.
func Decode(data []byte, box image.Point) (*Animated, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("unable to detect image type: %w", err)
	}
	if kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, ErrNotImage
	}

	var a *Animated
	if kind.Extension == "gif" {
		a, err = decodeGIF(data)
	} else {
		var img image.Image
		img, _, err = image.Decode(bytes.NewReader(data))
		if err == nil {
			a = &Animated{Frames: []image.Image{img}}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", kind.Extension, err)
	}

	if err := checkSize(a.Size()); err != nil {
		return nil, err
	}
	if box.X > 0 && box.Y > 0 {
		for i, f := range a.Frames {
			if sz := f.Bounds().Size(); sz.X > box.X || sz.Y > box.Y {
				a.Frames[i] = imaging.Fit(f, box.X, box.Y, imaging.Lanczos)
			}
		}
	}
	return a, nil
}

func checkSize(sz image.Point) error {
	if sz.X > MaxImageWidth || sz.Y > MaxImageHeight {
		return fmt.Errorf("image too large: %dx%d (max %dx%d)",
			sz.X, sz.Y, MaxImageWidth, MaxImageHeight)
	}
	if n := sz.X * sz.Y * 4; n > MaxImageBytes {
		return fmt.Errorf("image uncompressed size exceeds limit: %d bytes (max %d bytes)",
			n, MaxImageBytes)
	}
	return nil
}

// decodeGIF composites each GIF frame onto the logical screen so that every
// frame is a complete picture. All frames are shown for the delay of the
// first one.
func decodeGIF(data []byte) (*Animated, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, errors.New("gif has no frames")
	}

	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		screen = image.Rectangle{Max: g.Image[0].Bounds().Max}
	}
	if err := checkSize(screen.Size()); err != nil {
		return nil, err
	}

	canvas := image.NewNRGBA(screen)
	frames := make([]image.Image, 0, len(g.Image))
	for i, pm := range g.Image {
		var saved *image.NRGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = imaging.Clone(canvas)
		}

		xdraw.Draw(canvas, pm.Bounds(), pm, pm.Bounds().Min, xdraw.Over)
		frames = append(frames, imaging.Clone(canvas))

		switch disposal {
		case gif.DisposalBackground:
			xdraw.Draw(canvas, pm.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
	}

	a := &Animated{Frames: frames}
	if len(frames) > 1 {
		a.FrameDuration = DefaultFrameDuration
		if len(g.Delay) > 0 && g.Delay[0] > 0 {
			a.FrameDuration = time.Duration(g.Delay[0]) * 10 * time.Millisecond
		}
	}
	return a, nil
}

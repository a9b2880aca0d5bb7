// Package asset fetches and decodes the images referenced by markup,
// including multi-frame GIF animations, and keeps them current while they
// load in the background.
package asset

import (
	"bytes"
	"context"
	_ "embed"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/rjkroege/richui/anim"
)

// Image size limits to prevent memory exhaustion.
const (
	MaxImageWidth  = 4096             // Maximum width in pixels
	MaxImageHeight = 4096             // Maximum height in pixels
	MaxImageBytes  = 16 * 1024 * 1024 // 16MB uncompressed (RGBA at 4 bytes/pixel)
)

// DefaultFrameDuration is used for animations that do not specify a delay.
const DefaultFrameDuration = 100 * time.Millisecond

// Animated is a decoded image with one or more frames. A static image has
// one frame and a zero FrameDuration. Values are never modified once
// published.
type Animated struct {
	Frames        []image.Image
	FrameDuration time.Duration

	// LoadedAt is the clock reading when the asset became visible. Frame
	// selection counts from here.
	LoadedAt time.Duration

	// Placeholder marks the built-in "missing image" asset.
	Placeholder bool
}

// Size returns the size of the first frame.
func (a *Animated) Size() image.Point {
	if a == nil || len(a.Frames) == 0 {
		return image.Point{}
	}
	return a.Frames[0].Bounds().Size()
}

// Frame returns the frame to show at clock reading now.
func (a *Animated) Frame(now time.Duration) image.Image {
	if a == nil || len(a.Frames) == 0 {
		return nil
	}
	return a.Frames[anim.CurrentFrame(len(a.Frames), a.FrameDuration, now-a.LoadedAt)]
}

// Resolver turns an image reference into a decoded asset.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (*Animated, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, ref string) (*Animated, error)

func (f ResolverFunc) Resolve(ctx context.Context, ref string) (*Animated, error) {
	return f(ctx, ref)
}

//go:embed broken.png
var brokenImagePNG []byte

var (
	placeholderOnce sync.Once
	placeholder     *Animated
)

// Placeholder returns the asset shown for images that are loading or that
// failed to load.
func Placeholder() *Animated {
	placeholderOnce.Do(func() {
		img, err := imaging.Decode(bytes.NewReader(brokenImagePNG))
		if err != nil {
			img = imaging.New(16, 16, color.NRGBA{R: 200, A: 255})
		}
		placeholder = &Animated{Frames: []image.Image{img}, Placeholder: true}
	})
	return placeholder
}

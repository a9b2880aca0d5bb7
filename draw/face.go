package draw

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceFont implements Font over a golang.org/x/image font.Face. Such fonts
// provide metrics for layout without a display connection.
type faceFont struct {
	name string
	face font.Face
}

var _ = Font((*faceFont)(nil))

// NewFaceFont wraps face as a Font.
func NewFaceFont(name string, face font.Face) Font {
	return &faceFont{name: name, face: face}
}

func (f *faceFont) Name() string { return f.name }

func (f *faceFont) Height() int {
	return f.face.Metrics().Height.Ceil()
}

func (f *faceFont) BytesWidth(b []byte) int {
	return font.MeasureBytes(f.face, b).Ceil()
}

func (f *faceFont) StringWidth(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// FixedFont returns the 7x13 bitmap face from golang.org/x/image. It needs
// no parsing and cannot fail.
func FixedFont() Font {
	return NewFaceFont("basicfont.7x13", basicfont.Face7x13)
}

// GoFontVariant selects one of the Go font family faces.
type GoFontVariant int

const (
	GoRegular GoFontVariant = iota
	GoBold
	GoItalic
	GoBoldItalic
)

var goFontData = map[GoFontVariant]struct {
	name string
	ttf  []byte
}{
	GoRegular:    {"goregular", goregular.TTF},
	GoBold:       {"gobold", gobold.TTF},
	GoItalic:     {"goitalic", goitalic.TTF},
	GoBoldItalic: {"gobolditalic", gobolditalic.TTF},
}

// GoFont returns a Go font family face at the given pixel size.
func GoFont(variant GoFontVariant, size float64) (Font, error) {
	data, ok := goFontData[variant]
	if !ok {
		return nil, fmt.Errorf("unknown Go font variant %d", variant)
	}
	f, err := opentype.Parse(data.ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", data.name, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s face at %v: %w", data.name, size, err)
	}
	return NewFaceFont(fmt.Sprintf("%s.%g", data.name, size), face), nil
}

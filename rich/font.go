package rich

import (
	"fmt"

	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/markup"
)

// Size multipliers applied to the base font for each headline level.
var headlineScales = map[markup.Headline]float64{
	markup.H1: 4.0,
	markup.H2: 2.0,
	markup.H3: 1.5,
}

// HeadlineScale returns the size multiplier for h. It is 1 for body text.
func HeadlineScale(h markup.Headline) float64 {
	if s, ok := headlineScales[h]; ok {
		return s
	}
	return 1.0
}

// FontSet holds the fonts used to measure and draw each style. Only Base is
// required: a missing variant falls back to Base. Headlines holds a complete
// set per headline level; a missing level falls back to the body fonts.
type FontSet struct {
	Base       draw.Font
	Bold       draw.Font
	Italic     draw.Font
	BoldItalic draw.Font

	Headlines map[markup.Headline]*FontSet
}

// fontForStyle picks the font for style. H1 text is always bold.
func (fs *FontSet) fontForStyle(style markup.Style) draw.Font {
	if style.Headline != markup.HeadlineNone {
		if sub, ok := fs.Headlines[style.Headline]; ok && sub != nil {
			body := style
			body.Headline = markup.HeadlineNone
			body.Bold = style.Emphasized()
			return sub.fontForStyle(body)
		}
	}

	bold := style.Emphasized()
	switch {
	case bold && style.Italic:
		if fs.BoldItalic != nil {
			return fs.BoldItalic
		}
	case bold:
		if fs.Bold != nil {
			return fs.Bold
		}
	case style.Italic:
		if fs.Italic != nil {
			return fs.Italic
		}
	}
	return fs.Base
}

// Height returns the height of the font used for style.
func (fs *FontSet) Height(style markup.Style) int {
	return fs.fontForStyle(style).Height()
}

// NewGoFontSet builds a FontSet from the Go font family at the given pixel
// size, with headline sets scaled by HeadlineScale.
func NewGoFontSet(size float64) (*FontSet, error) {
	fs, err := goFontSet(size)
	if err != nil {
		return nil, err
	}
	fs.Headlines = make(map[markup.Headline]*FontSet, len(headlineScales))
	for h, scale := range headlineScales {
		sub, err := goFontSet(size * scale)
		if err != nil {
			return nil, fmt.Errorf("%v fonts: %w", h, err)
		}
		fs.Headlines[h] = sub
	}
	return fs, nil
}

func goFontSet(size float64) (*FontSet, error) {
	var fs FontSet
	for _, v := range []struct {
		variant draw.GoFontVariant
		dst     *draw.Font
	}{
		{draw.GoRegular, &fs.Base},
		{draw.GoBold, &fs.Bold},
		{draw.GoItalic, &fs.Italic},
		{draw.GoBoldItalic, &fs.BoldItalic},
	} {
		f, err := draw.GoFont(v.variant, size)
		if err != nil {
			return nil, err
		}
		*v.dst = f
	}
	return &fs, nil
}

// SingleFontSet returns a FontSet that uses f for every style.
func SingleFontSet(f draw.Font) *FontSet {
	return &FontSet{Base: f}
}

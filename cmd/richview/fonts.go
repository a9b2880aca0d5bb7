package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/markup"
	"github.com/rjkroege/richui/rich"
)

// Font names carrying a point size: fontsrv names such as
// /mnt/font/GoRegular/12a/font and bitmap fonts such as
// /lib/font/bit/lucsans/euro.8.font.
var sizedFontNames = []*regexp.Regexp{
	regexp.MustCompile(`^(/mnt/font/[^/]+/)(\d+)(a?/font)$`),
	regexp.MustCompile(`^(.*\.)(\d+)(\.font)$`),
}

// scaledFontName returns name with its size multiplied by scale.
func scaledFontName(name string, scale float64) (string, bool) {
	for _, re := range sizedFontNames {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		size, err := strconv.Atoi(m[2])
		if err != nil {
			return "", false
		}
		scaled := int(math.Round(float64(size) * scale))
		return m[1] + strconv.Itoa(scaled) + m[3], true
	}
	return "", false
}

// openFonts opens the body and bold fonts and their headline sizes. A bold
// font that cannot be opened falls back to the body font; a headline size
// that cannot be opened falls back to the body size.
func openFonts(open func(name string) (draw.Font, error), log *zap.Logger, body, bold string) (*rich.FontSet, error) {
	base, err := open(body)
	if err != nil {
		return nil, fmt.Errorf("can't open font %s: %w", body, err)
	}
	fonts := rich.SingleFontSet(base)
	if f, err := open(bold); err == nil {
		fonts.Bold = f
		fonts.BoldItalic = f
	} else {
		log.Warn("Unable to open bold font", zap.String("font", bold), zap.Error(err))
	}

	fonts.Headlines = make(map[markup.Headline]*rich.FontSet)
	for _, h := range []markup.Headline{markup.H1, markup.H2, markup.H3} {
		scale := rich.HeadlineScale(h)
		name, ok := scaledFontName(body, scale)
		if !ok {
			log.Warn("Font name carries no size, headlines use the body size", zap.String("font", body))
			break
		}
		f, err := open(name)
		if err != nil {
			log.Warn("Unable to open headline font", zap.Stringer("headline", h), zap.String("font", name), zap.Error(err))
			continue
		}
		sub := rich.SingleFontSet(f)
		if bname, ok := scaledFontName(bold, scale); ok {
			if bf, err := open(bname); err == nil {
				sub.Bold = bf
				sub.BoldItalic = bf
			}
		}
		fonts.Headlines[h] = sub
	}
	return fonts, nil
}

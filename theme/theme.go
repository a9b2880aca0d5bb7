// Package theme holds the colours the viewer paints with.
package theme

import (
	"github.com/rjkroege/richui/draw"
)

type Palette struct {
	Background draw.Color
	Text       draw.Color
	Link       draw.Color
}

var (
	darkMode bool
	current  = lightPalette
)

var lightPalette = Palette{
	Background: draw.White,
	Text:       draw.Black,
	Link:       draw.Medblue,
}

var darkPalette = Palette{
	Background: 0x222222FF,
	Text:       0xEEEEEEFF,
	Link:       0x88AAFFFF,
}

// SetDarkMode selects between the light and dark palettes.
func SetDarkMode(enabled bool) {
	darkMode = enabled
	if enabled {
		current = darkPalette
	} else {
		current = lightPalette
	}
}

// IsDarkMode reports the current mode.
func IsDarkMode() bool { return darkMode }

// Current returns the active colour palette.
func Current() Palette { return current }

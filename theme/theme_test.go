package theme

import (
	"testing"

	"github.com/rjkroege/richui/draw"
)

func TestSetDarkMode(t *testing.T) {
	defer SetDarkMode(false)

	if IsDarkMode() || Current().Background != draw.White {
		t.Fatalf("default palette is not light: %+v", Current())
	}
	SetDarkMode(true)
	if !IsDarkMode() || Current() != darkPalette {
		t.Errorf("dark mode palette = %+v", Current())
	}
	SetDarkMode(false)
	if Current() != lightPalette {
		t.Errorf("light mode palette = %+v", Current())
	}
}

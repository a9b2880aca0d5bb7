package main

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/drawtest"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/markup"
	"github.com/rjkroege/richui/richtext"
)

func TestScaledFontName(t *testing.T) {
	tt := []struct {
		name  string
		scale float64
		want  string
		ok    bool
	}{
		{"/mnt/font/GoRegular/12a/font", 4, "/mnt/font/GoRegular/48a/font", true},
		{"/mnt/font/GoBold/12/font", 1.5, "/mnt/font/GoBold/18/font", true},
		{"/lib/font/bit/lucsans/euro.8.font", 2, "/lib/font/bit/lucsans/euro.16.font", true},
		{"/lib/font/bit/fixed/unicode.font", 2, "", false},
	}

	for _, tc := range tt {
		got, ok := scaledFontName(tc.name, tc.scale)
		if got != tc.want || ok != tc.ok {
			t.Errorf("scaledFontName(%q, %v) = %q, %v, want %q, %v", tc.name, tc.scale, got, ok, tc.want, tc.ok)
		}
	}
}

// sizedOpener opens mock fonts whose height is the size in the font name.
func sizedOpener(missing ...string) (func(string) (draw.Font, error), *[]string) {
	var opened []string
	open := func(name string) (draw.Font, error) {
		for _, m := range missing {
			if m == name {
				return nil, errors.New("no such font")
			}
		}
		m := sizedFontNames[0].FindStringSubmatch(name)
		if m == nil {
			return drawtest.NewNamedFont(name, 10, 12), nil
		}
		size, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, err
		}
		opened = append(opened, name)
		return drawtest.NewNamedFont(name, size, size), nil
	}
	return open, &opened
}

func TestOpenFontsHeadlines(t *testing.T) {
	open, opened := sizedOpener()
	fonts, err := openFonts(open, zap.NewNop(), "/mnt/font/GoRegular/12a/font", "/mnt/font/GoBold/12a/font")
	if err != nil {
		t.Fatalf("openFonts failed: %v", err)
	}

	want := []string{
		"/mnt/font/GoRegular/12a/font",
		"/mnt/font/GoBold/12a/font",
		"/mnt/font/GoRegular/48a/font",
		"/mnt/font/GoBold/48a/font",
		"/mnt/font/GoRegular/24a/font",
		"/mnt/font/GoBold/24a/font",
		"/mnt/font/GoRegular/18a/font",
		"/mnt/font/GoBold/18a/font",
	}
	if diff := cmp.Diff(want, *opened); diff != "" {
		t.Errorf("opened fonts mismatch (-want +got):\n%s", diff)
	}

	r := richtext.New(fonts)
	defer r.Close()
	if err := r.SetText("[h1]Big[/]\nbody"); err != nil {
		t.Fatal(err)
	}
	r.Update(input.Pointer{})
	if diff := cmp.Diff([]int{48, 12}, r.Result().LineHeights); diff != "" {
		t.Errorf("line heights mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenFontsFallbacks(t *testing.T) {
	open, _ := sizedOpener("/mnt/font/GoBold/12a/font", "/mnt/font/GoRegular/48a/font")
	fonts, err := openFonts(open, zap.NewNop(), "/mnt/font/GoRegular/12a/font", "/mnt/font/GoBold/12a/font")
	if err != nil {
		t.Fatalf("openFonts failed: %v", err)
	}
	if fonts.Bold != nil {
		t.Errorf("bold font set although it could not be opened")
	}
	if _, ok := fonts.Headlines[markup.H1]; ok {
		t.Errorf("H1 fonts set although they could not be opened")
	}
	if got := fonts.Height(markup.StyleH1); got != 12 {
		t.Errorf("H1 height = %d, want the body height 12", got)
	}
	if got := fonts.Headlines[markup.H2].Base.Height(); got != 24 {
		t.Errorf("H2 height = %d, want 24", got)
	}

	if _, err := openFonts(open, zap.NewNop(), "/mnt/font/GoBold/12a/font", ""); err == nil {
		t.Errorf("openFonts succeeded with a missing body font")
	}
}

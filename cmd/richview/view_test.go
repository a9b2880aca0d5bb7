package main

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/asset"
	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/drawtest"
	"github.com/rjkroege/richui/rich"
	"github.com/rjkroege/richui/richtext"
	"github.com/rjkroege/richui/widget"
)

func newTestViewer(t *testing.T, content string) (*viewer, string) {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	display := drawtest.NewDisplay()
	fonts := rich.SingleFontSet(drawtest.NewFont(10, 12))
	v := newViewer(display, fonts, &anim.Fake{}, zap.NewNop(), fname, 50,
		richtext.WithResolver(asset.NewFetchResolver()))
	t.Cleanup(v.close)
	if err := v.load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	v.tick()
	return v, fname
}

func click(v *viewer, pt image.Point) {
	v.mouse(draw.Mouse{Point: pt})
	v.mouse(draw.Mouse{Point: pt, Buttons: 1})
	v.mouse(draw.Mouse{Point: pt})
}

func TestWrapCheckbox(t *testing.T) {
	v, _ := newTestViewer(t, "aaa bbb ccc")
	res := v.text.Result()
	if got := res.Lines(); got != 3 {
		t.Fatalf("got %d lines wrapped at 50, want 3", got)
	}

	click(v, image.Pt(100, 10))
	if v.wrap.Value() != widget.Unchecked {
		t.Fatalf("checkbox not toggled")
	}
	v.tick()
	res = v.text.Result()
	if got := res.Lines(); got != 1 {
		t.Errorf("got %d lines with wrapping off, want 1", got)
	}
}

func TestReloadAction(t *testing.T) {
	v, fname := newTestViewer(t, `[action="reload"]again[/]`)
	if err := os.WriteFile(fname, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	click(v, image.Pt(6, 34))
	if got := v.text.Text(); got != "changed" {
		t.Errorf("Text() = %q after clicking the reload action", got)
	}
}

func TestReloadButton(t *testing.T) {
	v, fname := newTestViewer(t, "before")
	if err := os.WriteFile(fname, []byte("after"), 0644); err != nil {
		t.Fatal(err)
	}
	click(v, image.Pt(10, 10))
	if got := v.text.Text(); got != "after" {
		t.Errorf("Text() = %q after clicking Reload", got)
	}
}

func TestRedraw(t *testing.T) {
	v, _ := newTestViewer(t, "hello")
	ops := v.display.(drawtest.GettableDrawOps)
	ops.Clear()
	v.redraw()

	got := ops.DrawOps()
	if len(got) == 0 || !strings.Contains(got[0], "screen-800x600 <- draw r: (0,0)-(800,600) src: White-(0,0)-(1,1),tiled") {
		t.Fatalf("redraw did not clear the screen first: %v", got)
	}
	want := `screen-800x600 <- string "hello" atpoint: (4,32) font: fixed10x12 fill: Black-(0,0)-(1,1),tiled`
	if last := got[len(got)-1]; last != want {
		t.Errorf("last op = %q, want %q", last, want)
	}
}

package main

import (
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/rich"
	"github.com/rjkroege/richui/richtext"
	"github.com/rjkroege/richui/theme"
	"github.com/rjkroege/richui/widget"
)

const (
	margin     = 4
	toolbarHgt = 28
)

// viewer shows one markup file below a toolbar with a reload button and a
// wrap checkbox.
type viewer struct {
	display draw.Display
	log     *zap.Logger
	fname   string
	width   int // wrap width when wrapping is on

	text   *richtext.Richtext
	reload *widget.Button
	wrap   *widget.Checkbox

	painter    *rich.Painter
	background draw.Image
	colours    []draw.Image

	last draw.Mouse
}

func newViewer(display draw.Display, fonts *rich.FontSet, clock anim.Clock, log *zap.Logger, fname string, width int, opts ...richtext.Option) *viewer {
	v := &viewer{
		display: display,
		log:     log,
		fname:   fname,
		width:   width,
	}
	pal := theme.Current()
	v.background = v.colour(pal.Background, display.White())
	v.painter = &rich.Painter{
		Display: display,
		Fonts:   fonts,
		Ink:     v.colour(pal.Text, display.Black()),
		Link:    v.colour(pal.Link, nil),
	}

	opts = append(opts, richtext.WithClock(clock), richtext.WithMaxWidth(width))
	v.text = richtext.New(fonts, opts...)

	v.reload = widget.NewButton("Reload", image.Rect(0, 0, 80, toolbarHgt-2*margin), fonts, clock)
	v.reload.OnClick = func() {
		if err := v.load(); err != nil {
			log.Warn("Unable to reload", zap.Error(err))
		}
	}

	v.wrap = widget.NewCheckbox("Wrap", image.Pt(90, 1), fonts, clock)
	v.wrap.SetValue(widget.Checked)
	v.wrap.OnChange = func(s widget.CheckState) {
		if s == widget.Unchecked {
			v.text.SetMaxWidth(0)
		} else {
			v.text.SetMaxWidth(v.width)
		}
	}
	return v
}

// load reads the file into the text widget and binds the actions the
// viewer knows about.
func (v *viewer) load() error {
	data, err := os.ReadFile(v.fname)
	if err != nil {
		return fmt.Errorf("unable to read markup: %w", err)
	}
	if err := v.text.SetText(string(data)); err != nil {
		return fmt.Errorf("%s: %w", v.fname, err)
	}
	for name, fn := range map[string]func(){
		"reload": v.reload.OnClick,
		"wrap":   v.toggleWrap,
	} {
		if err := v.text.Bind(name, fn); err != nil {
			v.log.Debug("Action not used by this file", zap.String("action", name))
		}
	}
	return nil
}

// colour allocates a replicated image of c, returning fallback on failure.
func (v *viewer) colour(c draw.Color, fallback draw.Image) draw.Image {
	img, err := v.display.AllocImage(image.Rect(0, 0, 1, 1), draw.RGBA32, true, c)
	if err != nil {
		v.log.Warn("Unable to allocate colour", zap.Uint32("colour", uint32(c)), zap.Error(err))
		return fallback
	}
	v.colours = append(v.colours, img)
	return img
}

func (v *viewer) toggleWrap() {
	if v.wrap.Checked() {
		v.wrap.SetValue(widget.Unchecked)
	} else {
		v.wrap.SetValue(widget.Checked)
	}
}

func (v *viewer) toolbarOrigin() image.Point {
	return v.display.ScreenImage().R().Min.Add(image.Pt(margin, margin))
}

func (v *viewer) textOrigin() image.Point {
	return v.display.ScreenImage().R().Min.Add(image.Pt(margin, toolbarHgt+margin))
}

// mouse feeds one mouse event to every widget.
func (v *viewer) mouse(m draw.Mouse) {
	v.last = m
	tb := v.toolbarOrigin()
	v.reload.Update(input.FromMouse(m, tb))
	v.wrap.Update(input.FromMouse(m, tb))
	v.text.Update(input.FromMouse(m, v.textOrigin()))
}

// tick repeats the last mouse state so that arrived images are laid out.
func (v *viewer) tick() {
	v.text.Update(input.FromMouse(v.last, v.textOrigin()))
}

func (v *viewer) redraw() {
	screen := v.display.ScreenImage()
	screen.Draw(screen.R(), v.background, nil, image.Point{})

	tb := v.toolbarOrigin()
	v.painter.Draw(screen, tb, v.reload.Primitives())
	v.painter.Draw(screen, tb, v.wrap.Primitives())
	v.text.Draw(screen, v.painter, v.textOrigin())

	if err := v.display.Flush(); err != nil {
		v.log.Warn("Unable to flush display", zap.Error(err))
	}
}

func (v *viewer) close() {
	v.text.Close()
	v.painter.Free()
	for _, img := range v.colours {
		img.Free()
	}
}

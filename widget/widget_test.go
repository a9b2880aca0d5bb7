package widget

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/drawtest"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/rich"
)

func testFonts() *rich.FontSet {
	return rich.SingleFontSet(drawtest.NewFont(10, 12))
}

func TestButtonStates(t *testing.T) {
	clock := &anim.Fake{}
	b := NewButton("OK", image.Rect(0, 0, 60, 20), testFonts(), clock)
	clicks := 0
	b.OnClick = func() { clicks++ }

	steps := []struct {
		p     input.Pointer
		state State
		click int
	}{
		{input.Pointer{Pt: image.Pt(100, 100)}, Idle, 0},
		{input.Pointer{Pt: image.Pt(10, 10)}, Hovered, 0},
		{input.Pointer{Pt: image.Pt(10, 10), Pressed: true}, Pressed, 0},
		{input.Pointer{Pt: image.Pt(12, 10), Pressed: true}, Pressed, 0},
		{input.Pointer{Pt: image.Pt(12, 10)}, Hovered, 1},
		// Pressing outside and releasing inside is not a click.
		{input.Pointer{Pt: image.Pt(100, 100), Pressed: true}, Idle, 1},
		{input.Pointer{Pt: image.Pt(10, 10), Pressed: true}, Hovered, 1},
		{input.Pointer{Pt: image.Pt(10, 10)}, Hovered, 1},
		// Dragging out of the button cancels the press.
		{input.Pointer{Pt: image.Pt(10, 10), Pressed: true}, Pressed, 1},
		{input.Pointer{Pt: image.Pt(100, 10), Pressed: true}, Idle, 1},
		{input.Pointer{Pt: image.Pt(10, 10)}, Hovered, 1},
	}
	for i, s := range steps {
		b.Update(s.p)
		if got := b.State(); got != s.state {
			t.Errorf("step %d: state = %v, want %v", i, got, s.state)
		}
		if clicks != s.click {
			t.Errorf("step %d: clicks = %d, want %d", i, clicks, s.click)
		}
	}
}

func TestButtonDisabled(t *testing.T) {
	b := NewButton("OK", image.Rect(0, 0, 60, 20), testFonts(), &anim.Fake{})
	b.Enabled = false
	clicks := 0
	b.OnClick = func() { clicks++ }
	for _, pressed := range []bool{false, true, false} {
		b.Update(input.Pointer{Pt: image.Pt(5, 5), Pressed: pressed})
	}
	if clicks != 0 || b.State() != Idle {
		t.Errorf("disabled button: clicks = %d, state = %v", clicks, b.State())
	}
}

func TestButtonHoverFades(t *testing.T) {
	clock := &anim.Fake{}
	b := NewButton("OK", image.Rect(0, 0, 60, 20), testFonts(), clock)

	idle, _ := b.colors()
	if want := anim.HSV(DefaultHue, 0.3, 0.47, 1); idle != want {
		t.Errorf("idle fill = %v, want %v", idle, want)
	}

	clock.Set(time.Second)
	b.Update(input.Pointer{Pt: image.Pt(5, 5)})
	start, _ := b.colors()
	if start != idle {
		t.Errorf("fill jumped on hover: %v, want %v", start, idle)
	}

	clock.Advance(250 * time.Millisecond)
	half, _ := b.colors()
	if want := anim.HSV(DefaultHue, 0.4, 0.57, 1); half != want {
		t.Errorf("fill halfway = %v, want %v", half, want)
	}

	clock.Advance(time.Second)
	full, _ := b.colors()
	if want := anim.HSV(DefaultHue, 0.5, 0.67, 1); full != want {
		t.Errorf("fill after fade = %v, want %v", full, want)
	}

	b.Update(input.Pointer{Pt: image.Pt(5, 5), Pressed: true})
	pressed, outline := b.colors()
	if want := anim.HSV(DefaultHue, 0.6, 0.87, 1); pressed != want {
		t.Errorf("pressed fill = %v, want %v", pressed, want)
	}
	if want := anim.HSV(DefaultHue, 0.6, 0.67, 1); outline != want {
		t.Errorf("pressed outline = %v, want %v", outline, want)
	}
}

func TestButtonPrimitives(t *testing.T) {
	b := NewButton("OK", image.Rect(0, 0, 60, 20), testFonts(), &anim.Fake{})
	prims := b.Primitives()
	if len(prims) != 6 {
		t.Fatalf("got %d primitives, want 6", len(prims))
	}
	if prims[0].Kind != rich.PrimFill || prims[0].Rect != b.Rect {
		t.Errorf("background = %+v", prims[0])
	}
	label := prims[5]
	if diff := cmp.Diff(image.Rect(20, 4, 40, 16), label.Rect); label.Text != "OK" || diff != "" {
		t.Errorf("label %q at %v, want centred (-want +got):\n%s", label.Text, label.Rect, diff)
	}
}

func TestCheckboxToggles(t *testing.T) {
	c := NewCheckbox("Wrap", image.Pt(0, 0), testFonts(), &anim.Fake{})
	if got := c.Bounds(); got != image.Rect(0, 0, 60, 18) {
		t.Fatalf("Bounds() = %v", got)
	}

	var changes []CheckState
	c.OnChange = func(s CheckState) { changes = append(changes, s) }

	click := func(pt image.Point) {
		c.Update(input.Pointer{Pt: pt})
		c.Update(input.Pointer{Pt: pt, Pressed: true})
		c.Update(input.Pointer{Pt: pt})
	}
	click(image.Pt(30, 5)) // on the label
	click(image.Pt(5, 5))
	click(image.Pt(200, 5))

	if diff := cmp.Diff([]CheckState{Checked, Unchecked}, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	c.SetValue(Indeterminate)
	c.SetValue(Indeterminate)
	click(image.Pt(5, 5))
	if diff := cmp.Diff([]CheckState{Checked, Unchecked, Indeterminate, Unchecked}, changes); diff != "" {
		t.Errorf("changes after indeterminate (-want +got):\n%s", diff)
	}
}

func TestCheckboxPrimitives(t *testing.T) {
	c := NewCheckbox("Wrap", image.Pt(10, 10), testFonts(), &anim.Fake{})
	kinds := func() []rich.PrimitiveKind {
		var out []rich.PrimitiveKind
		for _, p := range c.Primitives() {
			out = append(out, p.Kind)
		}
		return out
	}

	outline := []rich.PrimitiveKind{rich.PrimLine, rich.PrimLine, rich.PrimFill, rich.PrimFill}
	tests := []struct {
		value CheckState
		want  []rich.PrimitiveKind
	}{
		{Unchecked, append(append([]rich.PrimitiveKind{}, outline...), rich.PrimText)},
		{Checked, append(append([]rich.PrimitiveKind{}, outline...), rich.PrimFill, rich.PrimText)},
		{Indeterminate, append(append([]rich.PrimitiveKind{}, outline...), rich.PrimLine, rich.PrimText)},
	}
	for _, tc := range tests {
		c.SetValue(tc.value)
		if diff := cmp.Diff(tc.want, kinds()); diff != "" {
			t.Errorf("value %d primitives mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestSliderDrag(t *testing.T) {
	s := NewSlider(image.Pt(10, 20), 100, 0, 10, &anim.Fake{})
	s.Step = 1
	var changes []float64
	s.OnChange = func(v float64) { changes = append(changes, v) }

	steps := []struct {
		p     input.Pointer
		value float64
		state State
	}{
		{input.Pointer{Pt: image.Pt(60, 20)}, 0, Hovered},
		{input.Pointer{Pt: image.Pt(60, 20), Pressed: true}, 5, Pressed},
		{input.Pointer{Pt: image.Pt(64, 22), Pressed: true}, 5, Pressed},
		{input.Pointer{Pt: image.Pt(68, 22), Pressed: true}, 6, Pressed},
		// The drag follows the pointer past the end of the track.
		{input.Pointer{Pt: image.Pt(200, 50), Pressed: true}, 10, Pressed},
		{input.Pointer{Pt: image.Pt(200, 50)}, 10, Idle},
		// A press that starts outside does not move the pad.
		{input.Pointer{Pt: image.Pt(200, 50), Pressed: true}, 10, Idle},
		{input.Pointer{Pt: image.Pt(20, 20), Pressed: true}, 10, Hovered},
		{input.Pointer{Pt: image.Pt(20, 20)}, 10, Hovered},
	}
	for i, st := range steps {
		s.Update(st.p)
		if got := s.Value(); got != st.value {
			t.Errorf("step %d: value = %v, want %v", i, got, st.value)
		}
		if got := s.State(); got != st.state {
			t.Errorf("step %d: state = %v, want %v", i, got, st.state)
		}
	}
	if diff := cmp.Diff([]float64{10}, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestSliderClamps(t *testing.T) {
	s := NewSlider(image.Pt(0, 0), 100, 0, 10, &anim.Fake{})
	s.SetValue(-3)
	if got := s.Value(); got != 0 {
		t.Errorf("SetValue(-3) gave %v, want 0", got)
	}
	s.SetValue(42)
	if got := s.Value(); got != 10 {
		t.Errorf("SetValue(42) gave %v, want 10", got)
	}

	s.SetRange(20, 15)
	if lo, hi := s.Range(); lo != 15 || hi != 20 {
		t.Errorf("Range() = %v, %v, want 15, 20", lo, hi)
	}
	if got := s.Value(); got != 15 {
		t.Errorf("value after SetRange = %v, want 15", got)
	}

	s.Enabled = false
	s.Update(input.Pointer{Pt: image.Pt(100, 0), Pressed: true})
	if got := s.Value(); got != 15 {
		t.Errorf("disabled slider moved to %v", got)
	}
}

func TestSliderPrimitives(t *testing.T) {
	s := NewSlider(image.Pt(10, 20), 100, 0, 10, &anim.Fake{})
	s.SetValue(5)
	prims := s.Primitives()
	if got, want := len(prims), 9; got != want {
		t.Fatalf("got %d primitives, want %d", got, want)
	}
	if got, want := prims[3].Rect, image.Rect(10, 18, 60, 23); got != want {
		t.Errorf("filled track = %v, want %v", got, want)
	}
	if got, want := prims[4].Rect, image.Rect(54, 14, 67, 27); got != want {
		t.Errorf("pad = %v, want %v", got, want)
	}

	s.Divisions = 3
	prims = s.Primitives()
	if got, want := len(prims), 14; got != want {
		t.Fatalf("with ticks got %d primitives, want %d", got, want)
	}
	var xs []int
	for _, p := range prims[4:9] {
		xs = append(xs, p.From.X)
	}
	if diff := cmp.Diff([]int{10, 35, 60, 85, 110}, xs); diff != "" {
		t.Errorf("tick positions mismatch (-want +got):\n%s", diff)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestProgressBarAnimates(t *testing.T) {
	clock := &anim.Fake{}
	b := NewProgressBar(image.Pt(0, 0), 100, clock)

	b.SetPercent(0.5, true)
	if got := b.Filling(); got != 0 {
		t.Errorf("filling at start = %v, want 0", got)
	}
	clock.Advance(250 * time.Millisecond)
	bar, ghost, ok := b.fills()
	if !ok || !near(bar, 0.25) || !near(ghost, 0.5*math.Pow(0.5, 1.0/6)) {
		t.Errorf("growing halfway: bar %v ghost %v animating %v", bar, ghost, ok)
	}
	clock.Advance(250 * time.Millisecond)
	if b.Animating() || b.Filling() != 0.5 {
		t.Errorf("after 500ms: filling %v animating %v", b.Filling(), b.Animating())
	}

	b.SetPercent(2, false)
	if b.Animating() || b.Filling() != 1 {
		t.Errorf("unanimated set: filling %v animating %v", b.Filling(), b.Animating())
	}

	b.SetPercent(0.5, true)
	clock.Advance(250 * time.Millisecond)
	bar, ghost, ok = b.fills()
	if !ok || !near(bar, 1-0.5*math.Pow(0.5, 1.0/6)) || !near(ghost, 0.75) {
		t.Errorf("shrinking halfway: bar %v ghost %v animating %v", bar, ghost, ok)
	}
	if bar >= ghost {
		t.Errorf("shrinking bar %v should lead the ghost %v", bar, ghost)
	}
}

func TestProgressBarPrimitives(t *testing.T) {
	clock := &anim.Fake{}
	b := NewProgressBar(image.Pt(0, 0), 100, clock)
	b.SetPercent(0.5, false)

	prims := b.Primitives()
	kinds := make([]rich.PrimitiveKind, 0, len(prims))
	for _, p := range prims {
		kinds = append(kinds, p.Kind)
	}
	want := []rich.PrimitiveKind{rich.PrimLine, rich.PrimLine, rich.PrimFill, rich.PrimFill, rich.PrimFill, rich.PrimLine}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("primitives mismatch (-want +got):\n%s", diff)
	}
	if got, want := prims[4].Rect, image.Rect(1, 1, 51, 13); got != want {
		t.Errorf("bar = %v, want %v", got, want)
	}
	if got, want := prims[5].From, image.Pt(51, 1); got != want {
		t.Errorf("end cap at %v, want %v", got, want)
	}

	b.SetPercent(1, true)
	clock.Advance(100 * time.Millisecond)
	if got := len(b.Primitives()); got != 6 {
		t.Errorf("animating bar has %d primitives, want 6 (frame, ghost, bar)", got)
	}
}

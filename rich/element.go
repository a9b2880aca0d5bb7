package rich

import (
	"image"
	"strings"

	"github.com/rjkroege/richui/markup"
)

// ElementKind identifies what a placed Element shows.
type ElementKind int

const (
	ElementText ElementKind = iota
	ElementImage
	ElementRule
	ElementMarker
)

func (k ElementKind) String() string {
	switch k {
	case ElementText:
		return "text"
	case ElementImage:
		return "image"
	case ElementRule:
		return "rule"
	case ElementMarker:
		return "marker"
	}
	return "unknown"
}

// Element is a positioned piece of content. Rect is in widget-local
// coordinates with the top of the element at the top of its line.
type Element struct {
	Kind ElementKind
	Rect image.Rectangle
	Line int

	// Segment is the index of the segment the element came from.
	Segment int

	// Text is what gets drawn (tabs expanded, list marker glyphs) and
	// Source is the segment text the element covers, newlines included.
	Text   string
	Source string

	Style      markup.Style
	AssetIndex int
}

// Result is the output of a layout pass.
type Result struct {
	Elements    []Element
	LineHeights []int
	LineTops    []int
	Bounds      image.Rectangle
	Regions     HitRegionTable
}

// Flatten returns the text covered by the text elements, in order. For a
// layout of a parsed document this equals the document's plain text.
func (r *Result) Flatten() string {
	var sb strings.Builder
	for _, e := range r.Elements {
		if e.Kind == ElementText {
			sb.WriteString(e.Source)
		}
	}
	return sb.String()
}

// Lines returns the number of lines in the layout.
func (r *Result) Lines() int {
	return len(r.LineHeights)
}

// LineAt returns the line containing y, or -1.
func (r *Result) LineAt(y int) int {
	for i, top := range r.LineTops {
		if y >= top && y < top+r.LineHeights[i] {
			return i
		}
	}
	return -1
}

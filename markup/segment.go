package markup

import (
	"net/url"
	"strings"
)

// SegmentKind identifies the variant held by a Segment.
type SegmentKind int

const (
	KindText SegmentKind = iota
	KindImage
	KindRule
	KindListMarker
)

func (k SegmentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindRule:
		return "rule"
	case KindListMarker:
		return "marker"
	}
	return "unknown"
}

// Segment is one parsed unit of markup content. Only the fields relevant
// to Kind are set:
//
//	KindText:       Text, Style
//	KindImage:      AssetIndex, Style (for the enclosing trigger)
//	KindRule:       nothing
//	KindListMarker: Ordinal, Ordered, Style
type Segment struct {
	Kind SegmentKind

	Text  string
	Style Style

	AssetIndex int

	Ordinal int
	Ordered bool
}

// TextRun returns a text segment.
func TextRun(text string, style Style) Segment {
	return Segment{Kind: KindText, Text: text, Style: style}
}

// Image returns an image segment referring to the document's image table.
func Image(assetIndex int, style Style) Segment {
	return Segment{Kind: KindImage, AssetIndex: assetIndex, Style: style}
}

// HorizontalRule returns a rule segment.
func HorizontalRule() Segment {
	return Segment{Kind: KindRule}
}

// ListItemMarker returns a list marker segment.
func ListItemMarker(ordinal int, ordered bool, style Style) Segment {
	return Segment{Kind: KindListMarker, Ordinal: ordinal, Ordered: ordered, Style: style}
}

// ImageRef is an image reference found in the markup. One ImageRef exists
// per [img] occurrence; identical URIs are not merged.
type ImageRef struct {
	Source string   // the quoted text as written
	URL    *url.URL // nil when the reference could not be resolved
}

// ActionSet holds the action names declared by [action="..."] tags.
type ActionSet map[string]struct{}

// Has reports whether name was declared.
func (a ActionSet) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Names returns the declared names in no particular order.
func (a ActionSet) Names() []string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	return names
}

// Document is the result of a successful parse.
type Document struct {
	Segments []Segment
	Actions  ActionSet
	Images   []ImageRef
}

// PlainText returns the text of all text runs with tags removed.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, s := range d.Segments {
		if s.Kind == KindText {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

package markup

import "net/url"

// Headline is the heading level of a run. The levels are mutually
// exclusive: the innermost heading tag wins.
type Headline int

const (
	HeadlineNone Headline = iota
	H1
	H2
	H3
)

func (h Headline) String() string {
	switch h {
	case H1:
		return "h1"
	case H2:
		return "h2"
	case H3:
		return "h3"
	}
	return "none"
}

// TriggerKind says what clicking on a styled run does.
type TriggerKind int

const (
	TriggerNone TriggerKind = iota
	TriggerAction
	TriggerURI
)

// Trigger is the clickable behavior attached to a run: a named action or
// a URI. URL is nil when the URI could not be resolved; such a trigger
// still produces a hit region but clicking it does nothing.
type Trigger struct {
	Kind TriggerKind
	Name string   // action name for TriggerAction, source text for TriggerURI
	URL  *url.URL // resolved target for TriggerURI
}

// IsZero reports whether t carries no trigger.
func (t Trigger) IsZero() bool {
	return t.Kind == TriggerNone
}

// Address returns the resolved URI as a string, or "" when unresolved.
func (t Trigger) Address() string {
	if t.Kind != TriggerURI || t.URL == nil {
		return ""
	}
	return t.URL.String()
}

// Equal compares triggers by kind, name and resolved address.
func (t Trigger) Equal(o Trigger) bool {
	return t.Kind == o.Kind && t.Name == o.Name && t.Address() == o.Address()
}

// ListKind distinguishes bulleted and numbered lists.
type ListKind int

const (
	ListNone ListKind = iota
	ListUnordered
	ListOrdered
)

// ListContext records the list a run is nested in.
type ListContext struct {
	Kind  ListKind
	Depth int
}

// Style defines the visual and interactive attributes of a segment.
// Styles are values: entering a tag scope copies the enclosing style and
// modifies the copy.
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool

	Headline Headline
	Trigger  Trigger
	List     ListContext
}

// DefaultStyle returns the style of unmarked body text.
func DefaultStyle() Style {
	return Style{}
}

// Emphasized reports whether text in this style uses the bold face.
// Top level headings are always bold.
func (s Style) Emphasized() bool {
	return s.Bold || s.Headline == H1
}

// Equal compares two styles. Style embeds a *url.URL so == would compare
// pointers.
func (s Style) Equal(o Style) bool {
	return s.Bold == o.Bold &&
		s.Italic == o.Italic &&
		s.Underline == o.Underline &&
		s.Strikethrough == o.Strikethrough &&
		s.Headline == o.Headline &&
		s.List == o.List &&
		s.Trigger.Equal(o.Trigger)
}

// Common styles
var (
	StyleBold   = Style{Bold: true}
	StyleItalic = Style{Italic: true}
	StyleH1     = Style{Headline: H1}
	StyleH2     = Style{Headline: H2}
	StyleH3     = Style{Headline: H3}
)

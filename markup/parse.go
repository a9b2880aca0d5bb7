// Package markup parses the bracketed rich-text markup language into a
// flat sequence of styled segments.
//
// The language:
//
//	[b]…[/] [i]…[/] [u]…[/] [strike]…[/]   bold, italic, underline, strikethrough
//	[h1]…[/] [h2]…[/] [h3]…[/]               headings (largest to smallest)
//	[uri="address"]…[/]                      clickable link
//	[action="ID"]…[/]                        clickable named action
//	[ul]…[/] [ol]…[/] [li]…[/]               lists and list items
//	[line/]                                  horizontal rule
//	[img="address"/]                         inline image
//	\[ \]                                    a literal '[' or ']'
//
// The closing tag [/] carries no name: it closes the innermost open tag.
package markup

import (
	"os"
	"strings"
)

// Option configures Parse.
type Option func(*parser)

// WithBaseDir sets the directory against which relative link and image
// addresses are resolved. The default is the process working directory.
func WithBaseDir(dir string) Option {
	return func(p *parser) {
		p.base = dir
	}
}

// parseState is the context handed to each recursive parse call. It is
// passed by value so that a closed scope cannot leak into its siblings.
type parseState struct {
	style Style

	// ordinal is the number of the next [li] in an ordered list. It is 0
	// outside ordered lists.
	ordinal int
}

type parser struct {
	src  string
	pos  int
	base string
	doc  *Document
}

// Parse converts markup text into a Document. A malformed tag anywhere in
// the text makes Parse return a *MalformedMarkupError and no document.
func Parse(text string, opts ...Option) (*Document, error) {
	p := &parser{
		src: text,
		doc: &Document{Actions: make(ActionSet)},
	}
	if wd, err := os.Getwd(); err == nil {
		p.base = wd
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.parse(parseState{style: DefaultStyle()}, false); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// parse consumes text until the end of input or, when nested is true,
// until the [/] closing the current scope.
func (p *parser) parse(st parseState, nested bool) error {
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			p.doc.Segments = append(p.doc.Segments, TextRun(text.String(), st.style))
			text.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\r':
			p.pos++
		case c == '\\' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '[' || p.src[p.pos+1] == ']'):
			text.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c != '[':
			text.WriteByte(c)
			p.pos++
		default:
			flush()
			if strings.HasPrefix(p.src[p.pos:], closeTag) {
				if !nested {
					return malformed(p.pos, "unmatched %s", closeTag)
				}
				p.pos += len(closeTag)
				return nil
			}
			if err := p.tag(&st); err != nil {
				return err
			}
		}
	}
	flush()

	// Scopes still open at the end of input close implicitly.
	return nil
}

const closeTag = "[/]"

// scopeTags are the paired tags without parameters and the change each
// makes to the style of its scope.
var scopeTags = []struct {
	name  string
	apply func(parseState) parseState
}{
	{"[b]", func(s parseState) parseState { s.style.Bold = true; return s }},
	{"[i]", func(s parseState) parseState { s.style.Italic = true; return s }},
	{"[u]", func(s parseState) parseState { s.style.Underline = true; return s }},
	{"[strike]", func(s parseState) parseState { s.style.Strikethrough = true; return s }},
	{"[h1]", func(s parseState) parseState { s.style.Headline = H1; return s }},
	{"[h2]", func(s parseState) parseState { s.style.Headline = H2; return s }},
	{"[h3]", func(s parseState) parseState { s.style.Headline = H3; return s }},
	{"[ul]", func(s parseState) parseState {
		s.style.List = ListContext{Kind: ListUnordered, Depth: s.style.List.Depth + 1}
		s.ordinal = 0
		return s
	}},
	{"[ol]", func(s parseState) parseState {
		s.style.List = ListContext{Kind: ListOrdered, Depth: s.style.List.Depth + 1}
		s.ordinal = 1
		return s
	}},
}

const (
	lineTag   = "[line/]"
	liTag     = "[li]"
	uriTag    = `[uri="`
	actionTag = `[action="`
	imgTag    = `[img="`
)

// knownTags lists every tag spelling, used to tell a truncated tag from an
// unknown one.
var knownTags = func() []string {
	tags := []string{closeTag, lineTag, liTag, uriTag, actionTag, imgTag}
	for _, t := range scopeTags {
		tags = append(tags, t.name)
	}
	return tags
}()

// tag handles the tag starting at p.pos. st belongs to the calling frame;
// only [li] updates it (to advance the list ordinal).
func (p *parser) tag(st *parseState) error {
	start := p.pos
	rest := p.src[start:]

	for _, t := range scopeTags {
		if strings.HasPrefix(rest, t.name) {
			p.pos += len(t.name)
			return p.parse(t.apply(*st), true)
		}
	}

	switch {
	case strings.HasPrefix(rest, lineTag):
		p.pos += len(lineTag)
		p.doc.Segments = append(p.doc.Segments, HorizontalRule())
		return nil

	case strings.HasPrefix(rest, liTag):
		p.pos += len(liTag)
		ordered := st.style.List.Kind == ListOrdered
		ordinal := 0
		if ordered {
			ordinal = st.ordinal
		}
		p.doc.Segments = append(p.doc.Segments, ListItemMarker(ordinal, ordered, st.style))
		if err := p.parse(*st, true); err != nil {
			return err
		}
		if ordered {
			st.ordinal++
		}
		return nil

	case strings.HasPrefix(rest, uriTag):
		addr, err := p.quoted(start, len(uriTag), "]")
		if err != nil {
			return err
		}
		child := *st
		child.style.Trigger = Trigger{Kind: TriggerURI, Name: addr, URL: ResolveURI(addr, p.base)}
		return p.parse(child, true)

	case strings.HasPrefix(rest, actionTag):
		name, err := p.quoted(start, len(actionTag), "]")
		if err != nil {
			return err
		}
		p.doc.Actions[name] = struct{}{}
		child := *st
		child.style.Trigger = Trigger{Kind: TriggerAction, Name: name}
		return p.parse(child, true)

	case strings.HasPrefix(rest, imgTag):
		addr, err := p.quoted(start, len(imgTag), "/]", "]")
		if err != nil {
			return err
		}
		idx := len(p.doc.Images)
		p.doc.Images = append(p.doc.Images, ImageRef{Source: addr, URL: ResolveURI(addr, p.base)})
		p.doc.Segments = append(p.doc.Segments, Image(idx, st.style))
		return nil
	}

	for _, t := range knownTags {
		if len(rest) < len(t) && strings.HasPrefix(t, rest) {
			return malformed(start, "truncated tag %q", rest)
		}
	}
	return malformed(start, "unknown tag %q", tagText(rest))
}

// quoted reads the parameter of a parameterized tag beginning at start
// whose opening text (through the opening quote) is prefixLen bytes long.
// The closing quote must be followed by one of terminators. On success
// p.pos is left after the terminator.
func (p *parser) quoted(start, prefixLen int, terminators ...string) (string, error) {
	from := start + prefixLen
	end := strings.IndexByte(p.src[from:], '"')
	if end < 0 {
		return "", malformed(start, "unterminated quote in %q", tagText(p.src[start:]))
	}
	value := p.src[from : from+end]
	after := from + end + 1
	for _, term := range terminators {
		if strings.HasPrefix(p.src[after:], term) {
			p.pos = after + len(term)
			return value, nil
		}
	}
	return "", malformed(start, "truncated tag %q", p.src[start:after])
}

// tagText returns the tag at the start of s for error messages.
func tagText(s string) string {
	if i := strings.IndexByte(s, ']'); i >= 0 {
		return s[:i+1]
	}
	if len(s) > 16 {
		return s[:16] + "…"
	}
	return s
}

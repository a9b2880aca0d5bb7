package rich

import (
	"fmt"
	"image"
	"strings"

	"github.com/rjkroege/richui/markup"
)

// Option configures an Engine.
type Option func(*Engine)

// WithImageSize sets the function used to look up the size of the image
// in the given slot of the document's image table.
func WithImageSize(fn func(assetIndex int) image.Point) Option {
	return func(e *Engine) {
		e.imageSize = fn
	}
}

// WithTabWidth sets the number of spaces a tab expands to.
func WithTabWidth(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.tabWidth = n
		}
	}
}

// WithListIndent sets the indent in pixels of list item markers.
func WithListIndent(px int) Option {
	return func(e *Engine) {
		if px >= 0 {
			e.listIndent = px
		}
	}
}

const (
	defaultTabWidth   = 4
	defaultListIndent = 16

	bullet = "• "
)

// Engine lays out parsed segments. An Engine holds no per-layout state, so
// Layout is a pure function of its arguments and the engine's settings.
type Engine struct {
	fonts      *FontSet
	imageSize  func(int) image.Point
	tabWidth   int
	listIndent int
}

// NewEngine returns an Engine measuring text with fonts.
func NewEngine(fonts *FontSet, opts ...Option) *Engine {
	e := &Engine{
		fonts:      fonts,
		tabWidth:   defaultTabWidth,
		listIndent: defaultListIndent,
	}
	for _, o := range opts {
		o(e)
	}
	if e.imageSize == nil {
		h := fonts.Base.Height()
		e.imageSize = func(int) image.Point { return image.Pt(h, h) }
	}
	return e
}

// Fonts returns the engine's font set.
func (e *Engine) Fonts() *FontSet { return e.fonts }

// token is a unit of wrapping: a word with its trailing whitespace, or a
// newline.
type token struct {
	text    string // display text
	source  string
	newline bool
}

// tokenize splits s into tokens. A token ends after each space or tab and
// at each newline. Tabs are expanded to tabWidth spaces in the display text.
func tokenize(s string, tabWidth int) []token {
	var toks []token
	var text, source strings.Builder
	flush := func() {
		if source.Len() > 0 {
			toks = append(toks, token{text: text.String(), source: source.String()})
			text.Reset()
			source.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '\n':
			flush()
			toks = append(toks, token{source: "\n", newline: true})
		case '\t':
			text.WriteString(strings.Repeat(" ", tabWidth))
			source.WriteRune(r)
			flush()
		case ' ':
			text.WriteRune(r)
			source.WriteRune(r)
			flush()
		default:
			text.WriteRune(r)
			source.WriteRune(r)
		}
	}
	flush()
	return toks
}

// markerText returns the glyphs drawn for a list item marker.
func markerText(s markup.Segment) string {
	if s.Ordered {
		return fmt.Sprintf("%d. ", s.Ordinal)
	}
	return bullet
}

// placer carries the cursor of the first layout pass.
type placer struct {
	maxWidth int

	elems   []Element
	heights []int

	line int
	x    int

	// hang is where wrapped lines of a list item start.
	hang int
	// breakPending is set after a rule: the next element starts a new line.
	breakPending bool
}

func (p *placer) bounded() bool { return p.maxWidth > 0 }

// grow records that line holds something of height h.
func (p *placer) grow(h int) {
	for len(p.heights) <= p.line {
		p.heights = append(p.heights, 0)
	}
	if h > p.heights[p.line] {
		p.heights[p.line] = h
	}
}

func (p *placer) newline(list bool) {
	p.grow(0)
	p.line++
	p.grow(0)
	p.x = 0
	if list {
		p.x = p.hang
	}
	p.breakPending = false
}

// lineEmpty reports whether nothing has been placed on the current line.
func (p *placer) lineEmpty() bool {
	return len(p.elems) == 0 || p.elems[len(p.elems)-1].Line != p.line
}

// fits reports whether w more pixels fit on the current line. Nothing is
// moved off an empty line.
func (p *placer) fits(w int) bool {
	return !p.bounded() || p.x == 0 || p.lineEmpty() || p.x+w <= p.maxWidth
}

func (p *placer) place(e Element, w, h int) {
	e.Rect = image.Rect(p.x, 0, p.x+w, h)
	e.Line = p.line
	p.elems = append(p.elems, e)
	p.grow(h)
	p.x += w
}

// Layout places segs in lines no wider than maxWidth. maxWidth <= 0 turns
// wrapping off.
//
// The first pass places elements left to right and assigns each a line
// index while tracking the tallest element of every line. The second pass
// converts line indices to pixel offsets.
func (e *Engine) Layout(segs []markup.Segment, maxWidth int) Result {
	p := &placer{maxWidth: maxWidth}

	for i, s := range segs {
		inList := s.Style.List.Kind != markup.ListNone
		if !inList {
			p.hang = 0
		}
		if p.breakPending && !startsWithNewline(s) {
			// A leading newline ends the rule's line itself.
			p.newline(inList)
		}

		switch s.Kind {
		case markup.KindText:
			e.placeText(p, i, s)
		case markup.KindImage:
			sz := e.imageSize(s.AssetIndex)
			if !p.fits(sz.X) {
				p.newline(inList)
			}
			p.place(Element{Kind: ElementImage, Segment: i, Style: s.Style, AssetIndex: s.AssetIndex}, sz.X, sz.Y)
		case markup.KindRule:
			if !p.lineEmpty() {
				p.newline(false)
			}
			p.x = 0
			p.place(Element{Kind: ElementRule, Segment: i}, max(maxWidth, 0), e.fonts.Base.Height())
			p.breakPending = true
		case markup.KindListMarker:
			if !p.lineEmpty() {
				p.newline(false)
			}
			p.x = e.listIndent
			f := e.fonts.fontForStyle(s.Style)
			text := markerText(s)
			p.place(Element{Kind: ElementMarker, Segment: i, Text: text, Style: s.Style}, f.StringWidth(text), f.Height())
			p.hang = p.x
		}
	}

	return resolve(p.elems, p.heights, maxWidth)
}

func startsWithNewline(s markup.Segment) bool {
	return s.Kind == markup.KindText && strings.HasPrefix(s.Text, "\n")
}

// placeText places the tokens of a text segment. Consecutive tokens that
// land on the same line share one element.
func (e *Engine) placeText(p *placer, idx int, s markup.Segment) {
	f := e.fonts.fontForStyle(s.Style)
	h := f.Height()
	inList := s.Style.List.Kind != markup.ListNone

	cur := -1 // index in p.elems of the element being extended
	for _, t := range tokenize(s.Text, e.tabWidth) {
		if t.newline {
			if cur >= 0 && p.elems[cur].Line == p.line {
				p.elems[cur].Source += t.source
			} else {
				p.place(Element{Kind: ElementText, Segment: idx, Source: t.source, Style: s.Style}, 0, h)
			}
			p.grow(h)
			cur = -1
			p.newline(inList)
			continue
		}

		w := f.StringWidth(t.text)
		if !p.fits(w) {
			p.newline(inList)
			cur = -1
		}
		if cur >= 0 && p.elems[cur].Line == p.line {
			el := &p.elems[cur]
			el.Text += t.text
			el.Source += t.source
			el.Rect.Max.X += w
			p.x += w
			continue
		}
		cur = len(p.elems)
		p.place(Element{Kind: ElementText, Segment: idx, Text: t.text, Source: t.source, Style: s.Style}, w, h)
	}
}

// resolve is the second layout pass: it turns line indices into absolute
// offsets, sizes unbounded rules and computes bounds and hit regions.
func resolve(elems []Element, heights []int, maxWidth int) Result {
	if len(elems) == 0 {
		return Result{}
	}

	tops := make([]int, len(heights))
	for i := 1; i < len(heights); i++ {
		tops[i] = tops[i-1] + heights[i-1]
	}

	var bounds image.Rectangle
	for i := range elems {
		el := &elems[i]
		el.Rect = el.Rect.Add(image.Pt(0, tops[el.Line]))
		if el.Kind != ElementRule {
			bounds = bounds.Union(el.Rect)
		}
	}

	for i := range elems {
		el := &elems[i]
		if el.Kind != ElementRule {
			continue
		}
		if maxWidth <= 0 {
			el.Rect.Max.X = bounds.Max.X
		}
		bounds = bounds.Union(el.Rect)
	}

	return Result{
		Elements:    elems,
		LineHeights: heights,
		LineTops:    tops,
		Bounds:      bounds,
		Regions:     buildRegions(elems),
	}
}

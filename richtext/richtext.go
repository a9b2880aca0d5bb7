// Package richtext implements the rich text widget: markup is parsed when
// the text is assigned, laid out lazily on the next update and kept in
// sync with images as they load.
package richtext

import (
	"context"
	"image"

	"go.uber.org/zap"

	"github.com/rjkroege/richui/action"
	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/asset"
	"github.com/rjkroege/richui/draw"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/markup"
	"github.com/rjkroege/richui/rich"
)

// Richtext is a widget showing markup. It is not safe for concurrent use:
// SetText, Update and Draw belong to the UI loop. Images are fetched in the
// background.
type Richtext struct {
	log        *zap.Logger
	clock      anim.Clock
	resolver   asset.Resolver
	opener     action.Opener
	dispatcher *action.Dispatcher
	loader     *asset.Loader
	engine     *rich.Engine
	engineOpts []rich.Option
	notify     func()

	baseDir  string
	maxWidth int

	text    string
	doc     *markup.Document
	result  rich.Result
	dirty   bool
	clicker input.Clicker
}

// Option configures a Richtext.
type Option func(*Richtext)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Richtext) {
		r.log = log
	}
}

// WithClock sets the clock driving animated images.
func WithClock(c anim.Clock) Option {
	return func(r *Richtext) {
		r.clock = c
	}
}

// WithResolver sets how images are fetched.
func WithResolver(res asset.Resolver) Option {
	return func(r *Richtext) {
		r.resolver = res
	}
}

// WithOpener sets what clicking a URI does.
func WithOpener(o action.Opener) Option {
	return func(r *Richtext) {
		r.opener = o
	}
}

// WithMaxWidth sets the wrapping width. Zero turns wrapping off.
func WithMaxWidth(w int) Option {
	return func(r *Richtext) {
		r.maxWidth = w
	}
}

// WithBaseDir sets the directory relative URIs are resolved against.
func WithBaseDir(dir string) Option {
	return func(r *Richtext) {
		r.baseDir = dir
	}
}

// WithEngineOptions passes options to the layout engine.
func WithEngineOptions(opts ...rich.Option) Option {
	return func(r *Richtext) {
		r.engineOpts = append(r.engineOpts, opts...)
	}
}

// WithNotify sets a function called from a background goroutine when an
// image arrives and the widget needs an update.
func WithNotify(fn func()) Option {
	return func(r *Richtext) {
		r.notify = fn
	}
}

// New returns an empty Richtext measuring text with fonts.
func New(fonts *rich.FontSet, opts ...Option) *Richtext {
	r := &Richtext{
		log:        zap.NewNop(),
		dispatcher: action.NewDispatcher(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.clock == nil {
		r.clock = anim.NewStopwatch()
	}
	if r.resolver == nil {
		r.resolver = asset.NewFetchResolver(asset.WithResolverLogger(r.log))
	}
	if r.opener == nil {
		r.opener = &action.ExecOpener{}
	}

	loaderOpts := []asset.LoaderOption{asset.WithLoaderLogger(r.log)}
	if r.notify != nil {
		loaderOpts = append(loaderOpts, asset.WithNotify(r.notify))
	}
	r.loader = asset.NewLoader(r.resolver, r.clock, loaderOpts...)

	engineOpts := append([]rich.Option{rich.WithImageSize(r.imageSize)}, r.engineOpts...)
	r.engine = rich.NewEngine(fonts, engineOpts...)
	return r
}

func (r *Richtext) imageSize(i int) image.Point {
	return r.loader.Get(i).Size()
}

// SetText parses text and makes it the widget's content. Action callbacks
// are cleared and must be bound again. On a parse error the previous
// content and callbacks stay and the error is returned.
func (r *Richtext) SetText(text string) error {
	var popts []markup.Option
	if r.baseDir != "" {
		popts = append(popts, markup.WithBaseDir(r.baseDir))
	}
	doc, err := markup.Parse(text, popts...)
	if err != nil {
		r.log.Debug("Markup rejected, keeping previous text", zap.Error(err))
		return err
	}

	r.text = text
	r.doc = doc
	r.dispatcher.Reset(doc.Actions)
	gen := r.loader.Load(doc.Images)
	r.dirty = true
	r.log.Debug("Markup assigned",
		zap.Int("segments", len(doc.Segments)),
		zap.Int("images", len(doc.Images)),
		zap.Int("actions", len(doc.Actions)),
		zap.Uint64("generation", gen))
	return nil
}

// Text returns the markup last assigned successfully.
func (r *Richtext) Text() string {
	return r.text
}

// Bind sets the callback run when text marked with [action="name"] is
// clicked. The name must be declared by the current text.
func (r *Richtext) Bind(name string, fn func()) error {
	return r.dispatcher.Bind(name, fn)
}

// SetMaxWidth changes the wrapping width.
func (r *Richtext) SetMaxWidth(w int) {
	if w != r.maxWidth {
		r.maxWidth = w
		r.dirty = true
	}
}

// Update runs one tick: it lays the text out again if the text, the width
// or an image changed and then dispatches a click at p.
func (r *Richtext) Update(p input.Pointer) {
	if r.loader.TakeArrivals() {
		r.dirty = true
	}
	if r.dirty {
		r.relayout()
	}

	if !r.clicker.Sample(p) {
		return
	}
	trig, ok := r.result.Regions.At(p.Pt)
	if !ok {
		return
	}
	r.dispatch(trig)
}

func (r *Richtext) relayout() {
	r.dirty = false
	if r.doc == nil {
		r.result = rich.Result{}
		return
	}
	r.result = r.engine.Layout(r.doc.Segments, r.maxWidth)
}

func (r *Richtext) dispatch(trig markup.Trigger) {
	switch trig.Kind {
	case markup.TriggerAction:
		if !r.dispatcher.Invoke(trig.Name) {
			r.log.Debug("No callback bound to action", zap.String("action", trig.Name))
		}
	case markup.TriggerURI:
		addr := trig.Address()
		if addr == "" {
			r.log.Debug("Ignoring click on unresolved link", zap.String("uri", trig.Name))
			return
		}
		if err := r.opener.Open(context.Background(), addr); err != nil {
			r.log.Warn("Unable to open link", zap.String("uri", addr), zap.Error(err))
		}
	}
}

// Result returns the layout computed by the last Update.
func (r *Richtext) Result() rich.Result {
	return r.result
}

// Bounds returns the area covered by the content.
func (r *Richtext) Bounds() image.Rectangle {
	return r.result.Bounds
}

// Primitives returns the render list for the current tick, with animated
// images on their current frame.
func (r *Richtext) Primitives() []rich.Primitive {
	now := r.clock.Elapsed()
	return r.result.Primitives(func(i int) image.Image {
		return r.loader.Get(i).Frame(now)
	})
}

// Draw renders the widget onto dst at origin.
func (r *Richtext) Draw(dst draw.Image, p *rich.Painter, origin image.Point) {
	p.Draw(dst, origin, r.Primitives())
}

// WaitImages blocks until every image of the current text has been
// fetched or has failed.
func (r *Richtext) WaitImages() {
	r.loader.Wait()
}

// Close stops outstanding image fetches.
func (r *Richtext) Close() {
	r.loader.Close()
}

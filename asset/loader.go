package asset

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/markup"
)

// Loader resolves the images of one document at a time in the background.
// Every slot shows the placeholder until its image arrives. Loading a new
// document starts a new generation: fetches of older generations are
// cancelled and their results dropped.
type Loader struct {
	resolver Resolver
	clock    anim.Clock
	log      *zap.Logger
	notify   func()

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	slots  []*atomic.Pointer[Animated]

	arrived atomic.Bool
	wg      sync.WaitGroup
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger.
func WithLoaderLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// WithNotify sets a function called from the fetching goroutine after each
// image arrives, e.g. to wake up a UI loop.
func WithNotify(fn func()) LoaderOption {
	return func(l *Loader) {
		l.notify = fn
	}
}

// NewLoader returns a Loader fetching with r. Arrival times are read from
// clock.
func NewLoader(r Resolver, clock anim.Clock, opts ...LoaderOption) *Loader {
	l := &Loader{
		resolver: r,
		clock:    clock,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load starts fetching refs as a new generation and returns it.
// References that did not resolve to a URL keep the placeholder.
func (l *Loader) Load(refs []markup.ImageRef) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.gen++
	gen := l.gen

	l.slots = make([]*atomic.Pointer[Animated], len(refs))
	for i := range l.slots {
		l.slots[i] = new(atomic.Pointer[Animated])
		l.slots[i].Store(Placeholder())
	}
	l.arrived.Store(false)

	for i, ref := range refs {
		if ref.URL == nil {
			l.log.Warn("Unable to resolve image reference, using placeholder", zap.String("ref", ref.Source))
			continue
		}
		l.wg.Add(1)
		go func(i int, target string) {
			defer l.wg.Done()
			a, err := l.resolver.Resolve(ctx, target)
			l.publish(gen, i, a, err)
		}(i, ref.URL.String())
	}
	return gen
}

// publish stores the result of a fetch for generation gen.
func (l *Loader) publish(gen uint64, i int, a *Animated, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		l.log.Debug("Dropping image from stale generation", zap.Uint64("generation", gen), zap.Uint64("current", l.gen))
		return
	}
	if err != nil || a == nil {
		l.log.Warn("Unable to load image, using placeholder", zap.Int("slot", i), zap.Error(err))
		return
	}

	published := *a
	published.LoadedAt = l.clock.Elapsed()
	l.slots[i].Store(&published)
	l.arrived.Store(true)
	if l.notify != nil {
		l.notify()
	}
}

// Get returns the asset in slot i of the current generation. It never
// returns nil for a valid slot.
func (l *Loader) Get(i int) *Animated {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.slots) {
		return Placeholder()
	}
	return l.slots[i].Load()
}

// Len returns the number of slots of the current generation.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

// Generation returns the current generation.
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// TakeArrivals reports whether an image of the current generation arrived
// since the previous call.
func (l *Loader) TakeArrivals() bool {
	return l.arrived.Swap(false)
}

// Wait blocks until all started fetches have finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels outstanding fetches and waits for them.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.mu.Unlock()
	l.wg.Wait()
}

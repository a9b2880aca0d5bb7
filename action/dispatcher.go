// Package action connects the triggers of rich text to the program: named
// actions run callbacks bound by the widget's owner and URIs are handed to
// an Opener.
package action

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rjkroege/richui/markup"
)

// ErrUnknownAction is returned when binding a name the markup never
// declared.
var ErrUnknownAction = errors.New("unknown action")

// Dispatcher maps declared action names to callbacks.
type Dispatcher struct {
	mu        sync.Mutex
	callbacks map[string]func()
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{callbacks: make(map[string]func())}
}

// Register declares name with no callback bound. Registering a declared
// name keeps its callback.
func (d *Dispatcher) Register(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.callbacks[name]; !ok {
		d.callbacks[name] = nil
	}
}

// Reset replaces the declared names with names, all unbound.
func (d *Dispatcher) Reset(names markup.ActionSet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callbacks = make(map[string]func(), len(names))
	for n := range names {
		d.callbacks[n] = nil
	}
}

// Bind sets the callback for a declared name. A nil fn unbinds.
func (d *Dispatcher) Bind(name string, fn func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.callbacks[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	d.callbacks[name] = fn
	return nil
}

// Declared reports whether name is declared.
func (d *Dispatcher) Declared(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.callbacks[name]
	return ok
}

// Invoke runs the callback bound to name and reports whether one ran.
// Unknown and unbound names are ignored.
func (d *Dispatcher) Invoke(name string) bool {
	d.mu.Lock()
	fn := d.callbacks[name]
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Package element provides an in-memory host element: a named object with
// ordered attributes, synchronous attribute-change notification and
// element-level lifecycle callbacks.
package element

import (
	"errors"
	"sort"
	"sync"
)

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// Change describes one attribute mutation. Present is false when the
// attribute was removed.
type Change struct {
	Name       string
	OldValue   string
	WasPresent bool
	NewValue   string
	Present    bool
}

// Listener is notified synchronously after an attribute mutation.
type Listener func(el *Element, change Change) error

// Callbacks are the element's own lifecycle hooks. Any may be nil.
type Callbacks struct {
	Connected           func(el *Element)
	DirectivesConnected func(el *Element)
	Disconnected        func(el *Element)
}

// Element is an in-memory host element. It is not safe for concurrent use
// beyond the listener bookkeeping.
type Element struct {
	name      string
	typeName  string
	attrs     []Attribute
	Callbacks Callbacks

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
	mounted   bool
}

// New creates an element with the given instance name and type name.
func New(name, typeName string, attrs ...Attribute) *Element {
	el := &Element{
		name:      name,
		typeName:  typeName,
		listeners: make(map[int]Listener),
	}
	for _, a := range attrs {
		el.set(a.Name, a.Value)
	}
	return el
}

// Name returns the element instance name.
func (e *Element) Name() string { return e.name }

// Type returns the element type name.
func (e *Element) Type() string { return e.typeName }

// Mounted reports whether the element is currently mounted.
func (e *Element) Mounted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mounted
}

// SetMounted records the mount state; it is driven by the lifecycle adapter.
func (e *Element) SetMounted(mounted bool) {
	e.mu.Lock()
	e.mounted = mounted
	e.mu.Unlock()
}

// GetAttribute returns the value of the named attribute.
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attributes returns a copy of the attributes in insertion order.
func (e *Element) Attributes() []Attribute {
	return append([]Attribute(nil), e.attrs...)
}

// SetAttribute sets name to value and notifies listeners. Listener errors
// are joined and returned; the attribute stays set either way.
func (e *Element) SetAttribute(name, value string) error {
	old, had := e.GetAttribute(name)
	e.set(name, value)
	return e.notify(Change{Name: name, OldValue: old, WasPresent: had, NewValue: value, Present: true})
}

// RemoveAttribute deletes name and notifies listeners. Removing an absent
// attribute is a no-op.
func (e *Element) RemoveAttribute(name string) error {
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i:i], e.attrs[i+1:]...)
			return e.notify(Change{Name: name, OldValue: a.Value, WasPresent: true})
		}
	}
	return nil
}

// Observe registers l and returns a function that unregisters it.
func (e *Element) Observe(l Listener) (cancel func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = l
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

func (e *Element) set(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attribute{Name: name, Value: value})
}

func (e *Element) notify(change Change) error {
	e.mu.Lock()
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	sort.Ints(ids)

	var errs []error
	for _, id := range ids {
		e.mu.Lock()
		l, ok := e.listeners[id]
		e.mu.Unlock()
		if !ok {
			continue
		}
		if err := l(e, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

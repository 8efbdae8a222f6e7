package binding

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/elemdirectives/internal/directive"
	"github.com/vk/elemdirectives/internal/element"
	"github.com/vk/elemdirectives/internal/parser"
	"github.com/vk/elemdirectives/internal/reconciler"
)

// ErrNotMounted is returned by Unmount for an element that is not mounted.
var ErrNotMounted = errors.New("element is not mounted")

// ErrAlreadyMounted is returned by Mount for an element that is mounted.
var ErrAlreadyMounted = errors.New("element is already mounted")

// Options configures a Binding.
type Options struct {
	// Attribute selects attribute-value mode. Empty selects
	// element-attributes mode.
	Attribute  string
	Registry   *directive.Registry
	Reconciler *reconciler.Reconciler
	Logger     *slog.Logger
}

// Binding is the lifecycle adapter for one element type.
type Binding struct {
	attribute  string
	registry   *directive.Registry
	reconciler *reconciler.Reconciler
	logger     *slog.Logger

	mu      sync.Mutex
	watches map[*element.Element]*watch
}

// watch is the per-mounted-element bookkeeping.
type watch struct {
	cancel  func()
	filter  map[string]struct{}
	running bool
	pending bool
}

// New creates a binding. A nil Registry gets an empty one, a nil Reconciler
// a private one and a nil Logger slog.Default().
func New(opts Options) *Binding {
	if opts.Registry == nil {
		opts.Registry = directive.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Reconciler == nil {
		opts.Reconciler = reconciler.New(opts.Logger)
	}
	return &Binding{
		attribute:  opts.Attribute,
		registry:   opts.Registry,
		reconciler: opts.Reconciler,
		logger:     opts.Logger,
		watches:    make(map[*element.Element]*watch),
	}
}

// OnAttribute creates a binding in attribute-value mode.
func OnAttribute(attribute string, reg *directive.Registry) *Binding {
	return New(Options{Attribute: attribute, Registry: reg})
}

// UsingElementAttributes creates a binding in element-attributes mode.
func UsingElementAttributes(reg *directive.Registry) *Binding {
	return New(Options{Registry: reg})
}

// Registry returns the directive registry of the bound element type.
func (b *Binding) Registry() *directive.Registry { return b.registry }

// Reconciler returns the reconciler the binding drives.
func (b *Binding) Reconciler() *reconciler.Reconciler { return b.reconciler }

// Attribute returns the directives attribute, or "" in element-attributes
// mode.
func (b *Binding) Attribute() string { return b.attribute }

// Mount activates el: element Connected callback, directives connected left
// to right, then element DirectivesConnected callback.
func (b *Binding) Mount(el *element.Element) error {
	b.mu.Lock()
	if _, ok := b.watches[el]; ok {
		b.mu.Unlock()
		return fmt.Errorf("mount %q: %w", el.Name(), ErrAlreadyMounted)
	}
	w := &watch{filter: b.filter()}
	b.watches[el] = w
	b.mu.Unlock()

	logger := b.logger.With("element", el.Name(), "type", el.Type())
	logger.Debug("Mounting element.")

	el.SetMounted(true)
	if cb := el.Callbacks.Connected; cb != nil {
		cb(el)
	}

	tokens, err := b.tokens(el)
	if err != nil {
		b.forget(el)
		el.SetMounted(false)
		return fmt.Errorf("mount %q: %w", el.Name(), err)
	}

	w.cancel = el.Observe(b.onChange)
	w.running = true
	err = b.reconciler.Initialize(el, tokens, b.registry)
	w.running = false
	if err != nil {
		w.cancel()
		b.forget(el)
		el.SetMounted(false)
		return fmt.Errorf("mount %q: %w", el.Name(), err)
	}

	if cb := el.Callbacks.DirectivesConnected; cb != nil {
		cb(el)
	}
	if w.pending {
		return b.reload(el, w)
	}
	return nil
}

// Unmount deactivates el: directives disconnected right to left, then the
// element Disconnected callback.
func (b *Binding) Unmount(el *element.Element) error {
	w, ok := b.forget(el)
	if !ok {
		return fmt.Errorf("unmount %q: %w", el.Name(), ErrNotMounted)
	}
	b.logger.Debug("Unmounting element.", "element", el.Name(), "type", el.Type())

	if w.cancel != nil {
		w.cancel()
	}
	if err := b.reconciler.Finalize(el); err != nil {
		return fmt.Errorf("unmount %q: %w", el.Name(), err)
	}
	el.SetMounted(false)
	if cb := el.Callbacks.Disconnected; cb != nil {
		cb(el)
	}
	return nil
}

// Active returns the live instances on el.
func (b *Binding) Active(el *element.Element) []*directive.Instance {
	return b.reconciler.Active(el)
}

// onChange is the attribute listener installed on mounted elements.
func (b *Binding) onChange(el *element.Element, change element.Change) error {
	b.mu.Lock()
	w, ok := b.watches[el]
	b.mu.Unlock()
	if !ok || !b.relevant(w, change.Name) {
		return nil
	}
	if w.running {
		w.pending = true
		return nil
	}
	return b.reload(el, w)
}

// reload reconciles el until no mutation arrived during the last pass.
func (b *Binding) reload(el *element.Element, w *watch) error {
	w.running = true
	defer func() { w.running = false }()

	for {
		w.pending = false
		tokens, err := b.tokens(el)
		if err != nil {
			return fmt.Errorf("reload %q: %w", el.Name(), err)
		}
		err = b.reconciler.Reconcile(el, tokens, b.registry)
		if errors.Is(err, reconciler.ErrReloadDisabled) {
			b.logger.Debug("Ignoring attribute change on inactive element.", "element", el.Name())
			return nil
		}
		if err != nil {
			return fmt.Errorf("reload %q: %w", el.Name(), err)
		}
		if !w.pending {
			return nil
		}
		b.logger.Debug("Attribute changed during reconciliation, reloading.", "element", el.Name())
	}
}

// relevant reports whether a mutation of name should trigger a reload.
func (b *Binding) relevant(w *watch, name string) bool {
	if b.attribute != "" {
		return name == b.attribute
	}
	_, ok := w.filter[name]
	return ok
}

// filter snapshots the defined directive names for element-attributes mode.
func (b *Binding) filter() map[string]struct{} {
	if b.attribute != "" {
		return nil
	}
	names := b.registry.Names()
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// tokens reads the current directive tokens from el.
func (b *Binding) tokens(el *element.Element) ([]parser.Token, error) {
	if b.attribute == "" {
		attrs := el.Attributes()
		tokens := make([]parser.Token, 0, len(attrs))
		for _, a := range attrs {
			tokens = append(tokens, parser.Token{Name: a.Name, Value: a.Value})
		}
		return tokens, nil
	}

	value, ok := el.GetAttribute(b.attribute)
	if !ok || value == "" {
		return []parser.Token{}, nil
	}
	return parser.Parse(value)
}

func (b *Binding) forget(el *element.Element) (*watch, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.watches[el]
	delete(b.watches, el)
	return w, ok
}

package reconciler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/elemdirectives/internal/directive"
	"github.com/vk/elemdirectives/internal/parser"
)

var (
	// ErrAlreadyInitialized is returned by Initialize for an element that is
	// already active.
	ErrAlreadyInitialized = errors.New("directives already initialized on element")
	// ErrReloadDisabled is returned by Reconcile before Initialize or after
	// Finalize. Adapters normally treat it as a no-op.
	ErrReloadDisabled = errors.New("directive reload is not enabled on element")
	// ErrReentrant is returned when a hook re-enters the reconciler for the
	// element whose pass is still running.
	ErrReentrant = errors.New("reentrant directive reconciliation")
)

// Reconciler owns the directive state of every element it has seen.
type Reconciler struct {
	logger *slog.Logger

	mu     sync.Mutex
	states map[directive.Element]*State
}

// New creates a reconciler. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		logger: logger,
		states: make(map[directive.Element]*State),
	}
}

// state returns the entry for el, creating an inactive one on first use.
func (r *Reconciler) state(el directive.Element) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[el]
	if !ok {
		st = &State{}
		r.states[el] = st
	}
	return st
}

// begin marks a pass as running for st.
func (r *Reconciler) begin(el directive.Element, st *State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st.busy {
		return fmt.Errorf("element %q: %w", el.Name(), ErrReentrant)
	}
	st.busy = true
	return nil
}

func (r *Reconciler) end(st *State) {
	r.mu.Lock()
	st.busy = false
	r.mu.Unlock()
}

// Initialize constructs instances for tokens, connects them left to right
// and enables reload for el.
func (r *Reconciler) Initialize(el directive.Element, tokens []parser.Token, reg *directive.Registry) error {
	st := r.state(el)
	if err := r.begin(el, st); err != nil {
		return err
	}
	defer r.end(st)

	if st.ReloadEnabled {
		return fmt.Errorf("element %q: %w", el.Name(), ErrAlreadyInitialized)
	}

	logger := r.logger.With("element", el.Name())
	instances := directive.Construct(el, tokens, reg)
	logger.Debug("Initializing directives.", "tokens", len(tokens), "instances", len(instances))

	connect(instances)
	st.Active = instances
	st.ReloadEnabled = true
	return nil
}

// Finalize disconnects every active instance right to left, clears the
// active list and disables reload. It is safe on an element with nothing
// active.
func (r *Reconciler) Finalize(el directive.Element) error {
	st := r.state(el)
	if err := r.begin(el, st); err != nil {
		return err
	}
	defer r.end(st)

	r.logger.Debug("Finalizing directives.", "element", el.Name(), "instances", len(st.Active))
	disconnect(st.Active)
	st.Active = nil
	st.ReloadEnabled = false

	r.mu.Lock()
	delete(r.states, el)
	r.mu.Unlock()
	return nil
}

// Reconcile moves the active instances of el to match tokens.
func (r *Reconciler) Reconcile(el directive.Element, tokens []parser.Token, reg *directive.Registry) error {
	r.mu.Lock()
	st, ok := r.states[el]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("element %q: %w", el.Name(), ErrReloadDisabled)
	}
	if err := r.begin(el, st); err != nil {
		return err
	}
	defer r.end(st)

	if !st.ReloadEnabled {
		return fmt.Errorf("element %q: %w", el.Name(), ErrReloadDisabled)
	}

	logger := r.logger.With("element", el.Name())
	active := st.Active
	m, n := len(active), len(tokens)

	for i := 0; i < m; i++ {
		if i == n {
			logger.Debug("Token list shrank, dropping tail.", "from", i, "dropped", m-i)
			disconnect(active[i:])
			st.Active = active[:i:i]
			return nil
		}

		in, tok := active[i], tokens[i]
		if in.Directive.Name != tok.Name {
			logger.Debug("Directive mismatch, rebuilding tail.", "at", i, "was", in.Directive.Name, "now", tok.Name)
			disconnect(active[i:])
			fresh := directive.Construct(el, tokens[i:], reg)
			connect(fresh)
			st.Active = append(active[:i:i], fresh...)
			return nil
		}

		if in.Directive.Value != tok.Value {
			logger.Debug("Directive value changed.", "at", i, "name", tok.Name, "value", tok.Value)
			in.NotifyValueChanged()
			in.Directive.Value = tok.Value
		}
	}

	if n > m {
		fresh := directive.Construct(el, tokens[m:], reg)
		logger.Debug("Appending directives.", "from", m, "instances", len(fresh))
		connect(fresh)
		st.Active = append(active[:m:m], fresh...)
	}
	return nil
}

// Active returns a copy of the active instance list of el.
func (r *Reconciler) Active(el directive.Element) []*directive.Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[el]
	if !ok {
		return nil
	}
	return append([]*directive.Instance(nil), st.Active...)
}

// ReloadEnabled reports whether el is between Initialize and Finalize.
func (r *Reconciler) ReloadEnabled(el directive.Element) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[el]
	return ok && st.ReloadEnabled
}

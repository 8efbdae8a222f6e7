package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/vk/elemdirectives/internal/binding"
	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/directive"
	"github.com/vk/elemdirectives/internal/element"
)

// ErrExpectationFailed is returned when an expect step does not match.
var ErrExpectationFailed = errors.New("expectation failed")

// ErrUnknownElement is returned for steps naming an undeclared element.
var ErrUnknownElement = errors.New("unknown element")

// Runner owns the scenario's elements and applies steps to them one at a
// time.
type Runner struct {
	bindings map[string]*binding.Binding
	logger   *slog.Logger

	// stepMu serializes Apply.
	stepMu sync.Mutex

	mu       sync.Mutex
	elements map[string]*element.Element
	order    []string
}

// New creates the declared elements. Every element's type must have a
// binding.
func New(elements []*config.Element, bindings map[string]*binding.Binding, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		bindings: bindings,
		logger:   logger,
		elements: make(map[string]*element.Element, len(elements)),
	}
	for _, decl := range elements {
		if err := r.Declare(decl); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Declare adds an element. Names must be unique.
func (r *Runner) Declare(decl *config.Element) error {
	if _, ok := r.bindings[decl.Type]; !ok {
		return fmt.Errorf("element %q: unknown element type %q", decl.Name, decl.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.elements[decl.Name]; exists {
		return fmt.Errorf("element %q is declared more than once", decl.Name)
	}
	attrs := make([]element.Attribute, len(decl.Attributes))
	for i, a := range decl.Attributes {
		attrs[i] = element.Attribute{Name: a.Name, Value: a.Value}
	}
	r.elements[decl.Name] = element.New(decl.Name, decl.Type, attrs...)
	r.order = append(r.order, decl.Name)
	return nil
}

// Element returns the named element.
func (r *Runner) Element(name string) (*element.Element, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.elements[name]
	return el, ok
}

// Run applies steps in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, steps []*config.Step) error {
	r.logger.Info("Running scenario.", "elements", len(r.order), "steps", len(steps))
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Apply(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
	}
	r.logger.Info("Scenario completed.", "steps", len(steps))
	return nil
}

// Apply executes a single step. Concurrent calls are serialized; hooks
// must not call Apply themselves.
func (r *Runner) Apply(step *config.Step) error {
	r.stepMu.Lock()
	defer r.stepMu.Unlock()

	if err := step.Validate(); err != nil {
		return err
	}
	el, ok := r.Element(step.Element)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownElement, step.Element)
	}
	b := r.bindings[el.Type()]

	r.logger.Debug("Applying step.", "step", step.String())
	switch step.Action {
	case config.ActionMount:
		return b.Mount(el)
	case config.ActionUnmount:
		return b.Unmount(el)
	case config.ActionSet:
		return el.SetAttribute(step.Attribute, step.Value)
	case config.ActionRemove:
		return el.RemoveAttribute(step.Attribute)
	case config.ActionExpect:
		got := Describe(b.Active(el))
		want := step.Active
		if want == nil {
			want = []string{}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			return fmt.Errorf("%w: active directives of %q (-want +got):\n%s", ErrExpectationFailed, el.Name(), diff)
		}
		return nil
	}
	return fmt.Errorf("unknown step action %q", step.Action)
}

// Active describes the active directives of the named element.
func (r *Runner) Active(name string) ([]string, error) {
	el, ok := r.Element(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownElement, name)
	}
	return Describe(r.bindings[el.Type()].Active(el)), nil
}

// Close unmounts every mounted element in reverse declaration order.
func (r *Runner) Close() error {
	r.mu.Lock()
	order := append([]string(nil), r.order...)
	r.mu.Unlock()

	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		el, _ := r.Element(order[i])
		if !el.Mounted() {
			continue
		}
		if err := r.bindings[el.Type()].Unmount(el); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Describe renders instances as `name` or `name=value`, in order.
func Describe(instances []*directive.Instance) []string {
	out := make([]string, len(instances))
	for i, in := range instances {
		out[i] = in.Directive.Name
		if in.Directive.Value != "" {
			out[i] += "=" + in.Directive.Value
		}
	}
	return out
}

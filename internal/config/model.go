package config

import (
	"fmt"
	"sort"
	"strings"
)

// Model is the unified, format-agnostic representation of the entire
// application configuration: directive manifests, element types and the
// scenario to run.
type Model struct {
	Directives   map[string]*DirectiveDefinition
	ElementTypes map[string]*ElementType
	Scenario     *Scenario
}

// NewModel returns an empty model ready to be merged into.
func NewModel() *Model {
	return &Model{
		Directives:   make(map[string]*DirectiveDefinition),
		ElementTypes: make(map[string]*ElementType),
		Scenario:     &Scenario{},
	}
}

// --- Manifest Models ---

// DirectiveDefinition is the format-agnostic representation of a directive
// manifest.
type DirectiveDefinition struct {
	Name        string
	Description string
	Lifecycle   *Lifecycle
}

// Lifecycle maps a directive's hooks to registered Go handler names. Empty
// names mean the hook is absent.
type Lifecycle struct {
	Connected    string
	Disconnected string
	ValueChanged string
}

// HandlerNames returns the non-empty handler names in hook order.
func (l *Lifecycle) HandlerNames() []string {
	if l == nil {
		return nil
	}
	var names []string
	for _, n := range []string{l.Connected, l.Disconnected, l.ValueChanged} {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ElementType is an extended element type with its own directive registry.
// An empty Attribute selects element-attributes mode.
type ElementType struct {
	Name       string
	Attribute  string
	Directives []string
}

// --- Scenario Models ---

// Scenario is the list of elements and the ordered steps applied to them.
type Scenario struct {
	Elements []*Element
	Steps    []*Step
}

// Element is an element instance declared by the scenario.
type Element struct {
	Name       string
	Type       string
	Attributes []Attribute
}

// Attribute is an initial element attribute.
type Attribute struct {
	Name  string
	Value string
}

// Action is what a scenario step does.
type Action string

const (
	ActionMount   Action = "mount"
	ActionUnmount Action = "unmount"
	ActionSet     Action = "set"
	ActionRemove  Action = "remove"
	ActionExpect  Action = "expect"
)

// Step is a single scenario step.
type Step struct {
	Action    Action
	Element   string
	Attribute string
	Value     string
	// Active is the expected active list for ActionExpect, as `name` or
	// `name=value` entries.
	Active []string
}

// String renders the step for logs and error messages.
func (s *Step) String() string {
	switch s.Action {
	case ActionSet:
		return fmt.Sprintf("set %s.%s = %q", s.Element, s.Attribute, s.Value)
	case ActionRemove:
		return fmt.Sprintf("remove %s.%s", s.Element, s.Attribute)
	case ActionExpect:
		return fmt.Sprintf("expect %s [%s]", s.Element, strings.Join(s.Active, " "))
	default:
		return fmt.Sprintf("%s %s", s.Action, s.Element)
	}
}

// Validate checks the step for required fields.
func (s *Step) Validate() error {
	if s.Element == "" {
		return fmt.Errorf("step %q: element is required", s.Action)
	}
	switch s.Action {
	case ActionMount, ActionUnmount, ActionExpect:
		return nil
	case ActionSet, ActionRemove:
		if s.Attribute == "" {
			return fmt.Errorf("step %q on %q: attribute is required", s.Action, s.Element)
		}
		return nil
	default:
		return fmt.Errorf("unknown step action %q", s.Action)
	}
}

// Merge folds other into m. Directive and element type names must be unique
// across all sources; scenario lists are appended in order.
func (m *Model) Merge(other *Model) error {
	for name, def := range other.Directives {
		if _, exists := m.Directives[name]; exists {
			return fmt.Errorf("directive %q is declared more than once", name)
		}
		m.Directives[name] = def
	}
	for name, et := range other.ElementTypes {
		if _, exists := m.ElementTypes[name]; exists {
			return fmt.Errorf("element type %q is declared more than once", name)
		}
		m.ElementTypes[name] = et
	}
	if other.Scenario != nil {
		m.Scenario.Elements = append(m.Scenario.Elements, other.Scenario.Elements...)
		m.Scenario.Steps = append(m.Scenario.Steps, other.Scenario.Steps...)
	}
	return nil
}

// DirectiveNames returns the declared directive names, sorted.
func (m *Model) DirectiveNames() []string {
	names := make([]string, 0, len(m.Directives))
	for name := range m.Directives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

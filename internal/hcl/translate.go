package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/schema"
)

// translateFile converts one decoded file into a partial model.
func (l *Loader) translateFile(ctx context.Context, root *schema.File, evalCtx *hcl.EvalContext) (*config.Model, error) {
	model := config.NewModel()

	for _, d := range root.Directives {
		if _, exists := model.Directives[d.Name]; exists {
			return nil, fmt.Errorf("directive %q is declared more than once", d.Name)
		}
		model.Directives[d.Name] = l.translateDirective(d)
	}
	for _, et := range root.ElementTypes {
		if _, exists := model.ElementTypes[et.Name]; exists {
			return nil, fmt.Errorf("element type %q is declared more than once", et.Name)
		}
		model.ElementTypes[et.Name] = &config.ElementType{
			Name:       et.Name,
			Attribute:  et.Attribute,
			Directives: et.Directives,
		}
	}
	for _, el := range root.Elements {
		translated, err := l.translateElement(ctx, el, evalCtx)
		if err != nil {
			return nil, err
		}
		model.Scenario.Elements = append(model.Scenario.Elements, translated)
	}
	for _, st := range root.Steps {
		translated, err := l.translateStep(ctx, st, evalCtx)
		if err != nil {
			return nil, err
		}
		model.Scenario.Steps = append(model.Scenario.Steps, translated)
	}
	return model, nil
}

// translateDirective converts the HCL directive schema into the agnostic model.
func (l *Loader) translateDirective(s *schema.Directive) *config.DirectiveDefinition {
	d := &config.DirectiveDefinition{
		Name:        s.Name,
		Description: s.Description,
	}
	if s.Lifecycle != nil {
		d.Lifecycle = &config.Lifecycle{
			Connected:    s.Lifecycle.Connected,
			Disconnected: s.Lifecycle.Disconnected,
			ValueChanged: s.Lifecycle.ValueChanged,
		}
	}
	return d
}

// translateElement evaluates the element's attribute blocks in source order.
func (l *Loader) translateElement(ctx context.Context, s *schema.Element, evalCtx *hcl.EvalContext) (*config.Element, error) {
	el := &config.Element{Name: s.Name, Type: s.Type}
	for _, attr := range s.Attributes {
		value, err := evalString(ctx, attr.Value, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("element %q attribute %q: %w", s.Name, attr.Name, err)
		}
		el.Attributes = append(el.Attributes, config.Attribute{Name: attr.Name, Value: value})
	}
	return el, nil
}

// translateStep converts a step block and validates it.
func (l *Loader) translateStep(ctx context.Context, s *schema.Step, evalCtx *hcl.EvalContext) (*config.Step, error) {
	value, err := evalString(ctx, s.Value, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("step %q %q: %w", s.Action, s.Element, err)
	}
	step := &config.Step{
		Action:    config.Action(s.Action),
		Element:   s.Element,
		Attribute: s.Attribute,
		Value:     value,
		Active:    s.Active,
	}
	if err := step.Validate(); err != nil {
		return nil, err
	}
	return step, nil
}

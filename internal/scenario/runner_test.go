package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/elemdirectives/internal/binding"
	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/directive"
)

type journal struct {
	entries []string
}

func (j *journal) definition() *directive.Definition {
	return &directive.Definition{Hooks: directive.Hooks{
		Connected:    func(in *directive.Instance) { j.entries = append(j.entries, "+"+in.Directive.Name) },
		Disconnected: func(in *directive.Instance) { j.entries = append(j.entries, "-"+in.Directive.Name) },
		ValueChanged: func(in *directive.Instance) { j.entries = append(j.entries, "~"+in.Directive.Name) },
	}}
}

func setup(t *testing.T, elements ...*config.Element) (*Runner, *journal) {
	t.Helper()
	j := &journal{}
	reg := directive.NewRegistry().
		MustDefineDirective("a", j.definition()).
		MustDefineDirective("b", j.definition())
	bindings := map[string]*binding.Binding{
		"x-el":   binding.OnAttribute("has", reg),
		"x-attr": binding.UsingElementAttributes(reg),
	}
	r, err := New(elements, bindings, nil)
	require.NoError(t, err)
	return r, j
}

func TestRun(t *testing.T) {
	r, j := setup(t, &config.Element{
		Name:       "one",
		Type:       "x-el",
		Attributes: []config.Attribute{{Name: "has", Value: "a b=1"}},
	})

	steps := []*config.Step{
		{Action: config.ActionMount, Element: "one"},
		{Action: config.ActionExpect, Element: "one", Active: []string{"a", "b=1"}},
		{Action: config.ActionSet, Element: "one", Attribute: "has", Value: "a b=2"},
		{Action: config.ActionExpect, Element: "one", Active: []string{"a", "b=2"}},
		{Action: config.ActionSet, Element: "one", Attribute: "has", Value: "b"},
		{Action: config.ActionRemove, Element: "one", Attribute: "has"},
		{Action: config.ActionExpect, Element: "one"},
		{Action: config.ActionUnmount, Element: "one"},
	}
	require.NoError(t, r.Run(context.Background(), steps))

	assert.Equal(t, []string{"+a", "+b", "~b", "-b", "-a", "+b", "-b"}, j.entries)
}

func TestRun_ExpectationFailure(t *testing.T) {
	r, _ := setup(t, &config.Element{
		Name:       "one",
		Type:       "x-attr",
		Attributes: []config.Attribute{{Name: "a", Value: "x"}},
	})
	err := r.Run(context.Background(), []*config.Step{
		{Action: config.ActionMount, Element: "one"},
		{Action: config.ActionExpect, Element: "one", Active: []string{"a=y"}},
	})
	require.ErrorIs(t, err, ErrExpectationFailed)
	assert.Contains(t, err.Error(), "step 2 (expect one [a=y])")
	assert.Contains(t, err.Error(), "a=x")
}

func TestRun_Errors(t *testing.T) {
	r, _ := setup(t, &config.Element{Name: "one", Type: "x-el"})

	err := r.Run(context.Background(), []*config.Step{{Action: config.ActionMount, Element: "ghost"}})
	assert.ErrorIs(t, err, ErrUnknownElement)

	err = r.Run(context.Background(), []*config.Step{{Action: config.ActionUnmount, Element: "one"}})
	assert.ErrorIs(t, err, binding.ErrNotMounted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Run(ctx, []*config.Step{{Action: config.ActionMount, Element: "one"}})
	assert.ErrorIs(t, err, context.Canceled)
	el, _ := r.Element("one")
	assert.False(t, el.Mounted())
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]*config.Element{{Name: "one", Type: "x-none"}}, map[string]*binding.Binding{}, nil)
	assert.ErrorContains(t, err, `unknown element type "x-none"`)

	bindings := map[string]*binding.Binding{"x-el": binding.OnAttribute("has", nil)}
	_, err = New([]*config.Element{{Name: "one", Type: "x-el"}, {Name: "one", Type: "x-el"}}, bindings, nil)
	assert.ErrorContains(t, err, `element "one" is declared more than once`)
}

func TestActiveAndClose(t *testing.T) {
	r, j := setup(t,
		&config.Element{Name: "one", Type: "x-el", Attributes: []config.Attribute{{Name: "has", Value: "a"}}},
		&config.Element{Name: "two", Type: "x-attr", Attributes: []config.Attribute{{Name: "b", Value: "v"}}},
		&config.Element{Name: "three", Type: "x-el"},
	)
	require.NoError(t, r.Apply(&config.Step{Action: config.ActionMount, Element: "one"}))
	require.NoError(t, r.Apply(&config.Step{Action: config.ActionMount, Element: "two"}))

	active, err := r.Active("two")
	require.NoError(t, err)
	assert.Equal(t, []string{"b=v"}, active)

	_, err = r.Active("ghost")
	assert.ErrorIs(t, err, ErrUnknownElement)

	require.NoError(t, r.Close())
	assert.Equal(t, []string{"+a", "+b", "-b", "-a"}, j.entries)
}

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/ctxlog"
	"github.com/vk/elemdirectives/internal/directive"
	"github.com/vk/elemdirectives/internal/element"
)

type fakeLoader struct {
	model *config.Model
	paths []string
}

func (f *fakeLoader) Load(_ context.Context, paths ...string) (*config.Model, error) {
	f.paths = paths
	return f.model, nil
}

func (f *fakeLoader) Extension() string { return ".fake" }

func newModel() *config.Model {
	m := config.NewModel()
	m.Directives["highlight"] = &config.DirectiveDefinition{
		Name:      "highlight",
		Lifecycle: &config.Lifecycle{Connected: "OnConnected", Disconnected: "OnDisconnected"},
	}
	m.Directives["plain"] = &config.DirectiveDefinition{Name: "plain"}
	m.ElementTypes["x-card"] = &config.ElementType{Name: "x-card", Attribute: "has", Directives: []string{"highlight", "plain"}}
	m.ElementTypes["x-list"] = &config.ElementType{Name: "x-list", Directives: []string{"highlight"}}
	return m
}

func TestLoadAndValidate(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	r := New()
	r.RegisterHandler("OnConnected", func(*directive.Instance) {})
	r.RegisterHandler("OnDisconnected", func(*directive.Instance) {})
	r.RegisterHandler("Unused", func(*directive.Instance) {})

	loader := &fakeLoader{model: newModel()}
	require.NoError(t, r.LoadDefinitions(ctx, loader, "modules"))
	assert.Equal(t, []string{"modules"}, loader.paths)
	assert.Len(t, r.DirectiveDefinitions, 2)
	assert.Len(t, r.ElementTypes, 2)

	assert.NoError(t, r.ValidateRegistry(ctx))
}

func TestValidateRegistry_Errors(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	r := New()
	m := newModel()
	m.ElementTypes["x-bad"] = &config.ElementType{Name: "x-bad", Directives: []string{"missing", "plain", "plain"}}
	require.NoError(t, r.PopulateDefinitionsFromModel(m))

	err := r.ValidateRegistry(ctx)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "directive 'highlight': lifecycle handler 'OnConnected' is not registered")
	assert.Contains(t, msg, "directive 'highlight': lifecycle handler 'OnDisconnected' is not registered")
	assert.Contains(t, msg, "element type 'x-bad': directive 'missing' has no manifest")
	assert.Contains(t, msg, "element type 'x-bad': directive 'plain' is listed more than once")
}

func TestPopulateDefinitionsFromModel_Duplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.PopulateDefinitionsFromModel(newModel()))

	m := config.NewModel()
	m.Directives["plain"] = &config.DirectiveDefinition{Name: "plain"}
	assert.EqualError(t, r.PopulateDefinitionsFromModel(m), "directive 'plain' is declared more than once")
}

func TestRegisterHandler_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterHandler("A", func(*directive.Instance) {})
	assert.Panics(t, func() { r.RegisterHandler("A", func(*directive.Instance) {}) })
}

func TestBuildDirectives(t *testing.T) {
	var calls []string
	r := New()
	r.RegisterHandler("OnConnected", func(in *directive.Instance) { calls = append(calls, "connected:"+in.Directive.Name) })
	r.RegisterHandler("OnDisconnected", func(in *directive.Instance) { calls = append(calls, "disconnected:"+in.Directive.Name) })
	require.NoError(t, r.PopulateDefinitionsFromModel(newModel()))

	reg, err := r.BuildDirectives("x-card")
	require.NoError(t, err)
	assert.Equal(t, []string{"highlight", "plain"}, reg.Names())

	def, ok := reg.Lookup("highlight")
	require.True(t, ok)
	assert.NotNil(t, def.Connected)
	assert.Nil(t, def.ValueChanged)

	_, err = r.BuildDirectives("x-none")
	assert.ErrorContains(t, err, "unknown element type 'x-none'")
}

func TestBindings(t *testing.T) {
	var calls []string
	r := New()
	r.RegisterHandler("OnConnected", func(in *directive.Instance) { calls = append(calls, "connected:"+in.Directive.Value) })
	r.RegisterHandler("OnDisconnected", func(in *directive.Instance) { calls = append(calls, "disconnected:"+in.Directive.Value) })
	require.NoError(t, r.PopulateDefinitionsFromModel(newModel()))

	bindings, err := r.Bindings(nil)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, "has", bindings["x-card"].Attribute())
	assert.Equal(t, "", bindings["x-list"].Attribute())
	assert.Same(t, bindings["x-card"].Reconciler(), bindings["x-list"].Reconciler())

	card := element.New("card", "x-card", element.Attribute{Name: "has", Value: "plain highlight=a"})
	list := element.New("list", "x-list", element.Attribute{Name: "highlight", Value: "b"})
	require.NoError(t, bindings["x-card"].Mount(card))
	require.NoError(t, bindings["x-list"].Mount(list))
	require.NoError(t, bindings["x-card"].Unmount(card))

	assert.Equal(t, []string{"connected:a", "connected:b", "disconnected:a"}, calls)
}

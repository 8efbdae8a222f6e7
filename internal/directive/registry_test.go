package directive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefineDirective(t *testing.T) {
	r := NewRegistry()
	a := &Definition{Description: "a"}
	b := &Definition{Description: "b"}

	got, err := r.DefineDirective("a", a)
	require.NoError(t, err)
	assert.Same(t, r, got)

	_, err = got.DefineDirective("b", b)
	require.NoError(t, err)

	defined := r.DefinedDirectives()
	assert.Len(t, defined, 2)
	assert.Same(t, a, defined["a"])
	assert.Same(t, b, defined["b"])
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegistry_DefineDirective_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		directive   string
		def         *Definition
		expectedErr error
	}{
		{
			name:        "empty name",
			directive:   "",
			def:         &Definition{},
			expectedErr: ErrInvalidName,
		},
		{
			name:        "nil definition",
			directive:   "x",
			def:         nil,
			expectedErr: ErrNilDefinition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.DefineDirective(tc.directive, tc.def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expectedErr))
			assert.Empty(t, r.DefinedDirectives())
		})
	}
}

func TestRegistry_DefineDirective_DuplicateLeavesRegistryUnchanged(t *testing.T) {
	r := NewRegistry()
	first := &Definition{Description: "first"}
	r.MustDefineDirective("x", first)
	before := r.DefinedDirectives()

	_, err := r.DefineDirective("x", &Definition{Description: "second"})
	require.Error(t, err)
	assert.Equal(t, "directive x is already defined, cannot redefine directives", err.Error())
	assert.True(t, errors.Is(err, ErrAlreadyDefined))

	var regErr *RegistryError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "x", regErr.Name)

	assert.Equal(t, before, r.DefinedDirectives())
	def, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Same(t, first, def)
}

func TestRegistry_MustDefineDirective_Panics(t *testing.T) {
	r := NewRegistry().MustDefineDirective("x", &Definition{})
	assert.Panics(t, func() { r.MustDefineDirective("x", &Definition{}) })
}

func TestRegistry_DefinedDirectivesIsSnapshot(t *testing.T) {
	r := NewRegistry().MustDefineDirective("x", &Definition{})

	snapshot := r.DefinedDirectives()
	snapshot["y"] = &Definition{}
	delete(snapshot, "x")

	_, hasX := r.Lookup("x")
	_, hasY := r.Lookup("y")
	assert.True(t, hasX)
	assert.False(t, hasY)
	assert.Len(t, r.DefinedDirectives(), 1)
}

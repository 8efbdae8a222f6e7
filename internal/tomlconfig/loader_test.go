package tomlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/elemdirectives/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "manifest.toml", `
[directives.highlight]
description = "Adds a highlight."

[directives.highlight.lifecycle]
connected = "PrintConnected"
value_changed = "PrintValueChanged"

[directives.noop]

[element_types.x-card]
directives = ["highlight", "noop"]
`)
	writeFile(t, dir, "scenario.toml", `
[[elements]]
name = "card"
type = "x-card"

[[elements.attributes]]
name = "noop"
value = "1"

[[elements.attributes]]
name = "highlight"
value = "red"

[[steps]]
action = "mount"
element = "card"

[[steps]]
action = "expect"
element = "card"
active = ["noop=1", "highlight=red"]
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"highlight", "noop"}, model.DirectiveNames())
	assert.Equal(t, &config.Lifecycle{Connected: "PrintConnected", ValueChanged: "PrintValueChanged"}, model.Directives["highlight"].Lifecycle)
	assert.Nil(t, model.Directives["noop"].Lifecycle)
	assert.Equal(t, "", model.ElementTypes["x-card"].Attribute)

	want := []*config.Element{{
		Name: "card",
		Type: "x-card",
		Attributes: []config.Attribute{
			{Name: "noop", Value: "1"},
			{Name: "highlight", Value: "red"},
		},
	}}
	if diff := cmp.Diff(want, model.Scenario.Elements); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, model.Scenario.Steps, 2)
	assert.Equal(t, []string{"noop=1", "highlight=red"}, model.Scenario.Steps[1].Active)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		expectErr string
	}{
		{name: "syntax", content: `[directives`, expectErr: "failed to parse TOML"},
		{name: "unknown key", content: "[directives.a]\ncolour = \"red\"\n", expectErr: "unknown keys: directives.a.colour"},
		{name: "bad step", content: "[[steps]]\naction = \"jump\"\nelement = \"e\"\n", expectErr: `unknown step action "jump"`},
		{name: "unnamed element", content: "[[elements]]\ntype = \"x\"\n", expectErr: "elements[0]: name is required"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "main.toml", tc.content)
			_, err := NewLoader().Load(context.Background(), p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectErr)
		})
	}
}

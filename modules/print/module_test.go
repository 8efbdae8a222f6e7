package print

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/elemdirectives/internal/handlers"
	"github.com/vk/elemdirectives/internal/registry"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	m := &Module{Out: &buf, NoColor: true}

	m.Print(handlers.Event{Kind: handlers.KindConnected, Element: "card", Directive: "tip", Value: "hi"})
	m.Print(handlers.Event{Kind: handlers.KindValueChanged, Element: "card", Directive: "tip", Value: "hi"})
	m.Print(handlers.Event{Kind: handlers.KindDisconnected, Element: "card", Directive: "flag"})

	assert.Equal(t,
		"connected     card tip=hi\n"+
			"value_changed card tip=hi (previous value)\n"+
			"disconnected  card flag\n",
		buf.String())
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	assert.Equal(t, []string{"PrintConnected", "PrintDisconnected", "PrintValueChanged"}, r.Handlers.Names())

	_, ok := r.Handlers.Get("PrintConnected")
	require.True(t, ok)
}

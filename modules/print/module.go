// Package print provides lifecycle hooks that write one line per hook
// invocation, colored by hook kind.
package print

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/vk/elemdirectives/internal/handlers"
	"github.com/vk/elemdirectives/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives the printed lines. Nil means os.Stdout.
	Out io.Writer
	// NoColor disables ANSI colors regardless of the terminal.
	NoColor bool
}

var kindColors = map[string]color.Attribute{
	handlers.KindConnected:    color.FgGreen,
	handlers.KindDisconnected: color.FgRed,
	handlers.KindValueChanged: color.FgYellow,
}

func (m *Module) out() io.Writer {
	if m.Out == nil {
		return os.Stdout
	}
	return m.Out
}

// Print writes ev as a single line.
func (m *Module) Print(ev handlers.Event) {
	c := color.New(kindColors[ev.Kind], color.Bold)
	if m.NoColor {
		c.DisableColor()
	}

	subject := ev.Directive
	if ev.Value != "" {
		subject += "=" + ev.Value
	}
	line := fmt.Sprintf("%s %s %s", c.Sprintf("%-13s", ev.Kind), ev.Element, subject)
	if ev.Kind == handlers.KindValueChanged {
		line += " (previous value)"
	}
	slog.Debug("Printing hook invocation", "kind", ev.Kind, "element", ev.Element, "directive", ev.Directive)
	fmt.Fprintln(m.out(), line)
}

// Register registers the print hooks.
func (m *Module) Register(r *registry.Registry) {
	hooks := handlers.Hooks(m.Print)
	r.RegisterHandler("PrintConnected", hooks.Connected)
	r.RegisterHandler("PrintDisconnected", hooks.Disconnected)
	r.RegisterHandler("PrintValueChanged", hooks.ValueChanged)
}

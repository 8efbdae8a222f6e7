package app

import (
	"io"
	"log/slog"

	"github.com/vk/elemdirectives/internal/registry"
	"github.com/vk/elemdirectives/modules/print"
	"github.com/vk/elemdirectives/modules/socketio"
	"github.com/vk/elemdirectives/modules/webhook"
)

// coreModules is the definitive list of all modules that are compiled into
// the binary. Emitters without a URL drop their events.
func coreModules(cfg *Config, outW io.Writer, logger *slog.Logger) []registry.Module {
	return []registry.Module{
		&print.Module{Out: outW},
		&socketio.Module{URL: cfg.EmitURL, Logger: logger},
		&webhook.Module{URL: cfg.WebhookURL, Logger: logger},
	}
}

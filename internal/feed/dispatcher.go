package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/elemdirectives/internal/config"
)

// EventActive queries the active directives of an element.
const EventActive = "active"

// ErrClosed is returned by Dispatch once the dispatcher stopped.
var ErrClosed = errors.New("feed is closed")

// Applier is the scenario surface the feed drives.
type Applier interface {
	Apply(step *config.Step) error
	Active(element string) ([]string, error)
}

// Command is the payload of every client event.
type Command struct {
	Element   string `json:"element"`
	Attribute string `json:"attribute,omitempty"`
	Value     string `json:"value,omitempty"`
}

// Reply is sent back as the `ok` or `error` event.
type Reply struct {
	Event   string   `json:"event"`
	Element string   `json:"element,omitempty"`
	Active  []string `json:"active,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// OK reports whether the command succeeded.
func (r Reply) OK() bool { return r.Error == "" }

type request struct {
	event string
	cmd   Command
	reply chan Reply
}

// Dispatcher serializes commands onto the goroutine running Run.
type Dispatcher struct {
	applier  Applier
	logger   *slog.Logger
	requests chan request
	done     chan struct{}
}

// NewDispatcher creates a dispatcher. Run must be started for Dispatch to
// make progress.
func NewDispatcher(applier Applier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		applier:  applier,
		logger:   logger,
		requests: make(chan request),
		done:     make(chan struct{}),
	}
}

// Run applies commands until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)
	d.logger.Debug("Feed dispatcher started.")
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("Feed dispatcher stopped.")
			return nil
		case req := <-d.requests:
			req.reply <- d.handle(req.event, req.cmd)
		}
	}
}

// Dispatch decodes data as a Command for event and waits for its reply.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, data any) Reply {
	cmd, err := DecodeCommand(data)
	if err != nil {
		return Reply{Event: event, Error: err.Error()}
	}

	req := request{event: event, cmd: cmd, reply: make(chan Reply, 1)}
	select {
	case d.requests <- req:
	case <-d.done:
		return Reply{Event: event, Element: cmd.Element, Error: ErrClosed.Error()}
	case <-ctx.Done():
		return Reply{Event: event, Element: cmd.Element, Error: ctx.Err().Error()}
	}
	return <-req.reply
}

func (d *Dispatcher) handle(event string, cmd Command) Reply {
	reply := Reply{Event: event, Element: cmd.Element}
	logger := d.logger.With("event", event, "element", cmd.Element)

	if event != EventActive {
		step := &config.Step{
			Action:    config.Action(event),
			Element:   cmd.Element,
			Attribute: cmd.Attribute,
			Value:     cmd.Value,
		}
		if step.Action == config.ActionExpect {
			reply.Error = fmt.Sprintf("unsupported event %q", event)
			return reply
		}
		if err := d.applier.Apply(step); err != nil {
			logger.Warn("Feed command failed.", "error", err)
			reply.Error = err.Error()
			return reply
		}
	}

	active, err := d.applier.Active(cmd.Element)
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	reply.Active = active
	logger.Debug("Feed command applied.", "active", active)
	return reply
}

// DecodeCommand converts a decoded socket.io payload into a Command.
func DecodeCommand(data any) (Command, error) {
	var cmd Command
	if data == nil {
		return cmd, errors.New("missing command payload")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return cmd, fmt.Errorf("invalid command payload: %w", err)
	}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, fmt.Errorf("invalid command payload: %w", err)
	}
	if cmd.Element == "" {
		return cmd, errors.New("invalid command payload: element is required")
	}
	return cmd, nil
}

package handlers

import (
	"time"

	"github.com/vk/elemdirectives/internal/directive"
)

// Hook kinds carried by Event.
const (
	KindConnected    = "connected"
	KindDisconnected = "disconnected"
	KindValueChanged = "value_changed"
)

// Event is the serializable form of one hook invocation. For value_changed
// the Value is the previous value; the new one is not yet applied.
type Event struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Element   string    `json:"element"`
	Directive string    `json:"directive"`
	Value     string    `json:"value"`
	Time      time.Time `json:"time"`
}

// NewEvent describes an invocation of the kind hook on in.
func NewEvent(kind string, in *directive.Instance) Event {
	ev := Event{
		Kind:      kind,
		ID:        in.ID.String(),
		Directive: in.Directive.Name,
		Value:     in.Directive.Value,
		Time:      time.Now().UTC(),
	}
	if in.Owner != nil {
		ev.Element = in.Owner.Name()
	}
	return ev
}

// Hooks builds a lifecycle hook set that forwards every invocation to fn as
// an Event.
func Hooks(fn func(Event)) directive.Hooks {
	return directive.Hooks{
		Connected:    func(in *directive.Instance) { fn(NewEvent(KindConnected, in)) },
		Disconnected: func(in *directive.Instance) { fn(NewEvent(KindDisconnected, in)) },
		ValueChanged: func(in *directive.Instance) { fn(NewEvent(KindValueChanged, in)) },
	}
}

package directive

import (
	"github.com/oklog/ulid/v2"
)

// Element is the host object that owns directive instances. Implementations
// must be comparable (usually a pointer type) because elements are used as
// identity keys.
type Element interface {
	Name() string
}

// HookFunc is a lifecycle callback. It receives the instance it is invoked
// on, which exposes the owning element and the current name/value record.
type HookFunc func(in *Instance)

// Hooks is the optional set of lifecycle callbacks. A nil field is a no-op.
type Hooks struct {
	Connected    HookFunc
	Disconnected HookFunc
	ValueChanged HookFunc
}

// Definition is the registered, reusable behavior for a directive name.
type Definition struct {
	Description string
	Hooks
}

// Record mirrors the token that produced an instance.
type Record struct {
	Name  string
	Value string
}

// Instance is one activation of a directive on one element.
type Instance struct {
	// ID identifies this activation in logs and traces.
	ID ulid.ULID
	// Owner is set at construction and never reassigned.
	Owner Element
	// Directive is the current name and value; the reconciler updates Value.
	Directive Record
	// Overrides take precedence over the definition's hooks.
	Overrides Hooks

	def *Definition
}

// Definition returns the definition this instance delegates to.
func (in *Instance) Definition() *Definition {
	return in.def
}

// Connect invokes the connected hook, if any.
func (in *Instance) Connect() {
	in.invoke(in.Overrides.Connected, in.def.Connected)
}

// Disconnect invokes the disconnected hook, if any.
func (in *Instance) Disconnect() {
	in.invoke(in.Overrides.Disconnected, in.def.Disconnected)
}

// NotifyValueChanged invokes the value-changed hook, if any.
func (in *Instance) NotifyValueChanged() {
	in.invoke(in.Overrides.ValueChanged, in.def.ValueChanged)
}

func (in *Instance) invoke(local, inherited HookFunc) {
	switch {
	case local != nil:
		local(in)
	case inherited != nil:
		inherited(in)
	}
}

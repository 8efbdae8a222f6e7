package reconciler

import "github.com/vk/elemdirectives/internal/directive"

// State is the directive bookkeeping for one element.
type State struct {
	// Active holds the live instances in token order.
	Active []*directive.Instance
	// ReloadEnabled is true between Initialize and Finalize.
	ReloadEnabled bool

	busy bool
}

// connect calls Connect on each instance, left to right.
func connect(instances []*directive.Instance) {
	for _, in := range instances {
		in.Connect()
	}
}

// disconnect calls Disconnect on each instance, right to left.
func disconnect(instances []*directive.Instance) {
	for i := len(instances) - 1; i >= 0; i-- {
		instances[i].Disconnect()
	}
}

// Package feed exposes a running scenario over socket.io. Clients send
// mount, unmount, set, remove and active events; every command is applied
// on a single goroutine and answered with an `ok` or `error` event.
package feed

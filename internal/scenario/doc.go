// Package scenario drives elements through a sequence of mount, unmount,
// attribute and expectation steps using the bindings of their element types.
package scenario

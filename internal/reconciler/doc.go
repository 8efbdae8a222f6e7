// Package reconciler keeps an element's active directive instances in step
// with a freshly parsed token list.
//
// The diff is positional: instances are compared with tokens index by index.
// The first index whose name differs tears down the whole remaining tail
// (right to left) and rebuilds it from the new tokens (left to right). A
// changed value at a matching name only notifies the instance. Nothing is
// matched across positions.
//
// Per-element state lives in a side table keyed by element identity. All
// calls for one element are expected on one goroutine; a hook that calls
// back into the reconciler for the same element gets ErrReentrant.
package reconciler

// Package binding connects host elements to the directive reconciler.
//
// A Binding belongs to one element type. It calls Initialize when an element
// is mounted, Reconcile when a relevant attribute changes while mounted, and
// Finalize when the element is unmounted.
//
// Two modes exist. In attribute-value mode the directives are the parsed
// value of a single attribute. In element-attributes mode every attribute of
// the element is a token, and only mutations of attributes whose names are
// defined directives trigger reconciliation.
//
// Mutations that arrive while a pass for the same element is running, for
// example from a hook that writes the attribute, are coalesced: once the pass
// finishes the binding re-reads the element and reconciles again.
package binding

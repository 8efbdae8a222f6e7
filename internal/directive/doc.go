// Package directive defines directive definitions, the per-type registry
// that names them, and the factory that turns parsed tokens into live
// per-element instances.
//
// A Definition is an immutable bundle of optional lifecycle hooks. An
// Instance is created for every token whose name is registered, and looks up
// each hook first on its own Overrides and then on its Definition. Tokens
// whose names are not registered are skipped without error.
package directive

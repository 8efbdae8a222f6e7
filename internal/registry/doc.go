// Package registry provides the central "glue" for the module system.
//
// The Registry stores the mappings between the handler names used in
// directive manifests (e.g., "PrintConnected") and the compiled Go hooks
// that implement them. It also holds the parsed, format-agnostic directive
// manifests and element types.
//
// During application startup, the registry is populated and then validated
// so that manifests never refer to hooks that do not exist. Once validated it
// builds one directive registry and one binding per element type.
package registry

// Package tomlconfig loads directive manifests and scenarios written in TOML
// into the format-agnostic config.Model. It accepts the same concepts as the
// HCL loader without variables or functions.
package tomlconfig

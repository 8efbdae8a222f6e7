// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from various
// sources.
//
// The `config.Model` is the single source of truth for the `registry` and
// `scenario` packages. Concrete loaders, such as for HCL and TOML, are
// provided in separate packages.
package config

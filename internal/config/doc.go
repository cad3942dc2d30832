// Package config defines the format-agnostic model of an expression file
// along with the Loader interface for reading it from a source.
//
// The `config.Model` is the single source of truth for the `builder`
// package. Concrete loaders, such as for HCL, live in separate packages.
package config

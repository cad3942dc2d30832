// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for expression file discovery, parsing,
// block decoding, and translating leaf values from cty into Go.
package hcl

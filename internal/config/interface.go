package config

import "context"

// Loader is the interface for a format-specific expression file loader.
type Loader interface {
	// Load reads every expression file found under the given paths and
	// translates them into a single format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gradgrid/internal/config"
	"github.com/specialistvlad/gradgrid/internal/ctxlog"
	"github.com/specialistvlad/gradgrid/internal/fsutil"
	"github.com/specialistvlad/gradgrid/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL expression file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under the given paths and merges them
// into a single model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		fileModel, err := l.decode(ctx, file, hclFile.Body)
		if err != nil {
			return nil, err
		}
		model.Merge(fileModel)
	}

	logger.Debug("HCL loading complete.", "leaves", len(model.Leaves), "definitions", len(model.Definitions), "roots", len(model.Roots))
	return model, nil
}

// LoadSource parses a single in-memory expression file. The filename is only
// used in diagnostics.
func (l *Loader) LoadSource(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, filename, hclFile.Body)
}

func (l *Loader) decode(ctx context.Context, filename string, body hcl.Body) (*config.Model, error) {
	var root schema.File
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	model := &config.Model{}
	for _, leaf := range root.Leaves {
		translated, err := translateLeaf(ctx, leaf)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", filename, err)
		}
		model.Leaves = append(model.Leaves, translated)
	}
	for _, n := range root.Nodes {
		model.Definitions = append(model.Definitions, translateNode(n))
	}
	for _, b := range root.Backwards {
		model.Roots = append(model.Roots, b.Root)
	}
	return model, nil
}

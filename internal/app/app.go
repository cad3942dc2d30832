package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/gradgrid/internal/builder"
	"github.com/specialistvlad/gradgrid/internal/config"
	"github.com/specialistvlad/gradgrid/internal/ctxlog"
	"github.com/specialistvlad/gradgrid/internal/gradcheck"
	"github.com/specialistvlad/gradgrid/internal/graph"
	"github.com/specialistvlad/gradgrid/internal/node"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW through an isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Run loads and builds the configured expressions, runs a backward pass from
// every root, and prints each root's graph.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Demo {
		return a.runDemo()
	}

	model, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load expressions: %w", err)
	}

	prog, err := builder.Build(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to build expression graph: %w", err)
	}
	a.logger.Debug("Expression graph built.", "values", len(prog.Values), "roots", prog.Roots)

	failed := 0
	for _, name := range prog.Roots {
		root, _ := prog.Root(name)
		if !a.config.Accumulate {
			graph.ZeroGrad(root)
		}
		graph.Backward(root)

		if err := a.report(name, root); err != nil {
			return err
		}

		if a.config.GradCheck {
			n, err := a.check(ctx, model, name)
			if err != nil {
				return err
			}
			failed += n
		}
	}

	if failed > 0 {
		return fmt.Errorf("gradient check failed for %d leaves", failed)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// report prints every node of root's graph, dependencies first.
func (a *App) report(name string, root *node.Node) error {
	order := graph.Topological(root)
	if err := graph.Validate(order); err != nil {
		return fmt.Errorf("internal error ordering %q: %w", name, err)
	}

	fmt.Fprintf(a.outW, "== %s\n", name)
	for _, n := range order {
		fmt.Fprintln(a.outW, n)
	}
	return nil
}

// check runs the finite-difference check for one root and returns the number
// of leaves outside tolerance.
func (a *App) check(ctx context.Context, model *config.Model, root string) (int, error) {
	opts := gradcheck.Options{Epsilon: a.config.Epsilon, Tolerance: a.config.Tolerance}
	results, err := gradcheck.Check(ctx, model, root, opts)
	if err != nil {
		return 0, fmt.Errorf("gradient check for %q: %w", root, err)
	}

	failed := 0
	fmt.Fprintf(a.outW, "-- gradcheck %s\n", root)
	for _, r := range results {
		status := "ok"
		if !r.Passed(opts.Tolerance) {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(a.outW, "%s %s\n", status, r)
	}
	return failed, nil
}

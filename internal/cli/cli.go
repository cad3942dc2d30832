package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gradgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gradgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
GradGrid - reverse-mode automatic differentiation over scalar expressions.

Usage:
  gradgrid [options] [PATH...]
  gradgrid -demo

Arguments:
  PATH
    Path to a single .hcl expression file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	fileFlag := flagSet.String("file", "", "Path to an expression file or directory.")
	fFlag := flagSet.String("f", "", "Path to an expression file or directory (shorthand).")
	demoFlag := flagSet.Bool("demo", false, "Run the built-in two-input neuron example.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	accumulateFlag := flagSet.Bool("accumulate", false, "Keep gradients from earlier roots instead of zeroing before each backward pass.")
	gradCheckFlag := flagSet.Bool("gradcheck", false, "Compare every leaf gradient against a finite-difference estimate.")
	epsilonFlag := flagSet.Float64("epsilon", 1e-6, "Perturbation used by -gradcheck.")
	toleranceFlag := flagSet.Float64("tolerance", 1e-4, "Maximum absolute gradient difference accepted by -gradcheck.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *fileFlag != "" {
		paths = append(paths, *fileFlag)
	}
	if *fFlag != "" {
		paths = append(paths, *fFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Expression paths determined.", "paths", paths)

	if len(paths) == 0 && !*demoFlag {
		slog.Debug("No path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Paths:      paths,
		Demo:       *demoFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Accumulate: *accumulateFlag,
		GradCheck:  *gradCheckFlag,
		Epsilon:    *epsilonFlag,
		Tolerance:  *toleranceFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

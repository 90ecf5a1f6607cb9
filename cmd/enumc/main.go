// Command enumc is a thin driver over the core pipeline: it lexes,
// parses, and runs collection, inference, check, generic usage
// collection, trait solving and lowering, then prints the resulting
// diagnostic list. Building and driving a backend from the lowered IR
// is out of scope for this core (see SPEC_FULL.md) — this binary's job
// ends at reporting.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/enumc/internal/check"
	"github.com/funvibe/enumc/internal/config"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/infer"
	"github.com/funvibe/enumc/internal/lexer"
	"github.com/funvibe/enumc/internal/lower"
	"github.com/funvibe/enumc/internal/parser"
	"github.com/funvibe/enumc/internal/pipeline"
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/traitsolver"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug in enumc, please report it")
			os.Exit(1)
		}
	}()

	args := os.Args
	sourceCode, filePath, err := readInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(filePath)
	diags := run(sourceCode, filePath, cfg)

	printDiagnostics(diags)
	for _, d := range diags {
		if !d.Warning {
			os.Exit(1)
		}
	}
}

// run lexes and parses sourceCode, then drives every core pass in
// sequence, returning whatever diagnostics accumulated (filtered per
// cfg before returning).
func run(sourceCode, filePath string, cfg config.CompilerConfig) []*diagnostics.DiagnosticError {
	ctx := pipeline.NewPipelineContext(sourceCode, filePath, 0)

	p := pipeline.New(
		lexer.Processor{},
		parser.Processor{},
		pipeline.CollectProcessor{},
		infer.Processor{},
		check.Processor{},
		pipeline.GenericUsageProcessor{},
		traitsolver.Processor{},
		lower.Processor{},
	)

	final := p.Run(ctx)

	if final.GenericResolver != nil {
		for item, n := range final.GenericResolver.InstantiationCounts() {
			if n > cfg.MaxInstantiationsPerItem {
				final.TyCtx.AddError(diagnostics.NewGenericError(
					diagnostics.ErrTooManyInstances, token.Span{FileID: final.FileID},
					item, n, cfg.MaxInstantiationsPerItem))
			}
		}
	}

	all := append(final.Errors, final.TyCtx.Errors...)
	if !cfg.WarnUnusedVariables {
		all = filterCode(all, diagnostics.WarnUnusedVariable)
	}
	return all
}

func filterCode(in []*diagnostics.DiagnosticError, drop diagnostics.ErrorCode) []*diagnostics.DiagnosticError {
	out := make([]*diagnostics.DiagnosticError, 0, len(in))
	for _, d := range in {
		if d.Code != drop {
			out = append(out, d)
		}
	}
	return out
}

func loadConfig(filePath string) config.CompilerConfig {
	dir := "."
	if filePath != "" {
		dir = filepath.Dir(filePath)
	}
	path := filepath.Join(dir, "enumc.yaml")
	if _, err := os.Stat(path); err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadCompilerConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func readInput(args []string) (source, filePath string, err error) {
	if len(args) < 2 {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", "", fmt.Errorf("usage: %s <file> or pipe source from stdin", args[0])
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	path := args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return string(data), abs, nil
}

// colorEnabled follows the NO_COLOR convention and isatty detection,
// same as the evaluator's terminal builtins.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

func printDiagnostics(diags []*diagnostics.DiagnosticError) {
	if len(diags) == 0 {
		return
	}
	color := colorEnabled()
	for _, d := range diags {
		if !color {
			fmt.Fprintln(os.Stderr, d.Error())
			continue
		}
		c := colorRed
		if d.Warning {
			c = colorYellow
		}
		fmt.Fprintf(os.Stderr, "%s%s%s\n", c, d.Error(), colorReset)
	}
}

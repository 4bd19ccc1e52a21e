package proposals

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/witcheck/internal/report"
	"github.com/jonathan/witcheck/internal/since"
	"github.com/jonathan/witcheck/internal/types"
)

// Step names used in failure annotations
const (
	StepWitDeps      = "wit-deps lock check"
	StepWitSyntax    = "WIT validation"
	StepWasmEncoding = "wasm encoding"
	StepSince        = "@since validation"
)

// Options configures a proposal Validator
type Options struct {
	WitDeps   string // wit-deps executable
	WasmTools string // wasm-tools executable
	Parallel  int    // proposals validated at once; <= 1 is sequential
	BaseDir   string // annotation paths are made relative to this directory
	Since     since.Options
}

// Result is the outcome of validating one target
type Result struct {
	Target      Target
	FailedSteps []string
	Violations  []types.Violation
	Log         string // grouped CI log output for this target
}

// Failed reports whether any step failed.
func (r *Result) Failed() bool {
	return len(r.FailedSteps) > 0
}

// Validator runs the external validators and the @since check for each target
type Validator struct {
	runner  Runner
	checker *since.Validator
	opts    Options
}

// NewValidator creates a Validator. Empty executables default to wit-deps and wasm-tools.
func NewValidator(runner Runner, opts Options) *Validator {
	if opts.WitDeps == "" {
		opts.WitDeps = "wit-deps"
	}
	if opts.WasmTools == "" {
		opts.WasmTools = "wasm-tools"
	}
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	return &Validator{
		runner:  runner,
		checker: since.NewValidator(opts.Since),
		opts:    opts,
	}
}

// Validate checks every target and returns results in target order. External
// command failures are recorded on the result; an unreadable WIT tree aborts.
func (v *Validator) Validate(ctx context.Context, targets []Target) ([]Result, error) {
	results := make([]Result, len(targets))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(v.opts.Parallel)

	for i, target := range targets {
		g.Go(func() error {
			result, err := v.validateTarget(gCtx, target)
			if err != nil {
				return fmt.Errorf("failed to validate %s: %w", target.Label(), err)
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

//nolint:errcheck // writing to an in-memory buffer
func (v *Validator) validateTarget(ctx context.Context, target Target) (*Result, error) {
	result := &Result{Target: target}
	var buf bytes.Buffer
	var sinceErr error

	report.Group(&buf, target.Title(), func(w io.Writer) {
		fmt.Fprintf(w, "  Path: %s\n", target.Dir)

		depsManifest := filepath.Join(target.Dir, "deps.toml")
		if _, err := os.Stat(depsManifest); err == nil {
			fmt.Fprintln(w, "  Checking dependencies...")
			ok := v.run(ctx, w, v.opts.WitDeps,
				"-m", depsManifest,
				"-l", filepath.Join(target.Dir, "deps.lock"),
				"-d", filepath.Join(target.Dir, "deps"),
				"lock", "--check")
			if !ok {
				v.fail(w, result, StepWitDeps)
			}
		}

		fmt.Fprintln(w, "  Validating WIT...")
		if !v.run(ctx, w, v.opts.WasmTools, "component", "wit", target.Dir, "-o", os.DevNull) {
			v.fail(w, result, StepWitSyntax)
		}

		fmt.Fprintln(w, "  Validating wasm encoding...")
		if !v.run(ctx, w, v.opts.WasmTools, "component", "wit", target.Dir, "--wasm", "-o", os.DevNull) {
			v.fail(w, result, StepWasmEncoding)
		}

		fmt.Fprintln(w, "  Validating @since annotations...")
		violations, err := v.checker.ValidateDirectory(target.Dir)
		if err != nil {
			sinceErr = err
			return
		}
		result.Violations = violations
		if len(violations) > 0 {
			fmt.Fprintln(w, report.FormatAnnotations(violations, v.opts.BaseDir))
			result.FailedSteps = append(result.FailedSteps, StepSince)
			fmt.Fprintln(w, report.ErrorLine(fmt.Sprintf("%s failed for %s: %d missing annotation(s)",
				StepSince, target.Label(), len(violations))))
		}
	})

	result.Log = buf.String()
	if sinceErr != nil {
		return nil, sinceErr
	}
	return result, nil
}

//nolint:errcheck // writing to an in-memory buffer
func (v *Validator) fail(w io.Writer, result *Result, step string) {
	result.FailedSteps = append(result.FailedSteps, step)
	fmt.Fprintln(w, report.ErrorLine(fmt.Sprintf("%s failed for %s", step, result.Target.Label())))
}

// run executes one command and echoes it with its output, returning success.
//
//nolint:errcheck // writing to an in-memory buffer
func (v *Validator) run(ctx context.Context, w io.Writer, name string, args ...string) bool {
	fmt.Fprintf(w, "  $ %s\n", CommandLine(name, args...))

	res, err := v.runner.Run(ctx, name, args...)
	if err == nil {
		if res != nil && strings.TrimSpace(res.Stdout) != "" {
			fmt.Fprintln(w, res.Stdout)
		}
		return true
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Result != nil {
			if cmdErr.Result.Stdout != "" {
				fmt.Fprintln(w, cmdErr.Result.Stdout)
			}
			if cmdErr.Result.Stderr != "" {
				fmt.Fprintln(w, cmdErr.Result.Stderr)
			}
		}
		fmt.Fprintf(w, "  Exit code: %d\n", cmdErr.ExitCode)
		return false
	}

	fmt.Fprintf(w, "  Error: %v\n", err)
	return false
}

// AnyFailed reports whether any result failed.
func AnyFailed(results []Result) bool {
	for i := range results {
		if results[i].Failed() {
			return true
		}
	}
	return false
}

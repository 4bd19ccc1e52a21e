package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/witcheck/internal/config"
	"github.com/jonathan/witcheck/internal/observability"
	"github.com/jonathan/witcheck/internal/report"
	"github.com/jonathan/witcheck/internal/schemas"
	"github.com/jonathan/witcheck/internal/since"
	"github.com/jonathan/witcheck/internal/types"
	"github.com/spf13/cobra"
)

var validateSinceCmd = &cobra.Command{
	Use:   "validate-since <directory>",
	Short: "Check WIT declarations for @since annotations",
	Long: `Scans every .wit file under the directory (skipping deps/ subtrees) and reports each
interface, world, type, record, variant, enum, flags or resource declaration that is not
preceded by a @since(version = ...) or @unstable(feature = ...) annotation.

Violations are printed as GitHub Actions error annotations and the command exits with code 1.`,
	RunE: runValidateSinceCmd,
}

var (
	sinceConfigPath  string
	sinceMaxLookback int
	sinceExcludeDir  string
	sinceExtension   string
	sinceJSONOutput  string
	sinceVerbose     bool
)

func init() {
	validateSinceCmd.Flags().StringVar(&sinceConfigPath, "config", "", "Path to config file (JSON or YAML; values can be overridden by other flags)")
	validateSinceCmd.Flags().IntVar(&sinceMaxLookback, "max-lookback", since.DefaultMaxLookback, "Maximum lines searched above a declaration")
	validateSinceCmd.Flags().StringVar(&sinceExcludeDir, "exclude", since.DefaultExcludeDir, "Directory name skipped anywhere below the root")
	validateSinceCmd.Flags().StringVar(&sinceExtension, "ext", since.DefaultExtension, "File extension of WIT sources")
	validateSinceCmd.Flags().StringVarP(&sinceJSONOutput, "json", "o", "", "Path to write a JSON violations report (optional)")
	validateSinceCmd.Flags().BoolVarP(&sinceVerbose, "verbose", "v", false, "Print a summary box")

	rootCmd.AddCommand(validateSinceCmd)
}

func runValidateSinceCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig(cmd, sinceConfigPath, cmd.OutOrStdout(), func(changed changedFlags, cfg *config.Config) {
		if changed("max-lookback") {
			cfg.MaxLookback = sinceMaxLookback
		}
		if changed("exclude") {
			cfg.ExcludeDir = sinceExcludeDir
		}
		if changed("ext") {
			cfg.Extension = sinceExtension
		}
		if changed("verbose") {
			cfg.Verbose = sinceVerbose
		}
	})
	if err != nil {
		return err
	}

	return validateSince(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, cfg, sinceJSONOutput)
}

// validateSince runs the annotation check on args[0] and prints CI annotations.
// It returns errCheckFailed after printing its own message for usage errors,
// a missing directory or violations.
func validateSince(stdout, stderr io.Writer, args []string, cfg config.Config, jsonOutput string) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, "Usage: witcheck validate-since <directory>")
		_, _ = fmt.Fprintln(stdout, "Example: witcheck validate-since proposals/io/wit")
		return errCheckFailed
	}

	targetDir := args[0]
	if _, err := os.Stat(targetDir); errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintf(stderr, "Directory not found: %s\n", targetDir)
		return errCheckFailed
	}

	_, _ = fmt.Fprintf(stdout, "Validating @since annotations in %s...\n\n", targetDir)

	violations, err := since.NewValidator(cfg.SinceOptions()).ValidateDirectory(targetDir)
	if err != nil {
		var readErr *since.FileReadError
		var walkErr *since.WalkError
		if errors.As(err, &readErr) || errors.As(err, &walkErr) {
			return fmt.Errorf("validation aborted: %w", err)
		}
		return fmt.Errorf("failed to validate annotations: %w", err)
	}

	if jsonOutput != "" {
		if err := writeSinceReport(stderr, targetDir, violations, jsonOutput); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(stdout).PrintViolations(&types.Violations{Violations: violations})
	}

	if len(violations) == 0 {
		_, _ = fmt.Fprintln(stdout, "All declarations have @since annotations.")
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	_, _ = fmt.Fprintln(stdout, report.FormatAnnotations(violations, cwd))
	_, _ = fmt.Fprintf(stdout, "\n%d missing @since annotation(s) found.\n", len(violations))
	return errCheckFailed
}

func writeSinceReport(stderr io.Writer, root string, violations []types.Violation, path string) error {
	r := report.NewReport(root, violations)
	if err := r.WriteJSON(path); err != nil {
		return err
	}

	// Validate output against schema (non-fatal)
	if err := r.Validate(); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(stderr, "Warning: Generated report does not validate against schema: %v\n", err)
		} else {
			_, _ = fmt.Fprintf(stderr, "Warning: Could not validate report against schema: %v\n", err)
		}
	}
	return nil
}

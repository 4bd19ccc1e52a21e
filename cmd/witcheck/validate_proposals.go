package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonathan/witcheck/internal/config"
	"github.com/jonathan/witcheck/internal/observability"
	"github.com/jonathan/witcheck/internal/proposals"
	"github.com/spf13/cobra"
)

var validateProposalsCmd = &cobra.Command{
	Use:   "validate-proposals",
	Short: "Validate the WIT of proposals changed in CI",
	Long: `Reads the changed-file lists from WIT_02_FILES and WIT_03_FILES (JSON arrays), derives the
affected proposals and, for each one, checks the wit-deps lock (when deps.toml exists), WIT syntax,
wasm encoding and @since annotations. Output is grouped per proposal for GitHub Actions.`,
	Args: cobra.NoArgs,
	RunE: runValidateProposalsCmd,
}

var (
	proposalsConfigPath string
	proposalsTimeout    time.Duration
	proposalsParallel   int
	proposalsWitDeps    string
	proposalsWasmTools  string
	proposalsVerbose    bool
)

func init() {
	validateProposalsCmd.Flags().StringVar(&proposalsConfigPath, "config", "", "Path to config file (JSON or YAML; values can be overridden by other flags)")
	validateProposalsCmd.Flags().DurationVar(&proposalsTimeout, "timeout", proposals.DefaultCommandTimeout, "Timeout for each external validator command")
	validateProposalsCmd.Flags().IntVarP(&proposalsParallel, "parallel", "p", config.DefaultParallel, "Number of proposals validated concurrently")
	validateProposalsCmd.Flags().StringVar(&proposalsWitDeps, "wit-deps", "wit-deps", "wit-deps executable")
	validateProposalsCmd.Flags().StringVar(&proposalsWasmTools, "wasm-tools", "wasm-tools", "wasm-tools executable")
	validateProposalsCmd.Flags().BoolVarP(&proposalsVerbose, "verbose", "v", false, "Print a summary box")

	rootCmd.AddCommand(validateProposalsCmd)
}

func runValidateProposalsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCommandConfig(cmd, proposalsConfigPath, cmd.OutOrStdout(), func(changed changedFlags, cfg *config.Config) {
		if changed("timeout") {
			cfg.TimeoutSeconds = int(proposalsTimeout.Seconds())
		}
		if changed("parallel") {
			cfg.Parallel = proposalsParallel
		}
		if changed("wit-deps") {
			cfg.WitDeps = proposalsWitDeps
		}
		if changed("wasm-tools") {
			cfg.WasmTools = proposalsWasmTools
		}
		if changed("verbose") {
			cfg.Verbose = proposalsVerbose
		}
	})
	if err != nil {
		return err
	}

	runner := proposals.NewExecRunner(cfg.Timeout())
	return validateProposals(cmd.Context(), cmd.OutOrStdout(), os.Getenv, runner, cfg)
}

// validateProposals checks every proposal named by the changed-file variables.
func validateProposals(ctx context.Context, stdout io.Writer, lookup func(string) string, runner proposals.Runner, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	targets, err := proposals.TargetsFromEnv(lookup)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		_, _ = fmt.Fprintln(stdout, "No proposals to validate")
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	v := proposals.NewValidator(runner, proposals.Options{
		WitDeps:   cfg.WitDeps,
		WasmTools: cfg.WasmTools,
		Parallel:  cfg.Parallel,
		BaseDir:   cwd,
		Since:     cfg.SinceOptions(),
	})
	results, err := v.Validate(ctx, targets)
	if err != nil {
		return err
	}

	for _, r := range results {
		_, _ = fmt.Fprint(stdout, r.Log)
	}

	if cfg.Verbose {
		observability.NewPrinter(stdout).PrintProposalResults(results)
	}

	if proposals.AnyFailed(results) {
		_, _ = fmt.Fprintln(stdout, "\n❌ Validation failed")
		return errCheckFailed
	}
	_, _ = fmt.Fprintln(stdout, "\n✅ All proposals validated successfully")
	return nil
}

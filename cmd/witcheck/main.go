// Package main provides the entry point for the witcheck WIT linting CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// errCheckFailed signals exit code 1 after the command already printed its own failure output
var errCheckFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:           "witcheck",
	Short:         "WIT proposal linter",
	Long:          "witcheck verifies that every top-level WIT declaration carries a @since or @unstable annotation and validates changed proposals in CI.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

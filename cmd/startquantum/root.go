package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/startquantum/internal/domain/config"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	yesFlag   bool
	logFile   string
	onlySteps []string
	lockWait  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "startquantum",
	Short: "Set up a quantum development environment",
	Long: `startquantum checks for the tools used in quantum development and installs
the missing ones after asking you:

  - Conda, its shell integration and a conda environment with QuTiP, Q# and Jupyter
  - the .NET SDK and the Q# project templates
  - VS Code with the Python, Q# and C# extensions

Running startquantum without a command is the same as 'startquantum run'.`,
	RunE:          runBootstrap,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command. An interrupt cancels the running step.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: startquantum.yaml or startquantum.toml in the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "auto-confirm all prompts")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write a JSON log to this file")
	rootCmd.PersistentFlags().StringSliceVar(&onlySteps, "only", nil, "run only these steps and what they require (comma-separated)")
	rootCmd.PersistentFlags().DurationVar(&lockWait, "wait", 0, "how long to wait for another running session")

	registerFlagCompletions()

	rootCmd.AddCommand(runCmd, checkCmd, planCmd, versionCmd)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var list *config.ErrorList
	if errors.As(err, &list) {
		var b strings.Builder
		fmt.Fprintf(&b, "the configuration has %d problem(s):", list.Len())
		for _, e := range list.Errors() {
			fmt.Fprintf(&b, "\n  - %s", formatUserError(e))
		}
		return b.String()
	}

	var userErr *config.UserError
	if errors.As(err, &userErr) {
		return formatUserError(userErr)
	}
	return err.Error()
}

func formatUserError(userErr *config.UserError) string {
	msg := userErr.Message
	if userErr.Context != "" && !strings.HasPrefix(msg, userErr.Context+":") {
		msg += fmt.Sprintf(" (at %s)", userErr.Context)
	}
	if userErr.Suggestion != "" {
		msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
	}
	if verbose && userErr.Underlying != nil {
		msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
	}
	return msg
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("only", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.KnownSteps, cobra.ShellCompDirectiveNoFileComp
	})
}

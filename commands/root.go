// Package commands contains the CLI command implementations.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roasbeef/remerge/workflow"
	"github.com/spf13/cobra"
)

// DefaultBase is the base ref used when none is given.
const DefaultBase = "origin/develop"

// configKey is the context key for runtime config.
type configKey struct{}

// Config holds runtime configuration for commands.
type Config struct {
	WorkDir string
}

// getConfig retrieves config from context, or returns defaults.
func getConfig(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey{}).(Config); ok {
		return cfg
	}

	return Config{}
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:     "remerge [base-branch]",
		Short:   "Rebase the current branch via a hidden merge",
		Version: Version,
		Long: `Remerge rebases the current branch onto a base branch, resolving
conflicts only once.

It first performs a throwaway merge of the base into the branch tip in a
detached checkout, so conflicts are resolved a single time against the
full merge result. It then replays the branch as a normal linear rebase,
auto-resolving rebase conflicts with the theirs strategy, and finally
creates one reconciliation commit if the rebased tree differs from the
resolved merge tree. The branch history stays linear and the final tree
is byte-identical to the once-resolved merge.

The working tree must be clean and the branch must both be behind the
base and carry commits of its own; anything else stops the run before
any change is made.

Exit codes:
  0  success, with or without a reconciliation commit
  1  a precondition failed, or the run was declined at the first prompt
  2  the run was aborted during merge or rebase conflict resolution`,
		Example: `  # Rebase the current branch onto the default base
  remerge

  # Rebase onto a specific base branch
  remerge origin/main

  # Run against a repository in another directory
  remerge -C ~/src/project origin/main`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Store config in context for subcommands.
			cfg := Config{
				WorkDir: workDir,
			}
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			base := DefaultBase
			if len(args) == 1 {
				base = args[0]
			}

			return runRemerge(
				cmd.Context(), cmd.InOrStdin(),
				cmd.OutOrStdout(), base,
			)
		},
	}

	cmd.PersistentFlags().StringVarP(
		&workDir, "dir", "C", "",
		"run as if git was started in this directory",
	)

	// Add subcommands.
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and maps errors to exit codes.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var abortErr *workflow.AbortError
		if errors.As(err, &abortErr) {
			os.Exit(abortErr.ExitCode())
		}

		if !errors.Is(err, workflow.ErrPreflightAbort) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

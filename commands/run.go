package commands

import (
	"context"
	"io"

	"github.com/roasbeef/remerge/git"
	"github.com/roasbeef/remerge/prompt"
	"github.com/roasbeef/remerge/workflow"
)

// runRemerge wires the executor, prompter and runner together.
func runRemerge(
	ctx context.Context, in io.Reader, w io.Writer, base string,
) error {

	cfg := getConfig(ctx)

	executor := git.NewShellExecutor(cfg.WorkDir)
	prompter := prompt.New(in, w)
	runner := workflow.New(executor, prompter, w, base)

	return runner.Run(ctx)
}

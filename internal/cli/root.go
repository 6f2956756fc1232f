// Package cli provides the command-line interface for git-jira.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/runoshun/git-jira/internal/app"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for git-jira.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "git-jira",
		Short: "Annotate git branches with JIRA issue summaries",
		Long: `git-jira looks up the JIRA issue named in each local branch and prints
the branch listing with the issue summary next to every branch.

Installed on PATH it runs as a git subcommand:

  git jira branch

The JIRA URL and credential are read from git config
(com.spoqa.jira.url, com.spoqa.jira.credential) and prompted for on first use.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. help without settings)
			if c == nil {
				return nil
			}
			if verbose && c.Logger != nil {
				c.Logger.SetLevel(slog.LevelDebug)
			}
			if c.Settings != nil {
				for _, w := range c.Settings.Warnings {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
				}
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output (request URL, raw response) to stderr")

	root.AddCommand(newBranchCommand(c))

	return root
}

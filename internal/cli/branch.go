package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/git-jira/internal/app"
	"github.com/runoshun/git-jira/internal/domain"
	"github.com/runoshun/git-jira/internal/infra/config"
	"github.com/runoshun/git-jira/internal/usecase"
	"github.com/spf13/cobra"
)

// errNoContainer is returned when a command needs settings that failed to load.
var errNoContainer = errors.New("git-jira is not initialized")

// newBranchCommand creates the branch command.
func newBranchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format  string
		Timeout string
		Source  string
		Strict  bool
	}

	cmd := &cobra.Command{
		Use:   "branch",
		Short: "List local branches with their issue summaries",
		Long: `List local branches with the summary of the JIRA issue whose key
(e.g. PROJ-123) appears in the branch name.

All keys are looked up with a single search request. Branches without a key
are printed with an empty summary.

Defaults for the flags below come from the settings file
($XDG_CONFIG_HOME/git-jira/config.toml).

Examples:
  # Annotated branch listing
  git jira branch

  # Machine-readable output
  git jira branch --format json

  # Fail if the tracker does not know one of the keys
  git jira branch --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errNoContainer
			}
			flags := cmd.Flags()
			settings := c.Settings
			if settings == nil {
				settings = domain.NewDefaultSettings()
			}
			if !flags.Changed("format") {
				opts.Format = settings.Output.Format
			}
			if !flags.Changed("timeout") {
				opts.Timeout = settings.Jira.Timeout
			}
			if !flags.Changed("source") {
				opts.Source = settings.Branches.Source
			}
			if !flags.Changed("strict") {
				opts.Strict = settings.Jira.Strict
			}

			render, err := rendererFor(opts.Format)
			if err != nil {
				return err
			}
			timeout, err := config.ParseTimeout(opts.Timeout)
			if err != nil {
				return fmt.Errorf("--timeout: %w", err)
			}

			uc, err := c.AnnotateBranchesUseCase(opts.Source, timeout)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			resolved, err := c.ResolveConfigUseCase().Execute(ctx, usecase.ResolveConfigInput{})
			if err != nil {
				return err
			}
			out, err := uc.Execute(ctx, usecase.AnnotateBranchesInput{
				Config: resolved.Config,
				Strict: opts.Strict,
			})
			if err != nil {
				return err
			}

			// The listing command failed: forward its stderr and stop quietly.
			if out.Aborted {
				_, _ = cmd.ErrOrStderr().Write(out.Stderr)
				return nil
			}

			return render(cmd.OutOrStdout(), out.Branches)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", domain.FormatText, "Output format: text, json, yaml")
	cmd.Flags().StringVar(&opts.Timeout, "timeout", domain.DefaultTimeout, "JIRA request timeout (0 disables)")
	cmd.Flags().StringVar(&opts.Source, "source", domain.BranchSourceGit, "Branch source: git, go-git")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when an issue key is missing from the JIRA response")

	return cmd
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

func ChangelogCmd() *cobra.Command {
	var next, output, tag string
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Regenerate the changelog from conventional commits",
		Long: `Regenerate the changelog with git-chglog.

Install it with:
  go install github.com/git-chglog/git-chglog/cmd/git-chglog@latest

Examples:
  dev changelog
  dev changelog --next v0.2.0
  dev changelog --tag v0.1.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := exec.LookPath("git-chglog"); err != nil {
				return fmt.Errorf("git-chglog not installed: %w", err)
			}
			chglogArgs := []string{"--output", output}
			if next != "" {
				chglogArgs = append(chglogArgs, "--next-tag", next)
			}
			if tag != "" {
				chglogArgs = append(chglogArgs, tag)
			}
			slog.Debug("running git-chglog", "args", chglogArgs)
			run := exec.CommandContext(cmd.Context(), "git-chglog", chglogArgs...)
			run.Stdout = os.Stdout
			run.Stderr = os.Stderr
			if err := run.Run(); err != nil {
				return fmt.Errorf("changelog generation failed: %w", err)
			}
			slog.Info("changelog written", "output", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&next, "next", "", "tag the unreleased commits with this version")
	cmd.Flags().StringVar(&output, "output", "CHANGELOG.md", "output file")
	cmd.Flags().StringVar(&tag, "tag", "", "only render this tag")
	return cmd
}

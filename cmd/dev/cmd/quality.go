package cmd

import (
	"fmt"

	"github.com/gophertribe/devtool/test"
	"github.com/spf13/cobra"
)

func TestCmd() *cobra.Command {
	var integration bool
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run unit tests, or the hardware tests with --integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, kind := test.Test, "unit"
			if integration {
				run, kind = test.Integ, "integration"
			}
			if err := run(); err != nil {
				return fmt.Errorf("%s tests failed: %w", kind, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&integration, "integration", false, "run tests that need a connected nunchuck")
	return cmd
}

func LintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Run linters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := test.Lint(); err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}
			return nil
		},
	}
}

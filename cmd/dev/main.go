package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/mklimuk/nunchuck/cmd/dev/cmd"
)

func main() {
	var verbose bool
	root := &cobra.Command{
		Use:          "dev",
		Short:        "development helper for the nunchuck tool",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			charm := log.NewWithOptions(os.Stdout, log.Options{
				ReportTimestamp: true,
				TimeFormat:      time.TimeOnly,
				Prefix:          "dev",
			})
			charm.SetColorProfile(termenv.TrueColor)
			charm.SetLevel(log.InfoLevel)
			if verbose {
				charm.SetLevel(log.DebugLevel)
			}
			slog.SetDefault(slog.New(charm))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(cmd.BuildCmd(), cmd.ChangelogCmd(), cmd.TestCmd(), cmd.LintCmd())

	if err := root.Execute(); err != nil {
		slog.Error("dev command failed", "error", err)
		os.Exit(1)
	}
}

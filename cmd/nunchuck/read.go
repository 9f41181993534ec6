package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/nunchuck/cmd/nunchuck/console"
	"github.com/mklimuk/nunchuck/pkg/config"
)

var readCmd = cli.Command{
	Name:      "read",
	Aliases:   []string{"rd"},
	Usage:     "initialize the nunchuck and print readings until interrupted",
	ArgsUsage: "[device]",
	Flags: append(sessionFlags(),
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "stop after this many readings (0 reads forever)",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "on failure ask whether to re-initialize instead of exiting",
		},
	),
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return console.Exit(1, "configuration error: %s", console.Red(err))
		}
		p, err := newPrinter(cfg.Format, os.Stdout, slog.Default())
		if err != nil {
			return console.Exit(1, "output error: %s", console.Red(err))
		}
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := reader{
			cfg:     cfg,
			printer: p,
			count:   c.Int("count"),
			open:    openSession,
		}
		if c.Bool("interactive") {
			r.retry = func(err error) bool {
				console.Errorf("%s", console.Red(err))
				ok, perr := console.Confirm("re-initialize the nunchuck?")
				return perr == nil && ok
			}
		}
		err = r.run(ctx)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		return nil
	},
}

// reader runs sessions until the reading budget is spent, the context ends
// or a failure is not retried. Every retry opens a fresh transport and driver.
type reader struct {
	cfg     config.Config
	printer printer
	count   int
	open    func(ctx context.Context, cfg config.Config) (*session, error)
	retry   func(err error) bool
	printed int
}

func (r *reader) run(ctx context.Context) error {
	for {
		err := r.session(ctx)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
			return nil
		case r.retry == nil || !r.retry(err):
			return err
		}
		console.Infof("re-initializing nunchuck on %s (%s)", r.cfg.Device, r.cfg.Adapter)
	}
}

func (r *reader) session(ctx context.Context) error {
	s, err := r.open(ctx, r.cfg)
	if err != nil {
		return fmt.Errorf("could not open %s transport: %w", r.cfg.Adapter, err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			console.Warnf("could not close %s transport: %s", r.cfg.Adapter, err)
		}
	}()
	err = s.source.Initialize(ctx)
	if err != nil {
		return err
	}
	for reading, err := range s.source.Readings(ctx) {
		if err != nil {
			return err
		}
		if err := r.printer.Print(reading); err != nil {
			return fmt.Errorf("could not print reading: %w", err)
		}
		r.printed++
		if r.count > 0 && r.printed >= r.count {
			return nil
		}
	}
	return nil
}

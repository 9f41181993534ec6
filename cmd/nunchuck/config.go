package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/nunchuck/cmd/nunchuck/console"
	"github.com/mklimuk/nunchuck/pkg/config"
)

var configCmd = cli.Command{
	Name:  "config",
	Usage: "configuration helpers",
	Subcommands: []*cli.Command{
		{
			Name:  "show",
			Usage: "print the effective configuration",
			Flags: sessionFlags(),
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return console.Exit(1, "configuration error: %s", console.Red(err))
				}
				console.Printf("%s", cfg)
				return nil
			},
		},
	},
}

func bridgeIDFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "bridge-id",
		Usage: "MCP2221 index from usb detect when several bridges are connected",
		Value: -1,
	}
}

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Usage:   "bus adapter: devfs, periph, nanopi, raspi, mcp2221 or mock",
		},
		&cli.IntFlag{
			Name:  "bus",
			Usage: "gobot bus number (-1 for the board default)",
		},
		&cli.IntFlag{
			Name:  "speed",
			Usage: "bus clock in Hz (periph and mcp2221 adapters)",
		},
		bridgeIDFlag(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: text, yaml or log",
		},
	}
}

// loadConfig reads the global config file (defaults when absent) and applies
// the command line on top of it.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}
	if c.IsSet("adapter") {
		cfg.Adapter = c.String("adapter")
	}
	if c.IsSet("bus") {
		cfg.Bus = c.Int("bus")
	}
	if c.IsSet("speed") {
		cfg.SpeedHz = c.Int("speed")
	}
	if c.IsSet("bridge-id") {
		cfg.BridgeID = c.Int("bridge-id")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.Args().Present() {
		cfg.Device = c.Args().First()
	}
	return cfg, config.Validate(cfg)
}

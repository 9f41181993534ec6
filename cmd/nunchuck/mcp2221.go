package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/nunchuck/adapter"
	"github.com/mklimuk/nunchuck/cmd/nunchuck/console"
)

var mcp2221Cmd = cli.Command{
	Name:  "mcp2221",
	Usage: "MCP2221 bridge maintenance",
	Flags: []cli.Flag{bridgeIDFlag()},
	Subcommands: cli.Commands{
		&mcp2221StatusCmd,
		&mcp2221ReleaseCmd,
	},
}

var mcp2221StatusCmd = cli.Command{
	Name:  "status",
	Usage: "print the bridge I2C engine status",
	Action: func(c *cli.Context) error {
		status, err := adapter.NewMCP2221(adapter.WithBridgeID(c.Int("bridge-id"))).Status(c.Context)
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		return encodeStatus(status)
	},
}

var mcp2221ReleaseCmd = cli.Command{
	Name:  "release",
	Usage: "cancel a stuck transfer and release the bus",
	Action: func(c *cli.Context) error {
		status, err := adapter.NewMCP2221(adapter.WithBridgeID(c.Int("bridge-id"))).ReleaseBus(c.Context)
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		return encodeStatus(status)
	},
}

func encodeStatus(status *adapter.MCP2221Status) error {
	enc := yaml.NewEncoder(os.Stdout)
	err := enc.Encode(status)
	if err != nil {
		return console.Exit(1, "encoding error: %s", console.Red(err))
	}
	return enc.Close()
}

// Package config holds the nunchuck CLI configuration file and build info.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Build info, injected at link time by the dev tool.
var (
	Version = "latest"
	Commit  = "none"
	Date    = "unknown"
)

const (
	AdapterDevfs   = "devfs"
	AdapterPeriph  = "periph"
	AdapterNanoPi  = "nanopi"
	AdapterRaspi   = "raspi"
	AdapterMCP2221 = "mcp2221"
	AdapterMock    = "mock"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatLog  = "log"
)

var Adapters = []string{AdapterDevfs, AdapterPeriph, AdapterNanoPi, AdapterRaspi, AdapterMCP2221, AdapterMock}
var Formats = []string{FormatText, FormatYAML, FormatLog}

type Config struct {
	Adapter string `yaml:"adapter"`
	// Device is the bus path or name, e.g. /dev/i2c-1 or I2C1
	Device string `yaml:"device"`
	// Bus is the gobot bus number, -1 for the board default
	Bus int `yaml:"bus"`
	// SpeedHz is the bus clock for adapters that can set it
	SpeedHz int    `yaml:"speed_hz"`
	Format  string `yaml:"format"`
	// BridgeID picks an MCP2221 by its usb detect index, -1 when only one is connected
	BridgeID int `yaml:"bridge_id"`
}

func Default() Config {
	return Config{
		Adapter:  AdapterDevfs,
		Device:   "/dev/i2c-1",
		Bus:      -1,
		SpeedHz:  100_000,
		Format:   FormatText,
		BridgeID: -1,
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration correctness without mutating it.
func Validate(cfg Config) error {
	var errs []error
	if !slices.Contains(Adapters, cfg.Adapter) {
		errs = append(errs, fmt.Errorf("unknown adapter %q (one of %v)", cfg.Adapter, Adapters))
	}
	if !slices.Contains(Formats, cfg.Format) {
		errs = append(errs, fmt.Errorf("unknown format %q (one of %v)", cfg.Format, Formats))
	}
	if cfg.Device == "" && (cfg.Adapter == AdapterDevfs || cfg.Adapter == AdapterPeriph) {
		errs = append(errs, fmt.Errorf("adapter %s requires a device", cfg.Adapter))
	}
	if cfg.SpeedHz <= 0 {
		errs = append(errs, fmt.Errorf("speed_hz must be > 0, got %d", cfg.SpeedHz))
	}
	if cfg.Bus < -1 {
		errs = append(errs, fmt.Errorf("bus must be -1 (board default) or a bus number, got %d", cfg.Bus))
	}
	if cfg.BridgeID < -1 {
		errs = append(errs, fmt.Errorf("bridge_id must be -1 (single bridge) or a usb detect index, got %d", cfg.BridgeID))
	}
	return errors.Join(errs...)
}

func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(out)
}

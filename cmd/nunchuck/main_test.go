package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/nunchuck/cmd/nunchuck/console"
)

func TestConfigShow(t *testing.T) {
	var out, errOut bytes.Buffer
	console.SetOutput(&out, &errOut)
	t.Cleanup(func() { console.SetOutput(os.Stdout, os.Stderr) })

	path := filepath.Join(t.TempDir(), "nunchuck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("adapter: periph\nspeed_hz: 400000\n"), 0o600))

	code := run([]string{"nunchuck", "--config", path, "config", "show", "--format", "yaml", "--bridge-id", "1", "I2C0"})
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "adapter: periph\n")
	assert.Contains(t, out.String(), "device: I2C0\n")
	assert.Contains(t, out.String(), "speed_hz: 400000\n")
	assert.Contains(t, out.String(), "format: yaml\n")
	assert.Contains(t, out.String(), "bridge_id: 1\n")
}

func TestConfigShow_Invalid(t *testing.T) {
	code := run([]string{"nunchuck", "config", "show", "--adapter", "serial"})
	assert.Equal(t, 1, code)
}

func TestReadMock(t *testing.T) {
	code := run([]string{"nunchuck", "read", "--adapter", "mock", "--format", "log", "--count", "3"})
	assert.Equal(t, 0, code)
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"help", []string{"nunchuck", "--help"}},
		{"version", []string{"nunchuck", "--version"}},
		{"version short", []string{"nunchuck", "-v"}},
		{"verbose read", []string{"nunchuck", "--verbose", "read", "--adapter", "mock", "--count", "1"}},
		{"command help", []string{"nunchuck", "mcp2221", "--help"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, run(tt.args))
		})
	}
}

//go:build linux

package i2c

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/nunchuck/wii"
)

// Needs a nunchuck wired to the bus named by NUNCHUCK_DEVICE (default /dev/i2c-1).
func TestDevfs_NunchuckIntegration(t *testing.T) {
	if os.Getenv("TEST_INTEGRATION_ENABLED") != "1" {
		t.Skip("integration tests disabled")
	}
	path := os.Getenv("NUNCHUCK_DEVICE")
	if path == "" {
		path = "/dev/i2c-1"
	}
	dev, err := OpenDevfs(path)
	require.NoError(t, err)
	defer func() { assert.NoError(t, dev.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n := wii.NewNunchuck(dev)
	require.NoError(t, n.Initialize(ctx))

	var count int
	for r, err := range n.Readings(ctx) {
		require.NoError(t, err)
		assert.LessOrEqual(t, r.AccelX, uint16(1023))
		// a resting accessory feels gravity on at least one axis
		assert.NotZero(t, r.AccelX|r.AccelY|r.AccelZ)
		count++
		if count == 10 {
			break
		}
	}
	assert.Equal(t, 10, count)
	assert.Equal(t, wii.StateReady, n.State())
}

//go:build linux

package i2c

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/nunchuck"
)

func TestOpenDevfs_Missing(t *testing.T) {
	_, err := OpenDevfs(filepath.Join(t.TempDir(), "i2c-9"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDevfs_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2c-1")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4, 5, 6}, 0o600))
	dev, err := OpenDevfs(path)
	require.NoError(t, err)
	defer func() { _ = dev.Close() }()
	ctx := context.Background()

	// a regular file does not understand I2C_SLAVE
	assert.Error(t, dev.SetSlaveAddress(ctx, 0x52))
	assert.ErrorIs(t, dev.SetSlaveAddress(ctx, 0x100), nunchuck.ErrInvalidAddress)

	buf := make([]byte, 6)
	n, err := dev.Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, buf)

	require.NoError(t, dev.Write(ctx, []byte{0x00}))
	assert.Equal(t, path, dev.String())
}

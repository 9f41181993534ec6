//go:build !linux

package i2c

import (
	"context"
	"errors"
	"fmt"
)

// Devfs is only available on Linux.
type Devfs struct{}

func OpenDevfs(path string) (*Devfs, error) {
	return nil, fmt.Errorf("i2c-dev %s: %w", path, errors.ErrUnsupported)
}

func (d *Devfs) SetSlaveAddress(ctx context.Context, addr uint16) error {
	return errors.ErrUnsupported
}

func (d *Devfs) Write(ctx context.Context, buffer []byte) error {
	return errors.ErrUnsupported
}

func (d *Devfs) Read(ctx context.Context, buffer []byte) (int, error) {
	return 0, errors.ErrUnsupported
}

func (d *Devfs) String() string {
	return ""
}

func (d *Devfs) Close() error {
	return nil
}

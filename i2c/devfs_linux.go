//go:build linux

package i2c

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/mklimuk/nunchuck"
)

// ioctl request binding an i2c-dev file descriptor to a slave (linux/i2c-dev.h)
const ioctlI2CSlave = 0x0703

var _ nunchuck.I2CDevice = &Devfs{}

// Devfs talks to a Linux i2c-dev character device such as /dev/i2c-1.
type Devfs struct {
	path string
	file *os.File
}

func OpenDevfs(path string) (*Devfs, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c device %s: %w", path, err)
	}
	return &Devfs{path: path, file: f}, nil
}

func (d *Devfs) SetSlaveAddress(ctx context.Context, addr uint16) error {
	if addr > 0x7F {
		return fmt.Errorf("%w: %#x", nunchuck.ErrInvalidAddress, addr)
	}
	err := unix.IoctlSetInt(int(d.file.Fd()), ioctlI2CSlave, int(addr))
	if err != nil {
		return fmt.Errorf("could not select slave %#x on %s: %w", addr, d.path, err)
	}
	return nil
}

// Write writes the whole buffer in one bus transaction.
func (d *Devfs) Write(ctx context.Context, buffer []byte) error {
	n, err := d.file.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to %s: %w", d.path, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to %s: %d of %d bytes: %w", d.path, n, len(buffer), io.ErrShortWrite)
	}
	return nil
}

func (d *Devfs) Read(ctx context.Context, buffer []byte) (int, error) {
	n, err := d.file.Read(buffer)
	if err != nil {
		return n, fmt.Errorf("could not read from %s: %w", d.path, err)
	}
	return n, nil
}

func (d *Devfs) String() string {
	return d.path
}

func (d *Devfs) Close() error {
	return d.file.Close()
}

package i2c

import (
	"context"
	"errors"
	"fmt"
	"io"

	gobot "gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/mklimuk/nunchuck"
)

var _ nunchuck.I2CDevice = &GobotDevice{}

var errNoConnection = errors.New("no gobot connection, select a slave address first")

// GobotDevice talks to a slave through a gobot board adaptor (NanoPi,
// Raspberry Pi, ...). Selecting a slave opens a new gobot connection.
type GobotDevice struct {
	connector gobot.Connector
	bus       int
	address   uint16
	conn      gobot.Connection
}

// NewGobotDevice binds to the given bus number; a negative bus selects the
// adaptor's default bus.
func NewGobotDevice(connector gobot.Connector, bus int) *GobotDevice {
	if bus < 0 {
		bus = connector.DefaultI2cBus()
	}
	return &GobotDevice{connector: connector, bus: bus}
}

func (d *GobotDevice) SetSlaveAddress(ctx context.Context, addr uint16) error {
	if addr > 0x7F {
		return fmt.Errorf("%w: %#x", nunchuck.ErrInvalidAddress, addr)
	}
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			return fmt.Errorf("could not close connection to %#x: %w", d.address, err)
		}
		d.conn = nil
	}
	conn, err := d.connector.GetI2cConnection(int(addr), d.bus)
	if err != nil {
		return fmt.Errorf("could not open gobot connection to %#x on bus %d: %w", addr, d.bus, err)
	}
	d.conn = conn
	d.address = addr
	return nil
}

func (d *GobotDevice) Write(ctx context.Context, buffer []byte) error {
	if d.conn == nil {
		return errNoConnection
	}
	n, err := d.conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to %#x: %w", d.address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to %#x: %d of %d bytes: %w", d.address, n, len(buffer), io.ErrShortWrite)
	}
	return nil
}

func (d *GobotDevice) Read(ctx context.Context, buffer []byte) (int, error) {
	if d.conn == nil {
		return 0, errNoConnection
	}
	n, err := d.conn.Read(buffer)
	if err != nil {
		return n, fmt.Errorf("could not read from %#x: %w", d.address, err)
	}
	return n, nil
}

func (d *GobotDevice) Close() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

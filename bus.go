package nunchuck

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")
var ErrInvalidAddress = fmt.Errorf("invalid 7-bit I2C slave address")

// SlaveSelector binds subsequent reads and writes to a slave address.
type SlaveSelector interface {
	SetSlaveAddress(ctx context.Context, addr uint16) error
}

type BusReader interface {
	Read(ctx context.Context, buffer []byte) (int, error)
}

// BusWriter writes the whole buffer or fails.
type BusWriter interface {
	Write(ctx context.Context, buffer []byte) error
}

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
}

// I2CDevice is a bus handle that talks to one slave at a time, the way
// Linux i2c-dev does after an I2C_SLAVE ioctl.
type I2CDevice interface {
	SlaveSelector
	BusReader
	BusWriter
}

var _ I2CDevice = &BusDevice{}

// BusDevice turns an addressable bus into an I2CDevice by remembering the
// selected slave address.
type BusDevice struct {
	bus      I2CBus
	address  byte
	selected bool
}

func NewBusDevice(bus I2CBus) *BusDevice {
	return &BusDevice{bus: bus}
}

func (d *BusDevice) SetSlaveAddress(ctx context.Context, addr uint16) error {
	if addr > 0x7F {
		return fmt.Errorf("%w: %#x", ErrInvalidAddress, addr)
	}
	d.address = byte(addr)
	d.selected = true
	return nil
}

func (d *BusDevice) Write(ctx context.Context, buffer []byte) error {
	if !d.selected {
		return fmt.Errorf("write: %w: no slave selected", ErrInvalidAddress)
	}
	return d.bus.WriteToAddr(ctx, d.address, buffer)
}

// Read fills the whole buffer; addressable buses never report partial reads.
func (d *BusDevice) Read(ctx context.Context, buffer []byte) (int, error) {
	if !d.selected {
		return 0, fmt.Errorf("read: %w: no slave selected", ErrInvalidAddress)
	}
	err := d.bus.ReadFromAddr(ctx, d.address, buffer)
	if err != nil {
		return 0, err
	}
	return len(buffer), nil
}

func (d *BusDevice) Release(ctx context.Context) error {
	return d.bus.Release(ctx)
}

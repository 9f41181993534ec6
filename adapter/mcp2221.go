package adapter

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/karalabe/hid"

	"github.com/mklimuk/nunchuck"
)

const VendorID = 0x04D8
const ProductID = 0x00DD

const reportSize = 64

// MCP2221 command codes
const (
	cmdStatusSetParams = 0x10
	cmdI2CWrite        = 0x90
	cmdI2CRead         = 0x91
	cmdI2CGetData      = 0x40
)

const (
	paramCancelTransfer = 0x10
	paramSetSpeed       = 0x20
	speedAccepted       = 0x20
	systemClock         = 12_000_000
)

// maxPayload is the largest transfer that fits a single HID report.
const maxPayload = reportSize - 4

var ErrCommandFailed = errors.New("command failed")
var ErrDeviceNotFound = errors.New("MCP2221 device not found")
var ErrPayloadTooLarge = errors.New("transfer does not fit a single report")

var _ nunchuck.I2CBus = &MCP2221{}

// MCP2221 is a Microchip USB to I2C bridge.
type MCP2221 struct {
	mx           sync.Mutex
	request      []byte
	response     []byte
	responseWait time.Duration
	id           []int
	open         func(id ...int) (io.ReadWriteCloser, error)
}

type Option func(*MCP2221)

// WithBridgeID selects a bridge by its enumeration index (as listed by
// usb detect) when more than one is connected. Negative ids are ignored.
func WithBridgeID(id int) Option {
	return func(d *MCP2221) {
		if id >= 0 {
			d.id = []int{id}
		}
	}
}

type MCP2221Status struct {
	I2CDataBufferCounter   int    `yaml:"i2c_data_buffer_counter"`
	I2CSpeedDivider        int    `yaml:"i2c_speed_divider"`
	I2CTimeout             int    `yaml:"i2c_timeout"`
	CurrentAddress         string `yaml:"current_address"`
	LastWriteRequestedSize uint16 `yaml:"last_write_requested_size"`
	LastWriteSentSize      uint16 `yaml:"last_write_sent_size"`
	ReadPending            int    `yaml:"read_pending"`
}

func NewMCP2221(opts ...Option) *MCP2221 {
	d := &MCP2221{
		request:      make([]byte, reportSize),
		response:     make([]byte, reportSize),
		responseWait: 50 * time.Millisecond,
		open:         openHID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *MCP2221) SetSpeed(ctx context.Context, hz int) error {
	if hz <= 0 || systemClock/hz < 4 || systemClock/hz-3 > 0xFF {
		return fmt.Errorf("unsupported i2c speed %d Hz", hz)
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatusSetParams
	d.request[3] = paramSetSpeed
	d.request[4] = byte(systemClock/hz - 3)
	err := d.send(ctx)
	if err != nil {
		return fmt.Errorf("set speed request failed: %w", err)
	}
	if d.response[3] != speedAccepted {
		return fmt.Errorf("speed %d Hz rejected (transfer in progress?): %w", hz, ErrCommandFailed)
	}
	return nil
}

func (d *MCP2221) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	if len(buffer) > maxPayload {
		return fmt.Errorf("write of %d bytes to %x: %w", len(buffer), address, ErrPayloadTooLarge)
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdI2CWrite
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address << 1
	copy(d.request[4:], buffer)
	err := d.send(ctx)
	if err != nil {
		return fmt.Errorf("write to %x failed: %w", address, err)
	}
	// write could not be performed
	if d.response[1] == 0x01 {
		slog.Debug("adapter busy", "address", address)
		return nunchuck.ErrBusBusy
	}
	return nil
}

func (d *MCP2221) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	if len(buffer) > maxPayload {
		return fmt.Errorf("read of %d bytes from %x: %w", len(buffer), address, ErrPayloadTooLarge)
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdI2CRead
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address<<1 + 1
	err := d.send(ctx)
	if err != nil {
		return fmt.Errorf("bus read from %x failed: %w", address, err)
	}
	d.resetBuffers()
	d.request[0] = cmdI2CGetData
	err = d.send(ctx)
	if err != nil {
		return fmt.Errorf("error getting read data from adapter: %w", err)
	}
	if d.response[1] == 0x41 {
		return fmt.Errorf("error reading the I2C slave data from the I2C engine")
	}
	if d.response[3] == 127 || int(d.response[3]) != len(buffer) {
		return fmt.Errorf("invalid data size byte; expected %d, got %d", len(buffer), d.response[3])
	}
	copy(buffer, d.response[4:])
	return nil
}

func (d *MCP2221) Status(ctx context.Context) (*MCP2221Status, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatusSetParams
	err := d.send(ctx)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return bufferToStatus(d.response), nil
}

func bufferToStatus(buffer []byte) *MCP2221Status {
	/*
		9: Lower byte (16-bit value) of the requested I2C transfer length
		10: Higher byte (16-bit value) of the requested I2C transfer length
		11:	Lower byte (16-bit value) of the already transferred (through I2C) number of bytes
		12:	Higher byte (16-bit value) of the already transferred (through I2C) number of bytes
		13:	Internal I2C data buffer counter
		14: Current I2C communication speed divider value
		15: Current I2C timeout value
		16:	Lower byte (16-bit value) of the I2C address being used
		17:	Higher byte (16-bit value) of the I2C address being used
		25: I2C read pending
	*/
	return &MCP2221Status{
		I2CDataBufferCounter:   int(buffer[13]),
		I2CSpeedDivider:        int(buffer[14]),
		I2CTimeout:             int(buffer[15]),
		ReadPending:            int(buffer[25]),
		CurrentAddress:         hex.EncodeToString(buffer[16:18]),
		LastWriteRequestedSize: binary.LittleEndian.Uint16(buffer[9:11]),
		LastWriteSentSize:      binary.LittleEndian.Uint16(buffer[11:13]),
	}
}

// Release cancels any pending transfer and frees the bus.
func (d *MCP2221) Release(ctx context.Context) error {
	_, err := d.ReleaseBus(ctx)
	return err
}

func (d *MCP2221) ReleaseBus(ctx context.Context) (*MCP2221Status, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatusSetParams
	d.request[2] = paramCancelTransfer
	err := d.send(ctx)
	if err != nil {
		return nil, fmt.Errorf("release request failed: %w", err)
	}
	return bufferToStatus(d.response), nil
}

// send writes the request report and reads the response report back.
func (d *MCP2221) send(ctx context.Context) error {
	dev, err := d.open(d.id...)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			slog.Debug("could not close adapter", "error", err)
		}
	}()
	slog.Debug("sending message to adapter", "request", hex.EncodeToString(d.request))
	n, err := dev.Write(d.request)
	if err != nil {
		return fmt.Errorf("could not write request: %w", err)
	}
	if n != reportSize {
		return fmt.Errorf("short write: %d", n)
	}
	timer := time.NewTimer(d.responseWait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	n, err = dev.Read(d.response)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	if n != reportSize {
		return fmt.Errorf("short read: %d", n)
	}
	slog.Debug("read message from adapter", "response", hex.EncodeToString(d.response))
	return nil
}

func openHID(id ...int) (io.ReadWriteCloser, error) {
	devs := hid.Enumerate(VendorID, ProductID)
	if len(devs) == 0 {
		return nil, ErrDeviceNotFound
	}
	if len(id) == 0 {
		if len(devs) > 1 {
			return nil, fmt.Errorf("ambiguous device identification: %d bridges found", len(devs))
		}
		return openInfo(devs[0])
	}
	if id[0] < 0 || id[0] >= len(devs) {
		return nil, fmt.Errorf("no device with id %d", id[0])
	}
	return openInfo(devs[id[0]])
}

func openInfo(info hid.DeviceInfo) (io.ReadWriteCloser, error) {
	dev, err := info.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening device: %w", err)
	}
	return dev, nil
}

func (d *MCP2221) resetBuffers() {
	clear(d.request)
	clear(d.response)
}

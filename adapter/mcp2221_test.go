package adapter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/nunchuck"
	"github.com/mklimuk/nunchuck/wii"
)

// fakeBridge answers HID reports the way the MCP2221 firmware does for the
// commands the nunchuck session uses.
type fakeBridge struct {
	requests [][]byte
	pending  []byte
	frame    []byte
	busy     bool
	last     []byte
	closed   int
	ids      [][]int
}

func (b *fakeBridge) Write(p []byte) (int, error) {
	req := append([]byte(nil), p...)
	b.requests = append(b.requests, req)
	resp := make([]byte, reportSize)
	resp[0] = req[0]
	switch req[0] {
	case cmdStatusSetParams:
		if req[3] == paramSetSpeed {
			resp[3] = speedAccepted
		}
		resp[14] = 117
		resp[16] = 0xA4
	case cmdI2CWrite:
		if b.busy {
			resp[1] = 0x01
		}
	case cmdI2CRead:
		b.pending = b.frame
	case cmdI2CGetData:
		resp[3] = byte(len(b.pending))
		copy(resp[4:], b.pending)
	}
	b.last = resp
	return len(p), nil
}

func (b *fakeBridge) Read(p []byte) (int, error) {
	return copy(p, b.last), nil
}

func (b *fakeBridge) Close() error {
	b.closed++
	return nil
}

func newTestMCP2221(bridge *fakeBridge, opts ...Option) *MCP2221 {
	d := NewMCP2221(opts...)
	d.responseWait = 0
	d.open = func(id ...int) (io.ReadWriteCloser, error) {
		bridge.ids = append(bridge.ids, id)
		return bridge, nil
	}
	return d
}

func TestMCP2221_SetSpeed(t *testing.T) {
	bridge := &fakeBridge{}
	d := newTestMCP2221(bridge)

	require.NoError(t, d.SetSpeed(context.Background(), 100_000))
	require.Len(t, bridge.requests, 1)
	assert.Equal(t, byte(cmdStatusSetParams), bridge.requests[0][0])
	assert.Equal(t, byte(paramSetSpeed), bridge.requests[0][3])
	assert.Equal(t, byte(117), bridge.requests[0][4])
	assert.Equal(t, 1, bridge.closed)
}

func TestMCP2221_BridgeID(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []int
	}{
		{name: "auto", want: nil},
		{name: "negative is auto", opts: []Option{WithBridgeID(-1)}, want: nil},
		{name: "second bridge", opts: []Option{WithBridgeID(1)}, want: []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := &fakeBridge{}
			d := newTestMCP2221(bridge, tt.opts...)
			_, err := d.Status(context.Background())
			require.NoError(t, err)
			require.Len(t, bridge.ids, 1)
			assert.Equal(t, tt.want, bridge.ids[0])
		})
	}
}

func TestMCP2221_PayloadTooLarge(t *testing.T) {
	bridge := &fakeBridge{}
	d := newTestMCP2221(bridge)

	err := d.WriteToAddr(context.Background(), 0x52, make([]byte, 61))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	err = d.ReadFromAddr(context.Background(), 0x52, make([]byte, 61))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Empty(t, bridge.requests)

	payload := make([]byte, 60)
	payload[59] = 0xAB
	require.NoError(t, d.WriteToAddr(context.Background(), 0x52, payload))
	assert.Equal(t, byte(60), bridge.requests[0][1])
	assert.Equal(t, byte(0xAB), bridge.requests[0][63])
}

func TestMCP2221_SetSpeedOutOfRange(t *testing.T) {
	d := newTestMCP2221(&fakeBridge{})
	assert.Error(t, d.SetSpeed(context.Background(), 0))
	assert.Error(t, d.SetSpeed(context.Background(), 10_000))
	assert.Error(t, d.SetSpeed(context.Background(), 4_000_000))
}

func TestMCP2221_NunchuckSession(t *testing.T) {
	bridge := &fakeBridge{frame: []byte{10, 20, 100, 101, 102, 0b11100000}}
	ctx := context.Background()
	n := wii.NewNunchuck(nunchuck.NewBusDevice(newTestMCP2221(bridge)))

	require.NoError(t, n.Initialize(ctx))
	r, err := n.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(403), r.AccelX)

	// init 1, init 2, trigger, read request, get data
	require.Len(t, bridge.requests, 5)
	assert.Equal(t, []byte{cmdI2CWrite, 2, 0, 0x52 << 1, 0xF0, 0x55}, bridge.requests[0][:6])
	assert.Equal(t, []byte{cmdI2CWrite, 2, 0, 0x52 << 1, 0xFB, 0x00}, bridge.requests[1][:6])
	assert.Equal(t, []byte{cmdI2CWrite, 1, 0, 0x52 << 1, 0x00}, bridge.requests[2][:5])
	assert.Equal(t, []byte{cmdI2CRead, 6, 0, 0x52<<1 + 1}, bridge.requests[3][:4])
	assert.Equal(t, byte(cmdI2CGetData), bridge.requests[4][0])
}

func TestMCP2221_Busy(t *testing.T) {
	d := newTestMCP2221(&fakeBridge{busy: true})
	err := d.WriteToAddr(context.Background(), 0x52, []byte{0x00})
	assert.ErrorIs(t, err, nunchuck.ErrBusBusy)
}

func TestMCP2221_ShortRead(t *testing.T) {
	d := newTestMCP2221(&fakeBridge{frame: []byte{1, 2, 3}})
	err := d.ReadFromAddr(context.Background(), 0x52, make([]byte, 6))
	assert.ErrorContains(t, err, "expected 6, got 3")
}

func TestMCP2221_DeviceMissing(t *testing.T) {
	d := NewMCP2221()
	d.open = func(id ...int) (io.ReadWriteCloser, error) { return nil, ErrDeviceNotFound }
	_, err := d.Status(context.Background())
	assert.True(t, errors.Is(err, ErrDeviceNotFound))
}

func TestMCP2221_Status(t *testing.T) {
	d := newTestMCP2221(&fakeBridge{})
	status, err := d.ReleaseBus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 117, status.I2CSpeedDivider)
	assert.Equal(t, "a400", status.CurrentAddress)
}

func TestBufferToStatus(t *testing.T) {
	buf := make([]byte, reportSize)
	buf[9], buf[10] = 0x06, 0x00
	buf[11], buf[12] = 0x04, 0x00
	buf[13] = 2
	buf[25] = 1
	status := bufferToStatus(buf)
	assert.Equal(t, uint16(6), status.LastWriteRequestedSize)
	assert.Equal(t, uint16(4), status.LastWriteSentSize)
	assert.Equal(t, 2, status.I2CDataBufferCounter)
	assert.Equal(t, 1, status.ReadPending)
}

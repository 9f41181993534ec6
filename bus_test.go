package nunchuck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
		copy(buffer, data)
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestBusDevice_ForwardsToSelectedAddress(t *testing.T) {
	bus := new(MockI2CBus)
	dev := NewBusDevice(bus)
	ctx := context.Background()

	bus.On("WriteToAddr", ctx, byte(0x52), []byte{0xF0, 0x55}).Return(nil).Once()
	bus.On("ReadFromAddr", ctx, byte(0x52), mock.Anything).Return([]byte{1, 2, 3, 4, 5, 6}, nil).Once()

	require.NoError(t, dev.SetSlaveAddress(ctx, 0x52))
	require.NoError(t, dev.Write(ctx, []byte{0xF0, 0x55}))

	buf := make([]byte, 6)
	n, err := dev.Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, buf)
	bus.AssertExpectations(t)
}

func TestBusDevice_RejectsWideAddress(t *testing.T) {
	dev := NewBusDevice(new(MockI2CBus))
	err := dev.SetSlaveAddress(context.Background(), 0x152)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestBusDevice_RequiresSelection(t *testing.T) {
	bus := new(MockI2CBus)
	dev := NewBusDevice(bus)
	ctx := context.Background()

	assert.ErrorIs(t, dev.Write(ctx, []byte{0x00}), ErrInvalidAddress)
	_, err := dev.Read(ctx, make([]byte, 6))
	assert.ErrorIs(t, err, ErrInvalidAddress)
	bus.AssertNotCalled(t, "WriteToAddr", mock.Anything, mock.Anything, mock.Anything)
}

func TestBusDevice_ReadErrorReportsNoBytes(t *testing.T) {
	bus := new(MockI2CBus)
	dev := NewBusDevice(bus)
	ctx := context.Background()
	busErr := errors.New("nack")
	bus.On("ReadFromAddr", ctx, byte(0x52), mock.Anything).Return(nil, busErr).Once()

	require.NoError(t, dev.SetSlaveAddress(ctx, 0x52))
	n, err := dev.Read(ctx, make([]byte, 6))
	assert.ErrorIs(t, err, busErr)
	assert.Zero(t, n)
}

package wii

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/mklimuk/nunchuck"
)

// Address is the fixed 7-bit slave address of the Nunchuck.
const Address uint16 = 0x52

const triggerByte = 0x00

// Protocol timing. The accessory needs InitDelay to settle after the
// handshake and TriggerDelay to latch its converters after a trigger.
const (
	InitDelay    = 100 * time.Millisecond
	TriggerDelay = 10 * time.Millisecond
)

// initSequence puts the accessory into unencrypted data mode. It works with
// both genuine and third party nunchucks.
var initSequence = [][]byte{
	{0xF0, 0x55},
	{0xFB, 0x00},
}

var (
	ErrAddressSelection = errors.New("nunchuck: could not select slave address")
	ErrInitWrite        = errors.New("nunchuck: writing init sequence failed")
	ErrTriggerWrite     = errors.New("nunchuck: writing read trigger failed")
	ErrFrameRead        = errors.New("nunchuck: reading data frame failed")

	ErrShortFrame         = errors.New("nunchuck: short data frame")
	ErrNotInitialized     = errors.New("nunchuck: not initialized")
	ErrAlreadyInitialized = errors.New("nunchuck: already initialized")
	ErrFailed             = errors.New("nunchuck: driver failed, re-initialize with a fresh driver")
)

type State int

const (
	StateUninitialized State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Nunchuck drives a Wii Nunchuck accessory.
// Typical usage:
//
//	n := NewNunchuck(dev)
//	if err := n.Initialize(ctx); err != nil { ... }
//	for r, err := range n.Readings(ctx) { ... }
//
// The driver owns the transport exclusively and is not safe for concurrent
// use. Any transport error moves it to StateFailed for good.
type Nunchuck struct {
	transport nunchuck.I2CDevice
	state     State
	frame     Frame
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewNunchuck(trans nunchuck.I2CDevice) *Nunchuck {
	return &Nunchuck{transport: trans, sleep: wait}
}

func (n *Nunchuck) State() State {
	return n.state
}

// Initialize selects the accessory on the bus, writes the init sequence and
// waits InitDelay for the accessory to settle.
func (n *Nunchuck) Initialize(ctx context.Context) error {
	switch n.state {
	case StateReady:
		return ErrAlreadyInitialized
	case StateFailed:
		return ErrFailed
	}
	err := n.transport.SetSlaveAddress(ctx, Address)
	if err != nil {
		return n.fail(ErrAddressSelection, err)
	}
	for i, cmd := range initSequence {
		err = n.transport.Write(ctx, cmd)
		if err != nil {
			return n.fail(ErrInitWrite, fmt.Errorf("sequence %d: %w", i+1, err))
		}
	}
	// a cancelled settle leaves the driver uninitialized, the handshake can be replayed
	if err := n.sleep(ctx, InitDelay); err != nil {
		return err
	}
	n.state = StateReady
	slog.Debug("nunchuck initialized", "address", fmt.Sprintf("%#x", Address))
	return nil
}

// Poll performs one trigger/wait/read cycle and returns the decoded frame.
func (n *Nunchuck) Poll(ctx context.Context) (Reading, error) {
	switch n.state {
	case StateUninitialized:
		return Reading{}, ErrNotInitialized
	case StateFailed:
		return Reading{}, ErrFailed
	}
	err := n.transport.Write(ctx, []byte{triggerByte})
	if err != nil {
		return Reading{}, n.fail(ErrTriggerWrite, err)
	}
	if err := n.sleep(ctx, TriggerDelay); err != nil {
		return Reading{}, err
	}
	read, err := n.transport.Read(ctx, n.frame[:])
	if err != nil {
		return Reading{}, n.fail(ErrFrameRead, err)
	}
	if read != FrameSize {
		return Reading{}, n.fail(ErrFrameRead, fmt.Errorf("%w: expected %d bytes, got %d", ErrShortFrame, FrameSize, read))
	}
	return Decode(n.frame), nil
}

// Readings returns a lazy, infinite sequence of readings. Every pull costs a
// full poll cycle. The first error is yielded once and ends the sequence;
// a reading is never yielded together with an error.
func (n *Nunchuck) Readings(ctx context.Context) iter.Seq2[Reading, error] {
	return readings(ctx, n.Poll)
}

// readings pulls poll until it fails, the context ends or the consumer stops.
func readings(ctx context.Context, poll func(context.Context) (Reading, error)) iter.Seq2[Reading, error] {
	return func(yield func(Reading, error) bool) {
		for {
			if err := ctx.Err(); err != nil {
				yield(Reading{}, err)
				return
			}
			r, err := poll(ctx)
			if err != nil {
				yield(Reading{}, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (n *Nunchuck) fail(phase error, err error) error {
	n.state = StateFailed
	return fmt.Errorf("%w: %w", phase, err)
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

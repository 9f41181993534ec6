package wii

import (
	"context"
	"iter"
)

// ReadingBehaviorFunc defines the function signature for nunchuck behavior.
// It returns the next reading or an error.
type ReadingBehaviorFunc func(ctx context.Context) (Reading, error)

// MockNunchuck produces readings from a behavior function without requiring
// any hardware. Once the behavior returns an error the mock behaves like a
// failed driver.
type MockNunchuck struct {
	behavior ReadingBehaviorFunc
	state    State
}

// NewMockNunchuck creates a new mock nunchuck with the given behavior function.
//
// Example usage:
//
//	// joystick sweeping right with Z held
//	x := uint8(0)
//	n := NewMockNunchuck(func(ctx context.Context) (Reading, error) {
//		x++
//		return Reading{JoystickX: x, JoystickY: 128, ZButtonPressed: true}, nil
//	})
func NewMockNunchuck(behavior ReadingBehaviorFunc) *MockNunchuck {
	return &MockNunchuck{behavior: behavior}
}

func (m *MockNunchuck) State() State {
	return m.state
}

func (m *MockNunchuck) Initialize(ctx context.Context) error {
	switch m.state {
	case StateReady:
		return ErrAlreadyInitialized
	case StateFailed:
		return ErrFailed
	}
	m.state = StateReady
	return nil
}

func (m *MockNunchuck) Poll(ctx context.Context) (Reading, error) {
	switch m.state {
	case StateUninitialized:
		return Reading{}, ErrNotInitialized
	case StateFailed:
		return Reading{}, ErrFailed
	}
	r, err := m.behavior(ctx)
	if err != nil {
		m.state = StateFailed
		return Reading{}, err
	}
	return r, nil
}

func (m *MockNunchuck) Readings(ctx context.Context) iter.Seq2[Reading, error] {
	return readings(ctx, m.Poll)
}

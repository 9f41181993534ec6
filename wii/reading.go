package wii

import (
	"fmt"
	"log/slog"
)

// FrameSize is the length of one accessory data frame.
const FrameSize = 6

// Frame is the raw payload returned by one accessory read.
type Frame [FrameSize]byte

// Reading is a decoded snapshot of one frame.
type Reading struct {
	JoystickX uint8 `yaml:"joystick_x"`
	JoystickY uint8 `yaml:"joystick_y"`
	// accelerometer axes are 10-bit (0-1023)
	AccelX         uint16 `yaml:"accel_x"`
	AccelY         uint16 `yaml:"accel_y"`
	AccelZ         uint16 `yaml:"accel_z"`
	CButtonPressed bool   `yaml:"c_button_pressed"`
	ZButtonPressed bool   `yaml:"z_button_pressed"`
}

/*
Frame layout:

	0: joystick X
	1: joystick Y
	2: accel X [9:2]
	3: accel Y [9:2]
	4: accel Z [9:2]
	5: accel Z [1:0] on bits 3:2, accel Y [1:0] on bits 5:4,
	   accel X [1:0] on bits 7:6, C button on bit 1, Z button on bit 0

Buttons are active low.
*/
func Decode(data Frame) Reading {
	status := uint16(data[5])
	return Reading{
		JoystickX:      data[0],
		JoystickY:      data[1],
		AccelX:         uint16(data[2])<<2 | (status>>6)&0b11,
		AccelY:         uint16(data[3])<<2 | (status>>4)&0b11,
		AccelZ:         uint16(data[4])<<2 | (status>>2)&0b11,
		CButtonPressed: data[5]&0b10 == 0,
		ZButtonPressed: data[5]&0b01 == 0,
	}
}

// DecodeBytes decodes a frame held in a slice. Anything other than exactly
// FrameSize bytes is rejected.
func DecodeBytes(data []byte) (Reading, error) {
	if len(data) != FrameSize {
		return Reading{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrShortFrame, FrameSize, len(data))
	}
	return Decode(Frame(data)), nil
}

func (r Reading) String() string {
	return fmt.Sprintf("joystick_x=%d joystick_y=%d accel_x=%d accel_y=%d accel_z=%d c_button_pressed=%t z_button_pressed=%t",
		r.JoystickX, r.JoystickY, r.AccelX, r.AccelY, r.AccelZ, r.CButtonPressed, r.ZButtonPressed)
}

func (r Reading) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("joystick_x", int(r.JoystickX)),
		slog.Int("joystick_y", int(r.JoystickY)),
		slog.Int("accel_x", int(r.AccelX)),
		slog.Int("accel_y", int(r.AccelY)),
		slog.Int("accel_z", int(r.AccelZ)),
		slog.Bool("c_button_pressed", r.CButtonPressed),
		slog.Bool("z_button_pressed", r.ZButtonPressed),
	)
}

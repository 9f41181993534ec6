package main

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/mklimuk/nunchuck/cmd/nunchuck/console"
	"github.com/mklimuk/nunchuck/pkg/config"
	"github.com/mklimuk/nunchuck/wii"
)

type printer interface {
	Print(r wii.Reading) error
}

func newPrinter(format string, w io.Writer, logger *slog.Logger) (printer, error) {
	switch format {
	case config.FormatText:
		return textPrinter{w: w}, nil
	case config.FormatYAML:
		return yamlPrinter{enc: yaml.NewEncoder(w)}, nil
	case config.FormatLog:
		return logPrinter{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

type textPrinter struct {
	w io.Writer
}

func (p textPrinter) Print(r wii.Reading) error {
	_, err := fmt.Fprintf(p.w, "%s %s c=%s z=%s\n", console.PictoJoystick,
		fmt.Sprintf("joystick_x=%d joystick_y=%d accel_x=%d accel_y=%d accel_z=%d", r.JoystickX, r.JoystickY, r.AccelX, r.AccelY, r.AccelZ),
		button(r.CButtonPressed), button(r.ZButtonPressed))
	return err
}

func button(pressed bool) string {
	if pressed {
		return console.Green("pressed")
	}
	return console.White("released")
}

// yamlPrinter writes one YAML document per reading.
type yamlPrinter struct {
	enc *yaml.Encoder
}

func (p yamlPrinter) Print(r wii.Reading) error {
	return p.enc.Encode(r)
}

type logPrinter struct {
	logger *slog.Logger
}

func (p logPrinter) Print(r wii.Reading) error {
	p.logger.Info("nunchuck reading", "reading", r)
	return nil
}

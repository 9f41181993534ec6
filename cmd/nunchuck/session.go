package main

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	gobot "gobot.io/x/gobot/v2/drivers/i2c"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"gobot.io/x/gobot/v2/platforms/raspi"
	"periph.io/x/conn/v3/physic"

	"github.com/mklimuk/nunchuck"
	"github.com/mklimuk/nunchuck/adapter"
	"github.com/mklimuk/nunchuck/i2c"
	"github.com/mklimuk/nunchuck/pkg/config"
	"github.com/mklimuk/nunchuck/wii"
)

// source is satisfied by both the hardware driver and the mock.
type source interface {
	Initialize(ctx context.Context) error
	Readings(ctx context.Context) iter.Seq2[wii.Reading, error]
}

// session is one driver bound to one freshly opened transport.
type session struct {
	source source
	close  func() error
}

func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

type gobotBoard interface {
	gobot.Connector
	Connect() error
	Finalize() error
}

func openSession(ctx context.Context, cfg config.Config) (*session, error) {
	slog.Debug("opening transport", "adapter", cfg.Adapter, "device", cfg.Device)
	switch cfg.Adapter {
	case config.AdapterDevfs:
		dev, err := i2c.OpenDevfs(cfg.Device)
		if err != nil {
			return nil, err
		}
		return &session{source: wii.NewNunchuck(dev), close: dev.Close}, nil
	case config.AdapterPeriph:
		bus, err := i2c.NewGenericBus(cfg.Device)
		if err != nil {
			return nil, err
		}
		err = bus.SetSpeed(physic.Frequency(cfg.SpeedHz) * physic.Hertz)
		if err != nil {
			_ = bus.Close()
			return nil, err
		}
		return &session{source: wii.NewNunchuck(nunchuck.NewBusDevice(bus)), close: bus.Close}, nil
	case config.AdapterNanoPi:
		return openGobotSession(nanopi.NewNeoAdaptor(), cfg.Bus)
	case config.AdapterRaspi:
		return openGobotSession(raspi.NewAdaptor(), cfg.Bus)
	case config.AdapterMCP2221:
		bridge := adapter.NewMCP2221(adapter.WithBridgeID(cfg.BridgeID))
		err := bridge.SetSpeed(ctx, cfg.SpeedHz)
		if err != nil {
			return nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return &session{
			source: wii.NewNunchuck(nunchuck.NewBusDevice(bridge)),
			close:  func() error { return bridge.Release(context.Background()) },
		}, nil
	case config.AdapterMock:
		return &session{source: wii.NewMockNunchuck(simulate())}, nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", cfg.Adapter)
	}
}

func openGobotSession(board gobotBoard, bus int) (*session, error) {
	err := board.Connect()
	if err != nil {
		return nil, fmt.Errorf("adaptor connect error: %w", err)
	}
	dev := i2c.NewGobotDevice(board, bus)
	return &session{
		source: wii.NewNunchuck(dev),
		close: func() error {
			err := dev.Close()
			if ferr := board.Finalize(); ferr != nil && err == nil {
				err = ferr
			}
			return err
		},
	}, nil
}

// simulate moves the stick in a slow square sweep, tilts the accelerometer
// along with it and alternates the buttons, paced like a real accessory.
func simulate() wii.ReadingBehaviorFunc {
	var tick int
	return func(ctx context.Context) (wii.Reading, error) {
		timer := time.NewTimer(wii.TriggerDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return wii.Reading{}, ctx.Err()
		}
		tick++
		phase := uint8(tick)
		return wii.Reading{
			JoystickX:      phase,
			JoystickY:      255 - phase,
			AccelX:         512 + uint16(phase),
			AccelY:         512,
			AccelZ:         716 - uint16(phase)/2,
			CButtonPressed: tick/64%2 == 1,
			ZButtonPressed: tick/128%2 == 1,
		}, nil
	}
}

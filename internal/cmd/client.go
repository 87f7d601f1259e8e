package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/hidplus/input"
	"github.com/Alia5/hidplus/input/joyinput"
	"github.com/Alia5/hidplus/input/sdlinput"
	"github.com/Alia5/hidplus/internal/log"
	"github.com/Alia5/hidplus/session"
	"github.com/Alia5/hidplus/slots"
	"github.com/Alia5/hidplus/switchpad"
)

type Client struct {
	ServerIP string `arg:"" name:"server-ip" help:"IP address of the console running the receiver"`

	Port            int           `help:"Receiver UDP port" default:"8000" env:"HIDPLUS_PORT"`
	LocalAddr       string        `help:"Local UDP address to send from" default:"0.0.0.0:8000" env:"HIDPLUS_LOCAL_ADDR"`
	TickRate        int           `help:"Snapshots sent per second" default:"60" env:"HIDPLUS_TICK_RATE"`
	CleanupWindow   time.Duration `help:"How long reset packets are repeated on exit" default:"3s" env:"HIDPLUS_CLEANUP_WINDOW"`
	CleanupInterval time.Duration `help:"Pause between reset packets" default:"10ms" env:"HIDPLUS_CLEANUP_INTERVAL"`

	Slot1 string `name:"slot.1" help:"Controller emulated on slot 1" enum:"none,pro,joycon-l-side,joycon-r-side" default:"pro" env:"HIDPLUS_SLOT_1"`
	Slot2 string `name:"slot.2" help:"Controller emulated on slot 2" enum:"none,pro,joycon-l-side,joycon-r-side" default:"pro" env:"HIDPLUS_SLOT_2"`
	Slot3 string `name:"slot.3" help:"Controller emulated on slot 3" enum:"none,pro,joycon-l-side,joycon-r-side" default:"pro" env:"HIDPLUS_SLOT_3"`
	Slot4 string `name:"slot.4" help:"Controller emulated on slot 4" enum:"none,pro,joycon-l-side,joycon-r-side" default:"pro" env:"HIDPLUS_SLOT_4"`

	Gesture  string `help:"Input that assigns an unbound gamepad to a slot" enum:"triggers,start" default:"triggers" env:"HIDPLUS_GESTURE"`
	SDL      bool   `name:"sdl" help:"Read gamepads through SDL" default:"true" negatable:"" env:"HIDPLUS_SDL"`
	Fallback bool   `help:"Also read gamepads through the OS joystick interface" env:"HIDPLUS_FALLBACK"`
}

// SlotConfig converts the slot and gesture flags.
func (c *Client) SlotConfig() (slots.Config, error) {
	var cfg slots.Config
	for i, s := range [slots.Count]string{c.Slot1, c.Slot2, c.Slot3, c.Slot4} {
		k, err := switchpad.ParseKind(s)
		if err != nil {
			return cfg, fmt.Errorf("slot.%d: %w", i+1, err)
		}
		cfg.Kinds[i] = k
	}
	g, err := slots.ParseGesture(c.Gesture)
	if err != nil {
		return cfg, err
	}
	cfg.Gesture = g
	return cfg, nil
}

// SessionConfig converts the transport flags.
func (c *Client) SessionConfig() session.Config {
	return session.Config{
		ServerIP:        c.ServerIP,
		Port:            c.Port,
		LocalAddr:       c.LocalAddr,
		TickRate:        c.TickRate,
		CleanupWindow:   c.CleanupWindow,
		CleanupInterval: c.CleanupInterval,
	}
}

// Run is called by Kong when the client command is executed.
func (c *Client) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readers, err := c.openReaders(logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, r := range readers {
			if err := r.Close(); err != nil {
				logger.Warn("Failed to close input backend", "backend", r.Name(), "error", err)
			}
		}
	}()

	return c.StartClient(ctx, readers, logger, rawLogger)
}

// StartClient runs the client loop over the given backends until ctx is done.
func (c *Client) StartClient(ctx context.Context, readers []input.Reader, logger *slog.Logger, rawLogger log.RawLogger) error {
	slotCfg, err := c.SlotConfig()
	if err != nil {
		return err
	}
	manager := slots.New(slotCfg, readers, logger)

	sess, err := session.New(c.SessionConfig(), manager, logger, rawLogger)
	if err != nil {
		return err
	}
	defer sess.Close()

	logger.Info("Starting hidplus client",
		"server", c.ServerIP,
		"slots", fmt.Sprintf("%v", slotCfg.Kinds),
		"gesture", slotCfg.Gesture.String())
	switch slotCfg.Gesture {
	case slots.GestureStart:
		logger.Info("Press Start on a gamepad to assign it to a slot")
	default:
		logger.Info("Press both triggers on a gamepad to assign it to a slot")
	}

	return sess.Run(ctx)
}

func (c *Client) openReaders(logger *slog.Logger) ([]input.Reader, error) {
	var readers []input.Reader
	if c.SDL {
		r, err := sdlinput.Open(logger)
		if err != nil {
			if !c.Fallback {
				return nil, err
			}
			logger.Warn("SDL backend unavailable, using joystick fallback only", "error", err)
		} else {
			readers = append(readers, r)
		}
	}
	if c.Fallback {
		readers = append(readers, joyinput.New(logger))
	}
	if len(readers) == 0 {
		return nil, errors.New("no input backend enabled; use --sdl or --fallback")
	}
	return readers, nil
}

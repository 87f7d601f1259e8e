package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/hidplus/internal/log"
	"github.com/Alia5/hidplus/monitor"
)

type Monitor struct {
	ListenAddr string `help:"UDP address to receive client packets on (use 127.0.0.1:8000 next to a local client)" default:"0.0.0.0:8000" env:"HIDPLUS_MONITOR_ADDR"`
}

// Run is called by Kong when the monitor command is executed.
func (m *Monitor) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return m.StartMonitor(ctx, logger, rawLogger)
}

func (m *Monitor) StartMonitor(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	logger.Info("Starting hidplus monitor", "listen", m.ListenAddr)
	srv := monitor.New(m.ListenAddr, logger, rawLogger)
	if err := srv.Listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down monitor")
		_ = srv.Close()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

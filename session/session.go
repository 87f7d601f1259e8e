// Package session drives the client: it polls the slot manager at a fixed
// rate, sends every snapshot to the receiver and tears all controllers down
// on exit.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/Alia5/hidplus/internal/log"
	"github.com/Alia5/hidplus/internal/sockopt"
	"github.com/Alia5/hidplus/slots"
	"github.com/Alia5/hidplus/wire"
)

const (
	DefaultPort            = 8000
	DefaultLocalAddr       = "0.0.0.0:8000"
	DefaultTickRate        = 60
	DefaultCleanupWindow   = 3 * time.Second
	DefaultCleanupInterval = 10 * time.Millisecond

	cleanedUpMessage = "Gamepads should now be cleaned up."
)

type Config struct {
	ServerIP        string
	Port            int
	LocalAddr       string
	TickRate        int
	CleanupWindow   time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig returns the stock transport settings for serverIP.
func DefaultConfig(serverIP string) Config {
	return Config{
		ServerIP:        serverIP,
		Port:            DefaultPort,
		LocalAddr:       DefaultLocalAddr,
		TickRate:        DefaultTickRate,
		CleanupWindow:   DefaultCleanupWindow,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// TransportError wraps a failure to reach the receiver.
type TransportError struct {
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("send to %s: %v (the server IP is either invalid or unreachable)", e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Session struct {
	cfg     Config
	manager *slots.Manager
	conn    *net.UDPConn
	dest    *net.UDPAddr
	logger  *slog.Logger
	raw     log.RawLogger
}

// New binds the local socket and resolves the receiver address.
func New(cfg Config, manager *slots.Manager, logger *slog.Logger, raw log.RawLogger) (*Session, error) {
	if cfg.ServerIP == "" {
		return nil, errors.New("server IP is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("invalid tick rate %d", cfg.TickRate)
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.LocalAddr == "" {
		cfg.LocalAddr = DefaultLocalAddr
	}
	if logger == nil {
		logger = slog.Default()
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}

	addr := net.JoinHostPort(cfg.ServerIP, strconv.Itoa(cfg.Port))
	dest, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, &TransportError{Addr: addr, Err: err}
	}

	conn, err := sockopt.ListenUDP(context.Background(), "udp4", cfg.LocalAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", cfg.LocalAddr, err)
	}

	return &Session{
		cfg:     cfg,
		manager: manager,
		conn:    conn,
		dest:    dest,
		logger:  logger,
		raw:     raw,
	}, nil
}

// LocalAddr returns the bound socket address.
func (s *Session) LocalAddr() net.Addr { return s.conn.LocalAddr() }

// UpdateServer sends the manager's current snapshot as one datagram.
func (s *Session) UpdateServer() error {
	rec := s.manager.Snapshot()
	if s.logger.Enabled(context.Background(), log.LevelTrace) {
		s.logger.Log(context.Background(), log.LevelTrace, "Sending snapshot",
			"connected", rec.Connected,
			"slots", fmt.Sprintf("%+v", rec.Slots))
	}
	return s.send(wire.Encode(rec))
}

// Tick runs one client iteration: drop vanished gamepads, process input,
// send the snapshot.
func (s *Session) Tick() error {
	s.manager.Sweep()
	s.manager.Poll()
	return s.UpdateServer()
}

// Cleanup unbinds every slot and keeps sending the neutral record for the
// cleanup window, so that at least one survives a lossy link. It always
// sends at least once and stops at the first send error.
func (s *Session) Cleanup() (string, error) {
	s.logger.Info("Cleaning up connected gamepads... This will take a moment.")
	s.manager.Reset()

	b := wire.Encode(wire.ResetRecord())
	start := time.Now()
	sent := 0
	for {
		if err := s.send(b); err != nil {
			return "", err
		}
		sent++
		if time.Since(start) >= s.cfg.CleanupWindow {
			break
		}
		time.Sleep(s.cfg.CleanupInterval)
	}
	s.logger.Debug("Sent reset records", "count", sent, "elapsed", time.Since(start))
	return cleanedUpMessage, nil
}

// Run ticks at the configured rate until ctx is done or a send fails. Both
// paths run Cleanup first. Cancellation returns nil.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()

	s.logger.Info("Sending input", "server", s.dest.String(), "local", s.conn.LocalAddr().String(), "rate", s.cfg.TickRate)

	for {
		select {
		case <-ctx.Done():
			msg, err := s.Cleanup()
			if err != nil {
				s.logger.Error("Cleanup failed", "error", err)
				return nil
			}
			s.logger.Info(msg)
			return nil
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				if _, cerr := s.Cleanup(); cerr != nil {
					s.logger.Warn("Cleanup failed", "error", cerr)
				}
				return err
			}
		}
	}
}

// Close releases the socket.
func (s *Session) Close() error {
	return s.conn.Close()
}

func (s *Session) send(b []byte) error {
	if _, err := s.conn.WriteToUDP(b, s.dest); err != nil {
		return &TransportError{Addr: s.dest.String(), Err: err}
	}
	s.raw.Log(false, s.dest.String(), b)
	return nil
}

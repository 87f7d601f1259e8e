// Package monitor is a receiver stand-in for debugging the client without a
// console. It decodes every datagram and tracks which virtual controllers a
// real receiver would have attached.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/Alia5/hidplus/internal/log"
	"github.com/Alia5/hidplus/internal/sockopt"
	"github.com/Alia5/hidplus/switchpad"
	"github.com/Alia5/hidplus/wire"
)

type Server struct {
	listenAddr string
	logger     *slog.Logger
	rawLogger  log.RawLogger

	mu       sync.Mutex
	conn     *net.UDPConn
	last     wire.Record
	received int
	attached [wire.SlotCount]uint16
}

func New(listenAddr string, logger *slog.Logger, rawLogger log.RawLogger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	return &Server{
		listenAddr: listenAddr,
		logger:     logger,
		rawLogger:  rawLogger,
	}
}

// Listen binds the UDP socket with SO_REUSEADDR, so a client on the same
// host can bind the wildcard address on the same port. ListenAndServe calls
// it implicitly.
func (s *Server) Listen() error {
	conn, err := sockopt.ListenUDP(context.Background(), "udp4", s.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.listenAddr, err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.logger.Info("Monitor listening", "addr", conn.LocalAddr().String())
	return nil
}

// Serve reads datagrams until Close.
func (s *Server) Serve() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return errors.New("monitor is not listening")
	}

	buf := make([]byte, 2048)
	for {
		n, peer, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) || strings.Contains(strings.ToLower(err.Error()), "use of closed network connection") {
				s.logger.Info("Monitor stopped")
				return nil
			}
			s.logger.Error("Read error", "error", err)
			continue
		}
		s.handle(peer.String(), buf[:n])
	}
}

func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Last returns the most recent valid record.
func (s *Server) Last() (wire.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.received > 0
}

// Received returns the number of valid records seen so far.
func (s *Server) Received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received
}

// Attached returns the controller kind the receiver would currently have on
// each slot, 0 meaning none.
func (s *Server) Attached() [wire.SlotCount]uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

func (s *Server) handle(peer string, data []byte) {
	s.rawLogger.Log(true, peer, data)

	var rec wire.Record
	if err := rec.UnmarshalBinary(data); err != nil {
		s.logger.Debug("Dropped datagram", "peer", peer, "size", len(data), "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = rec
	s.received++

	// The receiver only looks at the first Connected slots.
	n := min(int(rec.Connected), wire.SlotCount)
	for i := 0; i < n; i++ {
		kind := rec.Slots[i].Kind
		prev := s.attached[i]
		switch {
		case kind == 0 && prev != 0:
			s.attached[i] = 0
			s.logger.Info("Controller detached", "slot", i+1, "peer", peer)
		case kind != 0 && prev == 0:
			s.attached[i] = kind
			s.logger.Info("Controller attached", "slot", i+1, "kind", switchpad.Kind(kind).String(), "peer", peer)
		}
	}

	if s.logger.Enabled(context.Background(), log.LevelTrace) {
		for i := 0; i < n; i++ {
			sl := rec.Slots[i]
			s.logger.Log(context.Background(), log.LevelTrace, "Slot state",
				"slot", i+1,
				"buttons", fmt.Sprintf("%#07x", sl.Buttons),
				"left", fmt.Sprintf("(%d,%d)", sl.LeftX, sl.LeftY),
				"right", fmt.Sprintf("(%d,%d)", sl.RightX, sl.RightY))
		}
	}
}

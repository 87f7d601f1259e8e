package monitor_test

import (
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/Alia5/hidplus/internal/log"
	"github.com/Alia5/hidplus/monitor"
	"github.com/Alia5/hidplus/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMonitor(t *testing.T, raw log.RawLogger) (*monitor.Server, *net.UDPConn) {
	t.Helper()
	srv := monitor.New("127.0.0.1:0", slog.New(slog.NewTextHandler(io.Discard, nil)), raw)
	require.NoError(t, srv.Listen())

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()
	t.Cleanup(func() {
		_ = srv.Close()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("Serve did not return after Close")
		}
	})

	tx, err := net.DialUDP("udp4", nil, srv.Addr().(*net.UDPAddr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Close() })
	return srv, tx
}

func send(t *testing.T, tx *net.UDPConn, b []byte) {
	t.Helper()
	_, err := tx.Write(b)
	require.NoError(t, err)
}

func waitReceived(t *testing.T, srv *monitor.Server, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return srv.Received() >= n }, 2*time.Second, 5*time.Millisecond)
}

func TestMonitorTracksAttachments(t *testing.T) {
	srv, tx := startMonitor(t, nil)

	_, ok := srv.Last()
	assert.False(t, ok)

	rec := wire.NewRecord(2, [wire.SlotCount]wire.Slot{
		{Kind: 1, Buttons: 1},
		{Kind: 2},
	})
	send(t, tx, wire.Encode(rec))
	waitReceived(t, srv, 1)

	last, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, rec, last)
	assert.Equal(t, [wire.SlotCount]uint16{1, 2, 0, 0}, srv.Attached())

	send(t, tx, wire.Encode(wire.ResetRecord()))
	waitReceived(t, srv, 2)
	assert.Equal(t, [wire.SlotCount]uint16{}, srv.Attached())
}

func TestMonitorOnlyWalksConnectedSlots(t *testing.T) {
	srv, tx := startMonitor(t, nil)

	send(t, tx, wire.Encode(wire.NewRecord(2, [wire.SlotCount]wire.Slot{{Kind: 1}, {Kind: 1}})))
	waitReceived(t, srv, 1)

	// A header of 0 leaves every controller attached.
	send(t, tx, wire.Encode(wire.NewRecord(0, [wire.SlotCount]wire.Slot{})))
	waitReceived(t, srv, 2)
	assert.Equal(t, [wire.SlotCount]uint16{1, 1, 0, 0}, srv.Attached())
}

func TestMonitorDropsGarbage(t *testing.T) {
	srv, tx := startMonitor(t, log.NewRaw(io.Discard))

	send(t, tx, []byte{0x76, 0x32, 0x01})
	bad := make([]byte, wire.RecordSize)
	send(t, tx, bad)
	good := wire.Encode(wire.NewRecord(1, [wire.SlotCount]wire.Slot{{Kind: 3}}))
	send(t, tx, good)

	waitReceived(t, srv, 1)
	assert.Equal(t, 1, srv.Received())
	assert.Equal(t, uint16(3), srv.Attached()[0])
}

func TestMonitorServeBeforeListen(t *testing.T) {
	srv := monitor.New("127.0.0.1:0", nil, nil)
	assert.Nil(t, srv.Addr())
	assert.Error(t, srv.Serve())
	assert.NoError(t, srv.Close())
}

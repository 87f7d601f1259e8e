package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records whole datagrams as hex.
type RawLogger interface {
	// Log writes one datagram. rx is true for received packets.
	Log(rx bool, peer string, data []byte)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw creates a RawLogger writing to w. A nil writer discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log emits one line per datagram: timestamp, direction, peer, size and hex.
func (r *rawLogger) Log(rx bool, peer string, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}

	dir := "TX"
	if rx {
		dir = "RX"
	}
	line := fmt.Sprintf("%s %s %s %d bytes: %s\n",
		r.now().Format("2006/01/02 15:04:05.000"),
		dir,
		peer,
		len(data),
		hex.EncodeToString(data))

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}

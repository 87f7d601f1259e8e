//go:build unix

package sockopt

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// ReuseAddr is a net.ListenConfig Control hook that sets SO_REUSEADDR.
func ReuseAddr(_, _ string, c syscall.RawConn) error {
	var serr error
	if err := c.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return serr
}

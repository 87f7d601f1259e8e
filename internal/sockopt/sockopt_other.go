//go:build !unix && !windows

package sockopt

import "syscall"

func ReuseAddr(_, _ string, _ syscall.RawConn) error {
	return nil
}

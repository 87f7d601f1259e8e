// Package sockopt binds UDP sockets with SO_REUSEADDR so the client and a
// local monitor can share a port.
package sockopt

import (
	"context"
	"fmt"
	"net"
)

// ListenUDP binds a reusable UDP socket on address.
func ListenUDP(ctx context.Context, network, address string) (*net.UDPConn, error) {
	lc := net.ListenConfig{Control: ReuseAddr}
	pc, err := lc.ListenPacket(ctx, network, address)
	if err != nil {
		return nil, err
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, fmt.Errorf("unexpected packet conn %T", pc)
	}
	return conn, nil
}

package tunnel

import (
	"context"
	"net"
	"time"
)

// Network is the narrow set of socket operations command execution needs:
// open an outbound TCP connection, or open a listener for BIND. Any concrete
// networking layer can satisfy it; tests substitute their own.
type Network interface {
	Dial(ctx context.Context, address string) (net.Conn, error)
	Listen(ctx context.Context, address string) (net.Listener, error)
}

type stdNetwork struct {
	dialer net.Dialer
	lc     net.ListenConfig
}

// NewNetwork returns the default Network on top of the operating system's
// TCP stack.
func NewNetwork(connectTimeout time.Duration) Network {
	return &stdNetwork{
		dialer: net.Dialer{Timeout: connectTimeout},
	}
}

func (n *stdNetwork) Dial(ctx context.Context, address string) (net.Conn, error) {
	return n.dialer.DialContext(ctx, "tcp", address)
}

func (n *stdNetwork) Listen(ctx context.Context, address string) (net.Listener, error) {
	return n.lc.Listen(ctx, "tcp", address)
}

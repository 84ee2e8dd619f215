package socks5protocol

import (
	"net"
	"time"

	"github.com/duratarskeyk/go-common-utils/idlenet"
)

// readWriter is the handshake-phase view of the client connection: every
// read and write carries the handshake deadline, and the bytes moved are
// tallied so the session's traffic counters include the handshake itself.
type readWriter struct {
	conn    net.Conn
	timeout time.Duration

	fromClient int64
	toClient   int64
}

func (c *readWriter) Read(p []byte) (int, error) {
	n, err := idlenet.ReadWithTimeout(c.conn, c.timeout, p)
	c.fromClient += int64(n)
	return n, err
}

func (c *readWriter) Write(p []byte) (int, error) {
	n, err := idlenet.WriteWithTimeout(c.conn, c.timeout, p)
	c.toClient += int64(n)
	return n, err
}

// Package netmock provides test doubles for the tunnel capability
// interfaces and small local helpers for end-to-end tests.
package netmock

import (
	"bytes"
	"context"
	"io"
	"net"
	"sync"
	"testing"
)

// Network is a scriptable tunnel.Network. Dial and Listen record the
// addresses they were asked for and delegate to the configured functions.
type Network struct {
	DialFunc   func(ctx context.Context, address string) (net.Conn, error)
	ListenFunc func(ctx context.Context, address string) (net.Listener, error)

	mu       sync.Mutex
	dialed   []string
	listened []string
}

func (n *Network) Dial(ctx context.Context, address string) (net.Conn, error) {
	n.mu.Lock()
	n.dialed = append(n.dialed, address)
	n.mu.Unlock()
	return n.DialFunc(ctx, address)
}

func (n *Network) Listen(ctx context.Context, address string) (net.Listener, error) {
	n.mu.Lock()
	n.listened = append(n.listened, address)
	n.mu.Unlock()
	return n.ListenFunc(ctx, address)
}

func (n *Network) Dialed() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.dialed...)
}

func (n *Network) Listened() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.listened...)
}

// Resolver returns a fixed answer for every hostname.
type Resolver struct {
	IP  net.IP
	Err error

	mu       sync.Mutex
	resolved []string
}

func (r *Resolver) Resolve(_ context.Context, host string) (net.IP, error) {
	r.mu.Lock()
	r.resolved = append(r.resolved, host)
	r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.IP, nil
}

func (r *Resolver) Resolved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.resolved...)
}

// AssertEcho writes msg to conn and fails the test unless the exact same
// bytes come back.
func AssertEcho(t *testing.T, conn io.ReadWriter, msg []byte) {
	t.Helper()

	if _, err := conn.Write(msg); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, len(msg))
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, msg) {
		t.Fatalf("expected %q got %q", string(msg), string(buf))
	}
}

// StartEchoListener starts a local TCP listener whose connections echo
// everything they receive until the peer closes.
func StartEchoListener(t *testing.T) net.Listener {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				_, _ = io.Copy(c, c)
			}(c)
		}
	}()

	return ln
}

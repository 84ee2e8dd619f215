package socks5protocol

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/proxycore/socksd/corestructs"
)

func newTestRequest(conn net.Conn, timeout time.Duration) *Socks5Request {
	return &Socks5Request{
		Fields:        &corestructs.Fields{Conn: conn, Timeouts: &corestructs.Timeouts{Handshake: timeout, Write: timeout}},
		handshakeConn: readWriter{conn: conn, timeout: timeout},
	}
}

func TestNegotiateNoAuthSelected(t *testing.T) {
	methodLists := [][]byte{
		{1, 0},
		{2, 2, 0},
		{3, 1, 2, 0},
	}
	for i, v := range methodLists {
		c1, c2 := net.Pipe()
		replyChan := make(chan []byte)
		go func(data []byte) {
			c1.Write(data)
			reply := make([]byte, 2)
			c1.Read(reply)
			replyChan <- reply
		}(v)

		req := newTestRequest(c2, 30*time.Second)
		if err := negotiate(req); err != nil {
			t.Errorf("Test %d: expected err to be nil, got %s", i+1, err)
		}
		if reply := <-replyChan; !bytes.Equal(reply, []byte{5, 0}) {
			t.Errorf("Test %d: expected reply {5, 0}, got %v", i+1, reply)
		}
		c1.Close()
		c2.Close()
	}
}

func TestNegotiateNoAcceptableMethod(t *testing.T) {
	c1, c2 := net.Pipe()
	replyChan := make(chan []byte)
	go func() {
		c1.Write([]byte{2, 1, 2})
		reply := make([]byte, 2)
		c1.Read(reply)
		replyChan <- reply
	}()

	req := newTestRequest(c2, 30*time.Second)
	if err := negotiate(req); !errors.Is(err, ErrNoAcceptableAuthMethod) {
		t.Errorf("Expected ErrNoAcceptableAuthMethod, got %v", err)
	}
	if reply := <-replyChan; !bytes.Equal(reply, []byte{5, 255}) {
		t.Errorf("Expected reply {5, 255}, got %v", reply)
	}
	c1.Close()
	c2.Close()
}

func TestNegotiateEmptyMethodList(t *testing.T) {
	c1, c2 := net.Pipe()
	replyChan := make(chan []byte)
	go func() {
		c1.Write([]byte{0})
		reply := make([]byte, 2)
		c1.Read(reply)
		replyChan <- reply
	}()

	req := newTestRequest(c2, 30*time.Second)
	if err := negotiate(req); !errors.Is(err, ErrNoAuthMethodsOffered) {
		t.Errorf("Expected ErrNoAuthMethodsOffered, got %v", err)
	}
	if reply := <-replyChan; !bytes.Equal(reply, []byte{5, 255}) {
		t.Errorf("Expected reply {5, 255}, got %v", reply)
	}
	c1.Close()
	c2.Close()
}

func TestNegotiateShortRead(t *testing.T) {
	c1, c2 := net.Pipe()
	go func() {
		c1.Write([]byte{4, 0})
		c1.Close()
	}()

	req := newTestRequest(c2, 100*time.Millisecond)
	if err := negotiate(req); err == nil {
		t.Error("Expected err to not be nil")
	}
	c2.Close()
}

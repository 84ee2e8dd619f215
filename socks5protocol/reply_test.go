package socks5protocol

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/proxycore/socksd/corestructs"
)

func TestReplyBytes(t *testing.T) {
	tests := []struct {
		name  string
		reply *Reply
		want  []byte
	}{
		{
			"success ipv4",
			&Reply{Status: SuccessReply, AddrType: IPv4Address, Addr: []byte{10, 0, 0, 1}, Port: 1080},
			[]byte{5, 0, 0, 1, 10, 0, 0, 1, 0x04, 0x38},
		},
		{
			"success ipv6",
			&Reply{Status: SuccessReply, AddrType: IPv6Address, Addr: bytes.Repeat([]byte{0xAB}, 16), Port: 257},
			append(append([]byte{5, 0, 0, 4}, bytes.Repeat([]byte{0xAB}, 16)...), 1, 1),
		},
		{
			"success hostname verbatim",
			&Reply{Status: SuccessReply, AddrType: HostnameAddress, Addr: []byte{10, 0, 0, 1}, Hostname: []byte("ya.ru"), Port: 80},
			[]byte{5, 0, 0, 3, 5, 'y', 'a', '.', 'r', 'u', 0, 80},
		},
		{
			"hostname omitted falls back to bound address",
			&Reply{Status: SuccessReply, AddrType: HostnameAddress, Addr: []byte{10, 0, 0, 1}, Port: 80},
			[]byte{5, 0, 0, 3, 4, 10, 0, 0, 1, 0, 80},
		},
		{
			"failure zero ipv4",
			&Reply{Status: HostUnreachable, AddrType: IPv4Address},
			[]byte{5, 4, 0, 1, 0, 0, 0, 0, 0, 0},
		},
		{
			"failure zero ipv6",
			&Reply{Status: ServerFailure, AddrType: IPv6Address},
			append(append([]byte{5, 1, 0, 4}, make([]byte, 16)...), 0, 0),
		},
		{
			"failure zero hostname",
			&Reply{Status: AddrTypeNotSupported, AddrType: HostnameAddress},
			[]byte{5, 8, 0, 3, 4, 0, 0, 0, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reply.Bytes(); !bytes.Equal(got, tt.want) {
				t.Errorf("Bytes mismatch:\ngot  %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestReplyPayloadWidthMatchesType(t *testing.T) {
	statuses := []byte{
		SuccessReply, ServerFailure, RuleFailure, NetworkUnreachable,
		HostUnreachable, ConnectionRefused, TTLExpired, CommandNotSupported,
		AddrTypeNotSupported,
	}
	for _, status := range statuses {
		if got := len((&Reply{Status: status, AddrType: IPv4Address}).Bytes()); got != 10 {
			t.Errorf("Status %d: IPv4 reply length %d != 10", status, got)
		}
		if got := len((&Reply{Status: status, AddrType: IPv6Address}).Bytes()); got != 22 {
			t.Errorf("Status %d: IPv6 reply length %d != 22", status, got)
		}
	}
}

func TestSendFailReply(t *testing.T) {
	tests := []struct {
		hostType int
		code     byte
		want     []byte
	}{
		{corestructs.HostTypeIPv4, CommandNotSupported, []byte{5, 7, 0, 1, 0, 0, 0, 0, 0, 0}},
		{corestructs.HostTypeIPv6, HostUnreachable, append(append([]byte{5, 4, 0, 4}, make([]byte, 16)...), 0, 0)},
		{corestructs.HostTypeHostname, HostUnreachable, []byte{5, 4, 0, 3, 4, 0, 0, 0, 0, 0, 0}},
	}
	for i, tt := range tests {
		c1, c2 := net.Pipe()
		replyChan := make(chan []byte)
		go func(size int) {
			reply := make([]byte, size)
			c1.Read(reply)
			replyChan <- reply
		}(len(tt.want))

		req := newTestRequest(c2, 30*time.Second)
		req.Fields.HostType = tt.hostType
		if err := SendFailReply(req, tt.code); err != nil {
			t.Errorf("Test %d: expected err to be nil, got %s", i+1, err)
		}
		if reply := <-replyChan; !bytes.Equal(reply, tt.want) {
			t.Errorf("Test %d: reply mismatch:\ngot  %v\nwant %v", i+1, reply, tt.want)
		}
		c1.Close()
		c2.Close()
	}
}

func TestNewSuccessReply(t *testing.T) {
	bound := &Address{Type: IPv4Address, Value: []byte{192, 168, 0, 1}, Port: 4444}
	reply := NewSuccessReply(IPv4Address, bound, nil)
	want := []byte{5, 0, 0, 1, 192, 168, 0, 1, 0x11, 0x5C}
	if got := reply.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Reply mismatch:\ngot  %v\nwant %v", got, want)
	}

	reply = NewSuccessReply(HostnameAddress, bound, []byte("example.org"))
	want = append([]byte{5, 0, 0, 3, 11}, []byte("example.org")...)
	want = append(want, 0x11, 0x5C)
	if got := reply.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Reply mismatch:\ngot  %v\nwant %v", got, want)
	}
}

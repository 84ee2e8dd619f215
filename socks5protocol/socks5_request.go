package socks5protocol

import (
	"github.com/proxycore/socksd/corestructs"
	"go.uber.org/zap"
)

type Socks5Request struct {
	Fields *corestructs.Fields

	handshakeConn readWriter

	Command byte
}

// Read drives the handshake: method negotiation followed by the request
// header. The version byte was already consumed by the dispatcher, so the
// stream starts at the method count.
func (req *Socks5Request) Read() error {
	fields := req.Fields
	req.handshakeConn.conn = fields.Conn
	req.handshakeConn.timeout = fields.Timeouts.Handshake
	req.handshakeConn.fromClient = 0
	req.handshakeConn.toClient = 0
	fields.LogFields = append(fields.LogFields,
		zap.String("session_id", fields.SessionID),
		zap.String("user_ip", fields.UserIP),
		zap.String("proxy_ip", fields.ProxyIP),
		zap.String("type", "SOCKS5"),
	)

	if err := negotiate(req); err != nil {
		return &ErrNegotiationFailure{err: err}
	}

	if err := readCommand(req); err != nil {
		return &ErrCommandReadFailure{err: err}
	}

	fields.FillLogFields()

	fields.Download = req.handshakeConn.toClient
	fields.Upload = req.handshakeConn.fromClient + 1 // first byte 5

	return nil
}

// HostnameBytes returns the raw hostname from a DOMAIN request, nil for IP
// requests. Replies echo these bytes verbatim.
func (req *Socks5Request) HostnameBytes() []byte {
	if req.Fields.HostType != corestructs.HostTypeHostname {
		return nil
	}
	return []byte(req.Fields.Host)
}

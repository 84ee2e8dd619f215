// Package mux reads the protocol version byte off a fresh connection and
// dispatches the SOCKS5 handler. Everything else is rejected on the spot.
package mux

import (
	"context"
	"net"

	"github.com/duratarskeyk/go-common-utils/idlenet"

	"github.com/proxycore/socksd/corestructs"
	"github.com/proxycore/socksd/socks5protocol"
)

type Handler struct {
	SOCKS5Handler func(ctx context.Context, req *socks5protocol.Socks5Request)
	ExitHandler   func(conn net.Conn)

	Timeouts *corestructs.Timeouts
}

func (h Handler) Handle(
	ctx context.Context,
	conn net.Conn,
	sessionID, proxyIP, userIP string,
) {
	f := []byte{0}
	_, err := idlenet.ReadWithTimeout(conn, h.Timeouts.Handshake, f)
	if err != nil {
		h.ExitHandler(conn)
		return
	}

	if f[0] == 5 {
		req := socks5protocol.GetSocks5Request()
		fields := req.Fields
		fields.Conn = conn
		fields.Timeouts = h.Timeouts
		fields.SessionID = sessionID
		fields.UserIP = userIP
		fields.ProxyIP = proxyIP

		h.SOCKS5Handler(ctx, req)
		socks5protocol.PutSocks5Request(req)
	}
	h.ExitHandler(conn)
}

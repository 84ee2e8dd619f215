// Package tunnel executes parsed SOCKS5 requests: it opens the outbound
// connection or rendezvous listener, writes the replies, and relays bytes
// until either peer disconnects.
package tunnel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/proxycore/socksd/corestructs"
	"github.com/proxycore/socksd/resolver"
	"github.com/proxycore/socksd/socks5protocol"
)

type Handler struct {
	Network  Network
	Resolver resolver.Resolver
	Logger   *zap.Logger
}

// Handle runs one session start to finish: handshake, command execution,
// relay. Every failure after the handshake became readable is converted into
// exactly one best-effort reply; the client connection itself is closed by
// the caller on return.
func (h *Handler) Handle(ctx context.Context, req *socks5protocol.Socks5Request) {
	fields := req.Fields

	if err := req.Read(); err != nil {
		h.replyForError(req, err)
		h.Logger.Info("handshake failed", append(fields.LogFields, zap.Error(err))...)
		return
	}

	logger := h.Logger.With(fields.LogFields...)

	ip := fields.HostIP
	if fields.HostType == corestructs.HostTypeHostname {
		var err error
		ip, err = h.Resolver.Resolve(ctx, fields.Host)
		if err != nil {
			h.replyForError(req, err)
			logger.Warn("failed to resolve host", zap.Error(err))
			return
		}
	}
	target := net.JoinHostPort(ip.String(), fields.Port)

	var err error
	switch req.Command {
	case socks5protocol.ConnectCommand:
		err = h.connect(ctx, req, target, logger)
	case socks5protocol.BindCommand:
		err = h.bind(ctx, req, target, logger)
	}
	if err != nil {
		h.replyForError(req, err)
		logger.Warn("session failed", zap.Error(err))
	}
}

// connect opens the outbound connection and, on success, reports its local
// address back to the client before starting the relay. Dial failures are
// answered with HOST_UNREACHABLE and end the session without a tunnel.
func (h *Handler) connect(ctx context.Context, req *socks5protocol.Socks5Request, target string, logger *zap.Logger) error {
	remote, err := h.Network.Dial(ctx, target)
	if err != nil {
		logger.Info("failed to connect", zap.String("target", target), zap.Error(err))
		_ = socks5protocol.SendFailReply(req, socks5protocol.HostUnreachable)
		return nil
	}

	bound := socks5protocol.AddressFromNetAddr(remote.LocalAddr())
	reply := socks5protocol.NewSuccessReply(socks5protocol.AddrTypeForHostType(req.Fields.HostType), bound, req.HostnameBytes())
	if err := socks5protocol.SendReply(req, reply); err != nil {
		remote.Close()
		return nil
	}

	h.relay(ctx, req, remote, logger)
	return nil
}

// bind opens a rendezvous listener and reports it to the client, accepts
// exactly one inbound peer, reports the peer in a second reply, then relays.
// The second reply never carries the hostname, only the peer's address.
func (h *Handler) bind(ctx context.Context, req *socks5protocol.Socks5Request, target string, logger *zap.Logger) error {
	ln, err := h.Network.Listen(ctx, target)
	if err != nil {
		return fmt.Errorf("bind %s: %w", target, err)
	}
	defer ln.Close()

	addrType := socks5protocol.AddrTypeForHostType(req.Fields.HostType)
	bound := socks5protocol.AddressFromNetAddr(ln.Addr())
	if err := socks5protocol.SendReply(req, socks5protocol.NewSuccessReply(addrType, bound, req.HostnameBytes())); err != nil {
		return nil
	}
	logger.Debug("awaiting inbound peer", zap.String("bound", bound.StrAddrWithPort))

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	inbound, err := ln.Accept()
	stop()
	if err != nil {
		return fmt.Errorf("accept on %s: %w", bound.StrAddrWithPort, err)
	}
	ln.Close()

	peer := socks5protocol.AddressFromNetAddr(inbound.RemoteAddr())
	logger.Info("accepted inbound peer", zap.String("peer", peer.StrAddrWithPort))
	if err := socks5protocol.SendReply(req, socks5protocol.NewSuccessReply(addrType, peer, nil)); err != nil {
		inbound.Close()
		return nil
	}

	h.relay(ctx, req, inbound, logger)
	return nil
}

func (h *Handler) relay(ctx context.Context, req *socks5protocol.Socks5Request, remote net.Conn, logger *zap.Logger) {
	fields := req.Fields
	start := time.Now()

	upload, download, err := Relay(ctx, fields.Conn, remote)
	fields.Upload += upload
	fields.Download += download

	logFields := []zap.Field{
		zap.Int64("upload", fields.Upload),
		zap.Int64("download", fields.Download),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		logFields = append(logFields, zap.Error(err))
	}
	logger.Info("tunnel closed", logFields...)
}

// replyForError sends the best-effort failure reply for err. Failures while
// sending it are swallowed so they cannot mask the original failure.
func (h *Handler) replyForError(req *socks5protocol.Socks5Request, err error) {
	status, ok := replyStatus(err)
	if !ok {
		return
	}
	_ = socks5protocol.SendFailReply(req, status)
}

// replyStatus maps a failure kind to the reply status it produces. The
// second value is false when no reply should be attempted: the negotiation
// already answered 0xFF, or the client stream itself failed mid-handshake.
func replyStatus(err error) (byte, bool) {
	switch {
	case errors.Is(err, socks5protocol.ErrVersionMismatch),
		errors.Is(err, socks5protocol.ErrUnknownCommand):
		return socks5protocol.CommandNotSupported, true
	case errors.Is(err, socks5protocol.ErrUnknownAddressType):
		return socks5protocol.AddrTypeNotSupported, true
	case errors.Is(err, resolver.ErrUnresolvableHost):
		return socks5protocol.HostUnreachable, true
	}

	var negotiationErr *socks5protocol.ErrNegotiationFailure
	var commandErr *socks5protocol.ErrCommandReadFailure
	if errors.As(err, &negotiationErr) || errors.As(err, &commandErr) {
		return 0, false
	}

	return socks5protocol.ServerFailure, true
}

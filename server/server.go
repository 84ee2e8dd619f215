// Package server accepts client connections and runs one SOCKS5 session per
// connection.
package server

import (
	"context"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proxycore/socksd/corestructs"
	"github.com/proxycore/socksd/mux"
	"github.com/proxycore/socksd/resolver"
	"github.com/proxycore/socksd/tunnel"
)

type Config struct {
	Timeouts *corestructs.Timeouts
	Network  tunnel.Network
	Resolver resolver.Resolver
	Logger   *zap.Logger
}

type Server struct {
	logger *zap.Logger
	mux    mux.Handler
}

// New fills in defaults for any Config field left nil.
func New(cfg Config) *Server {
	if cfg.Timeouts == nil {
		cfg.Timeouts = corestructs.DefaultTimeouts()
	}
	if cfg.Network == nil {
		cfg.Network = tunnel.NewNetwork(cfg.Timeouts.Connect)
	}
	if cfg.Resolver == nil {
		cfg.Resolver = resolver.NewSystem()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	sessions := &tunnel.Handler{
		Network:  cfg.Network,
		Resolver: cfg.Resolver,
		Logger:   cfg.Logger,
	}

	return &Server{
		logger: cfg.Logger,
		mux: mux.Handler{
			SOCKS5Handler: sessions.Handle,
			ExitHandler:   func(conn net.Conn) { _ = conn.Close() },
			Timeouts:      cfg.Timeouts,
		},
	}
}

// Serve accepts connections until ctx is canceled or the listener fails.
// Each connection runs in its own goroutine; the session owns its streams
// and closes them on every exit path.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	sessionID := uuid.NewString()
	s.mux.Handle(ctx, conn, sessionID, hostOnly(conn.LocalAddr()), hostOnly(conn.RemoteAddr()))
}

func hostOnly(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

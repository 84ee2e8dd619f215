package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/proxycore/socksd/corestructs"
	"github.com/proxycore/socksd/resolver"
	"github.com/proxycore/socksd/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		listen       = pflag.String("listen", "127.0.0.1:1080", "SOCKS5 listen address")
		dnsServer    = pflag.String("dns", "", "Upstream DNS server for domain requests (host:port). Empty uses the system resolver.")
		timeoutsPath = pflag.String("timeouts", "", "Path to a JSON timeouts file with per-phase values in seconds. Empty uses built-in defaults.")
		verbose      = pflag.Bool("verbose", false, "Enable development logging")
	)

	pflag.CommandLine.SortFlags = false
	pflag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	timeouts, err := loadTimeouts(*timeoutsPath)
	if err != nil {
		return fmt.Errorf("invalid --timeouts: %w", err)
	}

	var res resolver.Resolver = resolver.NewSystem()
	if *dnsServer != "" {
		res = resolver.NewUpstream(*dnsServer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", *listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", *listen, err)
	}

	srv := server.New(server.Config{
		Timeouts: timeouts,
		Resolver: res,
		Logger:   logger,
	})

	logger.Info("listening", zap.String("addr", ln.Addr().String()))
	return srv.Serve(ctx, ln)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadTimeouts(path string) (*corestructs.Timeouts, error) {
	timeouts := corestructs.DefaultTimeouts()
	if path == "" {
		return timeouts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, timeouts); err != nil {
		return nil, err
	}
	return timeouts, nil
}

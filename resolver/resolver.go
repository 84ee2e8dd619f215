// Package resolver turns the hostnames of DOMAIN requests into IP addresses.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/miekg/dns"
)

var ErrUnresolvableHost = errors.New("unresolvable host")

// Resolver resolves one hostname to a single address. IPv4 and IPv6 request
// targets never reach a Resolver; they are already decoded.
type Resolver interface {
	Resolve(ctx context.Context, host string) (net.IP, error)
}

// HostError wraps a resolution failure with the hostname that caused it.
// It matches ErrUnresolvableHost under errors.Is.
type HostError struct {
	Host string
	err  error
}

func (e *HostError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("failed to resolve host %q", e.Host)
	}
	return fmt.Sprintf("failed to resolve host %q: %s", e.Host, e.err)
}

func (e *HostError) Unwrap() error {
	return e.err
}

func (e *HostError) Is(target error) bool {
	return target == ErrUnresolvableHost
}

// System resolves through the operating system's resolver.
type System struct {
	resolver *net.Resolver
}

func NewSystem() *System {
	return &System{resolver: net.DefaultResolver}
}

func (s *System) Resolve(ctx context.Context, host string) (net.IP, error) {
	ips, err := s.resolver.LookupIP(ctx, "ip", host)
	if err != nil || len(ips) == 0 {
		return nil, &HostError{Host: host, err: err}
	}
	return ips[0], nil
}

// Upstream queries one DNS server directly, A records first, AAAA as the
// fallback.
type Upstream struct {
	server string
	client *dns.Client
}

// NewUpstream returns a resolver that asks server, given as host:port.
func NewUpstream(server string) *Upstream {
	return &Upstream{
		server: server,
		client: new(dns.Client),
	}
}

func (u *Upstream) Resolve(ctx context.Context, host string) (net.IP, error) {
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), qtype)
		msg.RecursionDesired = true

		in, _, err := u.client.ExchangeContext(ctx, msg, u.server)
		if err != nil {
			return nil, &HostError{Host: host, err: err}
		}
		if in.Rcode != dns.RcodeSuccess {
			continue
		}
		for _, rr := range in.Answer {
			switch answer := rr.(type) {
			case *dns.A:
				return answer.A, nil
			case *dns.AAAA:
				return answer.AAAA, nil
			}
		}
	}

	return nil, &HostError{Host: host}
}

package dnsbench

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

var (
	// ErrInvalidIPv4 is returned when a provider does not carry a valid IPv4 address.
	ErrInvalidIPv4 = errors.New("invalid IPv4 address")

	// ErrNoAddresses is returned when a lookup succeeds but yields neither A nor AAAA records.
	ErrNoAddresses = errors.New("no addresses in response")
)

// Resolver resolves host names against a single nameserver.
type Resolver interface {
	// LookupHost returns the addresses of the host. The lookup must give up once ctx is done.
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// ResolverFactory creates a Resolver that queries exclusively the nameserver on the given address.
type ResolverFactory func(server string) Resolver

// RcodeError is returned when the nameserver answers with a non-success response code.
type RcodeError struct {
	Rcode int
}

func (e *RcodeError) Error() string {
	return fmt.Sprintf("lookup failed with rcode %s", dns.RcodeToString[e.Rcode])
}

// NewDNSResolverFactory returns a ResolverFactory creating plain DNS over UDP resolvers.
// Each DNS exchange times out after the timeout and every query is tried at most attempts times.
func NewDNSResolverFactory(timeout time.Duration, attempts int) ResolverFactory {
	if attempts < 1 {
		attempts = 1
	}
	return func(server string) Resolver {
		return &dnsResolver{
			client: &dns.Client{
				Net:     UDPTransport,
				Timeout: timeout,
			},
			server:   server,
			attempts: attempts,
		}
	}
}

type dnsResolver struct {
	client   *dns.Client
	server   string
	attempts int
}

// LookupHost asks for A records and falls back to AAAA records when the host has no IPv4 address.
func (r *dnsResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	fqdn := dns.Fqdn(host)
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		resp, err := r.exchange(ctx, fqdn, qtype)
		if err != nil {
			return nil, err
		}
		if resp.Rcode != dns.RcodeSuccess {
			return nil, &RcodeError{Rcode: resp.Rcode}
		}
		if addrs := addresses(resp); len(addrs) > 0 {
			return addrs, nil
		}
	}
	return nil, ErrNoAddresses
}

func (r *dnsResolver) exchange(ctx context.Context, fqdn string, qtype uint16) (*dns.Msg, error) {
	var err error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := new(dns.Msg)
		msg.SetQuestion(fqdn, qtype)
		msg.RecursionDesired = true

		var resp *dns.Msg
		resp, _, err = r.client.ExchangeContext(ctx, msg, r.server)
		if err == nil {
			return resp, nil
		}
	}
	return nil, err
}

func addresses(resp *dns.Msg) []string {
	var addrs []string
	for _, rr := range resp.Answer {
		switch a := rr.(type) {
		case *dns.A:
			addrs = append(addrs, a.A.String())
		case *dns.AAAA:
			addrs = append(addrs, a.AAAA.String())
		}
	}
	return addrs
}

// serverAddr builds the nameserver address of the provider, the address has to be an IPv4 literal.
func serverAddr(ipv4, port string) (string, error) {
	addr, err := netip.ParseAddr(ipv4)
	if err != nil || !addr.Is4() {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidIPv4, ipv4)
	}
	return net.JoinHostPort(addr.String(), port), nil
}

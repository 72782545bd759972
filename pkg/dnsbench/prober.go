package dnsbench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/miekg/dns"
	"go.uber.org/ratelimit"
	"golang.org/x/net/idna"
)

// ErrProbeTimeout is recorded when a lookup does not finish strictly before the probe timeout.
var ErrProbeTimeout = errors.New("probe timed out")

// Prober measures the response time of a single provider.
// The zero value is ready to use and probes DefaultDomains using the package defaults.
type Prober struct {
	// Domains is the probe set, DefaultDomains is used when empty. Domains are resolved one after another.
	Domains []string

	// Port the providers are queried on, DefaultPort is used when empty.
	Port string

	// Timeout bounds each lookup, including all resolver attempts. DefaultTimeout is used when zero.
	Timeout time.Duration

	// ResolverTimeout is a timeout of a single DNS exchange. DefaultResolverTimeout is used when zero.
	ResolverTimeout time.Duration

	// Attempts is the number of DNS exchanges per query. DefaultAttempts is used when zero.
	Attempts int

	// Limiter optionally limits the rate of lookups, it can be shared between probers.
	Limiter ratelimit.Limiter

	// NewResolver creates the resolver for each provider, plain DNS over UDP is used when nil.
	NewResolver ResolverFactory

	// Logger receives per probe debug logs, log.Log is used when nil.
	Logger log.Interface
}

// Probe resolves the probe set against the provider and stores the average response time of successful
// lookups on the provider. Failed lookups are skipped, if no lookup succeeds the provider stays unbenchmarked.
// An error is returned only if the provider cannot be probed at all, for example because of an invalid IPv4 address.
func (p *Prober) Probe(ctx context.Context, provider *Provider) error {
	provider.reset()

	server, err := serverAddr(provider.IPv4, p.port())
	if err != nil {
		providersTotalMetrics.WithLabelValues(providerInvalid).Inc()
		return fmt.Errorf("unable to probe provider '%s': %w", provider.Name, err)
	}
	resolver := p.resolverFactory()(server)

	var total time.Duration
	for _, domain := range p.domains() {
		name, err := parseDomain(domain)
		if err != nil {
			p.logger().WithError(err).WithField("domain", domain).Debug("skipping unparseable domain")
			continue
		}
		provider.Attempts++

		dur, err := p.lookup(ctx, resolver, name)
		logProbe(p.logger(), provider, server, name, dur, err)
		observeProbe(dur, err)
		if err != nil {
			continue
		}
		total += dur
		provider.Successes++
	}

	if provider.Successes > 0 {
		avg := total.Seconds() / float64(provider.Successes)
		provider.AvgResponseTime = &avg
		providersTotalMetrics.WithLabelValues(providerBenchmarked).Inc()
	} else {
		providersTotalMetrics.WithLabelValues(providerUnreachable).Inc()
	}
	return nil
}

// lookup resolves the name and returns the elapsed time. The lookup counts as successful only
// if it finishes strictly before the timeout, regardless of how the resolver handles the deadline.
func (p *Prober) lookup(ctx context.Context, resolver Resolver, name string) (time.Duration, error) {
	if p.Limiter != nil {
		p.Limiter.Take()
	}

	timeout := p.timeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	start := time.Now()
	go func() {
		_, err := resolver.LookupHost(ctx, name)
		done <- err
	}()

	select {
	case err := <-done:
		dur := time.Since(start)
		if err != nil {
			return dur, err
		}
		if dur >= timeout {
			return dur, ErrProbeTimeout
		}
		return dur, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return time.Since(start), ErrProbeTimeout
		}
		return time.Since(start), ctx.Err()
	}
}

// parseDomain converts the domain to its ASCII form and validates it.
func parseDomain(domain string) (string, error) {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(domain, "."))
	if err != nil {
		return "", err
	}
	if _, ok := dns.IsDomainName(ascii); !ok || ascii == "" {
		return "", fmt.Errorf("'%s' is not a valid domain name", domain)
	}
	return ascii, nil
}

func (p *Prober) domains() []string {
	if len(p.Domains) == 0 {
		return DefaultDomains
	}
	return p.Domains
}

func (p *Prober) port() string {
	if p.Port == "" {
		return DefaultPort
	}
	return p.Port
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func (p *Prober) resolverFactory() ResolverFactory {
	if p.NewResolver != nil {
		return p.NewResolver
	}
	resolverTimeout := p.ResolverTimeout
	if resolverTimeout <= 0 {
		resolverTimeout = DefaultResolverTimeout
	}
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return NewDNSResolverFactory(resolverTimeout, attempts)
}

func (p *Prober) logger() log.Interface {
	if p.Logger == nil {
		return log.Log
	}
	return p.Logger
}

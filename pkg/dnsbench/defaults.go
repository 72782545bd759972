package dnsbench

import (
	"time"
)

const (
	// DefaultPort is the port providers are queried on.
	DefaultPort = "53"

	// DefaultTimeout is a default upper bound for a single probe, it always wins over the resolver timeout and attempts.
	DefaultTimeout = 5 * time.Second

	// DefaultResolverTimeout is a default timeout of a single DNS exchange issued by the resolver.
	DefaultResolverTimeout = 3 * time.Second

	// DefaultAttempts is a default number of DNS exchanges the resolver makes before giving up on a lookup.
	DefaultAttempts = 2

	// MinChunkSize is the smallest number of providers probed concurrently within one chunk.
	MinChunkSize = 50

	// DefaultTop is a default number of providers shown in reports.
	DefaultTop = 10

	// DefaultPlotFormat is a default format for plots.
	DefaultPlotFormat = "svg"

	// UDPTransport is the network used for probing providers.
	UDPTransport = "udp"
)

// DefaultDomains is the default probe set. The domains are hosted by different operators,
// so that no provider gains an advantage by serving its own zone.
var DefaultDomains = []string{
	"google.com",
	"cloudflare.com",
	"microsoft.com",
	"github.com",
	"netflix.com",
}

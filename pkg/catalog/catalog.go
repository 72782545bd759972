package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

// DefaultURL is the catalog of public nameservers maintained by public-dns.info.
const DefaultURL = "https://public-dns.info/nameservers.csv"

// Format is a format of the catalog.
type Format string

const (
	// FormatAuto detects the format from the extension of the catalog location.
	FormatAuto Format = ""
	// FormatCSV is the public-dns.info CSV layout.
	FormatCSV Format = "csv"
	// FormatYAML is a YAML document with a list of providers.
	FormatYAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat is returned when the format of the catalog cannot be handled.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrEmptyCatalog is returned when the catalog does not contain any usable provider.
	ErrEmptyCatalog = errors.New("catalog contains no usable providers")
)

var defaultClient = &http.Client{
	Timeout: 120 * time.Second,
}

// Loader loads provider catalogs.
type Loader struct {
	// Client is used for downloading catalogs, a client with 120s timeout is used when nil.
	Client *http.Client

	// Format forces the catalog format, by default it is detected from the location.
	Format Format

	// MinReliability drops CSV rows whose reliability is lower, 0 keeps all rows.
	MinReliability float64

	// Logger receives logs about dropped records, log.Log is used when nil.
	Logger log.Interface
}

// Load reads the catalog from location, which is either a path to a local file, optionally prefixed by '@',
// or an HTTP(S) URL. Records without a valid IPv4 address and records duplicating an already loaded IPv4
// address are dropped.
func (l *Loader) Load(ctx context.Context, location string) ([]*dnsbench.Provider, error) {
	format, err := l.format(location)
	if err != nil {
		return nil, err
	}

	rc, err := l.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var providers []*dnsbench.Provider
	switch format {
	case FormatCSV:
		providers, err = parseCSV(rc, l.MinReliability)
	case FormatYAML:
		providers, err = parseYAML(rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog '%s': %w", location, err)
	}

	providers = l.sanitize(providers)
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrEmptyCatalog, location)
	}
	return providers, nil
}

func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if ok, _ := isHTTPUrl(location); ok {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to download file '%s' with error '%v'", location, err)
		}
		resp, err := l.client().Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to download file '%s' with error '%v'", location, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to download file '%s' with status '%s'", location, resp.Status)
		}
		return resp.Body, nil
	}

	f, err := os.Open(strings.TrimPrefix(location, "@"))
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", location, err)
	}
	return f, nil
}

func (l *Loader) format(location string) (Format, error) {
	format := l.Format
	if format == FormatAuto {
		p := strings.TrimPrefix(location, "@")
		if ok, u := isHTTPUrl(location); ok {
			p = u.Path
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".csv":
			format = FormatCSV
		case ".yaml", ".yml":
			format = FormatYAML
		default:
			return "", fmt.Errorf("%w: unable to detect format of '%s'", ErrUnsupportedFormat, location)
		}
	}
	if format != FormatCSV && format != FormatYAML {
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, format)
	}
	return format, nil
}

func (l *Loader) sanitize(providers []*dnsbench.Provider) []*dnsbench.Provider {
	seen := make(map[string]struct{}, len(providers))
	valid := make([]*dnsbench.Provider, 0, len(providers))
	for _, p := range providers {
		if p == nil {
			l.logger().Debug("dropping empty provider entry")
			continue
		}
		addr, err := netip.ParseAddr(strings.TrimSpace(p.IPv4))
		if err != nil || !addr.Is4() {
			l.logger().WithFields(log.Fields{"provider": p.Name, "ipv4": p.IPv4}).Debug("dropping provider without valid IPv4")
			continue
		}
		p.IPv4 = addr.String()
		if _, ok := seen[p.IPv4]; ok {
			l.logger().WithFields(log.Fields{"provider": p.Name, "ipv4": p.IPv4}).Debug("dropping duplicate provider")
			continue
		}
		seen[p.IPv4] = struct{}{}
		if p.Name == "" {
			p.Name = p.IPv4
		}
		valid = append(valid, p)
	}
	return valid
}

func (l *Loader) client() *http.Client {
	if l.Client == nil {
		return defaultClient
	}
	return l.Client
}

func (l *Loader) logger() log.Interface {
	if l.Logger == nil {
		return log.Log
	}
	return l.Logger
}

func isHTTPUrl(s string) (bool, *url.URL) {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false, nil
	}
	return u.Scheme == "http" || u.Scheme == "https", u
}

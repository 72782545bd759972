package dnsbench_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

var errUnreachable = errors.New("connection refused")

// fakeResolver resolves hosts using the wrapped function.
type fakeResolver func(ctx context.Context, host string) ([]string, error)

func (f fakeResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	return f(ctx, host)
}

// fakeFactory returns the resolver registered for the server address, unknown servers are unreachable.
func fakeFactory(resolvers map[string]fakeResolver) dnsbench.ResolverFactory {
	return func(server string) dnsbench.Resolver {
		if r, ok := resolvers[server]; ok {
			return r
		}
		return unreachable()
	}
}

func respondAfter(d time.Duration) fakeResolver {
	return func(ctx context.Context, _ string) ([]string, error) {
		if err := sleep(ctx, d); err != nil {
			return nil, err
		}
		return []string{"127.0.0.1"}, nil
	}
}

func unreachable() fakeResolver {
	return func(context.Context, string) ([]string, error) {
		return nil, errUnreachable
	}
}

func blackhole() fakeResolver {
	return func(ctx context.Context, _ string) ([]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// countingProgress counts the advances.
type countingProgress struct {
	count atomic.Int64
}

func (c *countingProgress) Add(num int) error {
	c.count.Add(int64(num))
	return nil
}

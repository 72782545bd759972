package dnsbench_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/suite"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
)

type SchedulerTestSuite struct {
	suite.Suite
	server *Server
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (suite *SchedulerTestSuite) SetupSuite() {
	suite.server = NewServer(func(w dns.ResponseWriter, r *dns.Msg) {
		ret := new(dns.Msg)
		ret.SetReply(r)
		ret.Answer = append(ret.Answer, A(r.Question[0].Name+" IN A 127.0.0.1"))

		// wait some time to actually have some observable duration
		time.Sleep(5 * time.Millisecond)

		w.WriteMsg(ret)
	})
}

func (suite *SchedulerTestSuite) TearDownSuite() {
	suite.server.Close()
}

func (suite *SchedulerTestSuite) scheduler(progress dnsbench.Progress) dnsbench.Scheduler {
	return dnsbench.Scheduler{
		Prober: &dnsbench.Prober{
			Domains:         []string{"example.org", "example.com"},
			Port:            suite.server.Port,
			Timeout:         time.Second,
			ResolverTimeout: 500 * time.Millisecond,
			Attempts:        1,
		},
		Parallelism: 2,
		Progress:    progress,
	}
}

func (suite *SchedulerTestSuite) TestRun_PlainDNS() {
	providers := []*dnsbench.Provider{
		{Name: "unreachable", IPv4: "192.0.2.1"},
		{Name: "local", IPv4: suite.server.Host},
		{Name: "broken", IPv4: "not-an-ip"},
	}
	progress := &countingProgress{}
	scheduler := suite.scheduler(progress)

	ranked := scheduler.Run(context.Background(), providers)

	suite.Require().Len(ranked, 1)
	suite.Equal("local", ranked[0].Name)
	suite.Equal(2, ranked[0].Attempts)
	suite.Equal(2, ranked[0].Successes)
	suite.EqualValues(3, progress.count.Load())

	suite.False(providers[0].Benchmarked())
	suite.Equal(2, providers[0].Attempts)
	suite.Zero(providers[0].Successes)
}

func (suite *SchedulerTestSuite) TestRun_ManyProviders() {
	var providers []*dnsbench.Provider
	for i := 0; i < 120; i++ {
		providers = append(providers, &dnsbench.Provider{Name: fmt.Sprintf("local-%d", i), IPv4: suite.server.Host})
	}
	progress := &countingProgress{}
	scheduler := suite.scheduler(progress)

	ranked := scheduler.Run(context.Background(), providers)

	suite.Len(ranked, len(providers))
	suite.EqualValues(len(providers), progress.count.Load())
	for i := 1; i < len(ranked); i++ {
		prev, _ := ranked[i-1].Latency()
		cur, _ := ranked[i].Latency()
		suite.LessOrEqual(prev, cur)
	}
}

func (suite *SchedulerTestSuite) TestRun_CancelledContext() {
	providers := []*dnsbench.Provider{
		{Name: "local", IPv4: suite.server.Host},
		{Name: "another", IPv4: suite.server.Host},
	}
	progress := &countingProgress{}
	scheduler := suite.scheduler(progress)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ranked := scheduler.Run(ctx, providers)

	suite.Empty(ranked)
	suite.EqualValues(len(providers), progress.count.Load())
}

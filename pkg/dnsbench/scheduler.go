package dnsbench

import (
	"context"
	"fmt"
	"runtime"

	"github.com/apex/log"
	"github.com/gammazero/workerpool"
)

// Scheduler benchmarks a catalog of providers.
//
// Providers are split into consecutive chunks, the providers of a chunk are probed concurrently and
// the next chunk starts only once every probe of the previous chunk finished. So at most one chunk
// worth of probes is in flight at any time.
type Scheduler struct {
	// Prober probes a single provider, the zero Prober is used when nil.
	Prober *Prober

	// Parallelism is the number of available processing units, runtime.NumCPU() is used when zero.
	Parallelism int

	// Progress is advanced once per probed provider, NoProgress is used when nil.
	Progress Progress

	// Logger receives logs about providers that could not be probed, log.Log is used when nil.
	Logger log.Interface
}

// Run probes all providers and returns those which answered at least one probe, sorted ascending
// by their average response time. Providers which could not be probed are left out of the result,
// the run itself never fails.
func (s *Scheduler) Run(ctx context.Context, providers []*Provider) []*Provider {
	size := s.ChunkSize(len(providers))
	chunks := Chunks(providers, size)

	s.logger().WithFields(log.Fields{
		"providers": len(providers),
		"chunks":    len(chunks),
		"chunkSize": size,
	}).Debug("starting benchmark")

	for _, chunk := range chunks {
		s.runChunk(ctx, chunk)
	}
	return Rank(providers)
}

func (s *Scheduler) runChunk(ctx context.Context, chunk []*Provider) {
	pool := workerpool.New(len(chunk))
	for _, provider := range chunk {
		// each task owns exactly one provider
		pool.Submit(func() {
			defer s.advance()
			s.probe(ctx, provider)
		})
	}
	pool.StopWait()
}

func (s *Scheduler) probe(ctx context.Context, provider *Provider) {
	defer func() {
		if r := recover(); r != nil {
			provider.reset()
			s.logger().WithField("provider", provider.Name).WithError(fmt.Errorf("%v", r)).Error("probe panicked")
		}
	}()
	if err := s.prober().Probe(ctx, provider); err != nil {
		s.logger().WithField("provider", provider.Name).WithError(err).Warn("provider skipped")
	}
}

func (s *Scheduler) advance() {
	if err := s.progress().Add(1); err != nil {
		s.logger().WithError(err).Debug("failed to advance progress")
	}
}

// ChunkSize returns the size of chunks Run splits the given number of providers into.
func (s *Scheduler) ChunkSize(providers int) int {
	return ChunkSize(providers, s.parallelism())
}

// ChunkSize computes how many providers are probed concurrently: the number of providers per
// processing unit, but never less than MinChunkSize.
func ChunkSize(providers, parallelism int) int {
	if parallelism < 1 {
		parallelism = 1
	}
	return max(providers/parallelism, MinChunkSize)
}

// Chunks splits providers into consecutive chunks of the given size, the last chunk may be smaller.
// Concatenating the chunks yields the original slice.
func Chunks(providers []*Provider, size int) [][]*Provider {
	if size < 1 {
		size = 1
	}
	chunks := make([][]*Provider, 0, (len(providers)+size-1)/size)
	for start := 0; start < len(providers); start += size {
		end := min(start+size, len(providers))
		chunks = append(chunks, providers[start:end:end])
	}
	return chunks
}

func (s *Scheduler) parallelism() int {
	if s.Parallelism <= 0 {
		return runtime.NumCPU()
	}
	return s.Parallelism
}

func (s *Scheduler) progress() Progress {
	if s.Progress == nil {
		return NoProgress{}
	}
	return s.Progress
}

func (s *Scheduler) prober() *Prober {
	if s.Prober == nil {
		return &Prober{}
	}
	return s.Prober
}

func (s *Scheduler) logger() log.Interface {
	if s.Logger == nil {
		return log.Log
	}
	return s.Logger
}

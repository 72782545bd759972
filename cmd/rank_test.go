package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tantalor93/dnsrank/pkg/dnsbench"
	"gopkg.in/yaml.v3"
)

const testCatalog = `providers:
  - name: Loopback
    organization: Local
    location: Home
    ipv4: 127.0.0.1
  - name: Documentation
    organization: IANA
    location: Nowhere
    ipv4: 192.0.2.1
  - name: Broken
    ipv4: not-an-ip
`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func answerA(w dns.ResponseWriter, r *dns.Msg) {
	ret := new(dns.Msg)
	ret.SetReply(r)
	rr, _ := dns.NewRR(r.Question[0].Name + " 60 IN A 127.0.0.1")
	ret.Answer = append(ret.Answer, rr)
	_ = w.WriteMsg(ret)
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	return path
}

func testRanking(t *testing.T, port string) *Ranking {
	t.Helper()
	return &Ranking{
		Catalog:         writeCatalog(t),
		Domains:         []string{"example.org"},
		Parallelism:     1,
		Timeout:         200 * time.Millisecond,
		ResolverTimeout: 100 * time.Millisecond,
		Attempts:        1,
		Port:            port,
		Top:             dnsbench.DefaultTop,
		Silent:          true,
		Writer:          &bytes.Buffer{},
	}
}

func TestRanking_Run(t *testing.T) {
	s := NewServer(answerA)
	defer s.Close()

	r := testRanking(t, s.Port)

	ranked, total, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Loopback", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Successes)
	_, ok := ranked[0].Latency()
	assert.True(t, ok)
}

func TestRanking_Run_Verbose(t *testing.T) {
	s := NewServer(answerA)
	defer s.Close()

	buf := &bytes.Buffer{}
	r := testRanking(t, s.Port)
	r.Silent = false
	r.Writer = buf

	_, _, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Loaded 2 DNS providers")
	assert.Contains(t, buf.String(), "Benchmarking with chunks of 50 concurrent providers")
}

func TestRanking_Run_RateLimit(t *testing.T) {
	s := NewServer(answerA)
	defer s.Close()

	r := testRanking(t, s.Port)
	r.Rate = 100

	ranked, _, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, ranked, 1)
}

func TestRanking_Run_ExportCatalog(t *testing.T) {
	s := NewServer(answerA)
	defer s.Close()

	r := testRanking(t, s.Port)
	r.ExportCatalog = filepath.Join(t.TempDir(), "export.yaml")

	_, _, err := r.Run(context.Background())
	require.NoError(t, err)

	content, err := os.ReadFile(r.ExportCatalog)
	require.NoError(t, err)

	var exported struct {
		Providers []dnsbench.Provider `yaml:"providers"`
	}
	require.NoError(t, yaml.Unmarshal(content, &exported))
	require.Len(t, exported.Providers, 2)
	assert.Equal(t, "127.0.0.1", exported.Providers[0].IPv4)
	assert.Equal(t, "192.0.2.1", exported.Providers[1].IPv4)
}

func TestRanking_Run_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Ranking)
		wantErr string
	}{
		{
			name:    "missing catalog",
			modify:  func(r *Ranking) { r.Catalog = filepath.Join(t.TempDir(), "missing.yaml") },
			wantErr: "failed to load catalog",
		},
		{
			name:    "unsupported catalog",
			modify:  func(r *Ranking) { r.Catalog = filepath.Join(t.TempDir(), "catalog.json") },
			wantErr: "unsupported catalog format",
		},
		{
			name:    "export into missing directory",
			modify:  func(r *Ranking) { r.ExportCatalog = filepath.Join(t.TempDir(), "missing", "export.yaml") },
			wantErr: "failed to create file for catalog export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRanking(t, dnsbench.DefaultPort)
			tt.modify(r)

			ranked, total, err := r.Run(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, ranked)
			assert.Zero(t, total)
		})
	}
}

func TestRanking_progress(t *testing.T) {
	tests := []struct {
		name     string
		ranking  Ranking
		disabled bool
	}{
		{name: "enabled", ranking: Ranking{Progress: true}},
		{name: "disabled by flag", ranking: Ranking{Progress: false}, disabled: true},
		{name: "silent", ranking: Ranking{Progress: true, Silent: true}, disabled: true},
		{name: "json", ranking: Ranking{Progress: true, JSON: true}, disabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, noop := tt.ranking.progress(10).(dnsbench.NoProgress)
			assert.Equal(t, tt.disabled, noop)
		})
	}
}

func TestRanking_reportOptions(t *testing.T) {
	buf := &bytes.Buffer{}
	r := Ranking{
		Writer:       buf,
		Top:          3,
		JSON:         true,
		Distribution: true,
		Csv:          "/tmp/ranking.csv",
		PlotDir:      "/tmp",
		PlotFormat:   "png",
	}

	opts := r.reportOptions()

	assert.Same(t, buf, opts.Writer)
	assert.Equal(t, 3, opts.Top)
	assert.True(t, opts.JSON)
	assert.True(t, opts.Distribution)
	assert.Equal(t, "/tmp/ranking.csv", opts.Csv)
	assert.Equal(t, "/tmp", opts.PlotDir)
	assert.Equal(t, "png", opts.PlotFormat)
}

func TestConfigureLogging(t *testing.T) {
	assert.NoError(t, configureLogging("debug"))
	assert.NoError(t, configureLogging("warn"))
	assert.Error(t, configureLogging("verbose"))
}

package dnsbench_test

import (
	"net"

	"github.com/miekg/dns"
)

// Server represents simple DNS server.
type Server struct {
	Addr  string
	Host  string
	Port  string
	inner *dns.Server
}

// Close shuts down running DNS server instance.
func (s *Server) Close() {
	_ = s.inner.Shutdown()
}

// NewServer creates and starts new UDP DNS server instance listening on the loopback.
func NewServer(f dns.HandlerFunc) *Server {
	ch := make(chan struct{})
	s := &dns.Server{Net: "udp", Addr: "127.0.0.1:0", NotifyStartedFunc: func() { close(ch) }, Handler: f}

	go func() {
		if err := s.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	<-ch
	server := Server{inner: s, Addr: s.PacketConn.LocalAddr().String()}
	server.Host, server.Port, _ = net.SplitHostPort(server.Addr)
	return &server
}

// A creates new A record from the provided string.
func A(rr string) *dns.A {
	r, _ := dns.NewRR(rr)
	return r.(*dns.A)
}

// AAAA creates new AAAA record from the provided string.
func AAAA(rr string) *dns.AAAA {
	r, _ := dns.NewRR(rr)
	return r.(*dns.AAAA)
}

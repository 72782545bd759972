package cmd

import (
	"net"

	"github.com/miekg/dns"
)

// Server represents simple DNS server.
type Server struct {
	Addr  string
	Port  string
	inner *dns.Server
}

// Close shuts down running DNS server instance.
func (s *Server) Close() {
	_ = s.inner.Shutdown()
}

// NewServer creates and starts new UDP DNS server instance.
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
	_, server.Port, _ = net.SplitHostPort(server.Addr)
	return &server
}

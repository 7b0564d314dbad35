// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package transport

import (
	"context"
	"net"
)

// TCPTransport is a minimal concrete Transport[net.Conn] over TCP: the
// reference concrete transport spec §1 names and places out of scope
// for the core, reduced to just enough to give Boxed something real
// to wrap in tests and in cmd/tlsnode.
type TCPTransport struct {
	dialer net.Dialer
}

var _ Transport[net.Conn] = (*TCPTransport)(nil)

// NewTCPTransport returns a ready-to-use TCP transport.
func NewTCPTransport() *TCPTransport {
	return &TCPTransport{}
}

// Listen implements Transport.
func (t *TCPTransport) Listen(addr string) (Listener[net.Conn], error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &tcpListener{ln: ln}, nil
}

// Dial implements Transport.
func (t *TCPTransport) Dial(ctx context.Context, addr string) (net.Conn, error) {
	return t.dialer.DialContext(ctx, "tcp", addr)
}

// DialAsListener implements Transport. TCP has no distinct
// hole-punched dial mode, so this is identical to Dial.
func (t *TCPTransport) DialAsListener(ctx context.Context, addr string) (net.Conn, error) {
	return t.Dial(ctx, addr)
}

// AddressTranslation implements Transport. Plain TCP has no NAT
// rewriting table to consult.
func (t *TCPTransport) AddressTranslation(_, _ string) (string, bool) {
	return "", false
}

type tcpListener struct {
	ln net.Listener
}

func (l *tcpListener) Accept() (net.Conn, error) { return l.ln.Accept() }
func (l *tcpListener) Close() error              { return l.ln.Close() }
func (l *tcpListener) Addr() net.Addr            { return l.ln.Addr() }

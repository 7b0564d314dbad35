// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package tlssecurity

import (
	"context"
	"crypto/tls"
	"net"
	"sync/atomic"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
	"github.com/nimbusnet/tlshandshake/pkg/peertls/tlsopts"
)

type upgradeState int32

const (
	stateInit upgradeState = iota
	stateUpgrading
	stateDone
)

// upgrader drives exactly one security upgrade, inbound or outbound.
// The original Init -> Upgrade -> Done poll-based state machine
// collapses naturally into a single blocking call in Go; begin()
// keeps the one invariant that survives the collapse: driving an
// upgrade that has already started or finished is a programmer error,
// the same way polling a completed future was.
type upgrader struct {
	state int32
}

func (u *upgrader) begin() {
	if !atomic.CompareAndSwapInt32(&u.state, int32(stateInit), int32(stateUpgrading)) {
		panic("tlssecurity: upgrade driven more than once")
	}
}

func (u *upgrader) finish() {
	atomic.StoreInt32(&u.state, int32(stateDone))
}

// secureInbound runs the listener side: negotiate, then run the TLS
// server handshake, then extract the peer's identity from the
// certificate the handshake already verified.
func (u *upgrader) secureInbound(ctx context.Context, conn net.Conn, id *identity.Identity) (identity.PeerID, net.Conn, error) {
	u.begin()
	defer u.finish()

	if err := negotiateInbound(conn); err != nil {
		return identity.PeerID{}, nil, err
	}

	serverCfg, err := tlsopts.ServerTLSConfig(id)
	if err != nil {
		return identity.PeerID{}, nil, ServerUpgradeError.Wrap(err)
	}

	tlsConn := tls.Server(conn, serverCfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return identity.PeerID{}, nil, ServerUpgradeError.Wrap(err)
	}

	cert, err := tlsopts.ExtractSingleCertificate(tlsConn.ConnectionState())
	if err != nil {
		tlsConn.Close()
		return identity.PeerID{}, nil, ServerUpgradeError.Wrap(err)
	}

	return cert.PeerID, tlsConn, nil
}

// secureOutbound runs the dialer side: negotiate, run the TLS client
// handshake, extract the remote identity, and enforce expected if the
// caller pinned one (spec §4.4, §8 scenario 4).
func (u *upgrader) secureOutbound(ctx context.Context, conn net.Conn, id *identity.Identity, expected *identity.PeerID) (identity.PeerID, net.Conn, error) {
	u.begin()
	defer u.finish()

	if err := negotiateOutbound(conn); err != nil {
		return identity.PeerID{}, nil, err
	}

	// The TLS handshake itself only ever verifies that the presented
	// certificate is well formed and self-consistent (spec §4.2); the
	// expected-peer pin is an application-level check made after the
	// connection is already secure, not a TLS trust decision.
	clientCfg, err := tlsopts.ClientTLSConfig(id)
	if err != nil {
		return identity.PeerID{}, nil, ClientUpgradeError.Wrap(err)
	}

	tlsConn := tls.Client(conn, clientCfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return identity.PeerID{}, nil, ClientUpgradeError.Wrap(err)
	}

	cert, err := tlsopts.ExtractSingleCertificate(tlsConn.ConnectionState())
	if err != nil {
		tlsConn.Close()
		return identity.PeerID{}, nil, ClientUpgradeError.Wrap(err)
	}

	if expected != nil && !cert.PeerID.Equal(*expected) {
		tlsConn.Close()
		return identity.PeerID{}, nil, ClientUpgradeError.Wrap(&PeerIDMismatchError{
			Expected: *expected,
			Found:    cert.PeerID,
		})
	}

	return cert.PeerID, tlsConn, nil
}

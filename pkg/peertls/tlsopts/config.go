// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package tlsopts

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/zeebo/errs"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
	"github.com/nimbusnet/tlshandshake/pkg/peertls"
)

// ServerTLSConfig builds a server-side TLS configuration: requires
// client authentication, presents a freshly generated certificate for
// id, installs the custom client-cert verifier, and pins ALPN to
// "libp2p" (spec §4.3).
func ServerTLSConfig(id *identity.Identity) (*tls.Config, error) {
	cert, err := newLeafCertificate(id)
	if err != nil {
		return nil, err
	}

	verifier := NewVerifier()
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.RequireAnyClientCert,
		MinVersion:   MinTLSVersion,
		MaxVersion:   MaxTLSVersion,
		CipherSuites: CipherSuites,
		NextProtos:   ALPNProtocols,
		// RequireAnyClientCert demands a client certificate without
		// running Go's own chain verification, so VerifyPeerCertificate
		// is the sole trust decision. InsecureSkipVerify is only
		// consulted by crypto/tls on the client side.
		InsecureSkipVerify:    true,
		VerifyPeerCertificate: verifyPeerCertificateFunc(verifier),
	}, nil
}

// ClientTLSConfig builds a client-side TLS configuration: presents a
// freshly generated certificate for id, installs the custom
// server-cert verifier, and pins ALPN to "libp2p" (spec §4.3). The
// expected-peer pin itself is enforced by the caller after the
// handshake completes (see pkg/tlssecurity.secureOutbound), not here.
func ClientTLSConfig(id *identity.Identity) (*tls.Config, error) {
	cert, err := newLeafCertificate(id)
	if err != nil {
		return nil, err
	}

	verifier := NewVerifier()
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   MinTLSVersion,
		MaxVersion:   MaxTLSVersion,
		CipherSuites: CipherSuites,
		NextProtos:   ALPNProtocols,
		// ServerName is never used for trust (VerifyPeerCertificate is
		// the sole authority); set to the synthetic IP-address SNI
		// 0.0.0.0 rather than left empty so crypto/tls has a ServerName
		// to satisfy its ClientHello construction, while an IP literal
		// causes it to emit no actual SNI extension on the wire.
		ServerName:            "0.0.0.0",
		InsecureSkipVerify:    true,
		VerifyPeerCertificate: verifyPeerCertificateFunc(verifier),
	}, nil
}

// newLeafCertificate generates a fresh peer-identity certificate for
// id and packages it as a tls.Certificate ready to present.
func newLeafCertificate(id *identity.Identity) (tls.Certificate, error) {
	certDER, keyDER, err := peertls.Generate(id)
	if err != nil {
		return tls.Certificate{}, peertls.GenError.Wrap(err)
	}

	key, err := x509.ParsePKCS8PrivateKey(keyDER)
	if err != nil {
		return tls.Certificate{}, peertls.GenError.Wrap(err)
	}

	return tls.Certificate{
		Certificate: [][]byte{certDER},
		PrivateKey:  key,
	}, nil
}

// ExtractSingleCertificate returns the sole parsed peer-identity
// certificate from a completed TLS connection state, failing the
// handshake if zero or more than one certificate was presented (spec
// §4.3's extract_single_certificate). In practice this only ever
// observes exactly one certificate: the configurations above already
// enforce that count via VerifyPeerCertificate before the handshake
// can complete.
func ExtractSingleCertificate(state tls.ConnectionState) (*peertls.Certificate, error) {
	if len(state.PeerCertificates) == 0 {
		return nil, errs.New("no peer certificate presented")
	}
	if len(state.PeerCertificates) > 1 {
		return nil, errs.New("expected exactly one peer certificate, got %d", len(state.PeerCertificates))
	}
	return peertls.Parse(state.PeerCertificates[0].Raw)
}

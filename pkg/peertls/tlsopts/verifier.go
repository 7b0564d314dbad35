// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package tlsopts builds the client and server crypto/tls.Config
// values used by the security upgrade (spec §4.2, §4.3): a stateless
// peer-identity verifier plugged into both sides, and the cipher
// suite/version pinning shared by both configurations.
package tlsopts

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/zeebo/errs"

	"github.com/nimbusnet/tlshandshake/pkg/peertls"
)

// VerifyError is the class of peer-certificate verification failures
// surfaced through crypto/tls's VerifyPeerCertificate hook; it maps to
// the BadCertificate kind of spec §7.
var VerifyError = errs.Class("certificate verification")

// CipherSuites is the TLS 1.3 AEAD cipher-suite triple this system
// pins on both client and server configurations.
var CipherSuites = []uint16{
	tls.TLS_AES_128_GCM_SHA256,
	tls.TLS_CHACHA20_POLY1305_SHA256,
	tls.TLS_AES_256_GCM_SHA384,
}

// MinTLSVersion and MaxTLSVersion pin the protocol-version set to TLS
// 1.3 only, on both sides.
const (
	MinTLSVersion = tls.VersionTLS13
	MaxTLSVersion = tls.VersionTLS13
)

// ALPNProtocols is the ALPN protocol list both configurations present:
// exactly one value, "libp2p".
var ALPNProtocols = []string{"libp2p"}

// Verifier is the stateless certificate-verification policy plugged
// into the TLS stack's custom-verifier hook for both client and server
// sides (spec §4.2). It is immutable after construction and may be
// shared across any number of concurrent handshakes. It only ever
// checks that the presented certificate is well formed and
// self-consistent; the expected-peer pin is an application-level check
// made by the caller after the handshake completes, not a TLS trust
// decision (see pkg/tlssecurity.secureOutbound).
type Verifier struct{}

// NewVerifier returns the verifier installed as both the server's
// client-certificate verifier and the client's server-certificate
// verifier. It accepts any peer whose certificate verifies.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify implements the crypto/tls VerifyPeerCertificate signature,
// given the raw certificate chain presented by the peer. intermediates
// other than the leaf must be absent: this system has no CA, only a
// single self-signed leaf.
func (v *Verifier) Verify(rawCerts [][]byte) (*peertls.Certificate, error) {
	if len(rawCerts) == 0 {
		return nil, VerifyError.New("no certificate presented")
	}
	if len(rawCerts) > 1 {
		return nil, VerifyError.New("expected exactly one certificate, got %d", len(rawCerts))
	}

	parsed, err := peertls.Parse(rawCerts[0])
	if err != nil {
		return nil, VerifyError.Wrap(err)
	}

	return parsed, nil
}

// verifyPeerCertificateFunc adapts Verify to crypto/tls's
// VerifyPeerCertificate callback shape, ignoring verifiedChains (this
// system never builds one: InsecureSkipVerify disables Go's own chain
// building so Verify is the sole authority).
func verifyPeerCertificateFunc(v *Verifier) func([][]byte, [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		_, err := v.Verify(rawCerts)
		return err
	}
}

// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package pkcrypto generates and marshals the ephemeral TLS leaf key
// pair used for each certificate built by pkg/peertls.
package pkcrypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"

	"github.com/zeebo/errs"
)

// Error is the class of all key generation and (un)marshaling failures.
var Error = errs.Class("pkcrypto")

// TLSCurve is the elliptic curve used for every generated TLS leaf key.
//
// TLS 1.3 requires the signature scheme to match the certificate's key
// type; P-256 keeps this codec within the ECDSA_NISTP256_SHA256 scheme
// that every libp2p-tls peer is required to support.
var TLSCurve = elliptic.P256()

// GenerateTLSKey returns a fresh ECDSA P-256 private key suitable for
// use as a TLS 1.3 leaf key. A new key is generated for every call;
// TLS key pairs are never reused across certificates.
func GenerateTLSKey() (*ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(TLSCurve, rand.Reader)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return key, nil
}

// PublicKeyFromPrivate returns the public half of key.
func PublicKeyFromPrivate(key *ecdsa.PrivateKey) *ecdsa.PublicKey {
	return &key.PublicKey
}

// MarshalPrivateKeyDER encodes key using PKCS#8 DER, the form
// crypto/tls.X509KeyPair and tls.Certificate.PrivateKey expect.
func MarshalPrivateKeyDER(key *ecdsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return der, nil
}

// MarshalPublicKeyDER encodes pub as a DER-encoded SubjectPublicKeyInfo.
//
// This is the subject_public_key_der referenced by spec: the exact
// bytes signed over by the identity key when building the extension.
func MarshalPublicKeyDER(pub *ecdsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return der, nil
}

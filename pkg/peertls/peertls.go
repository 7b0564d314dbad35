// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package peertls generates and parses the short-lived, self-signed
// X.509 leaf certificate that binds a TLS 1.3 key pair to a libp2p
// identity key (spec §4.1). It has no external state: Generate takes
// only an identity.Identity and Parse takes only a DER blob.
package peertls

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"

	"github.com/zeebo/errs"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
	"github.com/nimbusnet/tlshandshake/pkg/pkcrypto"
)

// GenError is the class of certificate generation failures.
var GenError = errs.Class("certificate generation")

// ParseError is the class of certificate parse/verification failures.
var ParseError = errs.Class("certificate parse")

// certSubject is the fixed, trust-irrelevant subject/issuer every
// generated certificate carries. Trust is anchored in the embedded
// extension, never in the certificate's names.
var certSubject = pkix.Name{CommonName: "libp2p"}

// certValidityBackdate and certValidityPeriod bound NotBefore/NotAfter.
// The long forward validity is safe because the extension, not chain
// time, is what a verifier trusts.
const (
	certValidityBackdate = time.Hour
	certValidityPeriod   = 100 * 365 * 24 * time.Hour
)

// Certificate is a parsed, fully-verified peer-identity certificate:
// proof the remote controls both the TLS private key (the leaf's own
// self-signature) and the identity private key (the extension's
// signature over this specific TLS public key).
type Certificate struct {
	Leaf       *x509.Certificate
	SignedKey  SignedKeyExtension
	PeerID     identity.PeerID
	RawIdentPK []byte
}

// Generate builds a fresh TLS leaf certificate for id: a new ECDSA
// P-256 TLS key pair, self-signed, carrying a SignedKey extension that
// proves id controls the corresponding identity private key. Returns
// the DER-encoded certificate and the DER-encoded (PKCS#8) TLS private key.
func Generate(id *identity.Identity) (certDER, keyDER []byte, err error) {
	tlsKey, err := pkcrypto.GenerateTLSKey()
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	spkiDER, err := pkcrypto.MarshalPublicKeyDER(pkcrypto.PublicKeyFromPrivate(tlsKey))
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	sig, err := id.Sign(signedMessage(spkiDER))
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	identityPubProto, err := id.PublicKeyProto()
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	extValue, err := encodeSignedKeyExtension(SignedKeyExtension{
		IdentityPublicKey: identityPubProto,
		Signature:         sig,
	})
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject:      certSubject,
		Issuer:       certSubject,
		NotBefore:    now.Add(-certValidityBackdate),
		NotAfter:     now.Add(certValidityPeriod),
		ExtraExtensions: []pkix.Extension{
			{
				Id:       ExtensionOID,
				Critical: false,
				Value:    extValue,
			},
		},
	}

	certDER, err = x509.CreateCertificate(rand.Reader, template, template, pkcrypto.PublicKeyFromPrivate(tlsKey), tlsKey)
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	keyDER, err = pkcrypto.MarshalPrivateKeyDER(tlsKey)
	if err != nil {
		return nil, nil, GenError.Wrap(err)
	}

	return certDER, keyDER, nil
}

// Parse decodes a DER-encoded certificate, locates and verifies its
// libp2p signed-key extension, and verifies the leaf's self-signature.
// A successful Parse is proof the remote controls both the TLS private
// key and the identity private key bound to this specific TLS key.
func Parse(der []byte) (*Certificate, error) {
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, ParseError.Wrap(err)
	}

	extValue, err := findExtension(leaf.Extensions)
	if err != nil {
		return nil, ParseError.Wrap(err)
	}

	signedKey, err := decodeSignedKeyExtension(extValue)
	if err != nil {
		return nil, err
	}

	identityPub, err := identity.UnmarshalPublicKey(signedKey.IdentityPublicKey)
	if err != nil {
		return nil, ParseError.Wrap(err)
	}

	msg := signedMessage(leaf.RawSubjectPublicKeyInfo)
	if !ed25519.Verify(identityPub, msg, signedKey.Signature) {
		return nil, ParseError.New("signed-key extension signature is invalid")
	}

	// The leaf owns the TLS key pair it is signed with: verify the
	// self-signature against the certificate's own public key.
	if err := leaf.CheckSignature(leaf.SignatureAlgorithm, leaf.RawTBSCertificate, leaf.Signature); err != nil {
		return nil, ParseError.Wrap(err)
	}

	peerID, err := identity.PeerIDFromPublicKeyProto(signedKey.IdentityPublicKey)
	if err != nil {
		return nil, ParseError.Wrap(err)
	}

	return &Certificate{
		Leaf:       leaf,
		SignedKey:  signedKey,
		PeerID:     peerID,
		RawIdentPK: signedKey.IdentityPublicKey,
	}, nil
}

// findExtension returns the value of the single libp2p signed-key
// extension in exts, failing on absence or duplication.
func findExtension(exts []pkix.Extension) ([]byte, error) {
	var found *pkix.Extension
	for i := range exts {
		if exts[i].Id.Equal(ExtensionOID) {
			if found != nil {
				return nil, errs.New("duplicate signed-key extension")
			}
			found = &exts[i]
		}
	}
	if found == nil {
		return nil, errExtensionNotFound
	}
	return found.Value, nil
}

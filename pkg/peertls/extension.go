// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package peertls

import (
	"encoding/asn1"

	"github.com/zeebo/errs"
)

// ExtensionOID is the X.509 extension identifier carrying the libp2p
// signed-key extension: a critical=false extension binding a TLS
// leaf's SubjectPublicKeyInfo to a libp2p identity public key.
var ExtensionOID = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 53594, 1, 1}

// SignaturePrefix is the domain-separation tag prepended to the TLS
// leaf's SubjectPublicKeyInfo DER before it is signed by the identity
// key. It MUST match exactly on both ends of the wire.
const SignaturePrefix = "libp2p-tls-handshake:"

// signedKeySequence is the ASN.1 SEQUENCE carried as the extension's
// value: SEQUENCE { OCTET STRING identityPublicKey, OCTET STRING signature }.
type signedKeySequence struct {
	IdentityPublicKey []byte
	Signature         []byte
}

// SignedKeyExtension is the decoded form of the libp2p signed-key
// extension: the libp2p-protobuf-encoded identity public key, and the
// identity key's signature over SignaturePrefix || leafSPKIDER.
type SignedKeyExtension struct {
	IdentityPublicKey []byte
	Signature         []byte
}

// encodeSignedKeyExtension ASN.1-encodes ext as the extension value.
func encodeSignedKeyExtension(ext SignedKeyExtension) ([]byte, error) {
	der, err := asn1.Marshal(signedKeySequence{
		IdentityPublicKey: ext.IdentityPublicKey,
		Signature:         ext.Signature,
	})
	if err != nil {
		return nil, GenError.Wrap(err)
	}
	return der, nil
}

// decodeSignedKeyExtension parses an extension value produced by
// encodeSignedKeyExtension, rejecting trailing garbage.
func decodeSignedKeyExtension(der []byte) (SignedKeyExtension, error) {
	var seq signedKeySequence
	rest, err := asn1.Unmarshal(der, &seq)
	if err != nil {
		return SignedKeyExtension{}, ParseError.Wrap(err)
	}
	if len(rest) != 0 {
		return SignedKeyExtension{}, ParseError.New("trailing bytes after signed-key extension")
	}
	if len(seq.IdentityPublicKey) == 0 || len(seq.Signature) == 0 {
		return SignedKeyExtension{}, ParseError.New("signed-key extension missing a field")
	}
	return SignedKeyExtension{
		IdentityPublicKey: seq.IdentityPublicKey,
		Signature:         seq.Signature,
	}, nil
}

// signedMessage builds the exact byte string the identity key signs:
// SignaturePrefix || subjectPublicKeyInfoDER.
func signedMessage(spkiDER []byte) []byte {
	msg := make([]byte, 0, len(SignaturePrefix)+len(spkiDER))
	msg = append(msg, SignaturePrefix...)
	msg = append(msg, spkiDER...)
	return msg
}

var errExtensionNotFound = errs.New("signed-key extension not present")

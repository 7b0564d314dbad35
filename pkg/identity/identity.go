// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package identity implements the long-lived libp2p identity key pair
// and the PeerID derived from it. It is the leaf of the certificate
// generation/verification dependency chain: pkg/peertls consumes
// Identity to sign the TLS leaf's embedded extension and PeerID to
// report and compare the remote party's fingerprint.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"
	"github.com/zeebo/errs"

	"github.com/nimbusnet/tlshandshake/pkg/identity/identitypb"
)

// Error is the class of identity key generation and signing failures.
var Error = errs.Class("identity")

// identityMultihashCode selects the multihash function used to derive
// a PeerID from a public key's protobuf encoding. Real libp2p peer ids
// use "identity" multihash (code 0x00) for keys no larger than 42
// bytes and sha2-256 otherwise; an Ed25519 public key envelope is well
// under that bound, so this module always uses the identity multihash,
// matching every Ed25519-keyed libp2p peer id in the wild.
const identityMultihashCode = multihash.IDENTITY

// Identity is a long-lived libp2p identity key pair. It supports
// signing arbitrary byte strings (spec: "supports signing an arbitrary
// byte string"); its public half canonicalizes to a stable PeerID.
type Identity struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

// GenerateIdentity creates a fresh Ed25519 identity key pair.
func GenerateIdentity() (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return &Identity{PrivateKey: priv, PublicKey: pub}, nil
}

// Sign signs msg with the identity's private key.
func (id *Identity) Sign(msg []byte) ([]byte, error) {
	if id == nil || id.PrivateKey == nil {
		return nil, Error.New("identity has no private key")
	}
	return ed25519.Sign(id.PrivateKey, msg), nil
}

// ID returns the canonical PeerID derived from this identity's public key.
func (id *Identity) ID() (PeerID, error) {
	return PeerIDFromPublicKey(id.PublicKey)
}

// PublicKeyProto returns the libp2p-protobuf encoding of the identity's
// public key: the exact bytes carried as identity_public_key in the
// certificate's SignedKey extension.
func (id *Identity) PublicKeyProto() ([]byte, error) {
	return MarshalPublicKey(id.PublicKey)
}

// MarshalPublicKey encodes pub in the libp2p protobuf envelope.
func MarshalPublicKey(pub ed25519.PublicKey) ([]byte, error) {
	data, err := identitypb.Marshal(&identitypb.PublicKey{
		Type: identitypb.KeyType_Ed25519,
		Data: append([]byte(nil), pub...),
	})
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return data, nil
}

// UnmarshalPublicKey decodes a libp2p-protobuf-encoded public key
// envelope, rejecting any algorithm this module does not implement.
func UnmarshalPublicKey(data []byte) (ed25519.PublicKey, error) {
	envelope, err := identitypb.Unmarshal(data)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if envelope.Type != identitypb.KeyType_Ed25519 {
		return nil, Error.New("unsupported identity key algorithm: %d", envelope.Type)
	}
	if len(envelope.Data) != ed25519.PublicKeySize {
		return nil, Error.New("malformed ed25519 public key: got %d bytes", len(envelope.Data))
	}
	return ed25519.PublicKey(envelope.Data), nil
}

// PeerID is an opaque, equality-comparable, hashable handle derived
// deterministically from an identity public key.
type PeerID struct {
	hash string // raw multihash bytes, comparable via plain == on the struct
}

// PeerIDFromPublicKey derives the canonical PeerID for pub.
func PeerIDFromPublicKey(pub ed25519.PublicKey) (PeerID, error) {
	protoBytes, err := MarshalPublicKey(pub)
	if err != nil {
		return PeerID{}, err
	}
	return PeerIDFromPublicKeyProto(protoBytes)
}

// PeerIDFromPublicKeyProto derives the canonical PeerID for a
// libp2p-protobuf-encoded public key, as found in a certificate's
// SignedKey extension.
func PeerIDFromPublicKeyProto(protoBytes []byte) (PeerID, error) {
	mh, err := multihash.Sum(protoBytes, identityMultihashCode, -1)
	if err != nil {
		return PeerID{}, Error.Wrap(err)
	}
	return PeerID{hash: string(mh)}, nil
}

// Empty reports whether p is the zero PeerID.
func (p PeerID) Empty() bool {
	return p.hash == ""
}

// Equal reports whether p and other identify the same peer.
func (p PeerID) Equal(other PeerID) bool {
	return p.hash == other.hash
}

// Bytes returns the raw multihash bytes backing this PeerID.
func (p PeerID) Bytes() []byte {
	return []byte(p.hash)
}

// String returns the base58btc textual form of the PeerID, the
// conventional libp2p peer id representation.
func (p PeerID) String() string {
	if p.Empty() {
		return ""
	}
	return base58.Encode([]byte(p.hash))
}

// ParsePeerID parses the base58btc textual form produced by String.
func ParsePeerID(s string) (PeerID, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return PeerID{}, Error.Wrap(err)
	}
	if _, err := multihash.Cast(raw); err != nil {
		return PeerID{}, Error.Wrap(err)
	}
	return PeerID{hash: string(raw)}, nil
}

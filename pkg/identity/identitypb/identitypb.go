// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package identitypb holds the libp2p wire encoding of an identity
// public key: the same protobuf envelope every libp2p stack uses to
// serialize a PublicKey (key type + raw key bytes), hand-maintained
// here rather than protoc-generated since it is two scalar fields.
package identitypb

import "github.com/gogo/protobuf/proto"

// KeyType enumerates the identity key algorithms this codec round-trips.
//
// Only Ed25519 is produced by this module (see pkg/identity), but the
// field is kept so a certificate signed by a peer running a different
// libp2p stack (RSA, secp256k1, ECDSA identity keys) still parses far
// enough to report BadCertificate for "unknown identity algorithm"
// rather than failing to decode the envelope at all.
type KeyType int32

// Known libp2p identity key types, matching the go-libp2p-core/crypto/pb enum.
const (
	KeyType_RSA       KeyType = 0
	KeyType_Ed25519   KeyType = 1
	KeyType_Secp256k1 KeyType = 2
	KeyType_ECDSA     KeyType = 3
)

// PublicKey is the protobuf envelope for an identity public key.
type PublicKey struct {
	Type KeyType `protobuf:"varint,1,req,name=Type,json=type,enum=identitypb.KeyType" json:"Type"`
	Data []byte  `protobuf:"bytes,2,req,name=Data,json=data" json:"Data"`
}

// Reset implements proto.Message.
func (m *PublicKey) Reset() { *m = PublicKey{} }

// String implements proto.Message.
func (m *PublicKey) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*PublicKey) ProtoMessage() {}

// Marshal serializes key to its libp2p protobuf wire form.
func Marshal(key *PublicKey) ([]byte, error) {
	return proto.Marshal(key)
}

// Unmarshal parses a libp2p-protobuf-encoded public key envelope.
func Unmarshal(data []byte) (*PublicKey, error) {
	key := new(PublicKey)
	if err := proto.Unmarshal(data, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package identity_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
)

func TestGenerateIdentity(t *testing.T) {
	id, err := identity.GenerateIdentity()
	require.NoError(t, err)
	assert.Len(t, id.PublicKey, 32)
	assert.Len(t, id.PrivateKey, 64)
}

func TestIdentity_Sign(t *testing.T) {
	id, err := identity.GenerateIdentity()
	require.NoError(t, err)

	sig, err := id.Sign([]byte("libp2p-tls-handshake:some-spki"))
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestPeerID_DeterministicFromPublicKey(t *testing.T) {
	f := func() bool {
		id, err := identity.GenerateIdentity()
		require.NoError(t, err)

		a, err := identity.PeerIDFromPublicKey(id.PublicKey)
		require.NoError(t, err)
		b, err := identity.PeerIDFromPublicKey(id.PublicKey)
		require.NoError(t, err)

		return a.Equal(b) && a.String() == b.String()
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 20}))
}

func TestPeerID_DistinctKeysDistinctIDs(t *testing.T) {
	id1, err := identity.GenerateIdentity()
	require.NoError(t, err)
	id2, err := identity.GenerateIdentity()
	require.NoError(t, err)

	p1, err := id1.ID()
	require.NoError(t, err)
	p2, err := id2.ID()
	require.NoError(t, err)

	assert.False(t, p1.Equal(p2))
	assert.NotEqual(t, p1.String(), p2.String())
}

func TestPeerID_RoundTripThroughString(t *testing.T) {
	id, err := identity.GenerateIdentity()
	require.NoError(t, err)

	peerID, err := id.ID()
	require.NoError(t, err)

	parsed, err := identity.ParsePeerID(peerID.String())
	require.NoError(t, err)
	assert.True(t, peerID.Equal(parsed))
}

func TestMarshalUnmarshalPublicKey(t *testing.T) {
	id, err := identity.GenerateIdentity()
	require.NoError(t, err)

	data, err := identity.MarshalPublicKey(id.PublicKey)
	require.NoError(t, err)

	pub, err := identity.UnmarshalPublicKey(data)
	require.NoError(t, err)
	assert.True(t, pub.Equal(id.PublicKey))
}

func TestUnmarshalPublicKey_RejectsTruncatedKey(t *testing.T) {
	id, err := identity.GenerateIdentity()
	require.NoError(t, err)

	data, err := identity.MarshalPublicKey(id.PublicKey[:16])
	require.NoError(t, err)

	_, err = identity.UnmarshalPublicKey(data)
	assert.Error(t, err)
}

func TestPeerID_EmptyIsZeroValue(t *testing.T) {
	var p identity.PeerID
	assert.True(t, p.Empty())
	assert.Equal(t, "", p.String())
}

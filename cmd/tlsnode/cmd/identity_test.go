// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateIdentity_EmptyPathIsEphemeral(t *testing.T) {
	id1, err := loadOrGenerateIdentity("")
	require.NoError(t, err)
	id2, err := loadOrGenerateIdentity("")
	require.NoError(t, err)

	peer1, err := id1.ID()
	require.NoError(t, err)
	peer2, err := id2.ID()
	require.NoError(t, err)
	assert.False(t, peer1.Equal(peer2))
}

func TestLoadOrGenerateIdentity_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.key")

	generated, err := loadOrGenerateIdentity(path)
	require.NoError(t, err)
	wantPeer, err := generated.ID()
	require.NoError(t, err)

	reloaded, err := loadOrGenerateIdentity(path)
	require.NoError(t, err)
	gotPeer, err := reloaded.ID()
	require.NoError(t, err)

	assert.True(t, wantPeer.Equal(gotPeer), "reloading the same identity file must yield the same peer id")
}

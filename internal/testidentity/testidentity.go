// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package testidentity centralizes test-identity generation so package
// test suites don't each reinvent "generate a key pair, require no
// error."
package testidentity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
)

// NewTestIdentity generates a fresh identity for use in a test,
// failing t immediately if key generation errors.
func NewTestIdentity(t testing.TB) *identity.Identity {
	t.Helper()
	id, err := identity.GenerateIdentity()
	require.NoError(t, err)
	return id
}

// NewTestIdentities generates n independent test identities.
func NewTestIdentities(t testing.TB, n int) []*identity.Identity {
	t.Helper()
	ids := make([]*identity.Identity, n)
	for i := range ids {
		ids[i] = NewTestIdentity(t)
	}
	return ids
}

// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package testpeertls centralizes the generate-then-parse certificate
// round trip test suites across pkg/peertls, pkg/peertls/tlsopts, and
// pkg/tlssecurity otherwise repeat individually.
package testpeertls

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
	"github.com/nimbusnet/tlshandshake/pkg/peertls"
)

// NewTestCertificate generates a fresh leaf certificate and key for
// id, parses the certificate back, and returns all three, failing t on
// any error.
func NewTestCertificate(t testing.TB, id *identity.Identity) (certDER, keyDER []byte, parsed *peertls.Certificate) {
	t.Helper()

	certDER, keyDER, err := peertls.Generate(id)
	require.NoError(t, err)

	parsed, err = peertls.Parse(certDER)
	require.NoError(t, err)

	return certDER, keyDER, parsed
}

// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package cmd

import (
	"crypto/ed25519"
	"encoding/hex"
	"os"
	"strings"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
)

// loadOrGenerateIdentity loads the identity seed stored at path,
// generating and persisting a fresh one if the file doesn't exist. An
// empty path always generates an ephemeral identity.
func loadOrGenerateIdentity(path string) (*identity.Identity, error) {
	if path == "" {
		return identity.GenerateIdentity()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		id, genErr := identity.GenerateIdentity()
		if genErr != nil {
			return nil, genErr
		}
		return id, saveIdentity(path, id)
	case err != nil:
		return nil, err
	}

	seed, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &identity.Identity{PrivateKey: priv, PublicKey: priv.Public().(ed25519.PublicKey)}, nil
}

func saveIdentity(path string, id *identity.Identity) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(id.PrivateKey.Seed())), 0o600)
}

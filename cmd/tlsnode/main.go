// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Command tlsnode is a minimal demonstration of the libp2p-compatible
// TLS security upgrade running over raw TCP: "listen" accepts one
// inbound connection and upgrades it, "dial" does the same outbound.
package main

import (
	"fmt"
	"os"

	"github.com/nimbusnet/tlshandshake/cmd/tlsnode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package cmd

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
	"github.com/nimbusnet/tlshandshake/pkg/tlssecurity"
	"github.com/nimbusnet/tlshandshake/pkg/transport"
)

var (
	dialAddr       string
	dialExpectPeer string
)

var dialCmd = &cobra.Command{
	Use:   "dial",
	Short: "Dial a listening peer and run the security upgrade",
	RunE:  runDial,
}

func init() {
	dialCmd.Flags().StringVar(&dialAddr, "addr", "", "address to dial")
	dialCmd.Flags().StringVar(&dialExpectPeer, "expect-peer", "",
		"base58 peer id the remote certificate must resolve to; empty accepts any")
	_ = dialCmd.MarkFlagRequired("addr")
	rootCmd.AddCommand(dialCmd)
}

func runDial(_ *cobra.Command, _ []string) error {
	id, err := loadOrGenerateIdentity(identityPath)
	if err != nil {
		return err
	}

	var expected *identity.PeerID
	if dialExpectPeer != "" {
		peer, err := identity.ParsePeerID(dialExpectPeer)
		if err != nil {
			return fmt.Errorf("invalid --expect-peer: %w", err)
		}
		expected = &peer
	}

	secureConfig, err := tlssecurity.NewConfig(id, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tr := transport.Box[net.Conn](transport.NewTCPTransport())
	conn, err := tr.Dial(ctx, dialAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	remotePeer, secured, err := secureConfig.SecureOutbound(ctx, conn, expected)
	if err != nil {
		return fmt.Errorf("security upgrade failed: %w", err)
	}
	defer secured.Close()

	logger.Info("security upgrade complete", zap.Stringer("remote_peer", remotePeer))
	return nil
}

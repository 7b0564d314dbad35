// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package cmd

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nimbusnet/tlshandshake/pkg/tlssecurity"
	"github.com/nimbusnet/tlshandshake/pkg/transport"
)

var listenAddr string

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Accept one inbound connection and run the security upgrade",
	RunE:  runListen,
}

func init() {
	listenCmd.Flags().StringVar(&listenAddr, "addr", "127.0.0.1:0", "address to listen on")
	rootCmd.AddCommand(listenCmd)
}

func runListen(_ *cobra.Command, _ []string) error {
	id, err := loadOrGenerateIdentity(identityPath)
	if err != nil {
		return err
	}
	localPeer, err := id.ID()
	if err != nil {
		return err
	}
	logger.Info("local identity", zap.Stringer("peer", localPeer))

	secureConfig, err := tlssecurity.NewConfig(id, logger)
	if err != nil {
		return err
	}

	tr := transport.Box[net.Conn](transport.NewTCPTransport())
	ln, err := tr.Listen(listenAddr)
	if err != nil {
		return err
	}
	defer ln.Close()
	logger.Info("listening", zap.Stringer("addr", ln.Addr()))

	conn, err := ln.Accept()
	if err != nil {
		return err
	}
	defer conn.Close()

	remotePeer, secured, err := secureConfig.SecureInbound(context.Background(), conn)
	if err != nil {
		return fmt.Errorf("security upgrade failed: %w", err)
	}
	defer secured.Close()

	logger.Info("security upgrade complete", zap.Stringer("remote_peer", remotePeer))
	return nil
}

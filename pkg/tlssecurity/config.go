// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

// Package tlssecurity is the top-level collaborator this module
// exposes: given a local identity, it negotiates "/tls/1.0.0" over an
// already-connected byte stream and runs the TLS 1.3 security upgrade
// in either direction, yielding the remote peer's id and a secured
// net.Conn (spec §4.4, §6).
package tlssecurity

import (
	"context"
	"net"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
)

// Config is the per-local-identity entry point for running security
// upgrades. A single Config may drive any number of concurrent
// upgrades: each call constructs its own upgrader and carries no
// shared mutable state (spec §5's concurrency model).
type Config struct {
	identity *identity.Identity
	logger   *zap.Logger
}

// NewConfig returns a Config that authenticates as id. A nil logger is
// replaced with one that discards everything.
func NewConfig(id *identity.Identity, logger *zap.Logger) (*Config, error) {
	if id == nil {
		return nil, errs.New("identity is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Config{identity: id, logger: logger}, nil
}

// ProtocolInfo reports the multistream-select protocol ids this Config
// negotiates: always exactly ["/tls/1.0.0"] (spec §4.5, §6).
func (c *Config) ProtocolInfo() []string {
	return []string{ProtocolID}
}

// SecureInbound runs the listener side of the security upgrade over an
// already-accepted connection.
func (c *Config) SecureInbound(ctx context.Context, conn net.Conn) (identity.PeerID, net.Conn, error) {
	peerID, secured, err := new(upgrader).secureInbound(ctx, conn, c.identity)
	if err != nil {
		c.logger.Debug("inbound security upgrade failed", zap.Error(err))
		return identity.PeerID{}, nil, err
	}
	c.logger.Debug("inbound security upgrade complete", zap.Stringer("peer", peerID))
	return peerID, secured, nil
}

// SecureOutbound runs the dialer side of the security upgrade over an
// already-dialed connection. When expected is non-nil, the remote
// certificate must resolve to exactly that peer id or the upgrade
// fails with a *PeerIDMismatchError.
func (c *Config) SecureOutbound(ctx context.Context, conn net.Conn, expected *identity.PeerID) (identity.PeerID, net.Conn, error) {
	peerID, secured, err := new(upgrader).secureOutbound(ctx, conn, c.identity, expected)
	if err != nil {
		c.logger.Debug("outbound security upgrade failed", zap.Error(err))
		return identity.PeerID{}, nil, err
	}
	c.logger.Debug("outbound security upgrade complete", zap.Stringer("peer", peerID))
	return peerID, secured, nil
}

// Secure drives the combined direction-selection machinery spec §4.4
// describes: given ep, it picks SecureInbound or SecureOutbound
// regardless of which side of conn physically dialed.
func (c *Config) Secure(ctx context.Context, conn net.Conn, ep Endpoint, expected *identity.PeerID) (identity.PeerID, net.Conn, error) {
	if ep.direction() == directionOutbound {
		return c.SecureOutbound(ctx, conn, expected)
	}
	return c.SecureInbound(ctx, conn)
}

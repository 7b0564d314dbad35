// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package tlssecurity

// Role distinguishes which side of the TLS handshake a connection
// plays, independent of which side physically dialed (spec §4.4: NAT
// traversal can make the dialer act as the listener, or vice versa).
type Role int

const (
	// RoleDialer drives the outbound (client) side of the handshake.
	RoleDialer Role = iota
	// RoleListener drives the inbound (server) side of the handshake.
	RoleListener
)

type endpointKind int

const (
	endpointDialer endpointKind = iota
	endpointListener
)

// Endpoint carries enough of the connection's provenance for Config.Secure
// to pick a handshake direction without the caller having to do it
// itself (spec §4.4's combined "direction selection" driver). It
// mirrors the two-armed ConnectedPoint distinction: a connection the
// local side dialed (optionally playing the listener role instead, for
// hole punching) or a connection the local side accepted.
type Endpoint struct {
	kind         endpointKind
	roleOverride Role
}

// DialerEndpoint describes a locally-dialed connection. roleOverride is
// almost always RoleDialer; pass RoleListener only when this dial is
// actually a NAT hole-punch and the local side must run the inbound
// (server) handshake despite having placed the dial.
func DialerEndpoint(roleOverride Role) Endpoint {
	return Endpoint{kind: endpointDialer, roleOverride: roleOverride}
}

// ListenerEndpoint describes a locally-accepted connection. It always
// drives the inbound handshake.
func ListenerEndpoint() Endpoint {
	return Endpoint{kind: endpointListener}
}

type direction int

const (
	directionInbound direction = iota
	directionOutbound
)

func (e Endpoint) direction() direction {
	if e.kind == endpointDialer && e.roleOverride == RoleDialer {
		return directionOutbound
	}
	return directionInbound
}

// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package tlssecurity

import (
	"net"

	ms "github.com/multiformats/go-multistream"
)

// ProtocolID is the sole protocol this module ever negotiates (spec
// §4.5, §6's protocol_info()).
const ProtocolID = "/tls/1.0.0"

// negotiateInbound runs the listener side of multistream-select: it
// offers exactly one protocol and fails the upgrade if the dialer asks
// for anything else (spec §8 scenario 3, "unsupported protocol
// negotiated").
func negotiateInbound(conn net.Conn) error {
	mux := ms.NewMultistreamMuxer[string]()
	mux.AddHandler(ProtocolID, nil)

	if _, _, err := mux.Negotiate(conn); err != nil {
		return SelectError.Wrap(err)
	}
	return nil
}

// negotiateOutbound runs the dialer side of multistream-select,
// requesting ProtocolID and failing if the listener does not support it.
func negotiateOutbound(conn net.Conn) error {
	if err := ms.SelectProtoOrFail(ProtocolID, conn); err != nil {
		return SelectError.Wrap(err)
	}
	return nil
}

// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package tlssecurity

import (
	"fmt"

	"github.com/zeebo/errs"

	"github.com/nimbusnet/tlshandshake/pkg/identity"
)

// SelectError is the class of protocol-negotiation failures: the
// remote side never agreed to "/tls/1.0.0" (spec §7's NoSupportError /
// the multistream-select failure leg of TlsUpgradeError).
var SelectError = errs.Class("protocol negotiation")

// ServerUpgradeError is the class of failures on the inbound (accept)
// side of a security upgrade, after negotiation has already succeeded.
var ServerUpgradeError = errs.Class("server upgrade")

// ClientUpgradeError is the class of failures on the outbound (dial)
// side of a security upgrade, after negotiation has already succeeded.
var ClientUpgradeError = errs.Class("client upgrade")

// PeerIDMismatchError reports that a dialer's expected_peer pin did not
// match the peer id the remote certificate actually resolved to (spec
// §4.4, §7's PeerIdMismatch kind, §8 scenario 4).
type PeerIDMismatchError struct {
	Expected identity.PeerID
	Found    identity.PeerID
}

func (e *PeerIDMismatchError) Error() string {
	return fmt.Sprintf("invalid peer id: expected %s, found %s", e.Expected, e.Found)
}

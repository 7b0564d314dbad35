// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package tlssecurity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgrader_BeginTwicePanics(t *testing.T) {
	u := new(upgrader)
	u.begin()
	assert.Panics(t, func() { u.begin() })
}

func TestUpgrader_FinishThenBeginPanics(t *testing.T) {
	u := new(upgrader)
	u.begin()
	u.finish()
	assert.Panics(t, func() { u.begin() })
}

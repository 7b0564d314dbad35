// Copyright (C) 2024 Nimbusnet, Inc.
// See LICENSE for copying information.

package transport_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusnet/tlshandshake/pkg/transport"
)

func TestBoxed_DialAndAccept(t *testing.T) {
	boxed := transport.Box[net.Conn](transport.NewTCPTransport())

	ln, err := boxed.Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		require.NoError(t, err)
		accepted <- conn
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	dialed, err := boxed.Dial(ctx, ln.Addr().String())
	require.NoError(t, err)
	defer dialed.Close()

	select {
	case conn := <-accepted:
		defer conn.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("listener never accepted")
	}
}

func TestBoxed_DialErrorIsWidened(t *testing.T) {
	boxed := transport.Box[net.Conn](transport.NewTCPTransport())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Port 1 with no listener behind it: dial should fail locally
	// without hanging, proving the widening doesn't lose the cause.
	_, err := boxed.Dial(ctx, "127.0.0.1:1")
	require.Error(t, err)

	var opErr *transport.OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "dial", opErr.Op)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestBoxed_AddressTranslation(t *testing.T) {
	boxed := transport.Box[net.Conn](transport.NewTCPTransport())
	_, ok := boxed.AddressTranslation("0.0.0.0:1234", "203.0.113.5:1234")
	assert.False(t, ok)
}

func TestBoxed_ListenErrorIsWidened(t *testing.T) {
	boxed := transport.Box[net.Conn](transport.NewTCPTransport())
	_, err := boxed.Listen("not-a-valid-address")
	require.Error(t, err)

	var opErr *transport.OpError
	assert.True(t, errors.As(err, &opErr))
}

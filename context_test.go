// Copyright (c) 2026 The Gzmq Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package gzmq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panjf2000/gzmq/pkg/config"
	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/logging"
	"github.com/panjf2000/gzmq/pkg/sockopt"
)

func TestContextOptions(t *testing.T) {
	ctx := newTestContext(t, WithIOThreads(2), WithMaxSockets(64))

	v, err := ctx.GetOption(sockopt.IOThreads)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = ctx.GetOption(sockopt.MaxSockets)
	require.NoError(t, err)
	assert.Equal(t, 64, v)

	require.NoError(t, ctx.SetOption(sockopt.IPv6, true))
	v, err = ctx.GetOption(sockopt.IPv6)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	assert.ErrorIs(t, ctx.SetOption(sockopt.SocketLimit, 1), errorx.ErrOptionNotWritable)
	assert.ErrorIs(t, ctx.SetOption(sockopt.IOThreads, "two"), errorx.ErrInvalidOptionValue)
	_, err = ctx.GetOption("bogus")
	assert.ErrorIs(t, err, errorx.ErrUnknownOption)
	_, err = ctx.GetOption(sockopt.Linger)
	assert.ErrorIs(t, err, errorx.ErrUnknownOption, "socket options are not context options")
}

func TestContextDestroy(t *testing.T) {
	ctx, err := NewContext(WithLogger(logging.Nop()))
	require.NoError(t, err)
	assert.False(t, ctx.Destroyed())

	require.NoError(t, ctx.Destroy())
	assert.True(t, ctx.Destroyed())
	assert.Nil(t, ctx.handle)
	assert.ErrorIs(t, ctx.Destroy(), errorx.ErrContextDestroyed)

	_, err = ctx.Socket(Pair)
	assert.ErrorIs(t, err, errorx.ErrContextDestroyed)
	assert.ErrorIs(t, ctx.SetOption(sockopt.IOThreads, 1), errorx.ErrContextDestroyed)
	_, err = ctx.GetOption(sockopt.IOThreads)
	assert.ErrorIs(t, err, errorx.ErrContextDestroyed)
}

func TestContextSocketDefaults(t *testing.T) {
	ctx := newTestContext(t,
		WithTimeout(1500*time.Millisecond),
		WithSocketOption(sockopt.SndHWM, 42),
	)
	s := newTestSocket(t, ctx, Dealer)

	linger, err := s.Linger()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), linger)

	rcvtimeo, err := s.RecvTimeout()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, rcvtimeo)

	sndtimeo, err := s.SendTimeout()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, sndtimeo)

	hwm, err := s.SendHWM()
	require.NoError(t, err)
	assert.Equal(t, 42, hwm)
}

func TestContextRejectsBadSocketDefaults(t *testing.T) {
	_, err := NewContext(WithSocketOption("bogus", 1))
	assert.ErrorIs(t, err, errorx.ErrUnknownOption)

	_, err = NewContext(WithSocketOption(sockopt.RcvMore, true))
	assert.ErrorIs(t, err, errorx.ErrOptionNotWritable)

	_, err = NewContext(WithSocketOption(sockopt.Linger, "soon"))
	assert.ErrorIs(t, err, errorx.ErrInvalidOptionValue)
}

func TestContextUnsupportedSocketType(t *testing.T) {
	ctx := newTestContext(t)
	_, err := ctx.Socket(SocketType(42))
	assert.ErrorIs(t, err, errorx.ErrUnsupportedSocketType)
}

func TestContextWithConfig(t *testing.T) {
	cfg, err := config.Decode(`
io_threads = 2

[socket]
linger = "100ms"
rcvhwm = 7
`)
	require.NoError(t, err)

	ctx := newTestContext(t, WithConfig(cfg))
	v, err := ctx.GetOption(sockopt.IOThreads)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	s := newTestSocket(t, ctx, Pull)
	linger, err := s.Linger()
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, linger, "config overrides the earlier WithLinger")

	hwm, err := s.RecvHWM()
	require.NoError(t, err)
	assert.Equal(t, 7, hwm)
}

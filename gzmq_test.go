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
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panjf2000/gzmq/pkg/logging"
)

var endpointSeq atomic.Int64

// inproc returns an endpoint no other test uses.
func inproc(name string) string {
	return fmt.Sprintf("inproc://%s-%d", name, endpointSeq.Add(1))
}

func newTestContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	opts = append([]Option{WithLinger(0), WithLogger(logging.Nop())}, opts...)
	ctx, err := NewContext(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Destroy() })
	return ctx
}

func newTestSocket(t *testing.T, ctx *Context, typ SocketType) *Socket {
	t.Helper()
	s, err := ctx.Socket(typ)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// pair returns two connected PAIR sockets.
func pair(t *testing.T, ctx *Context) (*Socket, *Socket) {
	t.Helper()
	endpoint := inproc("pair")
	a := newTestSocket(t, ctx, Pair)
	require.NoError(t, a.Bind(endpoint))
	b := newTestSocket(t, ctx, Pair)
	require.NoError(t, b.Connect(endpoint))
	return a, b
}

func TestVersion(t *testing.T) {
	major, minor, patch := Version()
	assert.GreaterOrEqual(t, major, 4)
	assert.GreaterOrEqual(t, minor, 0)
	assert.GreaterOrEqual(t, patch, 0)
}

func TestSocketTypeCapabilities(t *testing.T) {
	cases := []struct {
		typ             SocketType
		name            string
		send, recv, sub bool
	}{
		{Pair, "PAIR", true, true, false},
		{Pub, "PUB", true, false, false},
		{Sub, "SUB", false, true, true},
		{Req, "REQ", true, true, false},
		{Rep, "REP", true, true, false},
		{Dealer, "DEALER", true, true, false},
		{Router, "ROUTER", true, true, false},
		{Pull, "PULL", false, true, false},
		{Push, "PUSH", true, false, false},
		{XPub, "XPUB", true, true, false},
		{XSub, "XSUB", true, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.typ.String())
			assert.Equal(t, tc.send, tc.typ.CanSend())
			assert.Equal(t, tc.recv, tc.typ.CanRecv())
			assert.Equal(t, tc.sub, tc.typ.CanSubscribe())
		})
	}

	bogus := SocketType(42)
	assert.Equal(t, "SocketType(42)", bogus.String())
	assert.False(t, bogus.CanSend())
	assert.False(t, bogus.CanRecv())
}

func TestFlagsAndEvents(t *testing.T) {
	assert.EqualValues(t, 1, DontWait)
	assert.EqualValues(t, 2, SndMore)
	assert.Equal(t, 3, combine([]Flag{DontWait, SndMore}))
	assert.Equal(t, 0, combine(nil))

	assert.EqualValues(t, 1, PollIn)
	assert.EqualValues(t, 2, PollOut)
	assert.EqualValues(t, 4, PollErr)
}

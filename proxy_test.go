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

	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/logging"
	goPool "github.com/panjf2000/gzmq/pkg/pool/goroutine"
)

func waitResult(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("proxy did not stop")
	}
	return nil
}

func TestQueueDevice(t *testing.T) {
	ctx, err := NewContext(WithLinger(0), WithLogger(logging.Nop()))
	require.NoError(t, err)

	dev, err := NewQueueDevice(ctx)
	require.NoError(t, err)
	assert.Equal(t, Router, dev.Frontend().Type())
	assert.Equal(t, Dealer, dev.Backend().Type())
	assert.Nil(t, dev.Capture())

	front, back := inproc("queue-front"), inproc("queue-back")
	require.NoError(t, dev.Frontend().Bind(front))
	require.NoError(t, dev.Backend().Bind(back))

	pool := goPool.New(4)
	defer pool.Release()
	done := dev.Run(pool)

	rep, err := ctx.Socket(Rep)
	require.NoError(t, err)
	require.NoError(t, rep.Connect(back))
	req, err := ctx.Socket(Req)
	require.NoError(t, err)
	require.NoError(t, req.Connect(front))

	require.NoError(t, req.Send([]byte("ping")))
	got, err := rep.Recv()
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), got)

	require.NoError(t, rep.Send([]byte("pong")))
	got, err = req.Recv()
	require.NoError(t, err)
	assert.Equal(t, []byte("pong"), got)

	require.NoError(t, req.Close())
	require.NoError(t, rep.Close())
	require.NoError(t, ctx.Destroy())

	assert.NoError(t, waitResult(t, done), "termination stops the proxy cleanly")
	assert.True(t, dev.Frontend().Closed())
	assert.True(t, dev.Backend().Closed())
}

func TestStreamerWithCapture(t *testing.T) {
	ctx, err := NewContext(WithLinger(0), WithLogger(logging.Nop()))
	require.NoError(t, err)

	dev, err := NewStreamerDevice(ctx)
	require.NoError(t, err)
	front, back, tap := inproc("stream-front"), inproc("stream-back"), inproc("stream-tap")
	require.NoError(t, dev.Frontend().Bind(front))
	require.NoError(t, dev.Backend().Bind(back))

	listener, err := ctx.Socket(Pair)
	require.NoError(t, err)
	require.NoError(t, listener.Bind(tap))
	capture, err := ctx.Socket(Pair)
	require.NoError(t, err)
	require.NoError(t, capture.Connect(tap))

	proxy := NewProxy(dev.Frontend(), dev.Backend(), capture)
	assert.Same(t, capture, proxy.Capture())
	done := proxy.Run(nil)

	push, err := ctx.Socket(Push)
	require.NoError(t, err)
	require.NoError(t, push.Connect(front))
	pull, err := ctx.Socket(Pull)
	require.NoError(t, err)
	require.NoError(t, pull.Connect(back))

	require.NoError(t, push.SendMultipart([][]byte{[]byte("job"), []byte("42")}))
	got, err := pull.RecvMultipart()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("job"), []byte("42")}, got)

	copied, err := listener.RecvMultipart()
	require.NoError(t, err)
	assert.Equal(t, got, copied)

	for _, s := range []*Socket{push, pull, listener} {
		require.NoError(t, s.Close())
	}
	require.NoError(t, ctx.Destroy())

	assert.NoError(t, waitResult(t, done))
	assert.True(t, capture.Closed())
}

func TestProxyClosedSocket(t *testing.T) {
	ctx := newTestContext(t)
	dev, err := NewForwarderDevice(ctx)
	require.NoError(t, err)
	assert.Equal(t, XSub, dev.Frontend().Type())
	assert.Equal(t, XPub, dev.Backend().Type())

	require.NoError(t, dev.Backend().Close())
	assert.ErrorIs(t, dev.Start(), errorx.ErrSocketClosed)
	require.NoError(t, dev.Close())
	assert.True(t, dev.Frontend().Closed())
}

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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/logging"
)

func newPipe(t *testing.T) (r, w *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

func TestPollerRegistration(t *testing.T) {
	_, w := newPipe(t)
	fd := FileFD(w)

	p := NewPoller()
	assert.Equal(t, 0, p.Len())
	assert.ErrorIs(t, p.Register(nil), errorx.ErrNilPollable)
	assert.ErrorIs(t, p.Register((*Socket)(nil)), errorx.ErrNilPollable)

	require.NoError(t, p.Register(fd))
	assert.Equal(t, 1, p.Len())
	res, err := p.Poll(0)
	require.NoError(t, err)
	assert.True(t, res.Writable(fd), "no events means PollIn|PollOut")
	assert.Empty(t, res.Readables)

	require.NoError(t, p.Register(fd, PollIn))
	assert.Equal(t, 1, p.Len(), "registering again replaces the events")
	res, err = p.Poll(0)
	require.NoError(t, err)
	assert.True(t, res.None())

	assert.True(t, p.Unregister(fd))
	assert.False(t, p.Unregister(fd))
	assert.Equal(t, 0, p.Len())
	res, err = p.Poll(-1)
	require.NoError(t, err, "an empty poller never blocks")
	assert.True(t, res.None())
}

func TestPollerReadableWritable(t *testing.T) {
	r, w := newPipe(t)
	rfd, wfd := FileFD(r), FileFD(w)
	_, err := w.Write([]byte("x"))
	require.NoError(t, err)

	p := NewPoller()
	require.NoError(t, p.Register(rfd))
	require.NoError(t, p.Register(wfd))

	res, err := p.Poll(0)
	require.NoError(t, err)
	assert.True(t, res.Any())
	assert.Equal(t, []Pollable{rfd}, res.Readables)
	assert.Equal(t, []Pollable{wfd}, res.Writables)
}

func TestPollerTimeout(t *testing.T) {
	r, _ := newPipe(t)

	p := NewPoller()
	require.NoError(t, p.Register(FileFD(r), PollIn))

	start := time.Now()
	res, err := p.Poll(100 * time.Millisecond)
	require.NoError(t, err)
	assert.True(t, res.None())
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestPollerSocketsAndDescriptors(t *testing.T) {
	ctx := newTestContext(t)
	a, b := pair(t, ctx)
	r, w := newPipe(t)
	rfd := FileFD(r)

	p := NewPoller()
	require.NoError(t, p.Register(b, PollIn))
	require.NoError(t, p.Register(rfd, PollIn))

	res, err := p.Poll(0)
	require.NoError(t, err)
	assert.True(t, res.None())

	require.NoError(t, a.Send([]byte("ready")))
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		res, err = p.Poll(50 * time.Millisecond)
		return err == nil && len(res.Readables) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []Pollable{b, rfd}, res.Readables)
	assert.Empty(t, res.Writables)

	require.NoError(t, p.Register(a, PollOut))
	res, err = p.Poll(0)
	require.NoError(t, err)
	assert.True(t, res.Writable(a))
	assert.True(t, res.Readable(b))
	assert.False(t, res.Readable(a))
}

func TestPollerClosedSocket(t *testing.T) {
	ctx := newTestContext(t)
	_, b := pair(t, ctx)

	p := NewPoller()
	require.NoError(t, p.Register(b))
	_, err := p.Poll(0)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	_, err = p.Poll(0)
	assert.ErrorIs(t, err, errorx.ErrSocketClosed)

	assert.True(t, p.Unregister(b))
	_, err = p.Poll(0)
	assert.NoError(t, err)
}

func TestPollerWakesOnDestroy(t *testing.T) {
	ctx, err := NewContext(WithLogger(logging.Nop()))
	require.NoError(t, err)
	s, err := ctx.Socket(Pull)
	require.NoError(t, err)
	require.NoError(t, s.Bind(inproc("poll-blocked")))

	p := NewPoller()
	require.NoError(t, p.Register(s, PollIn))

	pollErr := make(chan error, 1)
	var g errgroup.Group
	g.Go(func() error {
		_, err := p.Poll(-1)
		pollErr <- err
		return nil
	})
	time.Sleep(100 * time.Millisecond)
	g.Go(ctx.Destroy)
	require.NoError(t, g.Wait())

	err = <-pollErr
	assert.ErrorIs(t, err, errorx.ErrContextTerminated)
	assert.True(t, s.Closed())
	_, err = p.Poll(0)
	assert.ErrorIs(t, err, errorx.ErrSocketClosed)
}

func TestPollerKeepsSocketsOfLiveContexts(t *testing.T) {
	doomed, err := NewContext(WithLogger(logging.Nop()))
	require.NoError(t, err)
	a, err := doomed.Socket(Pull)
	require.NoError(t, err)
	require.NoError(t, a.Bind(inproc("poll-doomed")))

	live := newTestContext(t)
	b := newTestSocket(t, live, Pull)
	require.NoError(t, b.Bind(inproc("poll-live")))

	p := NewPoller()
	require.NoError(t, p.Register(a, PollIn))
	require.NoError(t, p.Register(b, PollIn))

	pollErr := make(chan error, 1)
	var g errgroup.Group
	g.Go(func() error {
		_, err := p.Poll(-1)
		pollErr <- err
		return nil
	})
	time.Sleep(100 * time.Millisecond)
	g.Go(doomed.Destroy)
	require.NoError(t, g.Wait())

	assert.ErrorIs(t, <-pollErr, errorx.ErrContextTerminated)
	assert.True(t, a.Closed())
	assert.False(t, b.Closed())
	assert.False(t, live.Destroyed())

	_, err = b.Recv(DontWait)
	assert.ErrorIs(t, err, errorx.ErrAgain)

	assert.True(t, p.Unregister(a))
	res, err := p.Poll(0)
	require.NoError(t, err)
	assert.True(t, res.None())
}

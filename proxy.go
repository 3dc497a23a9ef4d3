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
	"sync"
	"unsafe"

	"go.uber.org/multierr"

	"github.com/panjf2000/gzmq/internal/zmq"
	errorx "github.com/panjf2000/gzmq/pkg/errors"
	goPool "github.com/panjf2000/gzmq/pkg/pool/goroutine"
)

// Proxy relays messages between a frontend and a backend socket, copying
// them to an optional capture socket, until the context is terminated.
type Proxy struct {
	frontend *Socket
	backend  *Socket
	capture  *Socket
}

// NewProxy creates a proxy over the given sockets, capture may be nil.
func NewProxy(frontend, backend, capture *Socket) *Proxy {
	return &Proxy{frontend: frontend, backend: backend, capture: capture}
}

// Frontend returns the socket facing clients.
func (p *Proxy) Frontend() *Socket { return p.frontend }

// Backend returns the socket facing workers or subscribers.
func (p *Proxy) Backend() *Socket { return p.backend }

// Capture returns the capture socket, nil if there is none.
func (p *Proxy) Capture() *Socket { return p.capture }

// Start runs the proxy in the calling goroutine. It returns nil once the
// context is terminated, after closing every socket of the proxy.
// Context.Destroy is the only way to stop a running proxy.
func (p *Proxy) Start() error {
	front, err := p.frontend.native()
	if err != nil {
		return err
	}
	back, err := p.backend.native()
	if err != nil {
		return err
	}
	var capture unsafe.Pointer
	if p.capture != nil {
		if capture, err = p.capture.native(); err != nil {
			return err
		}
	}

	p.frontend.logger.Debugf("proxy started: %s -> %s", p.frontend.typ, p.backend.typ)
	if err = errorx.FromNative("proxy", zmq.Proxy(front, back, capture)); !errorx.IsTerminated(err) {
		return err
	}
	if cerr := p.Close(); cerr != nil {
		p.frontend.logger.Debugf("proxy: close after termination failed: %v", cerr)
	}
	p.frontend.logger.Infof("proxy stopped: context terminated")
	return nil
}

var (
	defaultPool     *goPool.Pool
	defaultPoolOnce sync.Once
)

// Run starts the proxy on a worker of pool, or of a shared default pool if
// pool is nil. The result of Start is delivered on the returned channel.
func (p *Proxy) Run(pool *goPool.Pool) <-chan error {
	if pool == nil {
		defaultPoolOnce.Do(func() { defaultPool = goPool.Default() })
		pool = defaultPool
	}
	done := make(chan error, 1)
	if err := pool.Submit(func() { done <- p.Start() }); err != nil {
		done <- err
	}
	return done
}

// Close closes every socket of the proxy. It must not be called while Start
// is running: libzmq sockets can not be closed from another thread, so use
// Context.Destroy to stop the proxy instead.
func (p *Proxy) Close() (err error) {
	err = multierr.Append(err, p.frontend.Close())
	err = multierr.Append(err, p.backend.Close())
	if p.capture != nil {
		err = multierr.Append(err, p.capture.Close())
	}
	return
}

func newDevice(ctx *Context, front, back SocketType) (*Proxy, error) {
	frontend, err := ctx.Socket(front)
	if err != nil {
		return nil, err
	}
	backend, err := ctx.Socket(back)
	if err != nil {
		_ = frontend.Close()
		return nil, err
	}
	return NewProxy(frontend, backend, nil), nil
}

// NewQueueDevice creates a ROUTER frontend and a DEALER backend, sharing
// requests of REQ clients among REP workers.
func NewQueueDevice(ctx *Context) (*Proxy, error) {
	return newDevice(ctx, Router, Dealer)
}

// NewForwarderDevice creates an XSUB frontend and an XPUB backend, relaying
// publications and subscriptions.
func NewForwarderDevice(ctx *Context) (*Proxy, error) {
	return newDevice(ctx, XSub, XPub)
}

// NewStreamerDevice creates a PULL frontend and a PUSH backend for pipelines.
func NewStreamerDevice(ctx *Context) (*Proxy, error) {
	return newDevice(ctx, Pull, Push)
}

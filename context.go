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
	"sync"
	"unsafe"

	"github.com/panjf2000/gzmq/internal/zmq"
	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/logging"
	"github.com/panjf2000/gzmq/pkg/sockopt"
)

type socketDefault struct {
	name  sockopt.Name
	value any
}

// Context owns a libzmq context and creates the sockets living in it.
//
// Destroy may be called from any goroutine, including while sockets of the
// context are blocked in Send, Recv or Poll: those calls then fail with
// errors.ErrContextTerminated and close their socket. Destroy returns once
// every socket of the context has been closed.
type Context struct {
	mu        sync.RWMutex
	handle    unsafe.Pointer // nil once terminated
	destroyed bool

	logger   logging.Logger
	defaults []socketDefault
}

// NewContext creates a context with the given options.
func NewContext(opts ...Option) (*Context, error) {
	options := loadOptions(opts...)

	logger := options.Logger
	if logger == nil {
		logger = logging.GetDefaultLogger()
	}

	defaults, err := checkSocketDefaults(options.SocketDefaults)
	if err != nil {
		return nil, err
	}

	handle, err := zmq.CtxNew()
	if err != nil {
		return nil, errorx.FromNative("ctx_new", err)
	}
	c := &Context{handle: handle, logger: logger, defaults: defaults}

	if err = c.configure(options); err != nil {
		_ = zmq.CtxTerm(handle)
		return nil, err
	}

	major, minor, patch := zmq.Version()
	logger.Debugf("context created on libzmq %d.%d.%d, io_threads=%d max_sockets=%d ipv6=%t socket_defaults=%d",
		major, minor, patch, options.IOThreads, options.MaxSockets, options.IPv6, len(defaults))
	return c, nil
}

func (c *Context) configure(options *Options) error {
	if options.IOThreads > 0 {
		if err := c.SetOption(sockopt.IOThreads, options.IOThreads); err != nil {
			return err
		}
	}
	if options.MaxSockets > 0 {
		if err := c.SetOption(sockopt.MaxSockets, options.MaxSockets); err != nil {
			return err
		}
	}
	if options.IPv6 {
		return c.SetOption(sockopt.IPv6, true)
	}
	return nil
}

func checkSocketDefaults(values map[sockopt.Name]any) ([]socketDefault, error) {
	names := make([]sockopt.Name, 0, len(values))
	for name, value := range values {
		e, err := sockopt.Describe(name)
		if err != nil {
			return nil, err
		}
		if !e.Access.CanSet() {
			return nil, fmt.Errorf("%w: %q", errorx.ErrOptionNotWritable, name)
		}
		if _, err = sockopt.Encode(e.Type, value); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sockopt.SortNames(names)

	defaults := make([]socketDefault, len(names))
	for i, name := range names {
		defaults[i] = socketDefault{name, values[name]}
	}
	return defaults, nil
}

// Socket creates a socket of type t and applies the socket defaults of the
// context to it.
func (c *Context) Socket(t SocketType) (*Socket, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: %s", errorx.ErrUnsupportedSocketType, t)
	}

	c.mu.RLock()
	if c.destroyed {
		c.mu.RUnlock()
		return nil, errorx.ErrContextDestroyed
	}
	handle, err := zmq.Socket(c.handle, int(t))
	c.mu.RUnlock()
	if err != nil {
		return nil, errorx.FromNative("socket", err)
	}

	s := newSocket(c, t, handle)
	for _, d := range c.defaults {
		if err = s.SetOption(d.name, d.value); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	c.logger.Debugf("%s socket opened", t)
	return s, nil
}

// SetOption sets a context option.
func (c *Context) SetOption(name sockopt.Name, value any) error {
	e, err := sockopt.DescribeContext(name)
	if err != nil {
		return err
	}
	if !e.Access.CanSet() {
		return fmt.Errorf("%w: context option %q", errorx.ErrOptionNotWritable, name)
	}
	n, err := sockopt.IntValue(e.Type, value)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.destroyed {
		return errorx.ErrContextDestroyed
	}
	return errorx.FromNative("ctx_set", zmq.CtxSet(c.handle, e.Code, n))
}

// GetOption gets a context option.
func (c *Context) GetOption(name sockopt.Name) (any, error) {
	e, err := sockopt.DescribeContext(name)
	if err != nil {
		return nil, err
	}
	if !e.Access.CanGet() {
		return nil, fmt.Errorf("%w: context option %q", errorx.ErrOptionNotReadable, name)
	}

	c.mu.RLock()
	if c.destroyed {
		c.mu.RUnlock()
		return nil, errorx.ErrContextDestroyed
	}
	n, err := zmq.CtxGet(c.handle, e.Code)
	c.mu.RUnlock()
	if err != nil {
		return nil, errorx.FromNative("ctx_get", err)
	}
	return sockopt.FromInt(e.Type, n)
}

// Destroy terminates the context. Only the first call reaches libzmq, any
// later call returns errors.ErrContextDestroyed.
func (c *Context) Destroy() error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return errorx.ErrContextDestroyed
	}
	c.destroyed = true
	c.mu.Unlock()

	c.logger.Debugf("terminating context, waiting for its sockets to close")
	if err := zmq.CtxTerm(c.handle); err != nil {
		return errorx.FromNative("ctx_term", err)
	}
	c.mu.Lock()
	c.handle = nil
	c.mu.Unlock()
	c.logger.Infof("context destroyed")
	return nil
}

// Destroyed reports whether Destroy has been called.
func (c *Context) Destroyed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.destroyed
}

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
	"time"

	"github.com/panjf2000/gzmq/pkg/config"
	"github.com/panjf2000/gzmq/pkg/logging"
	"github.com/panjf2000/gzmq/pkg/sockopt"
)

// Option is a function that will set up option.
type Option func(opts *Options)

func loadOptions(options ...Option) *Options {
	opts := new(Options)
	for _, option := range options {
		option(opts)
	}
	return opts
}

// Options are set when the context is created.
type Options struct {
	// IOThreads is the size of the libzmq I/O thread pool, zero keeps the libzmq default.
	IOThreads int

	// MaxSockets caps the number of sockets of the context, zero keeps the libzmq default.
	MaxSockets int

	// IPv6 enables IPv6 on the sockets of the context.
	IPv6 bool

	// Logger is the customized logger for logging info, if it is not set,
	// then gzmq will use the default logger powered by go.uber.org/zap.
	Logger logging.Logger

	// SocketDefaults are socket options applied to every socket the context creates,
	// in option code order.
	SocketDefaults map[sockopt.Name]any
}

func (opts *Options) setSocketDefault(name sockopt.Name, value any) {
	if opts.SocketDefaults == nil {
		opts.SocketDefaults = make(map[sockopt.Name]any)
	}
	opts.SocketDefaults[name] = value
}

// WithOptions sets up all options.
func WithOptions(options Options) Option {
	return func(opts *Options) {
		*opts = options
	}
}

// WithIOThreads sets up the number of I/O threads.
func WithIOThreads(n int) Option {
	return func(opts *Options) {
		opts.IOThreads = n
	}
}

// WithMaxSockets sets up the maximum number of sockets.
func WithMaxSockets(n int) Option {
	return func(opts *Options) {
		opts.MaxSockets = n
	}
}

// WithIPv6 enables or disables IPv6.
func WithIPv6(ipv6 bool) Option {
	return func(opts *Options) {
		opts.IPv6 = ipv6
	}
}

// WithLogger sets up a customized logger.
func WithLogger(logger logging.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithLinger sets up the default linger period of sockets, Infinite for no limit.
func WithLinger(linger time.Duration) Option {
	return func(opts *Options) {
		opts.setSocketDefault(sockopt.Linger, linger)
	}
}

// WithTimeout sets up the default send and receive timeouts of sockets.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.setSocketDefault(sockopt.RcvTimeo, timeout)
		opts.setSocketDefault(sockopt.SndTimeo, timeout)
	}
}

// WithSocketOption sets up a default value for any socket option.
func WithSocketOption(name sockopt.Name, value any) Option {
	return func(opts *Options) {
		opts.setSocketDefault(name, value)
	}
}

// WithConfig sets up options from a loaded configuration. Fields set by
// options applied earlier are overwritten, socket defaults are merged.
func WithConfig(cfg *config.Config) Option {
	return func(opts *Options) {
		if cfg == nil {
			return
		}
		opts.IOThreads = cfg.IOThreads
		opts.MaxSockets = cfg.MaxSockets
		opts.IPv6 = cfg.IPv6
		for name, value := range cfg.SocketDefaults() {
			opts.setSocketDefault(name, value)
		}
	}
}

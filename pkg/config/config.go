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

// Package config loads context settings and socket defaults from TOML.
//
//	io_threads = 2
//	max_sockets = 512
//	ipv6 = false
//
//	[socket]
//	linger = "250ms"
//	rcvtimeo = 5
//	sndhwm = 10000
//
// Keys of the [socket] table are socket option names, time periods may be
// written as duration strings, seconds, or "infinite".
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/sockopt"
)

// Config holds the settings of one context.
type Config struct {
	IOThreads  int
	MaxSockets int
	IPv6       bool
	Socket     map[string]any
}

// Defaults of libzmq.
const (
	DefaultIOThreads  = 1
	DefaultMaxSockets = 1023
)

// Default returns the libzmq defaults with no socket defaults.
func Default() *Config {
	return &Config{
		IOThreads:  DefaultIOThreads,
		MaxSockets: DefaultMaxSockets,
		Socket:     map[string]any{},
	}
}

type fileConfig struct {
	IOThreads  int            `toml:"io_threads"`
	MaxSockets int            `toml:"max_sockets"`
	IPv6       bool           `toml:"ipv6"`
	Socket     map[string]any `toml:"socket"`
}

// Load reads the TOML file at path over Default.
func Load(path string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load gzmq config: %w", err)
	}
	return apply(meta, &raw)
}

// Decode parses TOML data over Default.
func Decode(data string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode gzmq config: %w", err)
	}
	return apply(meta, &raw)
}

func apply(meta toml.MetaData, raw *fileConfig) (*Config, error) {
	cfg := Default()

	if meta.IsDefined("io_threads") {
		if raw.IOThreads < 0 {
			return nil, fmt.Errorf("parse io_threads: negative value %d", raw.IOThreads)
		}
		cfg.IOThreads = raw.IOThreads
	}

	if meta.IsDefined("max_sockets") {
		if raw.MaxSockets <= 0 {
			return nil, fmt.Errorf("parse max_sockets: non-positive value %d", raw.MaxSockets)
		}
		cfg.MaxSockets = raw.MaxSockets
	}

	if meta.IsDefined("ipv6") {
		cfg.IPv6 = raw.IPv6
	}

	for name, value := range raw.Socket {
		if err := validate(sockopt.Name(name), value); err != nil {
			return nil, fmt.Errorf("parse socket.%s: %w", name, err)
		}
		cfg.Socket[name] = value
	}

	return cfg, nil
}

// SocketDefaults returns the [socket] table keyed by option name.
func (c *Config) SocketDefaults() map[sockopt.Name]any {
	out := make(map[sockopt.Name]any, len(c.Socket))
	for name, value := range c.Socket {
		out[sockopt.Name(name)] = value
	}
	return out
}

func validate(name sockopt.Name, value any) error {
	e, err := sockopt.Describe(name)
	if err != nil {
		return err
	}
	if !e.Access.CanSet() {
		return fmt.Errorf("%w: %q", errorx.ErrOptionNotWritable, name)
	}
	_, err = sockopt.Encode(e.Type, value)
	return err
}

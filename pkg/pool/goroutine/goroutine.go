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

// Package goroutine is a worker pool for the long-running, thread-blocking
// calls of gzmq, such as proxies and devices.
package goroutine

import (
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultPoolSize sets up the capacity of worker pool. Every running
	// device pins one worker for its whole lifetime.
	DefaultPoolSize = 1 << 10

	// ExpiryDuration is the interval time to clean up those expired workers.
	ExpiryDuration = 10 * time.Second

	// Nonblocking decides what to do when submitting a new task to a full worker pool: waiting for an available
	// worker or failing with ants.ErrPoolOverload.
	Nonblocking = true
)

// Pool is the alias of ants.Pool.
type Pool = ants.Pool

// Default instantiates a non-blocking *ants.Pool with the capacity of DefaultPoolSize.
func Default() *Pool {
	return New(DefaultPoolSize)
}

// New instantiates a non-blocking *ants.Pool with the given capacity.
func New(size int) *Pool {
	options := ants.Options{ExpiryDuration: ExpiryDuration, Nonblocking: Nonblocking}
	pool, _ := ants.NewPool(size, ants.WithOptions(options))
	return pool
}

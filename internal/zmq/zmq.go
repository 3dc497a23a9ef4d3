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

// Package zmq is the thin cgo surface over libzmq. Handles are opaque
// unsafe.Pointer values and every failure is reported as the unix.Errno
// libzmq left behind, nothing is classified here.
package zmq

/*
#cgo pkg-config: libzmq
#include <zmq.h>
#include <stdlib.h>
*/
import "C"

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

func errno(err error) error {
	if e, ok := err.(syscall.Errno); ok {
		return e
	}
	return unix.Errno(0)
}

// Version returns the version of the linked libzmq.
func Version() (major, minor, patch int) {
	var maj, mnr, pat C.int
	C.zmq_version(&maj, &mnr, &pat)
	return int(maj), int(mnr), int(pat)
}

// CtxNew creates a native context.
func CtxNew() (unsafe.Pointer, error) {
	ctx, err := C.zmq_ctx_new()
	if ctx == nil {
		return nil, errno(err)
	}
	return ctx, nil
}

// CtxTerm terminates ctx, blocking until every socket of it is closed.
func CtxTerm(ctx unsafe.Pointer) error {
	for {
		rc, err := C.zmq_ctx_term(ctx)
		if rc == 0 {
			return nil
		}
		if e := errno(err); e != unix.EINTR {
			return e
		}
	}
}

// CtxSet sets a context option.
func CtxSet(ctx unsafe.Pointer, option, value int) error {
	if rc, err := C.zmq_ctx_set(ctx, C.int(option), C.int(value)); rc != 0 {
		return errno(err)
	}
	return nil
}

// CtxGet gets a context option.
func CtxGet(ctx unsafe.Pointer, option int) (int, error) {
	rc, err := C.zmq_ctx_get(ctx, C.int(option))
	if rc < 0 {
		return 0, errno(err)
	}
	return int(rc), nil
}

// Socket creates a socket of type typ in ctx.
func Socket(ctx unsafe.Pointer, typ int) (unsafe.Pointer, error) {
	s, err := C.zmq_socket(ctx, C.int(typ))
	if s == nil {
		return nil, errno(err)
	}
	return s, nil
}

// Close closes a socket.
func Close(s unsafe.Pointer) error {
	if rc, err := C.zmq_close(s); rc != 0 {
		return errno(err)
	}
	return nil
}

type endpointFunc func(s unsafe.Pointer, cs *C.char) (C.int, error)

func withEndpoint(s unsafe.Pointer, endpoint string, fn endpointFunc) error {
	cs := C.CString(endpoint)
	defer C.free(unsafe.Pointer(cs))
	if rc, err := fn(s, cs); rc != 0 {
		return errno(err)
	}
	return nil
}

// Bind binds s to endpoint.
func Bind(s unsafe.Pointer, endpoint string) error {
	return withEndpoint(s, endpoint, func(s unsafe.Pointer, cs *C.char) (C.int, error) {
		rc, err := C.zmq_bind(s, cs)
		return rc, err
	})
}

// Connect connects s to endpoint.
func Connect(s unsafe.Pointer, endpoint string) error {
	return withEndpoint(s, endpoint, func(s unsafe.Pointer, cs *C.char) (C.int, error) {
		rc, err := C.zmq_connect(s, cs)
		return rc, err
	})
}

// Unbind stops s from accepting connections on endpoint.
func Unbind(s unsafe.Pointer, endpoint string) error {
	return withEndpoint(s, endpoint, func(s unsafe.Pointer, cs *C.char) (C.int, error) {
		rc, err := C.zmq_unbind(s, cs)
		return rc, err
	})
}

// Disconnect disconnects s from endpoint.
func Disconnect(s unsafe.Pointer, endpoint string) error {
	return withEndpoint(s, endpoint, func(s unsafe.Pointer, cs *C.char) (C.int, error) {
		rc, err := C.zmq_disconnect(s, cs)
		return rc, err
	})
}

// GetSockOpt reads option into buf and returns the number of bytes written.
func GetSockOpt(s unsafe.Pointer, option int, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, unix.EINVAL
	}
	size := C.size_t(len(buf))
	if rc, err := C.zmq_getsockopt(s, C.int(option), unsafe.Pointer(&buf[0]), &size); rc != 0 {
		return 0, errno(err)
	}
	return int(size), nil
}

// SetSockOpt writes buf as option. An empty buf is passed as a NULL value
// of length zero, which is how an empty subscription is expressed.
func SetSockOpt(s unsafe.Pointer, option int, buf []byte) error {
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	if rc, err := C.zmq_setsockopt(s, C.int(option), p, C.size_t(len(buf))); rc != 0 {
		return errno(err)
	}
	return nil
}

// Proxy relays messages between frontend and backend until the context is
// terminated. capture may be nil.
func Proxy(frontend, backend, capture unsafe.Pointer) error {
	rc, err := C.zmq_proxy(frontend, backend, capture)
	if rc != 0 {
		return errno(err)
	}
	return nil
}

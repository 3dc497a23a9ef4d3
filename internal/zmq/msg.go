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

package zmq

/*
#include <zmq.h>
*/
import "C"

import "unsafe"

// Send and receive flags.
const (
	DontWait = int(C.ZMQ_DONTWAIT)
	SndMore  = int(C.ZMQ_SNDMORE)
)

// Msg is a native zmq_msg_t. It must be initialized with Init or InitData
// and closed exactly once.
type Msg struct {
	m C.zmq_msg_t
}

// Init initializes an empty message.
func (m *Msg) Init() error {
	if rc, err := C.zmq_msg_init(&m.m); rc != 0 {
		return errno(err)
	}
	return nil
}

// InitData initializes a message holding a copy of data.
func (m *Msg) InitData(data []byte) error {
	if len(data) == 0 {
		return m.Init()
	}
	if rc, err := C.zmq_msg_init_size(&m.m, C.size_t(len(data))); rc != 0 {
		return errno(err)
	}
	copy(unsafe.Slice((*byte)(C.zmq_msg_data(&m.m)), len(data)), data)
	return nil
}

// Close releases the message content.
func (m *Msg) Close() error {
	if rc, err := C.zmq_msg_close(&m.m); rc != 0 {
		return errno(err)
	}
	return nil
}

// Size returns the payload size in bytes.
func (m *Msg) Size() int {
	return int(C.zmq_msg_size(&m.m))
}

// More reports whether more frames of the same multipart message follow.
func (m *Msg) More() bool {
	return C.zmq_msg_more(&m.m) == 1
}

// Bytes returns a copy of the payload.
func (m *Msg) Bytes() []byte {
	size := m.Size()
	if size == 0 {
		return []byte{}
	}
	return C.GoBytes(C.zmq_msg_data(&m.m), C.int(size))
}

// Send queues the message on socket s. On success the message is left empty.
func (m *Msg) Send(s unsafe.Pointer, flags int) (int, error) {
	rc, err := C.zmq_msg_send(&m.m, s, C.int(flags))
	if rc < 0 {
		return 0, errno(err)
	}
	return int(rc), nil
}

// Recv receives a frame from socket s into the message, releasing whatever
// it held before.
func (m *Msg) Recv(s unsafe.Pointer, flags int) (int, error) {
	rc, err := C.zmq_msg_recv(&m.m, s, C.int(flags))
	if rc < 0 {
		return 0, errno(err)
	}
	return int(rc), nil
}

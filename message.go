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
	"github.com/panjf2000/gzmq/internal/zmq"
	errorx "github.com/panjf2000/gzmq/pkg/errors"
)

type messageState uint8

const (
	msgEmpty messageState = iota
	msgLoaded
	msgReceived
)

// Message is a reusable native message, for callers that want to move
// frames without the allocation of Socket.Send and Socket.Recv.
//
// A Message must be closed once it is no longer needed.
type Message struct {
	msg    *zmq.Msg
	state  messageState
	unread bool
	closed bool
}

// NewMessage creates a message holding a copy of data, or an empty message
// ready for Recv if data is nil.
func NewMessage(data []byte) (*Message, error) {
	m := &Message{msg: new(zmq.Msg)}
	if data == nil {
		if err := m.msg.Init(); err != nil {
			return nil, errorx.FromNative("msg_init", err)
		}
		return m, nil
	}
	if err := m.msg.InitData(data); err != nil {
		return nil, errorx.FromNative("msg_init_size", err)
	}
	m.state = msgLoaded
	return m, nil
}

// WithMessage creates a message from data, passes it to fn and closes it
// once fn returns.
func WithMessage(data []byte, fn func(m *Message) error) error {
	m, err := NewMessage(data)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck
	return fn(m)
}

func (m *Message) fail(s *Socket, op string, err error) error {
	err = s.fail(op, err)
	if errorx.IsTerminated(err) {
		_ = m.Close()
	}
	return err
}

// Send sends the message on s. The payload moves to libzmq, leaving the
// message empty.
func (m *Message) Send(s *Socket, flags ...Flag) error {
	if m.closed {
		return errorx.ErrMessageClosed
	}
	h, err := s.ready(s.typ.CanSend())
	if err != nil {
		return err
	}
	if _, err = m.msg.Send(h, combine(flags)); err != nil {
		return m.fail(s, "send", err)
	}
	m.state, m.unread = msgEmpty, false
	return nil
}

// Recv receives a frame from s into the message. It fails with
// errors.ErrMessageInUse while the message holds an unsent payload or data
// that was not read through Data; call Reset to discard it.
func (m *Message) Recv(s *Socket, flags ...Flag) error {
	if m.closed {
		return errorx.ErrMessageClosed
	}
	if m.state == msgLoaded || m.unread {
		return errorx.ErrMessageInUse
	}
	h, err := s.ready(s.typ.CanRecv())
	if err != nil {
		return err
	}
	if _, err = m.msg.Recv(h, combine(flags)); err != nil {
		return m.fail(s, "recv", err)
	}
	m.state, m.unread = msgReceived, true
	return nil
}

// Data returns a copy of the payload and marks it read.
func (m *Message) Data() []byte {
	if m.closed {
		return nil
	}
	m.unread = false
	return m.msg.Bytes()
}

// Size returns the payload size in bytes.
func (m *Message) Size() int {
	if m.closed {
		return 0
	}
	return m.msg.Size()
}

// More reports whether the frame last received is followed by more frames.
func (m *Message) More() bool {
	if m.closed || m.state != msgReceived {
		return false
	}
	return m.msg.More()
}

// Reset discards the payload, leaving the message empty.
func (m *Message) Reset() error {
	if m.closed {
		return errorx.ErrMessageClosed
	}
	if err := m.msg.Close(); err != nil {
		return errorx.FromNative("msg_close", err)
	}
	if err := m.msg.Init(); err != nil {
		m.closed = true
		return errorx.FromNative("msg_init", err)
	}
	m.state, m.unread = msgEmpty, false
	return nil
}

// Close releases the message. Closing a closed message is a no-op.
func (m *Message) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return errorx.FromNative("msg_close", m.msg.Close())
}

// Closed reports whether the message has been closed.
func (m *Message) Closed() bool { return m.closed }

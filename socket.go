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
	"unsafe"

	"go.uber.org/atomic"

	"github.com/panjf2000/gzmq/internal/zmq"
	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/logging"
	"github.com/panjf2000/gzmq/pkg/pool/bytebuffer"
	"github.com/panjf2000/gzmq/pkg/sockopt"
)

// Frame is one part of a multipart message.
type Frame struct {
	Data []byte
	// More is set when further frames of the same message follow.
	More bool
}

// Socket is a libzmq socket. It is not safe for concurrent use. Closed may
// be called from any goroutine, Close only while no other goroutine uses the
// socket, which rules out sockets of a running Proxy.
type Socket struct {
	handle *atomic.UnsafePointer // nil once closed
	typ    SocketType
	active atomic.Bool
	ctx    *Context
	logger logging.Logger

	optBufs map[sockopt.Name]*sockopt.Buffer
}

func newSocket(ctx *Context, t SocketType, handle unsafe.Pointer) *Socket {
	return &Socket{
		handle:  atomic.NewUnsafePointer(handle),
		typ:     t,
		ctx:     ctx,
		logger:  ctx.logger,
		optBufs: make(map[sockopt.Name]*sockopt.Buffer),
	}
}

// Type returns the socket type.
func (s *Socket) Type() SocketType { return s.typ }

// Context returns the context the socket was created in.
func (s *Socket) Context() *Context { return s.ctx }

// Closed reports whether the socket has been closed, either by Close or
// because its context was terminated.
func (s *Socket) Closed() bool { return s.handle.Load() == nil }

func (s *Socket) native() (unsafe.Pointer, error) {
	h := s.handle.Load()
	if h == nil {
		return nil, errorx.ErrSocketClosed
	}
	return h, nil
}

// ready returns the handle for a send or receive after checking that the
// socket is connected and that its type is capable of the operation.
func (s *Socket) ready(capable bool) (unsafe.Pointer, error) {
	h, err := s.native()
	if err != nil {
		return nil, err
	}
	if !s.active.Load() {
		return nil, errorx.ErrNotConnected
	}
	if !capable {
		return nil, fmt.Errorf("%w: %s", errorx.ErrUnsupportedOp, s.typ)
	}
	return h, nil
}

// fail classifies err, closing the socket when the context was terminated.
func (s *Socket) fail(op string, err error) error {
	err = errorx.FromNative(op, err)
	if errorx.IsTerminated(err) {
		if cerr := s.Close(); cerr != nil {
			s.logger.Debugf("%s socket: close after %s failed: %v", s.typ, op, cerr)
		}
	}
	return err
}

// Close closes the socket. Closing a closed socket is a no-op.
func (s *Socket) Close() error {
	h := s.handle.Swap(nil)
	if h == nil {
		return nil
	}
	s.active.Store(false)
	if err := zmq.Close(h); err != nil {
		return errorx.FromNative("close", err)
	}
	s.logger.Debugf("%s socket closed", s.typ)
	return nil
}

// Bind accepts incoming connections on endpoint, e.g. "tcp://127.0.0.1:5555".
func (s *Socket) Bind(endpoint string) error {
	h, err := s.native()
	if err != nil {
		return err
	}
	if err = zmq.Bind(h, endpoint); err != nil {
		return s.fail("bind", err)
	}
	s.active.Store(true)
	return nil
}

// Connect connects to endpoint.
func (s *Socket) Connect(endpoint string) error {
	h, err := s.native()
	if err != nil {
		return err
	}
	if err = zmq.Connect(h, endpoint); err != nil {
		return s.fail("connect", err)
	}
	s.active.Store(true)
	return nil
}

// Unbind stops accepting connections on endpoint.
func (s *Socket) Unbind(endpoint string) error {
	h, err := s.native()
	if err != nil {
		return err
	}
	if err = zmq.Unbind(h, endpoint); err != nil {
		return s.fail("unbind", err)
	}
	return nil
}

// Disconnect disconnects from endpoint.
func (s *Socket) Disconnect(endpoint string) error {
	h, err := s.native()
	if err != nil {
		return err
	}
	if err = zmq.Disconnect(h, endpoint); err != nil {
		return s.fail("disconnect", err)
	}
	return nil
}

// GetOption reads a socket option. The result is an int, int64, uint64,
// bool, []byte, string or time.Duration depending on the option.
func (s *Socket) GetOption(name sockopt.Name) (any, error) {
	e, err := sockopt.Describe(name)
	if err != nil {
		return nil, err
	}
	if !e.Access.CanGet() {
		return nil, fmt.Errorf("%w: %q", errorx.ErrOptionNotReadable, name)
	}
	h, err := s.native()
	if err != nil {
		return nil, err
	}

	buf, ok := s.optBufs[name]
	if !ok {
		buf = sockopt.NewBuffer(e.Type)
		s.optBufs[name] = buf
	}
	n, err := zmq.GetSockOpt(h, e.Code, buf.Prepare())
	if err != nil {
		return nil, s.fail("getsockopt", err)
	}
	buf.SetLen(n)
	return sockopt.Decode(buf)
}

// SetOption writes a socket option. See sockopt.Encode for the Go values
// each wire type accepts.
func (s *Socket) SetOption(name sockopt.Name, value any) error {
	e, err := sockopt.Describe(name)
	if err != nil {
		return err
	}
	if !e.Access.CanSet() {
		return fmt.Errorf("%w: %q", errorx.ErrOptionNotWritable, name)
	}
	h, err := s.native()
	if err != nil {
		return err
	}

	return bytebuffer.With(func(b *bytebuffer.ByteBuffer) error {
		if b.B, err = sockopt.Append(b.B[:0], e.Type, value); err != nil {
			return err
		}
		if err = zmq.SetSockOpt(h, e.Code, b.B); err != nil {
			return s.fail("setsockopt", err)
		}
		return nil
	})
}

func (s *Socket) sendFrame(h unsafe.Pointer, data []byte, flags int) error {
	var msg zmq.Msg
	if err := msg.InitData(data); err != nil {
		return errorx.FromNative("msg_init", err)
	}
	defer msg.Close() //nolint:errcheck
	if _, err := msg.Send(h, flags); err != nil {
		return s.fail("send", err)
	}
	return nil
}

// Send sends data as a single frame. Pass SndMore to announce further frames
// and DontWait to fail with errors.ErrAgain instead of blocking.
func (s *Socket) Send(data []byte, flags ...Flag) error {
	h, err := s.ready(s.typ.CanSend())
	if err != nil {
		return err
	}
	return s.sendFrame(h, data, combine(flags))
}

// SendMultipart sends frames as one multipart message, every frame but the
// last carrying SndMore. DontWait only applies to the first frame: once it
// is queued libzmq accepts the rest of the message without blocking.
// An empty frames slice sends nothing.
func (s *Socket) SendMultipart(frames [][]byte, flags ...Flag) error {
	h, err := s.ready(s.typ.CanSend())
	if err != nil {
		return err
	}
	f := combine(flags) &^ int(SndMore)
	for i, frame := range frames {
		ff := f
		if i > 0 {
			ff &^= int(DontWait)
		}
		if i < len(frames)-1 {
			ff |= int(SndMore)
		}
		if err = s.sendFrame(h, frame, ff); err != nil {
			return err
		}
	}
	return nil
}

func (s *Socket) recvFrame(h unsafe.Pointer, flags int) (Frame, error) {
	var msg zmq.Msg
	if err := msg.Init(); err != nil {
		return Frame{}, errorx.FromNative("msg_init", err)
	}
	defer msg.Close() //nolint:errcheck
	if _, err := msg.Recv(h, flags); err != nil {
		return Frame{}, s.fail("recv", err)
	}
	return Frame{Data: msg.Bytes(), More: msg.More()}, nil
}

// Recv receives one frame.
func (s *Socket) Recv(flags ...Flag) ([]byte, error) {
	f, err := s.RecvFrame(flags...)
	return f.Data, err
}

// RecvFrame receives one frame along with its more marker.
func (s *Socket) RecvFrame(flags ...Flag) (Frame, error) {
	h, err := s.ready(s.typ.CanRecv())
	if err != nil {
		return Frame{}, err
	}
	return s.recvFrame(h, combine(flags))
}

// RecvMultipart receives every frame of the next message, in order.
func (s *Socket) RecvMultipart(flags ...Flag) ([][]byte, error) {
	h, err := s.ready(s.typ.CanRecv())
	if err != nil {
		return nil, err
	}
	f := combine(flags)
	var frames [][]byte
	for {
		frame, err := s.recvFrame(h, f)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame.Data)
		if !frame.More {
			return frames, nil
		}
		f &^= int(DontWait)
	}
}

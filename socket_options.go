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
	"time"

	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/sockopt"
)

func getOption[T any](s *Socket, name sockopt.Name) (T, error) {
	var zero T
	v, err := s.GetOption(name)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q decoded as %T", errorx.ErrInvalidOptionValue, name, v)
	}
	return t, nil
}

// Linger returns how long pending messages linger after Close, Infinite for
// no limit.
func (s *Socket) Linger() (time.Duration, error) {
	return getOption[time.Duration](s, sockopt.Linger)
}

// SetLinger sets the linger period.
func (s *Socket) SetLinger(d time.Duration) error {
	return s.SetOption(sockopt.Linger, d)
}

// RecvTimeout returns the receive timeout, Infinite when receives block.
func (s *Socket) RecvTimeout() (time.Duration, error) {
	return getOption[time.Duration](s, sockopt.RcvTimeo)
}

// SetRecvTimeout sets the receive timeout.
func (s *Socket) SetRecvTimeout(d time.Duration) error {
	return s.SetOption(sockopt.RcvTimeo, d)
}

// SendTimeout returns the send timeout, Infinite when sends block.
func (s *Socket) SendTimeout() (time.Duration, error) {
	return getOption[time.Duration](s, sockopt.SndTimeo)
}

// SetSendTimeout sets the send timeout.
func (s *Socket) SetSendTimeout(d time.Duration) error {
	return s.SetOption(sockopt.SndTimeo, d)
}

// Identity returns the routing id of the socket, empty if none was set.
func (s *Socket) Identity() ([]byte, error) {
	return getOption[[]byte](s, sockopt.Identity)
}

// SetIdentity sets the routing id peers of a ROUTER see for the socket.
func (s *Socket) SetIdentity(id []byte) error {
	return s.SetOption(sockopt.Identity, id)
}

// LastEndpoint returns the endpoint of the last bind or connect, resolved,
// e.g. with the port picked for "tcp://127.0.0.1:*".
func (s *Socket) LastEndpoint() (string, error) {
	return getOption[string](s, sockopt.LastEndpoint)
}

// RcvMore reports whether the last frame received is followed by more.
func (s *Socket) RcvMore() (bool, error) {
	return getOption[bool](s, sockopt.RcvMore)
}

// Events returns the current readiness of the socket.
func (s *Socket) Events() (Event, error) {
	n, err := getOption[int](s, sockopt.Events)
	return Event(n), err
}

// SendHWM returns the high water mark of outbound messages.
func (s *Socket) SendHWM() (int, error) {
	return getOption[int](s, sockopt.SndHWM)
}

// SetSendHWM sets the high water mark of outbound messages.
func (s *Socket) SetSendHWM(n int) error {
	return s.SetOption(sockopt.SndHWM, n)
}

// RecvHWM returns the high water mark of inbound messages.
func (s *Socket) RecvHWM() (int, error) {
	return getOption[int](s, sockopt.RcvHWM)
}

// SetRecvHWM sets the high water mark of inbound messages.
func (s *Socket) SetRecvHWM(n int) error {
	return s.SetOption(sockopt.RcvHWM, n)
}

// Subscribe adds a topic prefix filter, an empty prefix matches everything.
func (s *Socket) Subscribe(prefix []byte) error {
	if !s.typ.CanSubscribe() {
		return fmt.Errorf("%w: %s can not subscribe", errorx.ErrUnsupportedOp, s.typ)
	}
	return s.SetOption(sockopt.Subscribe, prefix)
}

// Unsubscribe removes a filter added by Subscribe.
func (s *Socket) Unsubscribe(prefix []byte) error {
	if !s.typ.CanSubscribe() {
		return fmt.Errorf("%w: %s can not unsubscribe", errorx.ErrUnsupportedOp, s.typ)
	}
	return s.SetOption(sockopt.Unsubscribe, prefix)
}

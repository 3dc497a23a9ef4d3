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
	"strconv"

	"github.com/panjf2000/gzmq/internal/zmq"
)

// SocketType is the messaging pattern role of a socket.
type SocketType int

// Socket types, numbered as libzmq numbers them.
const (
	Pair SocketType = iota
	Pub
	Sub
	Req
	Rep
	Dealer
	Router
	Pull
	Push
	XPub
	XSub
)

var socketTypeNames = [...]string{
	Pair:   "PAIR",
	Pub:    "PUB",
	Sub:    "SUB",
	Req:    "REQ",
	Rep:    "REP",
	Dealer: "DEALER",
	Router: "ROUTER",
	Pull:   "PULL",
	Push:   "PUSH",
	XPub:   "XPUB",
	XSub:   "XSUB",
}

func (t SocketType) String() string {
	if t.valid() {
		return socketTypeNames[t]
	}
	return "SocketType(" + strconv.Itoa(int(t)) + ")"
}

func (t SocketType) valid() bool {
	return t >= Pair && t <= XSub
}

// CanSend reports whether sockets of this type are able to send.
func (t SocketType) CanSend() bool {
	return t.valid() && t != Sub && t != Pull
}

// CanRecv reports whether sockets of this type are able to receive.
func (t SocketType) CanRecv() bool {
	return t.valid() && t != Pub && t != Push
}

// CanSubscribe reports whether sockets of this type take subscriptions.
func (t SocketType) CanSubscribe() bool {
	return t == Sub
}

// Flag modifies a send or receive operation.
type Flag int

const (
	// DontWait makes the operation fail with errors.ErrAgain instead of blocking.
	DontWait Flag = Flag(zmq.DontWait)
	// SndMore marks a frame as followed by more frames of the same message.
	SndMore Flag = Flag(zmq.SndMore)
)

func combine(flags []Flag) int {
	var f Flag
	for _, flag := range flags {
		f |= flag
	}
	return int(f)
}

// Event is a readiness condition watched by a Poller.
type Event int16

const (
	// PollIn is set when at least one message may be received without blocking.
	PollIn Event = Event(zmq.PollIn)
	// PollOut is set when at least one message may be sent without blocking.
	PollOut Event = Event(zmq.PollOut)
	// PollErr is set on error conditions of plain file descriptors.
	PollErr Event = Event(zmq.PollErr)
)

// Version returns the version of the linked libzmq.
func Version() (major, minor, patch int) {
	return zmq.Version()
}

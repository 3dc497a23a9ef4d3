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

// Package errors defines common errors for gzmq, along with the classifier
// that turns native libzmq error numbers into them.
package errors

import "errors"

// Local errors, raised before any native call is issued.
var (
	// ErrUnknownOption occurs when an option name is not in the option registry.
	ErrUnknownOption = errors.New("gzmq: unknown option")
	// ErrInvalidOptionValue occurs when a value can not be marshaled into the wire type of an option.
	ErrInvalidOptionValue = errors.New("gzmq: invalid option value")
	// ErrOptionNotReadable occurs when trying to get a set-only option.
	ErrOptionNotReadable = errors.New("gzmq: option is not readable")
	// ErrOptionNotWritable occurs when trying to set a get-only option.
	ErrOptionNotWritable = errors.New("gzmq: option is not writable")
	// ErrNotConnected occurs when sending or receiving on a socket that was never bound or connected.
	ErrNotConnected = errors.New("gzmq: socket is not bound or connected")
	// ErrSocketClosed occurs when operating on a closed socket.
	ErrSocketClosed = errors.New("gzmq: socket is closed")
	// ErrContextDestroyed occurs when operating on a destroyed context.
	ErrContextDestroyed = errors.New("gzmq: context is destroyed")
	// ErrMessageClosed occurs when operating on a closed message.
	ErrMessageClosed = errors.New("gzmq: message is closed")
	// ErrMessageInUse occurs when receiving into a message that still holds an unsent payload or unread data.
	ErrMessageInUse = errors.New("gzmq: message holds unsent or unread data")
	// ErrUnsupportedOp occurs when the socket type lacks the capability an operation needs.
	ErrUnsupportedOp = errors.New("gzmq: operation is not supported by the socket type")
	// ErrUnsupportedSocketType occurs when creating a socket with a type outside the known set.
	ErrUnsupportedSocketType = errors.New("gzmq: unsupported socket type")
	// ErrNilPollable occurs when registering a nil pollable.
	ErrNilPollable = errors.New("gzmq: nil pollable is not allowed")
)

// Native errors, every *Error unwraps to exactly one of them.
var (
	// ErrAgain occurs when a non-blocking operation could not proceed without blocking.
	ErrAgain = errors.New("gzmq: resource temporarily unavailable")
	// ErrInvalidState occurs when an operation is not valid in the current socket state, e.g. two sends in a row on REQ.
	ErrInvalidState = errors.New("gzmq: operation cannot be accomplished in current state")
	// ErrIncompatibleProtocol occurs when the endpoint protocol is not compatible with the socket type.
	ErrIncompatibleProtocol = errors.New("gzmq: protocol is not compatible with the socket type")
	// ErrContextTerminated occurs when the context of a socket was terminated concurrently.
	ErrContextTerminated = errors.New("gzmq: context was terminated")
	// ErrNoIOThread occurs when no I/O thread is available to accomplish a task.
	ErrNoIOThread = errors.New("gzmq: no I/O thread available")
	// ErrSystem is matched by every native error carrying a platform errno.
	ErrSystem = errors.New("gzmq: system error")
	// ErrUnknown is matched by native errors with an unrecognized errno.
	ErrUnknown = errors.New("gzmq: unknown error")
)

// ErrWouldBlock is an alias of ErrAgain.
var ErrWouldBlock = ErrAgain

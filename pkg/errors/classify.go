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

package errors

import (
	"errors"
	"strconv"

	"golang.org/x/sys/unix"
)

// Kind is the category a native error number falls into.
type Kind uint8

const (
	// KindUnknown is an errno neither libzmq nor the platform defines.
	KindUnknown Kind = iota
	// KindAgain is EAGAIN, transient and safe to retry.
	KindAgain
	// KindInvalidState is EFSM.
	KindInvalidState
	// KindIncompatibleProtocol is ENOCOMPATPROTO.
	KindIncompatibleProtocol
	// KindContextTerminated is ETERM.
	KindContextTerminated
	// KindNoIOThread is EMTHREAD.
	KindNoIOThread
	// KindSystem is any other errno known to the platform.
	KindSystem
)

var kindNames = [...]string{
	KindUnknown:              "unknown",
	KindAgain:                "again",
	KindInvalidState:         "invalid-state",
	KindIncompatibleProtocol: "incompatible-protocol",
	KindContextTerminated:    "context-terminated",
	KindNoIOThread:           "no-io-thread",
	KindSystem:               "system",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

var kindErrors = [...]error{
	KindUnknown:              ErrUnknown,
	KindAgain:                ErrAgain,
	KindInvalidState:         ErrInvalidState,
	KindIncompatibleProtocol: ErrIncompatibleProtocol,
	KindContextTerminated:    ErrContextTerminated,
	KindNoIOThread:           ErrNoIOThread,
	KindSystem:               ErrSystem,
}

// Sentinel returns the error every *Error of kind k unwraps to.
func (k Kind) Sentinel() error {
	if int(k) < len(kindErrors) {
		return kindErrors[k]
	}
	return ErrUnknown
}

// Hausnumero is the base libzmq adds to its own error numbers so they never
// collide with the platform's.
const Hausnumero = 156384712

// libzmq-specific error numbers.
const (
	EFSM           = unix.Errno(Hausnumero + 51)
	ENOCOMPATPROTO = unix.Errno(Hausnumero + 52)
	ETERM          = unix.Errno(Hausnumero + 53)
	EMTHREAD       = unix.Errno(Hausnumero + 54)
)

var nativeKinds = map[unix.Errno]Kind{
	EFSM:           KindInvalidState,
	ENOCOMPATPROTO: KindIncompatibleProtocol,
	ETERM:          KindContextTerminated,
	EMTHREAD:       KindNoIOThread,
}

var nativeTexts = map[unix.Errno]string{
	EFSM:           "operation cannot be accomplished in current state",
	ENOCOMPATPROTO: "the protocol is not compatible with the socket type",
	ETERM:          "context was terminated",
	EMTHREAD:       "no thread available",
}

// On platforms lacking some POSIX codes libzmq defines them itself as
// Hausnumero+1 .. Hausnumero+18; they are folded back onto the local errno.
var substitutes = [...]unix.Errno{
	1:  unix.ENOTSUP,
	2:  unix.EPROTONOSUPPORT,
	3:  unix.ENOBUFS,
	4:  unix.ENETDOWN,
	5:  unix.EADDRINUSE,
	6:  unix.EADDRNOTAVAIL,
	7:  unix.ECONNREFUSED,
	8:  unix.EINPROGRESS,
	9:  unix.ENOTSOCK,
	10: unix.EMSGSIZE,
	11: unix.EAFNOSUPPORT,
	12: unix.ENETUNREACH,
	13: unix.ECONNABORTED,
	14: unix.ECONNRESET,
	15: unix.ENOTCONN,
	16: unix.ETIMEDOUT,
	17: unix.EHOSTUNREACH,
	18: unix.ENETRESET,
}

// Error is a classified failure of a native call.
type Error struct {
	// Op is the native operation that failed, e.g. "bind".
	Op string
	// Kind is the category of Errno.
	Kind Kind
	// Errno is the error number reported by libzmq.
	Errno unix.Errno
}

func (e *Error) Error() string {
	return "gzmq: " + e.Op + ": " + e.text()
}

func (e *Error) text() string {
	if s, ok := nativeTexts[e.Errno]; ok {
		return s
	}
	if e.Kind == KindUnknown {
		return "unknown error " + strconv.Itoa(int(e.Errno))
	}
	return e.Errno.Error()
}

// Unwrap exposes both the kind sentinel and the errno, so that errors.Is
// matches ErrContextTerminated as well as unix.EADDRINUSE.
func (e *Error) Unwrap() []error {
	return []error{e.Kind.Sentinel(), e.Errno}
}

// Temporary reports whether retrying the operation may succeed.
func (e *Error) Temporary() bool {
	return e.Kind == KindAgain || e.Errno == unix.EINTR
}

// Classify maps the errno reported by a failed native operation to an *Error.
func Classify(op string, errno unix.Errno) *Error {
	if errno > Hausnumero && int(errno-Hausnumero) < len(substitutes) {
		if sub := substitutes[errno-Hausnumero]; sub != 0 {
			errno = sub
		}
	}
	return &Error{Op: op, Kind: kindOf(errno), Errno: errno}
}

func kindOf(errno unix.Errno) Kind {
	if k, ok := nativeKinds[errno]; ok {
		return k
	}
	switch {
	case errno == 0:
		return KindUnknown
	case errno == unix.EAGAIN:
		return KindAgain
	case unix.ErrnoName(errno) != "":
		return KindSystem
	}
	return KindUnknown
}

// FromNative classifies err as returned by the cgo layer, which reports
// failures as unix.Errno. Any other error is returned unchanged.
func FromNative(op string, err error) error {
	if err == nil {
		return nil
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return Classify(op, errno)
	}
	return err
}

// KindOf returns the Kind of err, KindUnknown if err is not a native error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsTerminated reports whether err was caused by the context being terminated.
func IsTerminated(err error) bool {
	return errors.Is(err, ErrContextTerminated)
}

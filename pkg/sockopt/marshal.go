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

package sockopt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	errorx "github.com/panjf2000/gzmq/pkg/errors"
)

// WireType is the native representation of an option value.
type WireType uint8

const (
	// Int is a host-endian int32.
	Int WireType = iota
	// Int64 is a host-endian int64.
	Int64
	// Uint64 is a host-endian uint64.
	Uint64
	// Bool is an int32 holding 0 or 1.
	Bool
	// Bytes is a binary string.
	Bytes
	// String is a NUL terminated character string.
	String
	// TimePeriod is an int32 count of milliseconds, -1 meaning infinite.
	TimePeriod
)

var wireTypeNames = [...]string{
	Int:        "int",
	Int64:      "int64",
	Uint64:     "uint64",
	Bool:       "bool",
	Bytes:      "bytes",
	String:     "string",
	TimePeriod: "time_period",
}

func (t WireType) String() string {
	if int(t) < len(wireTypeNames) {
		return wireTypeNames[t]
	}
	return "WireType(" + strconv.Itoa(int(t)) + ")"
}

// DefaultBytesSize is the capacity of the buffer a bytes or string option
// is read into.
const DefaultBytesSize = 255

// Infinite is the decoded form of a negative time period.
const Infinite time.Duration = -1

// Size returns the number of bytes a buffer of type t holds.
func (t WireType) Size() int {
	switch t {
	case Int, Bool, TimePeriod:
		return 4
	case Int64, Uint64:
		return 8
	}
	return DefaultBytesSize
}

// Buffer is a fixed-size native buffer an option value is encoded into or
// decoded from.
type Buffer struct {
	typ    WireType
	b      []byte
	n      int
	filled bool
}

// NewBuffer allocates a zeroed buffer for a value of type t.
func NewBuffer(t WireType) *Buffer {
	size := t.Size()
	return &Buffer{typ: t, b: make([]byte, size), n: size}
}

// Type returns the wire type of the buffer.
func (b *Buffer) Type() WireType { return b.typ }

// Bytes returns the valid part of the buffer.
func (b *Buffer) Bytes() []byte { return b.b[:b.n] }

// Len returns the number of valid bytes.
func (b *Buffer) Len() int { return b.n }

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int { return len(b.b) }

// Prepare exposes the whole capacity for the native layer to write into.
func (b *Buffer) Prepare() []byte {
	b.n = len(b.b)
	return b.b
}

// SetLen records how many bytes the native layer wrote.
func (b *Buffer) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(b.b) {
		n = len(b.b)
	}
	b.n = n
	b.filled = true
}

// Encode marshals v into a new buffer of type t.
func Encode(t WireType, v any) (*Buffer, error) {
	data, err := Append(nil, t, v)
	if err != nil {
		return nil, err
	}
	return &Buffer{typ: t, b: data, n: len(data), filled: true}, nil
}

// Append marshals v as type t and appends it to dst.
func Append(dst []byte, t WireType, v any) ([]byte, error) {
	switch t {
	case Int:
		n, err := toInt64(v)
		if err != nil {
			return dst, invalid(t, v, err)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return dst, invalid(t, v, errOutOfRange)
		}
		return binary.NativeEndian.AppendUint32(dst, uint32(int32(n))), nil
	case Int64:
		n, err := toInt64(v)
		if err != nil {
			return dst, invalid(t, v, err)
		}
		return binary.NativeEndian.AppendUint64(dst, uint64(n)), nil
	case Uint64:
		n, err := toUint64(v)
		if err != nil {
			return dst, invalid(t, v, err)
		}
		return binary.NativeEndian.AppendUint64(dst, n), nil
	case Bool:
		on, err := toBool(v)
		if err != nil {
			return dst, invalid(t, v, err)
		}
		var n uint32
		if on {
			n = 1
		}
		return binary.NativeEndian.AppendUint32(dst, n), nil
	case Bytes, String:
		p, err := toBytes(v)
		if err != nil {
			return dst, invalid(t, v, err)
		}
		return append(dst, p...), nil
	case TimePeriod:
		ms, err := toMillis(v)
		if err != nil {
			return dst, invalid(t, v, err)
		}
		if ms > math.MaxInt32 {
			return dst, invalid(t, v, errOutOfRange)
		}
		return binary.NativeEndian.AppendUint32(dst, uint32(int32(ms))), nil
	}
	return dst, fmt.Errorf("%w: unknown wire type %s", errorx.ErrInvalidOptionValue, t)
}

// Decode unmarshals the buffer into a Go value: int, int64, uint64, bool,
// []byte, string or time.Duration depending on its wire type. A bytes or
// string buffer nothing was written into decodes to nil. Bytes lose one
// trailing NUL terminator, strings all of them.
func Decode(b *Buffer) (any, error) {
	switch b.typ {
	case Bytes:
		if !b.filled {
			return nil, nil
		}
		return append([]byte{}, bytes.TrimSuffix(b.b[:b.n], []byte{0})...), nil
	case String:
		if !b.filled {
			return nil, nil
		}
		return strings.TrimRight(string(b.b[:b.n]), "\x00"), nil
	}

	if b.n < b.typ.Size() {
		return nil, fmt.Errorf("%w: %s option holds %d bytes, want %d",
			errorx.ErrInvalidOptionValue, b.typ, b.n, b.typ.Size())
	}
	switch b.typ {
	case Int:
		return int(int32(binary.NativeEndian.Uint32(b.b))), nil
	case Int64:
		return int64(binary.NativeEndian.Uint64(b.b)), nil
	case Uint64:
		return binary.NativeEndian.Uint64(b.b), nil
	case Bool:
		return binary.NativeEndian.Uint32(b.b) != 0, nil
	case TimePeriod:
		ms := int32(binary.NativeEndian.Uint32(b.b))
		if ms < 0 {
			return Infinite, nil
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	return nil, fmt.Errorf("%w: unknown wire type %s", errorx.ErrInvalidOptionValue, b.typ)
}

// IntValue marshals v as type t and returns it as the plain int that
// zmq_ctx_set expects. Only 4-byte wire types qualify.
func IntValue(t WireType, v any) (int, error) {
	if t.Size() != 4 {
		return 0, fmt.Errorf("%w: %s does not fit a context option", errorx.ErrInvalidOptionValue, t)
	}
	buf, err := Encode(t, v)
	if err != nil {
		return 0, err
	}
	return int(int32(binary.NativeEndian.Uint32(buf.b))), nil
}

// FromInt decodes the plain int returned by zmq_ctx_get as type t.
func FromInt(t WireType, n int) (any, error) {
	if t.Size() != 4 {
		return nil, fmt.Errorf("%w: %s does not fit a context option", errorx.ErrInvalidOptionValue, t)
	}
	buf := NewBuffer(t)
	binary.NativeEndian.PutUint32(buf.b, uint32(int32(n)))
	buf.SetLen(4)
	return Decode(buf)
}

// Milliseconds converts d the way time periods travel to libzmq: rounded
// half up to whole milliseconds, any negative value becoming -1.
func Milliseconds(d time.Duration) int64 {
	if d < 0 {
		return -1
	}
	ms := d / time.Millisecond
	if d%time.Millisecond >= time.Millisecond/2 {
		ms++
	}
	return int64(ms)
}

var (
	errOutOfRange  = errors.New("value out of range")
	errUnsupported = errors.New("unsupported Go type")
)

func invalid(t WireType, v any, cause error) error {
	return fmt.Errorf("%w: %v (%T) as %s: %v", errorx.ErrInvalidOptionValue, v, v, t, cause)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	}
	return 0, errUnsupported
}

func uintToInt64(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, errOutOfRange
	}
	return int64(n), nil
}

func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errOutOfRange
	}
	return uint64(n), nil
}

func toBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	n, err := toInt64(v)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func toBytes(v any) ([]byte, error) {
	switch p := v.(type) {
	case []byte:
		return p, nil
	case string:
		return []byte(p), nil
	}
	return nil, errUnsupported
}

// toMillis accepts a time.Duration, fractional seconds as a float, whole
// seconds as an integer, or a duration string.
func toMillis(v any) (int64, error) {
	switch d := v.(type) {
	case time.Duration:
		return Milliseconds(d), nil
	case float64:
		return secondsToMillis(d)
	case float32:
		return secondsToMillis(float64(d))
	case string:
		s := strings.TrimSpace(d)
		if s == "infinite" || s == "-1" {
			return -1, nil
		}
		dur, err := time.ParseDuration(s)
		if err != nil {
			return 0, err
		}
		return Milliseconds(dur), nil
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return -1, nil
	}
	if n > math.MaxInt64/1000 {
		return 0, errOutOfRange
	}
	return n * 1000, nil
}

func secondsToMillis(s float64) (int64, error) {
	switch {
	case math.IsNaN(s):
		return 0, errOutOfRange
	case s < 0:
		return -1, nil
	}
	ms := math.Floor(s*1000 + 0.5)
	if ms > math.MaxInt64/2 {
		return 0, errOutOfRange
	}
	return int64(ms), nil
}

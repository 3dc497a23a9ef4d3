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

// Package sockopt is the registry of libzmq socket and context options,
// together with the marshaler that moves option values in and out of
// the fixed-size buffers libzmq reads and writes.
package sockopt

import (
	"fmt"
	"sort"

	errorx "github.com/panjf2000/gzmq/pkg/errors"
)

// Name identifies an option.
type Name string

// Access tells whether an option can be read, written, or both.
type Access uint8

const (
	// Get marks an option readable.
	Get Access = 1 << iota
	// Set marks an option writable.
	Set
	// GetSet marks an option readable and writable.
	GetSet = Get | Set
)

// CanGet reports whether the option is readable.
func (a Access) CanGet() bool { return a&Get != 0 }

// CanSet reports whether the option is writable.
func (a Access) CanSet() bool { return a&Set != 0 }

// Entry describes one option.
type Entry struct {
	Name   Name
	Code   int
	Type   WireType
	Access Access
}

// Socket options.
const (
	Affinity             Name = "affinity"
	Identity             Name = "identity"
	Subscribe            Name = "subscribe"
	Unsubscribe          Name = "unsubscribe"
	Rate                 Name = "rate"
	RecoveryIvl          Name = "recovery_ivl"
	SndBuf               Name = "sndbuf"
	RcvBuf               Name = "rcvbuf"
	RcvMore              Name = "rcvmore"
	FD                   Name = "fd"
	Events               Name = "events"
	Type                 Name = "type"
	Linger               Name = "linger"
	ReconnectIvl         Name = "reconnect_ivl"
	Backlog              Name = "backlog"
	ReconnectIvlMax      Name = "reconnect_ivl_max"
	MaxMsgSize           Name = "maxmsgsize"
	SndHWM               Name = "sndhwm"
	RcvHWM               Name = "rcvhwm"
	MulticastHops        Name = "multicast_hops"
	RcvTimeo             Name = "rcvtimeo"
	SndTimeo             Name = "sndtimeo"
	IPv4Only             Name = "ipv4only"
	LastEndpoint         Name = "last_endpoint"
	RouterMandatory      Name = "router_mandatory"
	TCPKeepalive         Name = "tcp_keepalive"
	TCPKeepaliveCnt      Name = "tcp_keepalive_cnt"
	TCPKeepaliveIdle     Name = "tcp_keepalive_idle"
	TCPKeepaliveIntvl    Name = "tcp_keepalive_intvl"
	TCPAcceptFilter      Name = "tcp_accept_filter"
	DelayAttachOnConnect Name = "delay_attach_on_connect"
	Immediate            Name = "immediate"
	XPubVerbose          Name = "xpub_verbose"
	RouterRaw            Name = "router_raw"
	IPv6                 Name = "ipv6"
	Mechanism            Name = "mechanism"
	PlainServer          Name = "plain_server"
	PlainUsername        Name = "plain_username"
	PlainPassword        Name = "plain_password"
)

// Context options.
const (
	IOThreads   Name = "io_threads"
	MaxSockets  Name = "max_sockets"
	SocketLimit Name = "socket_limit"
	MaxMsgSz    Name = "max_msgsz"
	// IPv6 doubles as a context option.
)

var socketOptions = map[Name]Entry{}

var contextOptions = map[Name]Entry{}

func sockopt(name Name, code int, typ WireType, access Access) {
	socketOptions[name] = Entry{Name: name, Code: code, Type: typ, Access: access}
}

func ctxopt(name Name, code int, typ WireType, access Access) {
	contextOptions[name] = Entry{Name: name, Code: code, Type: typ, Access: access}
}

func init() {
	sockopt(Affinity, 4, Uint64, GetSet)
	sockopt(Identity, 5, Bytes, GetSet)
	sockopt(Subscribe, 6, Bytes, Set)
	sockopt(Unsubscribe, 7, Bytes, Set)
	sockopt(Rate, 8, Int, GetSet)
	sockopt(RecoveryIvl, 9, TimePeriod, GetSet)
	sockopt(SndBuf, 11, Int, GetSet)
	sockopt(RcvBuf, 12, Int, GetSet)
	sockopt(RcvMore, 13, Bool, Get)
	sockopt(FD, 14, Int, Get)
	sockopt(Events, 15, Int, Get)
	sockopt(Type, 16, Int, Get)
	sockopt(Linger, 17, TimePeriod, GetSet)
	sockopt(ReconnectIvl, 18, TimePeriod, GetSet)
	sockopt(Backlog, 19, Int, GetSet)
	sockopt(ReconnectIvlMax, 21, TimePeriod, GetSet)
	sockopt(MaxMsgSize, 22, Int64, GetSet)
	sockopt(SndHWM, 23, Int, GetSet)
	sockopt(RcvHWM, 24, Int, GetSet)
	sockopt(MulticastHops, 25, Int, GetSet)
	sockopt(RcvTimeo, 27, TimePeriod, GetSet)
	sockopt(SndTimeo, 28, TimePeriod, GetSet)
	sockopt(IPv4Only, 31, Bool, GetSet)
	sockopt(LastEndpoint, 32, String, Get)
	sockopt(RouterMandatory, 33, Bool, Set)
	sockopt(TCPKeepalive, 34, Int, GetSet)
	sockopt(TCPKeepaliveCnt, 35, Int, GetSet)
	sockopt(TCPKeepaliveIdle, 36, Int, GetSet)
	sockopt(TCPKeepaliveIntvl, 37, Int, GetSet)
	sockopt(TCPAcceptFilter, 38, Bytes, Set)
	sockopt(DelayAttachOnConnect, 39, Bool, GetSet)
	sockopt(Immediate, 39, Bool, GetSet)
	sockopt(XPubVerbose, 40, Int, Set)
	sockopt(RouterRaw, 41, Bool, Set)
	sockopt(IPv6, 42, Bool, GetSet)
	sockopt(Mechanism, 43, Int, Get)
	sockopt(PlainServer, 44, Bool, GetSet)
	sockopt(PlainUsername, 45, String, GetSet)
	sockopt(PlainPassword, 46, String, GetSet)

	ctxopt(IOThreads, 1, Int, GetSet)
	ctxopt(MaxSockets, 2, Int, GetSet)
	ctxopt(SocketLimit, 3, Int, Get)
	ctxopt(MaxMsgSz, 5, Int, GetSet)
	ctxopt(IPv6, 42, Bool, GetSet)
}

// Describe looks up a socket option by name.
func Describe(name Name) (Entry, error) {
	e, ok := socketOptions[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", errorx.ErrUnknownOption, name)
	}
	return e, nil
}

// DescribeContext looks up a context option by name.
func DescribeContext(name Name) (Entry, error) {
	e, ok := contextOptions[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: context option %q", errorx.ErrUnknownOption, name)
	}
	return e, nil
}

// Entries returns all socket options ordered by code, then by name.
func Entries() []Entry {
	entries := make([]Entry, 0, len(socketOptions))
	for _, e := range socketOptions {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Code != entries[j].Code {
			return entries[i].Code < entries[j].Code
		}
		return entries[i].Name < entries[j].Name
	})
}

// SortNames orders option names by their registry code, unknown names last.
// Options applied in this order reach libzmq deterministically.
func SortNames(names []Name) {
	sort.Slice(names, func(i, j int) bool {
		ei, iok := socketOptions[names[i]]
		ej, jok := socketOptions[names[j]]
		switch {
		case iok && jok && ei.Code != ej.Code:
			return ei.Code < ej.Code
		case iok != jok:
			return iok
		}
		return names[i] < names[j]
	})
}

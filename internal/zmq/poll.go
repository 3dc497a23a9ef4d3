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

// Poll events.
const (
	PollIn  = int16(C.ZMQ_POLLIN)
	PollOut = int16(C.ZMQ_POLLOUT)
	PollErr = int16(C.ZMQ_POLLERR)
)

// PollItems is a contiguous array of zmq_pollitem_t records, kept across
// polls so that it only gets rebuilt when the caller says so.
type PollItems struct {
	items []C.zmq_pollitem_t
}

// Reset resizes the array to n zeroed records, reusing its storage when
// large enough.
func (p *PollItems) Reset(n int) {
	if cap(p.items) < n {
		p.items = make([]C.zmq_pollitem_t, n)
		return
	}
	p.items = p.items[:n]
	for i := range p.items {
		p.items[i] = C.zmq_pollitem_t{}
	}
}

// Len returns the number of records.
func (p *PollItems) Len() int {
	return len(p.items)
}

// SetSocket points record i at socket s.
func (p *PollItems) SetSocket(i int, s unsafe.Pointer, events int16) {
	p.items[i].socket = s
	p.items[i].fd = 0
	p.items[i].events = C.short(events)
}

// SetFD points record i at the file descriptor fd.
func (p *PollItems) SetFD(i, fd int, events int16) {
	p.items[i].socket = nil
	p.items[i].fd = C.int(fd)
	p.items[i].events = C.short(events)
}

// Revents returns the events observed on record i by the last Poll.
func (p *PollItems) Revents(i int) int16 {
	return int16(p.items[i].revents)
}

// Poll waits for events on the records, timeout is in milliseconds with -1
// meaning forever. It returns the number of records with events.
func (p *PollItems) Poll(timeout int64) (int, error) {
	if len(p.items) == 0 {
		return 0, nil
	}
	rc, err := C.zmq_poll(&p.items[0], C.int(len(p.items)), C.long(timeout))
	if rc < 0 {
		return 0, errno(err)
	}
	return int(rc), nil
}

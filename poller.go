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
	"time"
	"unsafe"

	"github.com/panjf2000/gzmq/internal/zmq"
	errorx "github.com/panjf2000/gzmq/pkg/errors"
	"github.com/panjf2000/gzmq/pkg/sockopt"
)

// Pollable is something a Poller can watch: a *Socket or an FD.
type Pollable interface {
	pollTarget() (socket unsafe.Pointer, fd int, err error)
}

func (s *Socket) pollTarget() (unsafe.Pointer, int, error) {
	h, err := s.native()
	return h, 0, err
}

// FD is a plain file descriptor to be polled alongside sockets.
type FD int

func (fd FD) pollTarget() (unsafe.Pointer, int, error) {
	return nil, int(fd), nil
}

// FileFD returns the descriptor of f, typically an *os.File.
func FileFD(f interface{ Fd() uintptr }) FD {
	return FD(f.Fd())
}

type registration struct {
	p      Pollable
	events Event
}

// Poller waits for readiness on a set of sockets and file descriptors.
// It is not safe for concurrent use.
type Poller struct {
	regs  []registration
	index map[Pollable]int
	items zmq.PollItems
	dirty bool
}

// NewPoller creates an empty Poller.
func NewPoller() *Poller {
	return &Poller{index: make(map[Pollable]int)}
}

// Register watches p for events, PollIn|PollOut when none are given.
// Registering p again replaces its events and keeps its position.
func (p *Poller) Register(pollable Pollable, events ...Event) error {
	if pollable == nil {
		return errorx.ErrNilPollable
	}
	if s, ok := pollable.(*Socket); ok && s == nil {
		return errorx.ErrNilPollable
	}

	var mask Event
	for _, e := range events {
		mask |= e
	}
	if mask == 0 {
		mask = PollIn | PollOut
	}

	if i, ok := p.index[pollable]; ok {
		p.regs[i].events = mask
	} else {
		p.index[pollable] = len(p.regs)
		p.regs = append(p.regs, registration{pollable, mask})
	}
	p.dirty = true
	return nil
}

// Unregister stops watching p and reports whether it was registered.
func (p *Poller) Unregister(pollable Pollable) bool {
	i, ok := p.index[pollable]
	if !ok {
		return false
	}
	delete(p.index, pollable)
	p.regs = append(p.regs[:i], p.regs[i+1:]...)
	for j := i; j < len(p.regs); j++ {
		p.index[p.regs[j].p] = j
	}
	p.dirty = true
	return true
}

// Len returns the number of registered pollables.
func (p *Poller) Len() int { return len(p.regs) }

// Poll waits until at least one registered pollable is ready or timeout
// elapses. A negative timeout waits forever and zero only checks.
func (p *Poller) Poll(timeout time.Duration) (*PollResult, error) {
	res := new(PollResult)
	if len(p.regs) == 0 {
		return res, nil
	}

	if p.dirty {
		p.items.Reset(len(p.regs))
	}
	for i, r := range p.regs {
		sock, fd, err := r.p.pollTarget()
		if err != nil {
			return nil, err
		}
		if !p.dirty {
			continue
		}
		if sock != nil {
			p.items.SetSocket(i, sock, int16(r.events))
		} else {
			p.items.SetFD(i, fd, int16(r.events))
		}
	}
	p.dirty = false

	n, err := p.items.Poll(sockopt.Milliseconds(timeout))
	if err != nil {
		err = errorx.FromNative("poll", err)
		if errorx.IsTerminated(err) {
			p.closeTerminated()
		}
		return nil, err
	}
	if n == 0 {
		return res, nil
	}

	for i, r := range p.regs {
		revents := Event(p.items.Revents(i))
		if revents&PollIn != 0 {
			res.Readables = append(res.Readables, r.p)
		}
		if revents&PollOut != 0 {
			res.Writables = append(res.Writables, r.p)
		}
	}
	return res, nil
}

// closeTerminated closes the registered sockets whose context is being
// destroyed. Sockets of other contexts stay open.
func (p *Poller) closeTerminated() {
	for _, r := range p.regs {
		if s, ok := r.p.(*Socket); ok && s.ctx.Destroyed() {
			if err := s.Close(); err != nil {
				s.logger.Debugf("%s socket: close after poll failed: %v", s.typ, err)
			}
		}
	}
}

// PollResult lists the pollables found ready, in registration order.
type PollResult struct {
	Readables []Pollable
	Writables []Pollable
}

// Any reports whether anything is ready.
func (r *PollResult) Any() bool {
	return len(r.Readables) > 0 || len(r.Writables) > 0
}

// None reports whether nothing is ready.
func (r *PollResult) None() bool { return !r.Any() }

// Readable reports whether p is ready for reading.
func (r *PollResult) Readable(p Pollable) bool { return contains(r.Readables, p) }

// Writable reports whether p is ready for writing.
func (r *PollResult) Writable(p Pollable) bool { return contains(r.Writables, p) }

func contains(list []Pollable, p Pollable) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

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

/*
Package gzmq binds libzmq, the asynchronous messaging library, through cgo.

It covers contexts and sockets of every libzmq pattern (PAIR, PUB/SUB,
REQ/REP, DEALER/ROUTER, PUSH/PULL, XPUB/XSUB), typed socket and context
options, multipart messages, a poller that watches sockets and plain file
descriptors together, and proxies for building queue, forwarder and
streamer devices.

Failures of libzmq are returned as *errors.Error from
github.com/panjf2000/gzmq/pkg/errors, matching both a kind sentinel and the
platform errno with errors.Is. When the context of a socket is terminated,
the socket involved is closed before the error is returned, so that
Context.Destroy can complete.

Request/reply over inproc is shown below:

	ctx, err := gzmq.NewContext(gzmq.WithLinger(0))
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Destroy()

	rep, _ := ctx.Socket(gzmq.Rep)
	defer rep.Close()
	_ = rep.Bind("inproc://echo")

	req, _ := ctx.Socket(gzmq.Req)
	defer req.Close()
	_ = req.Connect("inproc://echo")

	_ = req.Send([]byte("hello"))
	msg, _ := rep.Recv()
	_ = rep.Send(msg)
	reply, _ := req.Recv()

Building gzmq needs libzmq and its pkg-config file installed.
*/
package gzmq

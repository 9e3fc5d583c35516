/**
 * Copyright (c) 2019, The corun Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package future

// Events is a bitmask of the readiness conditions a leaf future can
// register interest in with a Reactor.
type Events uint32

const (
	// EventReadable indicates interest in the descriptor becoming readable.
	EventReadable Events = 1 << iota
	// EventWritable indicates interest in the descriptor becoming writable.
	EventWritable
	// EventError indicates interest in an error condition on the descriptor.
	EventError
)

// Reactor is the handle leaf futures receive through Poll to register and
// unregister interest in file descriptor readiness. It is declared in
// package future (rather than alongside its concrete implementation) so
// that leaf futures can depend on it without importing the executor
// package, mirroring the separation already drawn between Waker (an
// interface here) and the concrete waker the executor constructs.
type Reactor interface {
	// Register arranges for waker to be fired the next time fd becomes
	// ready for one of events. It returns an error iff fd is already
	// monitored.
	Register(fd int, events Events, waker Waker) error

	// Unregister removes fd from the set of monitored descriptors. It
	// returns an error iff fd is not currently monitored.
	Unregister(fd int) error
}

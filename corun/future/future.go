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

// Package future defines the contract every asynchronous computation in
// corun must honor, plus the small combinator family (Then, Join, Select)
// used to compose futures into larger ones.
//
// The design is borrowed from Rust's Future [0][1][2].
//
// (Following comments are adapted from Rust's Future trait with minor
// modification [3])
//
// A Future is a value that may not have finished computing yet. This kind
// of "asynchronous value" makes it possible for the executor to continue
// running other tasks while it waits for the value to become available.
//
// Futures alone are inert; they must be actively polled to make progress,
// meaning that each time the current task is woken up, it should actively
// re-poll pending futures that it still has an interest in.
//
// Poll is not called repeatedly in a tight loop -- instead, it should only
// be called when the future indicates that it is ready to make progress
// (by calling waker.Wake). If you're familiar with the poll(2) or select(2)
// syscalls on Unix it's worth noting that futures typically do *not* suffer
// the same problems of "all wakeups must poll all events"; they are more
// like epoll(4).
//
// An implementation of Poll should strive to return quickly, and must
// *never* block. Returning quickly prevents unnecessarily clogging up the
// single executor goroutine. If it is known ahead of time that a call to
// Poll may end up taking awhile, the work should be offloaded elsewhere to
// ensure that Poll can return quickly.
//
// [0]: https://doc.rust-lang.org/std/future/index.html
// [1]: http://aturon.github.io/blog/2016/08/11/futures/
// [2]: https://aturon.github.io/blog/2016/09/07/futures-design/
// [3]: Adapted from https://github.com/rust-lang/rust/blob/20d694a/src/libcore/future/future.rs#L20
package future

// A Future represents an asynchronous computation driven by repeated calls
// to Poll.
type Future interface {
	// Poll attempts to resolve the future to a final value, registering the
	// current task for wakeup (via reactor and waker) if the value is not
	// yet available.
	//
	// This method returns a tuple of (PollResult, error):
	//
	//	* (value, nil): the future finished successfully with value.
	//	* (PollResultPending, nil): the future is not ready yet; waker will
	//    be invoked once it can make progress.
	//	* (nil, err): the future finished with a non-nil error.
	//
	// Once a future has returned a non-pending result, clients must not
	// poll it again.
	//
	// Note that on multiple calls to Poll, only the most recently supplied
	// waker should be scheduled to receive a wakeup.
	Poll(reactor Reactor, waker Waker) (PollResult, error)
}

// Argumented is implemented by futures that accept an input value produced
// by a preceding future in a Then chain. ThenFuture calls SetArg on fut2
// (if it implements Argumented) right before fut2's first Poll.
//
// This generalizes the C original's hard-wired fut2->arg = fut1->ok field:
// Go futures are plain interface values, so only futures that actually
// want a predecessor's result need to opt in.
type Argumented interface {
	SetArg(value interface{})
}

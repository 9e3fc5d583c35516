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

import (
	"errors"
	"fmt"
)

// Error sentinels returned by a ThenFuture's aggregate Poll, standing in
// for the distilled spec's THEN_FUTURE_ERR_FUT1_FAILED /
// THEN_FUTURE_ERR_FUT2_FAILED integer codes.
var (
	// ErrThenFut1Failed is returned when the first future in a Then chain
	// fails; the second future is never driven.
	ErrThenFut1Failed = errors.New("future: then: fut1 failed")

	// ErrThenFut2Failed is returned when the second future in a Then chain
	// fails after the first completed successfully.
	ErrThenFut2Failed = errors.New("future: then: fut2 failed")
)

const (
	thenWaitingFut1 = iota
	thenWaitingFut2
)

// thenFuture implements the Future returned by Then.
type thenFuture struct {
	fut1, fut2 Future
	state      int
}

// Poll implements Future.
//
// When fut1 completes (including synchronously, on the very first Poll),
// control falls through to the fut2 handling in the same call -- avoiding
// a needless round trip through the ready queue.
func (f *thenFuture) Poll(reactor Reactor, waker Waker) (PollResult, error) {
	if f.state == thenWaitingFut1 {
		result, err := f.fut1.Poll(reactor, waker)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThenFut1Failed, err)
		}
		if result == PollResultPending {
			return PollResultPending, nil
		}

		if arg, ok := f.fut2.(Argumented); ok {
			arg.SetArg(result)
		}
		f.state = thenWaitingFut2
	}

	result, err := f.fut2.Poll(reactor, waker)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThenFut2Failed, err)
	}
	if result == PollResultPending {
		return PollResultPending, nil
	}
	return result, nil
}

// Then creates a Future that drives fut1 to completion, feeds its result
// into fut2 (via fut2.SetArg, if fut2 implements Argumented), and then
// drives fut2 to completion. If fut1 fails, fut2 is never polled and Then
// fails with ErrThenFut1Failed. If fut1 succeeds but fut2 fails, Then
// fails with ErrThenFut2Failed.
func Then(fut1, fut2 Future) Future {
	return &thenFuture{
		fut1:  fut1,
		fut2:  fut2,
		state: thenWaitingFut1,
	}
}

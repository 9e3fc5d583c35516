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

import "fmt"

// Outcome is the terminal result of one child of a JoinFuture, captured
// independently of its sibling.
type Outcome struct {
	Value interface{}
	Err   error
}

// JoinResult is the aggregate payload of a completed JoinFuture: each
// child's Outcome, retained independently, in the same order the children
// were given to Join.
type JoinResult struct {
	Fut1, Fut2 Outcome
}

// joinFuture implements the Future returned by Join.
type joinFuture struct {
	fut1, fut2               Future
	fut1Done, fut2Done       bool
	outcome1, outcome2       Outcome
}

// Poll implements Future.
//
// joinFuture drives fut1 (if not yet terminated) and then fut2 (if not yet
// terminated) on every call, recording each child's terminal outcome
// independently. It never forcibly terminates a child and only resolves
// once both have.
func (f *joinFuture) Poll(reactor Reactor, waker Waker) (PollResult, error) {
	if !f.fut1Done {
		result, err := f.fut1.Poll(reactor, waker)
		switch {
		case err != nil:
			f.fut1Done = true
			f.outcome1.Err = err
		case result != PollResultPending:
			f.fut1Done = true
			f.outcome1.Value = result
		}
	}

	if !f.fut2Done {
		result, err := f.fut2.Poll(reactor, waker)
		switch {
		case err != nil:
			f.fut2Done = true
			f.outcome2.Err = err
		case result != PollResultPending:
			f.fut2Done = true
			f.outcome2.Value = result
		}
	}

	if !f.fut1Done || !f.fut2Done {
		return PollResultPending, nil
	}

	switch {
	case f.outcome1.Err != nil && f.outcome2.Err != nil:
		// Both children failed. Neither error is discarded: fut1's error is
		// returned as-is (so errors.Is/errors.Unwrap chains against it),
		// fut2's is folded into the message. See DESIGN.md for why this
		// policy was chosen over the source's unspecified "whichever was
		// examined last".
		return nil, fmt.Errorf("%w (and: %s)", f.outcome1.Err, f.outcome2.Err)
	case f.outcome1.Err != nil:
		return nil, f.outcome1.Err
	case f.outcome2.Err != nil:
		return nil, f.outcome2.Err
	}

	return JoinResult{Fut1: f.outcome1, Fut2: f.outcome2}, nil
}

// Join creates a Future that completes once both fut1 and fut2 have
// completed, with a JoinResult carrying each child's Outcome. It fails iff
// either child fails; it never forcibly cancels the other child.
func Join(fut1, fut2 Future) Future {
	return &joinFuture{
		fut1: fut1,
		fut2: fut2,
	}
}

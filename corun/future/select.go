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

// selectState is the which_completed lattice from the distilled spec.
type selectState int

const (
	selectNone selectState = iota
	selectCompletedFut1
	selectCompletedFut2
	selectFailedFut1
	selectFailedFut2
	selectFailedBoth
)

// selectFuture implements the Future returned by Select.
type selectFuture struct {
	fut1, fut2             Future
	fut1Active, fut2Active bool
	which                  selectState
	firstErr               error
	winner1, winner2       PollResult
}

// Poll implements Future.
func (f *selectFuture) Poll(reactor Reactor, waker Waker) (PollResult, error) {
	if f.which == selectNone || f.which == selectFailedFut2 || f.fut1Active {
		f.fut1Active = true
		result, err := f.fut1.Poll(reactor, waker)
		switch {
		case err != nil:
			f.fut1Active = false
			if f.which == selectNone {
				f.which = selectFailedFut1
				f.firstErr = err
			} else if f.which == selectFailedFut2 {
				f.which = selectFailedBoth
			}
		case result != PollResultPending:
			f.fut1Active = false
			if f.which != selectCompletedFut2 {
				f.which = selectCompletedFut1
				f.winner1 = result
			}
		}
	}

	if f.which != selectCompletedFut1 &&
		(f.which == selectNone || f.which == selectFailedFut1 || f.fut2Active) {
		f.fut2Active = true
		result, err := f.fut2.Poll(reactor, waker)
		switch {
		case err != nil:
			f.fut2Active = false
			if f.which == selectNone {
				f.which = selectFailedFut2
				f.firstErr = err
			} else if f.which == selectFailedFut1 {
				f.which = selectFailedBoth
			}
		case result != PollResultPending:
			f.fut2Active = false
			if f.which != selectCompletedFut1 {
				f.which = selectCompletedFut2
				f.winner2 = result
			}
		}
	}

	switch f.which {
	case selectCompletedFut1:
		return f.winner1, nil
	case selectCompletedFut2:
		return f.winner2, nil
	}

	if f.fut1Active || f.fut2Active {
		// At least one of the futures is still runnable, so waker.Wake will
		// eventually be called on select's own waker.
		return PollResultPending, nil
	}

	if f.which == selectFailedBoth {
		return nil, f.firstErr
	}

	return PollResultPending, nil
}

// Select creates a Future that completes as soon as either fut1 or fut2
// completes, with that child's value. It fails only once both children
// have failed, with the first-failing child's error. A child that has
// already terminated is never re-driven.
func Select(fut1, fut2 Future) Future {
	return &selectFuture{
		fut1: fut1,
		fut2: fut2,
	}
}

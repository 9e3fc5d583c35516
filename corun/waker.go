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

package corun

// executorWaker is an owned (executor, task) pair. Firing it re-enqueues
// the task unless the task has already reached a terminal result -- a
// future may legitimately be woken more than once for the same Poll (e.g.
// a reactor readiness event racing a synchronous completion), and the
// executor must tolerate that rather than crash on it.
//
// Carries no synchronization primitives of its own: the scheduling model
// is single-threaded, so the only concurrency concern is the target
// queue's own push lock (see queue.go).
type executorWaker struct {
	executor *Executor
	task     *task
}

// Wake implements future.Waker.
func (w *executorWaker) Wake() error {
	if w.task.isDone() {
		return nil
	}
	w.executor.queue.push(w.task)
	return nil
}

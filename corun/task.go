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

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lucerna/corun/future"
)

// task wraps a spawned future with bookkeeping the executor needs: an id
// for log/metric correlation and a done flag that keeps a terminated
// future's waker from re-enqueueing it (see executorWaker.Wake).
type task struct {
	id     uuid.UUID
	future future.Future

	mu   sync.Mutex
	done bool
}

func newTask(fut future.Future) *task {
	return &task{id: uuid.New(), future: fut}
}

// markDone marks the task terminated, returning false if it was already
// marked (so the caller can tell a redundant finish apart from the first).
func (t *task) markDone() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (t *task) isDone() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

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

	"go.uber.org/zap"
)

// readyQueue is a bounded FIFO of *task. Push is guarded by a mutex because
// a task's waker may fire from a goroutine other than the one running
// Executor.Run (see SPEC_FULL.md §5); Pop/Empty are only ever called from
// the run loop itself, so they don't need the lock, but taking it anyway
// keeps the type safe to use from tests that poke at it directly.
type readyQueue struct {
	mu       sync.Mutex
	entries  []*task
	capacity int

	logger  *zap.Logger
	metrics *Metrics
}

func newReadyQueue(capacity int, logger *zap.Logger, metrics *Metrics) *readyQueue {
	return &readyQueue{
		entries:  make([]*task, 0, capacity),
		capacity: capacity,
		logger:   logger,
		metrics:  metrics,
	}
}

// push enqueues t. If the queue is already at capacity, the push is a
// silent no-op (matching the distilled source's behavior) except that the
// drop is logged at Warn and counted via queue_overflow_total, so it is at
// least observable.
func (q *readyQueue) push(t *task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) >= q.capacity {
		q.metrics.QueueOverflowTotal.Inc()
		if q.logger != nil {
			q.logger.Warn("corun: ready queue full, dropping wakeup", zap.Int("capacity", q.capacity))
		}
		return
	}
	q.entries = append(q.entries, t)
	q.metrics.QueueDepth.Set(float64(len(q.entries)))
}

// pop removes and returns the head of the queue, or nil if empty.
func (q *readyQueue) pop() *task {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil
	}
	t := q.entries[0]
	q.entries = q.entries[1:]
	q.metrics.QueueDepth.Set(float64(len(q.entries)))
	return t
}

func (q *readyQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries) == 0
}

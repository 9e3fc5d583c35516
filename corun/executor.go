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
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lucerna/corun/future"
)

// ErrExecutorClosed is returned by Spawn once the executor has been closed.
var ErrExecutorClosed = errors.New("corun: executor is closed")

// Executor drives spawned futures to completion, alternating between
// draining its ready queue and blocking on its reactor's readiness poller
// whenever the queue runs dry. Exactly one goroutine is expected to call
// Run; Spawn and a task's waker may be called from other goroutines.
type Executor struct {
	queue   *readyQueue
	reactor *Reactor

	inProgress atomic.Int64
	closed     atomic.Bool

	logger  *zap.Logger
	metrics *Metrics
}

// NewExecutor constructs an Executor from cfg, applying defaults for any
// unset field and building (or adopting) its Reactor.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if err := applyExecutorConfigDefaults(&cfg); err != nil {
		return nil, err
	}

	reactor := cfg.Reactor
	if reactor == nil {
		// Share the executor's logger/metrics with the reactor we build for
		// it, rather than letting each mint its own disconnected Metrics
		// bundle against a throwaway registry.
		if cfg.ReactorConfig.Logger == nil {
			cfg.ReactorConfig.Logger = cfg.Logger
		}
		if cfg.ReactorConfig.Metrics == nil {
			cfg.ReactorConfig.Metrics = cfg.Metrics
		}
		r, err := NewReactor(cfg.ReactorConfig)
		if err != nil {
			return nil, err
		}
		reactor = r
	}

	return &Executor{
		queue:   newReadyQueue(cfg.MaxQueueSize, cfg.Logger, cfg.Metrics),
		reactor: reactor,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}, nil
}

// Spawn wraps fut in a task and enqueues it for its first Poll.
func (e *Executor) Spawn(fut future.Future) error {
	if e.closed.Load() {
		return ErrExecutorClosed
	}

	t := newTask(fut)
	e.inProgress.Add(1)
	e.metrics.InProgress.Set(float64(e.inProgress.Load()))
	e.metrics.TasksSpawnedTotal.Inc()
	e.logger.Debug("corun: task spawned", zap.Stringer("task_id", t.id))

	e.queue.push(t)
	return nil
}

// Run alternates between draining the ready queue and polling the reactor
// (blocking indefinitely whenever the queue is empty, to avoid busy-
// spinning) until every spawned task has reached a terminal result. The
// context only gates whether Run keeps iterating between turns -- it is
// not per-future cancellation, which remains unsupported.
func (e *Executor) Run(ctx context.Context) error {
	for e.inProgress.Load() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		if e.queue.empty() {
			timeout := -1
			if err := e.reactor.Poll(timeout); err != nil {
				return err
			}
		}

		for {
			t := e.queue.pop()
			if t == nil {
				break
			}
			e.runTurn(t)
		}
	}
	return nil
}

func (e *Executor) runTurn(t *task) {
	// A task woken twice while queued is popped twice; once the first turn
	// has finished it, the leftover entry must not poll it again.
	if t.isDone() {
		return
	}
	waker := &executorWaker{executor: e, task: t}
	result, err := t.future.Poll(e.reactor, waker)
	if err == nil && result == future.PollResultPending {
		return
	}
	e.finishTask(t, err)
}

func (e *Executor) finishTask(t *task, err error) {
	if !t.markDone() {
		return
	}

	e.inProgress.Add(-1)
	e.metrics.InProgress.Set(float64(e.inProgress.Load()))

	if err != nil {
		e.metrics.TasksCompletedTotal.WithLabelValues(outcomeFailed).Inc()
		e.logger.Debug("corun: task failed", zap.Stringer("task_id", t.id), zap.Error(err))
		return
	}
	e.metrics.TasksCompletedTotal.WithLabelValues(outcomeCompleted).Inc()
	e.logger.Debug("corun: task completed", zap.Stringer("task_id", t.id))
}

// Close releases the executor's reactor. Spawned futures are caller-owned
// and are neither closed nor drained.
func (e *Executor) Close() error {
	e.closed.Store(true)
	return e.reactor.Close()
}

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

// Package corun implements a single-threaded cooperative executor, an I/O
// reactor built on a pluggable readiness poller, and the glue (wakers,
// configuration, metrics) that binds them together. The future contract
// and combinators they drive live in the sibling future package.
package corun

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucerna/corun/future"
)

var (
	// ErrFDAlreadyMonitored is returned by Register when fd already has an
	// entry in the reactor's table.
	ErrFDAlreadyMonitored = errors.New("corun: fd already monitored")

	// ErrFDNotMonitored is returned by Unregister when fd has no entry.
	ErrFDNotMonitored = errors.New("corun: fd not monitored")
)

// fdEntry is one node of the reactor's fd table: a dense, growable slot
// indexed by fd, threaded onto an intrusive doubly-linked list for
// enumeration. This mirrors the distilled source's FdNode design
// (original_source/src/mio.c) translated into owned Go pointers instead of
// a fixed MAX_DESCRIPTORS array of raw structs.
type fdEntry struct {
	fd        int
	events    future.Events
	waker     future.Waker
	monitored bool

	next, prev *fdEntry
}

// Poller is the pluggable kernel-readiness backend a Reactor drives. Wait
// blocks up to timeoutMs (-1 blocks indefinitely, 0 returns immediately)
// and reports the fds that became ready.
type Poller interface {
	Add(fd int, events future.Events) error
	Remove(fd int) error
	Wait(timeoutMs int) ([]int, error)
	Close() error
}

// Reactor implements future.Reactor on top of a Poller.
type Reactor struct {
	poller Poller

	table          []*fdEntry // dense, grown on demand; table[fd] may be nil
	head           *fdEntry
	monitoredCount int

	logger  *zap.Logger
	metrics *Metrics
}

// NewReactor constructs a Reactor from cfg, applying defaults (including
// picking the platform Poller) for any unset field.
func NewReactor(cfg ReactorConfig) (*Reactor, error) {
	if err := applyReactorConfigDefaults(&cfg); err != nil {
		return nil, err
	}
	return &Reactor{
		poller:  cfg.Poller,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}, nil
}

func (r *Reactor) entry(fd int) *fdEntry {
	if fd < 0 || fd >= len(r.table) {
		return nil
	}
	return r.table[fd]
}

func (r *Reactor) ensureCapacity(fd int) {
	if fd < len(r.table) {
		return
	}
	grown := make([]*fdEntry, fd+1)
	copy(grown, r.table)
	r.table = grown
}

// Register implements future.Reactor.
func (r *Reactor) Register(fd int, events future.Events, waker future.Waker) error {
	if e := r.entry(fd); e != nil && e.monitored {
		return ErrFDAlreadyMonitored
	}

	if err := r.poller.Add(fd, events); err != nil {
		r.logger.Error("corun: poller Add failed, this is a fatal control-plane error",
			zap.Int("fd", fd), zap.Error(err))
		panic(fmt.Sprintf("corun: poller.Add(%d): %v", fd, err))
	}

	r.ensureCapacity(fd)
	e := &fdEntry{fd: fd, events: events, waker: waker, monitored: true, next: r.head}
	if r.head != nil {
		r.head.prev = e
	}
	r.head = e
	r.table[fd] = e
	r.monitoredCount++
	r.metrics.ReactorMonitoredFDs.Set(float64(r.monitoredCount))

	return nil
}

// Unregister implements future.Reactor.
func (r *Reactor) Unregister(fd int) error {
	e := r.entry(fd)
	if e == nil || !e.monitored {
		return ErrFDNotMonitored
	}

	if err := r.poller.Remove(fd); err != nil {
		r.logger.Error("corun: poller Remove failed, this is a fatal control-plane error",
			zap.Int("fd", fd), zap.Error(err))
		panic(fmt.Sprintf("corun: poller.Remove(%d): %v", fd, err))
	}

	r.unlink(e)
	r.table[fd] = nil
	r.monitoredCount--
	r.metrics.ReactorMonitoredFDs.Set(float64(r.monitoredCount))

	return nil
}

func (r *Reactor) unlink(e *fdEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		r.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
}

// Poll consults the readiness backend for fds that became ready within
// timeoutMs and fires their wakers, unregistering each as it fires (level-
// triggered: a future that wants to keep observing must re-register).
func (r *Reactor) Poll(timeoutMs int) error {
	r.metrics.ReactorPollTotal.Inc()

	ready, err := r.poller.Wait(timeoutMs)
	if err != nil {
		r.logger.Error("corun: poller Wait failed, this is a fatal kernel error", zap.Error(err))
		panic(fmt.Sprintf("corun: poller.Wait: %v", err))
	}

	for _, fd := range ready {
		e := r.entry(fd)
		if e == nil || !e.monitored {
			continue
		}
		waker := e.waker
		if err := r.Unregister(fd); err != nil {
			return fmt.Errorf("corun: unregistering fd %d after it became ready: %w", fd, err)
		}
		r.metrics.ReactorWakesTotal.Inc()
		if err := waker.Wake(); err != nil {
			return fmt.Errorf("corun: waking fd %d's task: %w", fd, err)
		}
	}

	return nil
}

// Close releases the poller's kernel resources.
func (r *Reactor) Close() error {
	return r.poller.Close()
}

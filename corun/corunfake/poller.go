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

// Package corunfake provides an in-memory readiness-poller test double
// satisfying corun.Poller, so reactor/executor tests can drive fd
// readiness deterministically without touching real file descriptors --
// in the spirit of the retrieved corpus's fake-backend testing idiom
// (e.g. everyday-items-toolkit's use of alicebob/miniredis).
package corunfake

import (
	"errors"
	"sync"
	"time"

	"github.com/lucerna/corun/future"
)

// ErrClosed is returned by Poller methods once Close has been called.
var ErrClosed = errors.New("corunfake: poller is closed")

// Poller is a Poller implementation backed by an in-memory set of
// registered and ready fds rather than a real kernel facility. Wait
// actually blocks when asked to (timeoutMs == -1), woken by SetReady or
// Close, so it reproduces epoll's blocking behavior closely enough for the
// executor's empty-queue/blocking-poll invariant to be exercised in tests.
type Poller struct {
	mu        sync.Mutex
	cond      *sync.Cond
	monitored map[int]future.Events
	ready     map[int]bool
	closed    bool
}

// NewPoller constructs an empty Poller.
func NewPoller() *Poller {
	p := &Poller{
		monitored: make(map[int]future.Events),
		ready:     make(map[int]bool),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Add implements corun.Poller.
func (p *Poller) Add(fd int, events future.Events) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.monitored[fd] = events
	return nil
}

// Remove implements corun.Poller.
func (p *Poller) Remove(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	delete(p.monitored, fd)
	delete(p.ready, fd)
	return nil
}

func (p *Poller) drainReadyLocked() []int {
	var fds []int
	for fd := range p.monitored {
		if p.ready[fd] {
			fds = append(fds, fd)
			delete(p.ready, fd)
		}
	}
	return fds
}

// Wait implements corun.Poller. timeoutMs == -1 blocks until SetReady
// makes at least one monitored fd ready (or Close is called); timeoutMs
// == 0 returns immediately; a positive timeoutMs blocks for at most that
// long.
func (p *Poller) Wait(timeoutMs int) ([]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}

	if fds := p.drainReadyLocked(); len(fds) > 0 || timeoutMs == 0 {
		return fds, nil
	}

	var fds []int
	if timeoutMs < 0 {
		for len(fds) == 0 && !p.closed {
			p.cond.Wait()
			fds = p.drainReadyLocked()
		}
		if p.closed {
			return nil, ErrClosed
		}
		return fds, nil
	}

	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	for len(fds) == 0 && !p.closed {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}
		timer := time.AfterFunc(remaining, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.cond.Broadcast()
		})
		p.cond.Wait()
		timer.Stop()
		fds = p.drainReadyLocked()
	}
	if p.closed {
		return nil, ErrClosed
	}
	return fds, nil
}

// Close implements corun.Poller.
func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.cond.Broadcast()
	return nil
}

// SetReady marks fd as having a pending readiness event, to be reported by
// the next Wait call. It is a no-op if fd is not currently monitored.
func (p *Poller) SetReady(fd int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.monitored[fd]; ok {
		p.ready[fd] = true
		p.cond.Broadcast()
	}
}

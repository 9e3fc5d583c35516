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

//go:build linux

package corun

import (
	"golang.org/x/sys/unix"

	"github.com/lucerna/corun/future"
)

// maxEpollEvents bounds how many ready fds a single EpollWait call reports;
// extra ready fds are simply picked up on the reactor's next Poll.
const maxEpollEvents = 64

// epollPoller is the default Poller on Linux: a persistent epoll instance
// kept open for the Reactor's lifetime (Register/Unregister maintain the
// kernel's interest set eagerly), unlike the distilled source's mio_poll,
// which created and tore down a throwaway epoll instance on every poll.
// SPEC_FULL.md §4.3 sanctions this as an equivalent, simpler alternative.
type epollPoller struct {
	epfd     int
	eventBuf [maxEpollEvents]unix.EpollEvent
}

func newEpollPoller() (*epollPoller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollPoller{epfd: epfd}, nil
}

func newDefaultPoller() (Poller, error) {
	return newEpollPoller()
}

func eventsToEpoll(events future.Events) uint32 {
	var bits uint32
	if events&future.EventReadable != 0 {
		bits |= unix.EPOLLIN
	}
	if events&future.EventWritable != 0 {
		bits |= unix.EPOLLOUT
	}
	if events&future.EventError != 0 {
		bits |= unix.EPOLLERR
	}
	return bits
}

// Add implements Poller.
func (p *epollPoller) Add(fd int, events future.Events) error {
	ev := unix.EpollEvent{Events: eventsToEpoll(events), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// Remove implements Poller.
func (p *epollPoller) Remove(fd int) error {
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// Wait implements Poller.
func (p *epollPoller) Wait(timeoutMs int) ([]int, error) {
	n, err := unix.EpollWait(p.epfd, p.eventBuf[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}

	ready := make([]int, n)
	for i := 0; i < n; i++ {
		ready[i] = int(p.eventBuf[i].Fd)
	}
	return ready, nil
}

// Close implements Poller.
func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}

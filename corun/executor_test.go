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

package corun_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lucerna/corun"
	"github.com/lucerna/corun/corunfake"
	"github.com/lucerna/corun/future"
)

// fdReadyFuture registers fd for EventReadable on its first Poll and
// completes with value once the reactor reports fd ready.
type fdReadyFuture struct {
	fd         int
	value      interface{}
	registered bool
}

func (f *fdReadyFuture) Poll(reactor future.Reactor, waker future.Waker) (future.PollResult, error) {
	if !f.registered {
		f.registered = true
		if err := reactor.Register(f.fd, future.EventReadable, waker); err != nil {
			return nil, err
		}
		return future.PollResultPending, nil
	}
	return f.value, nil
}

func newFakeExecutor() (*corun.Executor, *corunfake.Poller) {
	poller := corunfake.NewPoller()
	reactor, err := corun.NewReactor(corun.ReactorConfig{Poller: poller})
	Expect(err).ShouldNot(HaveOccurred())
	executor, err := corun.NewExecutor(corun.ExecutorConfig{Reactor: reactor})
	Expect(err).ShouldNot(HaveOccurred())
	return executor, poller
}

var _ = Describe("Executor", func() {
	It("runs a synchronously completing future to zero in-progress", func() {
		executor, _ := newFakeExecutor()

		Expect(executor.Spawn(future.Ready("A"))).Should(Succeed())
		Expect(executor.Run(context.Background())).Should(Succeed())
	})

	It("drives two reactor-parked futures independently, per their own fd readiness", func() {
		executor, poller := newFakeExecutor()

		f1 := &fdReadyFuture{fd: 3, value: "F1 done"}
		f2 := &fdReadyFuture{fd: 4, value: "F2 done"}
		Expect(executor.Spawn(f1)).Should(Succeed())
		Expect(executor.Spawn(f2)).Should(Succeed())

		done := make(chan error, 1)
		go func() { done <- executor.Run(context.Background()) }()

		// Both futures register and park before either fd is marked ready;
		// fd 4 is marked ready before fd 3, and Run returns only once each
		// future has been woken by its own fd.
		Eventually(func() bool { return f1.registered && f2.registered }).Should(BeTrue())
		poller.SetReady(4)
		poller.SetReady(3)

		Expect(<-done).Should(Succeed())
	})

	It("rejects Spawn after Close", func() {
		executor, _ := newFakeExecutor()
		Expect(executor.Close()).Should(Succeed())
		Expect(executor.Spawn(future.Ready(1))).Should(MatchError(corun.ErrExecutorClosed))
	})
})

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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lucerna/corun"
	"github.com/lucerna/corun/corunfake"
	"github.com/lucerna/corun/future"
)

var _ = Describe("Reactor", func() {
	var (
		poller  *corunfake.Poller
		reactor *corun.Reactor
	)

	BeforeEach(func() {
		poller = corunfake.NewPoller()
		var err error
		reactor, err = corun.NewReactor(corun.ReactorConfig{Poller: poller})
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("rejects registering an already-monitored fd", func() {
		Expect(reactor.Register(3, future.EventReadable, future.NopWaker)).Should(Succeed())
		Expect(reactor.Register(3, future.EventReadable, future.NopWaker)).Should(
			MatchError(corun.ErrFDAlreadyMonitored))
	})

	It("rejects unregistering an unmonitored fd", func() {
		Expect(reactor.Unregister(3)).Should(MatchError(corun.ErrFDNotMonitored))
	})

	It("fires a waker and unregisters the fd once it becomes ready", func() {
		woken := false
		waker := future.WakerFunc(func() error {
			woken = true
			return nil
		})
		Expect(reactor.Register(4, future.EventReadable, waker)).Should(Succeed())

		Expect(reactor.Poll(0)).Should(Succeed())
		Expect(woken).Should(BeFalse())

		poller.SetReady(4)
		Expect(reactor.Poll(0)).Should(Succeed())
		Expect(woken).Should(BeTrue())

		// Level-triggered: once fired, the fd is no longer monitored.
		Expect(reactor.Unregister(4)).Should(MatchError(corun.ErrFDNotMonitored))
	})

	It("only fires the waker for the fd that became ready, leaving others pending", func() {
		var woken3, woken4 bool
		Expect(reactor.Register(3, future.EventReadable, future.WakerFunc(func() error {
			woken3 = true
			return nil
		}))).Should(Succeed())
		Expect(reactor.Register(4, future.EventReadable, future.WakerFunc(func() error {
			woken4 = true
			return nil
		}))).Should(Succeed())

		poller.SetReady(4)
		Expect(reactor.Poll(0)).Should(Succeed())

		Expect(woken4).Should(BeTrue())
		Expect(woken3).Should(BeFalse())
	})
})

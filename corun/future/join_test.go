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

package future_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lucerna/corun/future"
)

var _ = Describe("Join: wait for both", func() {
	It("completes with both values when both futures are synchronous", func() {
		f := future.Join(future.Ready(1), future.Ready(2))
		result, err := f.Poll(nil, future.NopWaker)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result).Should(Equal(future.JoinResult{
			Fut1: future.Outcome{Value: 1},
			Fut2: future.Outcome{Value: 2},
		}))
	})

	It("fails with the failing child's error if one of the input futures fails", func() {
		testErr := errors.New("an error value")
		f := future.Join(future.Ready(1), future.Err(testErr))
		_, err := f.Poll(nil, future.NopWaker)
		Expect(err).Should(MatchError(testErr))
	})

	Describe("with futures that complete on notify", func() {
		var f1, f2 *notifyFuture

		BeforeEach(func() {
			f1 = &notifyFuture{}
			f2 = &notifyFuture{}
		})

		It("wakes join at most once per completion and waits for both", func() {
			f := future.Join(f1, f2)

			waken := 0
			waker := future.WakerFunc(func() error {
				waken++
				return nil
			})

			result, err := f.Poll(nil, waker)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(result).Should(Equal(future.PollResultPending))

			Expect(f1.Complete(1)).Should(Succeed())
			Expect(waken).Should(Equal(1))
			result, err = f.Poll(nil, waker)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(result).Should(Equal(future.PollResultPending))

			Expect(f2.Complete(2)).Should(Succeed())
			Expect(waken).Should(Equal(2))
			result, err = f.Poll(nil, waker)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(result).Should(Equal(future.JoinResult{
				Fut1: future.Outcome{Value: 1},
				Fut2: future.Outcome{Value: 2},
			}))
		})

		It("fails with the failing child's error when one fails and the other succeeds", func() {
			f := future.Join(f1, f2)
			testErr := errors.New("f2 failed")

			_, _ = f.Poll(nil, future.NopWaker)
			Expect(f1.Complete(7)).Should(Succeed())
			_, _ = f.Poll(nil, future.NopWaker)
			Expect(f2.SetErr(testErr)).Should(Succeed())

			_, err := f.Poll(nil, future.NopWaker)
			Expect(err).Should(MatchError(testErr))
		})

		It("folds both errors into the aggregate when both children fail", func() {
			f := future.Join(f1, f2)
			err1 := errors.New("f1 failed")
			err2 := errors.New("f2 failed")

			_, _ = f.Poll(nil, future.NopWaker)
			Expect(f1.SetErr(err1)).Should(Succeed())
			_, _ = f.Poll(nil, future.NopWaker)
			Expect(f2.SetErr(err2)).Should(Succeed())

			_, err := f.Poll(nil, future.NopWaker)
			Expect(err).Should(MatchError(err1))
			Expect(err.Error()).Should(ContainSubstring(err2.Error()))
		})
	})
})

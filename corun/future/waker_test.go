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

var _ = Describe("Waker", func() {
	It("NopWaker does nothing and never errors", func() {
		Expect(future.NopWaker.Wake()).Should(Succeed())
	})

	It("WakerFunc adapts an ordinary function", func() {
		called := false
		w := future.WakerFunc(func() error {
			called = true
			return nil
		})
		Expect(w.Wake()).Should(Succeed())
		Expect(called).Should(BeTrue())
	})

	It("WakerFunc propagates the function's error", func() {
		testErr := errors.New("wake failed")
		w := future.WakerFunc(func() error { return testErr })
		Expect(w.Wake()).Should(MatchError(testErr))
	})
})

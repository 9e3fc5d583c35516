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
	"fmt"

	"github.com/creasty/defaults"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ExecutorConfig configures a new Executor. The zero value is valid: unset
// fields are filled in during NewExecutor (MaxQueueSize by defaults.Set,
// Logger and Metrics by nil checks, Reactor by building one). Size MaxQueueSize
// to at least your expected peak in-progress task count, since the ready
// queue silently drops wakeups past capacity (see queue.go).
type ExecutorConfig struct {
	// MaxQueueSize bounds the ready queue. A zero value (including one left
	// unset by the caller) is replaced with the default; callers that truly
	// want a single-slot queue must pass 1 explicitly.
	MaxQueueSize int `default:"256"`

	// Reactor is adopted as-is when non-nil; otherwise NewExecutor builds
	// one from ReactorConfig.
	Reactor *Reactor

	ReactorConfig ReactorConfig

	// Logger receives structured lifecycle events. Defaults to a no-op
	// logger when nil.
	Logger *zap.Logger

	// Metrics receives counters/gauges for queue depth, in-progress tasks,
	// and overflow. Defaults to a disconnected Metrics bundle (registered
	// only against a fresh private registry) when nil.
	Metrics *Metrics
}

// Validate checks config values that defaults.Set cannot repair on its own.
func (cfg *ExecutorConfig) Validate() error {
	if cfg.MaxQueueSize <= 0 {
		return fmt.Errorf("corun: ExecutorConfig.MaxQueueSize must be positive after defaulting, got %d",
			cfg.MaxQueueSize)
	}
	return nil
}

// ReactorConfig configures a new Reactor.
type ReactorConfig struct {
	// Poller is the kernel-readiness backend. Defaults to the platform
	// epoll implementation when nil.
	Poller Poller

	// Logger receives Error-level entries for fatal kernel/control-plane
	// failures. Defaults to a no-op logger when nil.
	Logger *zap.Logger

	// Metrics receives reactor poll/wake counters. Defaults to a
	// disconnected Metrics bundle when nil.
	Metrics *Metrics
}

func applyExecutorConfigDefaults(cfg *ExecutorConfig) error {
	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("corun: applying ExecutorConfig defaults: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	return cfg.Validate()
}

func applyReactorConfigDefaults(cfg *ReactorConfig) error {
	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("corun: applying ReactorConfig defaults: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	if cfg.Poller == nil {
		poller, err := newDefaultPoller()
		if err != nil {
			return fmt.Errorf("corun: constructing default poller: %w", err)
		}
		cfg.Poller = poller
	}
	return nil
}

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

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters and gauges an Executor/Reactor pair emits.
// A Metrics built with NewMetrics is registered against the given
// Registerer immediately; callers that don't care about scraping can pass
// prometheus.NewRegistry() and simply never expose it over HTTP.
type Metrics struct {
	QueueDepth          prometheus.Gauge
	InProgress          prometheus.Gauge
	QueueOverflowTotal  prometheus.Counter
	TasksSpawnedTotal   prometheus.Counter
	TasksCompletedTotal *prometheus.CounterVec

	ReactorMonitoredFDs prometheus.Gauge
	ReactorPollTotal    prometheus.Counter
	ReactorWakesTotal   prometheus.Counter
}

// NewMetrics constructs and registers a Metrics bundle. Registration
// failures (e.g. a name collision on a shared Registerer) panic, matching
// the fail-fast idiom promauto itself uses for unrecoverable setup errors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "corun_ready_queue_depth",
			Help: "Current number of tasks waiting in the ready queue.",
		}),
		InProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "corun_tasks_in_progress",
			Help: "Current number of spawned tasks that have not yet terminated.",
		}),
		QueueOverflowTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "corun_queue_overflow_total",
			Help: "Total number of wakeups silently dropped because the ready queue was full.",
		}),
		TasksSpawnedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "corun_tasks_spawned_total",
			Help: "Total number of futures spawned onto the executor.",
		}),
		TasksCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "corun_tasks_completed_total",
			Help: "Total number of tasks that reached a terminal result, by outcome.",
		}, []string{"outcome"}),
		ReactorMonitoredFDs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "corun_reactor_monitored_fds",
			Help: "Current number of file descriptors registered with the reactor.",
		}),
		ReactorPollTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "corun_reactor_poll_total",
			Help: "Total number of times the reactor polled its readiness backend.",
		}),
		ReactorWakesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "corun_reactor_wakes_total",
			Help: "Total number of wakers fired by the reactor in response to readiness.",
		}),
	}

	reg.MustRegister(
		m.QueueDepth,
		m.InProgress,
		m.QueueOverflowTotal,
		m.TasksSpawnedTotal,
		m.TasksCompletedTotal,
		m.ReactorMonitoredFDs,
		m.ReactorPollTotal,
		m.ReactorWakesTotal,
	)

	return m
}

const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
)

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package prometheus adapts task.Metrics to Prometheus collectors.
package prometheus

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/task"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// MetricsExporter implements task.Metrics on Prometheus collectors.
type MetricsExporter struct {
	taskDurationSeconds *prom.HistogramVec
	taskPanicTotal      *prom.CounterVec
	taskRejectedTotal   *prom.CounterVec
	queueDepth          *prom.GaugeVec
}

var _ task.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for
// task.Metrics. A nil registerer means prom.DefaultRegisterer; an empty
// namespace means "task".
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "task"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	exporter := &MetricsExporter{
		taskDurationSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Unit-of-work execution duration in seconds.",
			Buckets:   buckets,
		}, []string{"pool"}),
		taskPanicTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_panic_total",
			Help:      "Total number of units of work that panicked.",
		}, []string{"pool"}),
		taskRejectedTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_rejected_total",
			Help:      "Total number of rejected units of work.",
		}, []string{"pool", "reason"}),
		queueDepth: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Current submission queue depth.",
		}, []string{"pool"}),
	}

	for _, c := range []prom.Collector{
		exporter.taskDurationSeconds,
		exporter.taskPanicTotal,
		exporter.taskRejectedTotal,
		exporter.queueDepth,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prometheus: register collector: %w", err)
		}
	}
	return exporter, nil
}

// RecordTaskDuration implements task.Metrics.
func (m *MetricsExporter) RecordTaskDuration(pool string, d time.Duration) {
	m.taskDurationSeconds.WithLabelValues(pool).Observe(d.Seconds())
}

// RecordTaskPanic implements task.Metrics.
func (m *MetricsExporter) RecordTaskPanic(pool string, _ any) {
	m.taskPanicTotal.WithLabelValues(pool).Inc()
}

// RecordQueueDepth implements task.Metrics.
func (m *MetricsExporter) RecordQueueDepth(pool string, depth int) {
	m.queueDepth.WithLabelValues(pool).Set(float64(depth))
}

// RecordTaskRejected implements task.Metrics.
func (m *MetricsExporter) RecordTaskRejected(pool string, reason string) {
	m.taskRejectedTotal.WithLabelValues(pool, reason).Inc()
}

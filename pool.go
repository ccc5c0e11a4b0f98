// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"sync"
	"time"
)

// Metrics collects pool execution metrics. Implementations adapt to a
// concrete backend; the core stays dependency-free with NilMetrics as the
// default.
type Metrics interface {
	// RecordTaskDuration records how long a unit of work took to execute.
	RecordTaskDuration(pool string, d time.Duration)

	// RecordTaskPanic records that a unit of work panicked.
	RecordTaskPanic(pool string, value any)

	// RecordQueueDepth records the number of units waiting in the queue.
	RecordQueueDepth(pool string, depth int)

	// RecordTaskRejected records that a unit of work was rejected.
	RecordTaskRejected(pool string, reason string)
}

// NilMetrics is the no-op Metrics implementation.
type NilMetrics struct{}

func (NilMetrics) RecordTaskDuration(string, time.Duration) {}
func (NilMetrics) RecordTaskPanic(string, any)              {}
func (NilMetrics) RecordQueueDepth(string, int)             {}
func (NilMetrics) RecordTaskRejected(string, string)        {}

// PoolOptions controls pool configuration.
type PoolOptions struct {
	// Name labels the pool in metrics. Defaults to "task".
	Name string

	// QueueSize bounds the submission queue. Defaults to 16 per worker.
	QueueSize int

	// Metrics receives execution metrics. Defaults to NilMetrics.
	Metrics Metrics
}

// Pool is a bounded worker-pool Strategy: a fixed set of goroutines pulling
// units of work from a queue. It is one way to satisfy the Strategy
// capability when per-unit goroutines (Spawn) are too coarse.
type Pool struct {
	name    string
	jobs    chan func()
	wg      sync.WaitGroup
	metrics Metrics

	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool of the given number of workers.
func NewPool(workers int, opts PoolOptions) *Pool {
	if workers < 1 {
		workers = 1
	}
	name := opts.Name
	if name == "" {
		name = "task"
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = workers * 16
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NilMetrics{}
	}

	p := &Pool{
		name:    name,
		jobs:    make(chan func(), queueSize),
		metrics: metrics,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.runJob(job)
	}
}

func (p *Pool) runJob(job func()) {
	started := time.Now()
	defer func() {
		p.metrics.RecordTaskDuration(p.name, time.Since(started))
		if v := recover(); v != nil {
			p.metrics.RecordTaskPanic(p.name, v)
		}
	}()
	job()
}

// Strategy returns the submission capability of the pool.
// Work submitted after Close is rejected and dropped.
func (p *Pool) Strategy() Strategy {
	return p.submit
}

func (p *Pool) submit(work func()) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.metrics.RecordTaskRejected(p.name, "closed")
		return
	}
	p.jobs <- work
	p.metrics.RecordQueueDepth(p.name, len(p.jobs))
}

// Close stops accepting work and, after the queue drains, stops the
// workers. It blocks until every queued unit has run.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

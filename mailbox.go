// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync"

// mailbox is a single-consumer FIFO serialization point: messages are
// processed one at a time, in arrival order, without blocking senders on
// in-flight processing. The first sender to find the mailbox idle drains
// the queue; senders arriving while a drain is in progress only enqueue.
//
// This is the sole serialization discipline in the package. Ref state and
// the cancelable-run completion latch are confined to a mailbox, so neither
// needs further locking.
type mailbox struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

// Send enqueues a message and, if no drain is in progress, processes the
// queue until it is emptied. Messages run outside the lock.
func (m *mailbox) Send(msg func()) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	for len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		next()
		m.mu.Lock()
	}
	m.queue = nil
	m.running = false
	m.mu.Unlock()
}

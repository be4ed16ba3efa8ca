package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/patternlog/core"
)

// asyncQueue is the bounded queue and consumer goroutine shared by the
// asynchronous handlers. Entries accepted by enqueue are owned by the
// queue and returned to the entry pool after they are written.
type asyncQueue struct {
	queue          chan *core.Entry
	wg             sync.WaitGroup
	closed         chan struct{}
	closeOnce      sync.Once
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	stats          *Stats
	write          func(*core.Entry) error
}

func newAsyncQueue(size int, policy map[core.Level]OverflowPolicy, blockTimeout, drainTimeout time.Duration,
	stats *Stats, write func(*core.Entry) error) *asyncQueue {
	q := &asyncQueue{
		queue:          make(chan *core.Entry, size),
		closed:         make(chan struct{}),
		overflowPolicy: policy,
		blockTimeout:   blockTimeout,
		drainTimeout:   drainTimeout,
		stats:          stats,
		write:          write,
	}
	q.wg.Add(1)
	go q.process()
	return q
}

// enqueue hands entry to the consumer goroutine, applying the overflow
// policy of the entry's level when the queue is full
func (q *asyncQueue) enqueue(entry *core.Entry) error {
	select {
	case <-q.closed:
		// Handler is closing, write synchronously
		return q.writeAndRelease(entry)
	default:
	}

	policy, ok := q.overflowPolicy[entry.Level]
	if !ok {
		policy = DropNewest // Default if not specified
	}

	switch policy {
	case Block:
		select {
		case q.queue <- entry:
			return nil
		default:
		}
		timer := time.NewTimer(q.blockTimeout)
		defer timer.Stop()
		select {
		case q.queue <- entry:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			q.stats.IncrementBlocked()
			return q.writeAndRelease(entry)
		case <-q.closed:
			return q.writeAndRelease(entry)
		}

	case DropOldest:
		select {
		case q.queue <- entry:
			return nil
		default:
		}
		// Queue full - try to drop oldest
		select {
		case old := <-q.queue:
			q.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case q.queue <- entry:
			return nil
		default:
			// Still full, drop this one
			q.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
			return nil
		}

	default:
		select {
		case q.queue <- entry:
			return nil
		default:
			// Queue full - drop this entry
			q.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
			return nil
		}
	}
}

func (q *asyncQueue) writeAndRelease(entry *core.Entry) error {
	err := q.write(entry)
	core.PutEntry(entry)
	return err
}

// process handles async log processing. Write errors do not stop the
// consumer; the failed entry is discarded.
func (q *asyncQueue) process() {
	defer q.wg.Done()

	for {
		select {
		case entry := <-q.queue:
			_ = q.writeAndRelease(entry)
		case <-q.closed:
			// Drain remaining entries with timeout
			deadline := time.NewTimer(q.drainTimeout)
			defer deadline.Stop()
			for {
				select {
				case entry := <-q.queue:
					_ = q.writeAndRelease(entry)
				case <-deadline.C:
					return
				default:
					// Queue empty
					return
				}
			}
		}
	}
}

// close stops accepting queued entries and waits for the drain
func (q *asyncQueue) close() {
	q.closeOnce.Do(func() {
		close(q.closed)
		q.wg.Wait()
	})
}

package cli

import "sync"

// uiQueue carries closures from background goroutines to the REPL goroutine.
type uiQueue struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

func newUIQueue(size int) *uiQueue {
	return &uiQueue{ch: make(chan func(), size), done: make(chan struct{})}
}

// Post enqueues fn. It blocks while the queue is full, and drops fn once
// the queue is closed.
func (q *uiQueue) Post(fn func()) {
	select {
	case q.ch <- fn:
	case <-q.done:
	}
}

// Drain runs every queued closure on the calling goroutine and reports how
// many ran.
func (q *uiQueue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close releases blocked posters.
func (q *uiQueue) Close() {
	q.once.Do(func() { close(q.done) })
}

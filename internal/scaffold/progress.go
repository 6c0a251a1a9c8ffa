package scaffold

import "sync"

// Progress hands the latest downloaded byte count from the pipeline to a
// presentation goroutine. It holds at most one unread value: a newer Publish
// replaces an unread older one, so a slow reader skips values but never sees
// them out of order.
type Progress struct {
	mu     sync.Mutex
	ch     chan int64
	last   int64
	closed bool
}

// NewProgress creates an empty progress cell.
func NewProgress() *Progress {
	return &Progress{ch: make(chan int64, 1), last: -1}
}

// Publish never blocks. Values lower than one already published are dropped.
func (p *Progress) Publish(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || n <= p.last {
		return
	}
	p.last = n

	select {
	case <-p.ch:
	default:
	}
	p.ch <- n
}

// Updates is closed by Close.
func (p *Progress) Updates() <-chan int64 {
	return p.ch
}

// Latest returns the highest published value, or 0 if nothing was published.
func (p *Progress) Latest() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last < 0 {
		return 0
	}
	return p.last
}

// Close is idempotent.
func (p *Progress) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.ch)
}

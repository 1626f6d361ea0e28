package mention

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultQuietInterval is how long input must pause before a query is dispatched.
const DefaultQuietInterval = 300 * time.Millisecond

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithQuietInterval sets the quiet interval. Zero dispatches on the next timer tick.
func WithQuietInterval(d time.Duration) DispatcherOption {
	return func(q *Dispatcher) {
		if d >= 0 {
			q.interval = d
		}
	}
}

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) DispatcherOption {
	return func(q *Dispatcher) {
		if s != nil {
			q.scheduler = s
		}
	}
}

// WithDispatchLogger sets the logger.
func WithDispatchLogger(l *zap.Logger) DispatcherOption {
	return func(q *Dispatcher) {
		if l != nil {
			q.logger = l
		}
	}
}

// Dispatcher coalesces rapid query changes into one trailing notification.
// Clearing the query (the empty string) is delivered immediately.
type Dispatcher struct {
	mu        sync.Mutex
	notify    func(query string)
	interval  time.Duration
	scheduler Scheduler
	logger    *zap.Logger
	pending   *pendingQuery
	seq       uint64
}

type pendingQuery struct {
	query string
	timer Timer
	seq   uint64
}

// NewDispatcher creates a dispatcher that delivers queries to notify.
// notify is never called with the dispatcher's lock held.
func NewDispatcher(notify func(query string), opts ...DispatcherOption) *Dispatcher {
	q := &Dispatcher{
		notify:    notify,
		interval:  DefaultQuietInterval,
		scheduler: realScheduler{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Schedule replaces any pending query with query and restarts the quiet interval.
func (q *Dispatcher) Schedule(query string) {
	if query == "" {
		q.Cancel()
		q.deliver("")
		return
	}

	q.mu.Lock()
	if q.pending != nil {
		q.pending.timer.Stop()
	}
	q.seq++
	seq := q.seq
	q.pending = &pendingQuery{query: query, seq: seq}
	q.pending.timer = q.scheduler.AfterFunc(q.interval, func() {
		q.fire(seq)
	})
	q.mu.Unlock()
}

// Cancel drops the pending query without delivering it. Safe to call at any time.
func (q *Dispatcher) Cancel() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending == nil {
		return
	}
	q.pending.timer.Stop()
	q.logger.Debug("dispatch cancelled", zap.String("query", q.pending.query))
	q.pending = nil
}

// Flush delivers the pending query now, if there is one.
func (q *Dispatcher) Flush() bool {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	if pending != nil {
		pending.timer.Stop()
	}
	q.mu.Unlock()

	if pending == nil {
		return false
	}
	q.deliver(pending.query)
	return true
}

// Pending returns the query waiting for the quiet interval to elapse.
func (q *Dispatcher) Pending() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending == nil {
		return "", false
	}
	return q.pending.query, true
}

func (q *Dispatcher) fire(seq uint64) {
	q.mu.Lock()
	// A timer that lost the race with Stop must not deliver a superseded query.
	if q.pending == nil || q.pending.seq != seq {
		q.mu.Unlock()
		return
	}
	query := q.pending.query
	q.pending = nil
	q.mu.Unlock()

	q.deliver(query)
}

func (q *Dispatcher) deliver(query string) {
	q.logger.Debug("dispatch", zap.String("query", query))
	if q.notify != nil {
		q.notify(query)
	}
}

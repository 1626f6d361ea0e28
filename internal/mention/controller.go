package mention

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/olivermillard/mention/internal/core"
	"github.com/olivermillard/mention/internal/directory"
	"github.com/olivermillard/mention/internal/types"
	"go.uber.org/zap"
)

// Presenter renders controller output. Calls arrive from whichever goroutine
// triggered the change (an edit, the dispatcher timer, the directory fetch),
// never with the controller's lock held. A presenter must not call OnEdit or
// OnSelect synchronously from inside these methods.
type Presenter interface {
	ShowCandidates(set types.CandidateSet)
	RequestFocus()
}

type nopPresenter struct{}

func (nopPresenter) ShowCandidates(types.CandidateSet) {}
func (nopPresenter) RequestFocus()                     {}

// Option configures a Controller.
type Option func(*controllerConfig)

type controllerConfig struct {
	presenter Presenter
	logger    *zap.Logger
	dispatch  []DispatcherOption
}

// WithPresenter sets where candidate sets and focus requests go.
func WithPresenter(p Presenter) Option {
	return func(c *controllerConfig) {
		if p != nil {
			c.presenter = p
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *controllerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithQuiet sets the dispatcher quiet interval.
func WithQuiet(d time.Duration) Option {
	return func(c *controllerConfig) {
		c.dispatch = append(c.dispatch, WithQuietInterval(d))
	}
}

// WithTimers sets the dispatcher scheduler.
func WithTimers(s Scheduler) Option {
	return func(c *controllerConfig) {
		c.dispatch = append(c.dispatch, WithScheduler(s))
	}
}

// Controller owns the buffer, the open query span and the directory snapshot,
// and runs the edit, dispatch, match and replace cycle. All public methods
// are serialized by one mutex. Edits and selections additionally hold editMu
// until their dispatch has been scheduled, so concurrent callers reach the
// dispatcher in the same order their state changes were applied.
type Controller struct {
	editMu     sync.Mutex
	mu         sync.Mutex
	provider   directory.Provider
	presenter  Presenter
	dispatcher *Dispatcher
	tracker    *core.SpanTracker
	logger     *zap.Logger

	buffer     string
	caret      int
	span       types.QuerySpan
	query      string
	snapshot   []types.DirectoryEntry
	fetched    bool
	candidates types.CandidateSet
	closed     bool

	ctx       context.Context
	cancel    context.CancelFunc
	fetchOnce sync.Once
	readyOnce sync.Once
	ready     chan struct{}
	wg        sync.WaitGroup
}

// New creates an idle controller: empty buffer, no open query, directory not
// yet fetched. The provider is consulted at most once, on first need.
func New(provider directory.Provider, opts ...Option) *Controller {
	cfg := controllerConfig{
		presenter: nopPresenter{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	logger := cfg.logger.With(zap.String("session", uuid.NewString()))
	c := &Controller{
		provider:  provider,
		presenter: cfg.presenter,
		tracker:   core.NewSpanTracker(),
		logger:    logger,
		span:      types.NoSpan,
		ctx:       ctx,
		cancel:    cancel,
		ready:     make(chan struct{}),
	}
	dispatchOpts := append([]DispatcherOption{WithDispatchLogger(logger)}, cfg.dispatch...)
	c.dispatcher = NewDispatcher(c.OnQueryDispatched, dispatchOpts...)
	return c
}

// OnEdit adopts a new buffer and caret and updates the open query.
func (c *Controller) OnEdit(buffer string, caret int) {
	c.editMu.Lock()
	defer c.editMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.buffer = buffer
	c.caret = clamp(caret, len([]rune(buffer)))
	span, changed := c.tracker.Track(buffer, c.caret)
	c.span = span

	if !span.IsActive() {
		wasOpen := c.query != ""
		c.query = ""
		c.mu.Unlock()
		if changed || wasOpen {
			c.logger.Debug("query closed")
			c.dispatcher.Schedule("")
		}
		return
	}

	query := core.QueryText(buffer, span)
	previous := c.query
	c.query = query
	needDirectory := !c.fetched
	c.mu.Unlock()

	if needDirectory {
		c.EnsureDirectory()
	}
	if changed || query != previous {
		c.logger.Debug("query updated", zap.String("query", query), zap.Int("start", span.Start), zap.Int("end", span.End))
		c.dispatcher.Schedule(query)
	}
}

// EnsureDirectory starts the directory fetch if it has not been started yet.
// It never blocks; Ready is closed once the snapshot is available.
func (c *Controller) EnsureDirectory() {
	c.fetchOnce.Do(func() {
		if c.provider == nil {
			c.OnDirectoryReady(nil)
			return
		}
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			entries, err := c.provider.FetchDirectory(c.ctx)
			if err != nil {
				c.OnDirectoryFailed(err)
				return
			}
			c.OnDirectoryReady(entries)
		}()
	})
}

// Ready is closed when the directory snapshot has been stored and any open
// query has been re-matched against it, or when the controller is closed.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// OnDirectoryReady stores the snapshot, sorted by display name. Only the first
// call has any effect. An open query is re-matched before Ready is closed.
func (c *Controller) OnDirectoryReady(entries []types.DirectoryEntry) {
	c.mu.Lock()
	if c.closed || c.fetched {
		c.mu.Unlock()
		return
	}
	c.snapshot = core.SortDirectory(entries)
	c.fetched = true
	query := c.query
	c.mu.Unlock()

	c.logger.Info("directory loaded", zap.Int("entries", len(entries)))
	if query != "" {
		c.OnQueryDispatched(query)
	}
	c.readyOnce.Do(func() { close(c.ready) })
}

// OnDirectoryFailed records a failed fetch as an empty directory so the user
// sees "no matches" instead of an endless loading state.
func (c *Controller) OnDirectoryFailed(err error) {
	c.logger.Warn("directory fetch failed", zap.Error(err))
	c.OnDirectoryReady(nil)
}

// OnQueryDispatched recomputes the candidate set for query and hands it to
// the presenter. Queries that no longer match the open query are dropped.
func (c *Controller) OnQueryDispatched(query string) {
	c.mu.Lock()
	if c.closed || (query != "" && query != c.query) {
		c.mu.Unlock()
		return
	}
	set := types.CandidateSet{}
	if query != "" {
		set = types.CandidateSet{
			Visible:    true,
			Collecting: !c.fetched,
			Query:      query,
			Entries:    []types.DirectoryEntry{},
		}
		if c.fetched && len(c.snapshot) > 0 {
			set.Entries = core.FilterDirectory(query, c.snapshot)
		}
	}
	c.candidates = set
	presenter := c.presenter
	c.mu.Unlock()

	presenter.ShowCandidates(set)
}

// OnSelect replaces the open query with entry's display name. Without an open
// query it does nothing and reports false.
func (c *Controller) OnSelect(entry types.DirectoryEntry) (types.Edit, bool) {
	c.editMu.Lock()
	defer c.editMu.Unlock()

	c.mu.Lock()
	if c.closed || !c.span.IsActive() {
		c.mu.Unlock()
		return types.Edit{}, false
	}
	edit := core.MustReplaceSpan(c.buffer, c.span, entry.DisplayName)
	c.buffer = edit.Buffer
	c.caret = edit.Caret
	c.span = types.NoSpan
	c.query = ""
	c.tracker.Reset()
	c.candidates = types.CandidateSet{}
	c.dispatcher.Cancel()
	presenter := c.presenter
	c.mu.Unlock()

	c.logger.Debug("entry selected", zap.String("handle", entry.Handle), zap.Int("caret", edit.Caret))
	presenter.ShowCandidates(types.CandidateSet{})
	presenter.RequestFocus()
	return edit, true
}

// Flush dispatches a pending query immediately.
func (c *Controller) Flush() bool {
	return c.dispatcher.Flush()
}

// Close cancels pending work, waits for the directory fetch to return and
// releases anyone waiting on Ready. Calling it more than once is safe.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.dispatcher.Cancel()
	c.cancel()
	c.wg.Wait()
	c.readyOnce.Do(func() { close(c.ready) })
}

// Buffer returns the current buffer.
func (c *Controller) Buffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

// Caret returns the current caret offset.
func (c *Controller) Caret() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caret
}

// Span returns the open query span or types.NoSpan.
func (c *Controller) Span() types.QuerySpan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.span
}

// Query returns the open query text, trigger included, or "".
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Candidates returns the last candidate set handed to the presenter.
func (c *Controller) Candidates() types.CandidateSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.candidates
}

// Directory returns the sorted snapshot and whether it has been fetched.
func (c *Controller) Directory() ([]types.DirectoryEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.fetched
}

func clamp(caret, length int) int {
	if caret < 0 {
		return 0
	}
	if caret > length {
		return length
	}
	return caret
}

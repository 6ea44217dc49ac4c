package aggregate

import (
	"context"
	"sync"
	"time"
)

// LoadFunc produces a fresh view
type LoadFunc func(ctx context.Context) (*View, error)

// Refresher re-runs aggregation in the background, periodically and on demand
type Refresher struct {
	load         LoadFunc
	pollInterval time.Duration
	debounceTime time.Duration

	mu        sync.Mutex
	pending   bool
	lastError error
	onRefresh func(*View) // called with every successful view

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefresher creates a refresher. With a zero interval nothing runs until
// Trigger is called.
func NewRefresher(interval time.Duration, load LoadFunc) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Refresher{
		load:         load,
		pollInterval: interval,
		debounceTime: 300 * time.Millisecond,
		ctx:          ctx,
		cancel:       cancel,
	}

	if interval > 0 {
		r.wg.Add(1)
		go r.pollLoop()
	}

	return r
}

// SetOnRefresh sets the callback receiving fresh views
func (r *Refresher) SetOnRefresh(callback func(*View)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRefresh = callback
}

// SetDebounce changes how long Trigger waits before running
func (r *Refresher) SetDebounce(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debounceTime = d
}

func (r *Refresher) pollLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh()
		case <-r.ctx.Done():
			return
		}
	}
}

// Trigger schedules a refresh; calls within the debounce window collapse
// into one
func (r *Refresher) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending || r.ctx.Err() != nil {
		return
	}
	r.pending = true
	r.wg.Add(1)
	go r.debouncedRefresh(r.debounceTime)
}

func (r *Refresher) debouncedRefresh(wait time.Duration) {
	defer r.wg.Done()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		r.mu.Lock()
		r.pending = false
		r.mu.Unlock()
		r.refresh()
	case <-r.ctx.Done():
	}
}

func (r *Refresher) refresh() {
	view, err := r.load(r.ctx)

	r.mu.Lock()
	r.lastError = err
	callback := r.onRefresh
	r.mu.Unlock()

	if err == nil && view != nil && callback != nil {
		callback(view)
	}
}

// IsPending returns true if a triggered refresh has not run yet
func (r *Refresher) IsPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// LastError returns the error of the most recent refresh
func (r *Refresher) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// Stop cancels any running load and waits for background work to end
func (r *Refresher) Stop() {
	r.mu.Lock()
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
}

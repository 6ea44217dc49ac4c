package aggregate

import (
	"context"
	"sync"
)

type generationKey struct{}

// GenerationFrom returns the pass generation stored in ctx by a Tracker,
// or 0 when the pass was not tracked
func GenerationFrom(ctx context.Context) uint64 {
	gen, _ := ctx.Value(generationKey{}).(uint64)
	return gen
}

// Tracker supersedes aggregation passes. Each key (a screen, a section id)
// has at most one live pass: beginning a new one cancels the previous pass
// and bumps the generation so late results can be recognised and dropped.
type Tracker struct {
	mu      sync.Mutex
	next    uint64
	current map[string]uint64
	cancels map[string]context.CancelFunc
}

// NewTracker returns an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		current: make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Begin starts a pass for key, cancelling the one in flight
func (t *Tracker) Begin(parent context.Context, key string) (context.Context, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cancel, ok := t.cancels[key]; ok {
		cancel()
	}

	t.next++
	gen := t.next
	ctx, cancel := context.WithCancel(context.WithValue(parent, generationKey{}, gen))
	t.current[key] = gen
	t.cancels[key] = cancel

	return ctx, gen
}

// IsCurrent reports whether gen is still the latest pass for key
func (t *Tracker) IsCurrent(key string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current[key] == gen
}

// Finish releases the pass context if gen is still current for key
func (t *Tracker) Finish(key string, gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current[key] != gen {
		return
	}
	if cancel, ok := t.cancels[key]; ok {
		cancel()
		delete(t.cancels, key)
	}
}

// CancelAll cancels every pass in flight
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, cancel := range t.cancels {
		cancel()
		delete(t.cancels, key)
	}
}

// Abandon cancels the pass for key and marks any late result as stale
func (t *Tracker) Abandon(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cancel, ok := t.cancels[key]; ok {
		cancel()
		delete(t.cancels, key)
	}
	delete(t.current, key)
}

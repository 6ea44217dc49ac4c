package aggregate

import (
	"context"
	"strconv"
	"sync"

	"github.com/existflow/credboard/internal/model"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the attachments of one project
type FetchFunc func(ctx context.Context, projectID int64) ([]model.Attachment, error)

// AttachmentCache holds attachment lists by project id. Entries are populated
// once and may be overwritten; attachment data is read-only for us, so a
// racing overwrite is harmless. Concurrent loads of the same project share one
// request.
type AttachmentCache struct {
	mu    sync.RWMutex
	items map[int64][]model.Attachment
	group singleflight.Group
}

// NewAttachmentCache returns an empty cache
func NewAttachmentCache() *AttachmentCache {
	return &AttachmentCache{items: make(map[int64][]model.Attachment)}
}

// Get returns the cached list for a project
func (c *AttachmentCache) Get(projectID int64) ([]model.Attachment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	atts, ok := c.items[projectID]
	return atts, ok
}

// Put stores the list for a project, replacing any previous entry
func (c *AttachmentCache) Put(projectID int64, atts []model.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[projectID] = atts
}

// Invalidate drops every entry so the next pass refetches
func (c *AttachmentCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int64][]model.Attachment)
}

// Len returns the number of cached projects
func (c *AttachmentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Load returns the cached list or fetches it. hit reports whether the value
// came from the cache. Failed fetches are not cached.
//
// The shared fetch does not inherit the caller's cancellation: a caller whose
// ctx ends stops waiting and gets ctx.Err(), while other callers joined on the
// same project still receive the result.
func (c *AttachmentCache) Load(ctx context.Context, projectID int64, fetch FetchFunc) (atts []model.Attachment, hit bool, err error) {
	if atts, ok := c.Get(projectID); ok {
		return atts, true, nil
	}

	ch := c.group.DoChan(strconv.FormatInt(projectID, 10), func() (interface{}, error) {
		if atts, ok := c.Get(projectID); ok {
			return atts, nil
		}
		atts, err := fetch(context.WithoutCancel(ctx), projectID)
		if err != nil {
			return nil, err
		}
		c.Put(projectID, atts)
		return atts, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.([]model.Attachment), false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

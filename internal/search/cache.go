package search

import (
	"context"
	"log/slog"

	"github.com/amaru-doctor/doctor/internal/store"
)

// pollBatchSize bounds how many items Poll pulls from each cached entry's
// producer per tick, so one huge backlog can't stall a render pass.
const pollBatchSize = 100

// Finder runs a query against the entity store and returns a producer of
// its results, respecting ctx cancellation. It is the production search
// implementation's seam — Cache only knows how to cache and poll the
// resulting view.
type Finder func(ctx context.Context, q Query) store.Producer[store.Entry]

type entry struct {
	view   *store.StreamingView[store.Entry]
	cancel context.CancelFunc
}

// Cache is the Async Search Cache: one background producer per distinct
// Query, cached so repeated submissions of the same search reuse the
// already-running result set instead of re-querying.
type Cache struct {
	find   Finder
	height int
	log    *slog.Logger

	entries map[Query]*entry
	active  *Query
}

// NewCache constructs an empty cache. height is the initial window height
// given to every StreamingView it creates.
func NewCache(find Finder, height int, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		find:    find,
		height:  height,
		log:     log,
		entries: make(map[Query]*entry),
	}
}

// Submit parses text against kind and either reuses a cached result for
// that query or spawns a new background producer for it. A parse error is
// returned unchanged and never alters cache state.
func (c *Cache) Submit(kind store.Kind, text string) error {
	q, err := Parse(kind, text)
	if err != nil {
		return err
	}
	if _, ok := c.entries[q]; ok {
		c.active = &q
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	producer := c.find(ctx, q)
	view := store.NewStreamingView[store.Entry](ctx, producer, c.height)
	c.entries[q] = &entry{view: view, cancel: cancel}
	c.active = &q
	c.log.Debug("search: spawned producer", "kind", q.Kind, "text", q.Text)
	return nil
}

// Active returns the currently active query's view, if any (get_active).
func (c *Cache) Active() (*store.StreamingView[store.Entry], bool) {
	if c.active == nil {
		return nil, false
	}
	e, ok := c.entries[*c.active]
	if !ok {
		return nil, false
	}
	return e.view, true
}

// ActivateQuery reselects a previously cached query as active, without
// re-running its producer. Reports false if it was never cached (or has
// since been dropped).
func (c *Cache) ActivateQuery(q Query) bool {
	if _, ok := c.entries[q]; !ok {
		return false
	}
	c.active = &q
	return true
}

// ClearActive deselects the active query (e.g. when the search bar loses
// focus) without dropping its cached result.
func (c *Cache) ClearActive() {
	c.active = nil
}

// Drop discards a cached entry, canceling its producer.
// view.Close cancels the view's pump, which stops on its next send
// attempt; Cache additionally cancels the producer's own context so a
// producer blocked on something other than the channel also exits.
func (c *Cache) Drop(q Query) {
	e, ok := c.entries[q]
	if !ok {
		return
	}
	delete(c.entries, q)
	e.view.Close()
	e.cancel()
	if c.active != nil && *c.active == q {
		c.active = nil
	}
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	for q := range c.entries {
		c.Drop(q)
	}
}

// Poll pulls up to pollBatchSize items from every cached entry's producer,
// non-blocking. Called once per Tick event so every
// cached result keeps growing in the background, not only the one
// currently displayed.
func (c *Cache) Poll() {
	for _, e := range c.entries {
		e.view.PumpN(pollBatchSize)
	}
}

// Len reports how many distinct queries are currently cached.
func (c *Cache) Len() int {
	return len(c.entries)
}

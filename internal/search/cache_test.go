package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaru-doctor/doctor/internal/store"
)

// sliceEntryProducer yields a fixed slice of entries, one per Next call.
type sliceEntryProducer struct {
	items []store.Entry
	cur   int
}

func (p *sliceEntryProducer) Next(ctx context.Context) (store.Entry, bool) {
	if p.cur >= len(p.items) {
		return store.Entry{}, false
	}
	e := p.items[p.cur]
	p.cur++
	return e, true
}

func entries(n int) []store.Entry {
	out := make([]store.Entry, n)
	for i := range out {
		out[i] = store.Entry{Key: []byte{byte(i)}, Value: []byte{byte(i)}}
	}
	return out
}

func countingFinder(n int) (Finder, *int) {
	calls := 0
	return func(ctx context.Context, q Query) store.Producer[store.Entry] {
		calls++
		return &sliceEntryProducer{items: entries(n)}
	}, &calls
}

func waitForCacheLen(t *testing.T, c *Cache, want int) {
	t.Helper()
	v, ok := c.Active()
	require.True(t, ok)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v.Len() >= want {
			return
		}
		c.Poll()
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("active view never reached length %d (got %d)", want, v.Len())
}

func TestCacheSubmitReusesCachedQuery(t *testing.T) {
	find, calls := countingFinder(10)
	c := NewCache(find, 5, nil)
	defer c.Clear()

	require.NoError(t, c.Submit(store.KindPool, "deadbeef"))
	require.NoError(t, c.Submit(store.KindPool, "deadbeef"))

	assert.Equal(t, 1, *calls, "second submit of the same query must not spawn a new producer")
	assert.Equal(t, 1, c.Len())
}

func TestCacheSubmitParseErrorLeavesStateUnchanged(t *testing.T) {
	find, calls := countingFinder(10)
	c := NewCache(find, 5, nil)
	defer c.Clear()

	err := c.Submit(store.KindPool, "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, 0, *calls)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestCachePollGrowsEveryEntryNotJustActive(t *testing.T) {
	find, _ := countingFinder(50)
	c := NewCache(find, 5, nil)
	defer c.Clear()

	require.NoError(t, c.Submit(store.KindPool, "aaaa"))
	poolQuery := Query{Kind: store.KindPool, Text: "aaaa"}
	require.NoError(t, c.Submit(store.KindDRep, "bbbb"))

	waitForCacheLen(t, c, 20) // active is now drep

	require.True(t, c.ActivateQuery(poolQuery))
	poolView, ok := c.Active()
	require.True(t, ok)
	assert.GreaterOrEqual(t, poolView.Len(), 1, "pool entry must have kept growing while drep was active")
}

func TestCacheDropCancelsAndForgets(t *testing.T) {
	find, _ := countingFinder(1000)
	c := NewCache(find, 5, nil)

	require.NoError(t, c.Submit(store.KindPool, "deadbeef"))
	q := Query{Kind: store.KindPool, Text: "deadbeef"}
	c.Drop(q)

	assert.Equal(t, 0, c.Len())
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestCacheClearActiveKeepsEntry(t *testing.T) {
	find, _ := countingFinder(10)
	c := NewCache(find, 5, nil)
	defer c.Clear()

	require.NoError(t, c.Submit(store.KindPool, "deadbeef"))
	c.ClearActive()
	_, ok := c.Active()
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

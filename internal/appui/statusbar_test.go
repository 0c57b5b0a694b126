package appui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusInfoFromSnapshotCountsTracesAndOrphans(t *testing.T) {
	info := StatusInfoFromSnapshot("preprod", nil, 3, 2, true, "")
	assert.Equal(t, "preprod", info.Network)
	assert.Equal(t, 0, info.TraceCount)
	assert.Equal(t, 3, info.OrphanCount)
	assert.Equal(t, 2, info.SearchCached)
	assert.True(t, info.LastScrapeOK)
}

func TestStatusInfoRenderIncludesErrorWhenPresent(t *testing.T) {
	info := StatusInfo{Network: "mainnet", LastScrapeOK: false, LastError: "connection refused"}
	rendered := info.Render()
	assert.Contains(t, rendered, "connection refused")
	assert.Contains(t, rendered, "scrape:down")
}

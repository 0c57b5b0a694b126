package appui

import (
	"fmt"
	"strings"

	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

// StatusInfo is the set of ambient facts the status bar surfaces, pulled
// from the engine snapshot, search cache, and last-scrape outcome each
// render — grounded on ralph_status.go, which renders a
// similar single-line summary of background-task state.
type StatusInfo struct {
	Network      string
	TraceCount   int
	OrphanCount  int
	SearchCached int
	LastScrapeOK bool
	LastError    string
}

func StatusInfoFromSnapshot(network string, snap *tracegraph.Snapshot, orphans, searchCached int, lastScrapeOK bool, lastErr string) StatusInfo {
	traces := 0
	if snap != nil {
		traces = len(snap.Graph.Traces)
	}
	return StatusInfo{
		Network:      network,
		TraceCount:   traces,
		OrphanCount:  orphans,
		SearchCached: searchCached,
		LastScrapeOK: lastScrapeOK,
		LastError:    lastErr,
	}
}

// Render formats the status line.
func (s StatusInfo) Render() string {
	var parts []string
	parts = append(parts, Styles.Muted.Render("net:")+Styles.Normal.Render(s.Network))
	parts = append(parts, Styles.Muted.Render("traces:")+Styles.Normal.Render(fmt.Sprint(s.TraceCount)))
	if s.OrphanCount > 0 {
		parts = append(parts, Styles.StatusError.Render(fmt.Sprintf("orphans:%d", s.OrphanCount)))
	}
	parts = append(parts, Styles.Muted.Render("cached-searches:")+Styles.Normal.Render(fmt.Sprint(s.SearchCached)))
	if s.LastScrapeOK {
		parts = append(parts, Styles.StatusOK.Render("scrape:ok"))
	} else {
		parts = append(parts, Styles.StatusError.Render("scrape:down"))
	}
	if s.LastError != "" {
		parts = append(parts, Styles.StatusError.Render("err:"+s.LastError))
	}
	return strings.Join(parts, "  ")
}

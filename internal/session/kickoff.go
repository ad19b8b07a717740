package session

import (
	"maps"
	"sync"

	"github.com/papapumpkin/wellplan/internal/events"
)

// kickoffTable keeps the latest kickoff location per well. It has its own
// lock because bus delivery happens while the session lock is held.
type kickoffTable struct {
	mu   sync.Mutex
	rows map[int]events.CurvesData
}

func newKickoffTable() *kickoffTable {
	return &kickoffTable{rows: make(map[int]events.CurvesData)}
}

func (k *kickoffTable) attach(bus *events.Bus, logf func(string, ...any)) func() {
	unsubCurves := events.Subscribe(bus, events.CurvesDataTopic, func(d events.CurvesData) error {
		k.mu.Lock()
		k.rows[d.Index] = d
		k.mu.Unlock()
		return nil
	})
	unsubWells := events.Subscribe(bus, events.WellSiteTopic, func(w events.WellRelocated) error {
		if w.ToUngrouped || w.ToSiteID == nil {
			logf("session: well %d moved to ungrouped\n", w.WellNumber)
			return nil
		}
		logf("session: well %d moved to site %d\n", w.WellNumber, *w.ToSiteID)
		return nil
	})
	return func() {
		unsubCurves()
		unsubWells()
	}
}

func (k *kickoffTable) snapshot() map[int]events.CurvesData {
	k.mu.Lock()
	defer k.mu.Unlock()
	return maps.Clone(k.rows)
}

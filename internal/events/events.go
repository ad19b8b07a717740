// Package events provides a typed publish/subscribe bus used to propagate
// structural changes (well relocations, partition reloads, kickoff updates)
// between otherwise independent components.
//
// Delivery is synchronous and follows subscription order. A subscriber that
// fails or panics is reported through the bus logger and never prevents
// delivery to the remaining subscribers.
package events

// Topic names shared with the browser client. They must not change.
const (
	TopicWellSite   = "updateWellSite"
	TopicSiteData   = "updateSiteData"
	TopicCurvesData = "updateCurvesData"
)

// Topic binds a topic name to the payload type carried on it.
type Topic[T any] struct {
	Name string
}

// WellRelocated is published after a well moved between containers.
// ToSiteID is nil when the well went to the ungrouped bucket.
type WellRelocated struct {
	WellNumber  int  `json:"wellNumber"`
	ToUngrouped bool `json:"toUngrouped"`
	ToSiteID    *int `json:"toSiteId"`
}

// SiteData carries a complete site partition, one well-index list per site.
type SiteData struct {
	Sites [][]int `json:"sites"`
}

// CurvesData carries an updated kickoff location for one well.
type CurvesData struct {
	Index int     `json:"index"`
	PKX   float64 `json:"pkx"`
	PKY   float64 `json:"pky"`
	PKZ   float64 `json:"pkz"`
}

// Well-known topics.
var (
	WellSiteTopic   = Topic[WellRelocated]{Name: TopicWellSite}
	SiteDataTopic   = Topic[SiteData]{Name: TopicSiteData}
	CurvesDataTopic = Topic[CurvesData]{Name: TopicCurvesData}
)

// SiteRef returns a pointer to id, for building WellRelocated payloads.
func SiteRef(id int) *int {
	return &id
}

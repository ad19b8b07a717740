// Package oilfield is the mutable source of truth for how wells are grouped
// into drilling sites. One field holds an ungrouped bucket and an ordered
// list of sites; every well index 0..n-1 lives in exactly one of them.
package oilfield

import (
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/papapumpkin/wellplan/internal/events"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

// Default field identity used by the layout tree ids.
const (
	DefaultFieldID   = "oil-field1"
	DefaultFieldName = "oil field1"
)

// NoSite stands for "no site" in MoveWell arguments. Site ids start at 1.
const NoSite = 0

// Site is a drilling cluster with a stable 1-based id.
type Site struct {
	ID    int   `json:"id"`
	Wells []int `json:"wells"`
}

// Oilfield is the grouping state of one field.
type Oilfield struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Ungrouped []int  `json:"wells"`
	Sites     []Site `json:"sites"`
}

// Layout owns an Oilfield and the operations that keep its well membership
// consistent. It is not safe for concurrent use; callers serialize access.
type Layout struct {
	field     Oilfield
	bus       *events.Bus
	wellNames []string
	expanded  []string

	// Logger receives informational messages. If nil, they are discarded.
	Logger io.Writer
}

// New creates a layout whose field starts with well 0 ungrouped. Call
// Resize to reach the session's well count. bus may be nil.
func New(bus *events.Bus) *Layout {
	return &Layout{
		field: Oilfield{
			ID:        DefaultFieldID,
			Name:      DefaultFieldName,
			Ungrouped: []int{0},
		},
		bus:      bus,
		expanded: defaultExpanded(DefaultFieldID),
	}
}

// Attach subscribes the layout to partition reloads published on bus.
// It returns the unsubscribe function.
func (l *Layout) Attach(bus *events.Bus) func() {
	return events.Subscribe(bus, events.SiteDataTopic, func(d events.SiteData) error {
		l.LoadPartition(d.Sites)
		return nil
	})
}

// SetWellNames sets the display names used for well labels. Missing or
// empty entries fall back to "Well No<k+1>".
func (l *Layout) SetWellNames(names []string) {
	l.wellNames = slices.Clone(names)
}

// Field returns a deep copy of the current grouping state.
func (l *Layout) Field() Oilfield {
	f := Oilfield{ID: l.field.ID, Name: l.field.Name, Ungrouped: slices.Clone(l.field.Ungrouped)}
	if f.Ungrouped == nil {
		f.Ungrouped = []int{}
	}
	f.Sites = make([]Site, len(l.field.Sites))
	for i, s := range l.field.Sites {
		f.Sites[i] = Site{ID: s.ID, Wells: slices.Clone(s.Wells)}
		if f.Sites[i].Wells == nil {
			f.Sites[i].Wells = []int{}
		}
	}
	return f
}

// Groups returns the wells of every site in site order, suitable for
// building a partition.
func (l *Layout) Groups() [][]int {
	out := make([][]int, len(l.field.Sites))
	for i, s := range l.field.Sites {
		out[i] = slices.Clone(s.Wells)
	}
	return out
}

// AllWells returns every well in the field in ascending order.
func (l *Layout) AllWells() []int {
	all := slices.Clone(l.field.Ungrouped)
	for _, s := range l.field.Sites {
		all = append(all, s.Wells...)
	}
	sort.Ints(all)
	return all
}

// WellCount returns the number of wells across all containers.
func (l *Layout) WellCount() int {
	n := len(l.field.Ungrouped)
	for _, s := range l.field.Sites {
		n += len(s.Wells)
	}
	return n
}

// Resize grows or shrinks the field to n wells. New wells are appended to
// the ungrouped bucket; removal takes the highest-numbered wells first,
// looking in the ungrouped bucket before the sites. n is capped at
// wellgeom.MaxWells.
func (l *Layout) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("resize to %d: %w", n, ErrNegativeWellCount)
	}
	if n > wellgeom.MaxWells {
		return fmt.Errorf("resize to %d (max %d): %w", n, wellgeom.MaxWells, ErrTooManyWells)
	}
	current := l.WellCount()
	switch {
	case n > current:
		for i := current; i < n; i++ {
			l.field.Ungrouped = append(l.field.Ungrouped, i)
		}
		sort.Ints(l.field.Ungrouped)
	case n < current:
		l.removeHighest(current - n)
	}
	return nil
}

// removeHighest drops the k highest-numbered wells in one pass over each
// container.
func (l *Layout) removeHighest(k int) {
	all := l.AllWells()
	k = min(k, len(all))
	pending := make(map[int]int, k)
	for _, w := range all[len(all)-k:] {
		pending[w]++
	}
	drop := func(wells []int) []int {
		return slices.DeleteFunc(wells, func(w int) bool {
			if pending[w] == 0 {
				return false
			}
			pending[w]--
			return true
		})
	}
	l.field.Ungrouped = drop(l.field.Ungrouped)
	for si := range l.field.Sites {
		l.field.Sites[si].Wells = drop(l.field.Sites[si].Wells)
	}
}

// LoadPartition replaces the sites with one site per group, numbered from 1
// in input order, and empties the ungrouped bucket. Coverage of all wells
// is the caller's responsibility.
func (l *Layout) LoadPartition(groups [][]int) {
	sites := make([]Site, len(groups))
	for i, g := range groups {
		wells := slices.Clone(g)
		if wells == nil {
			wells = []int{}
		}
		sort.Ints(wells)
		sites[i] = Site{ID: i + 1, Wells: wells}
	}
	l.field.Ungrouped = []int{}
	l.field.Sites = sites
}

// MoveWell relocates well from its source (fromSiteID, or the ungrouped
// bucket when fromSiteID is NoSite) to toSiteID, or to the ungrouped bucket
// when toUngrouped is set. The destination is checked before anything is
// removed, so a failed move leaves the field untouched. On success a
// WellRelocated notification is published.
func (l *Layout) MoveWell(well, fromSiteID, toSiteID int, toUngrouped bool) error {
	src, err := l.container(fromSiteID)
	if err != nil {
		return fmt.Errorf("move well %d: source: %w", well, err)
	}
	idx := slices.Index(*src, well)
	if idx < 0 {
		return fmt.Errorf("move well %d from %s: %w", well, describe(fromSiteID), ErrWellNotFound)
	}

	var dst *[]int
	if toUngrouped {
		dst = &l.field.Ungrouped
	} else {
		if toSiteID == NoSite {
			return fmt.Errorf("move well %d: no destination: %w", well, ErrSiteNotFound)
		}
		if dst, err = l.container(toSiteID); err != nil {
			return fmt.Errorf("move well %d: destination: %w", well, err)
		}
	}

	*src = slices.Delete(*src, idx, idx+1)
	*dst = append(*dst, well)
	sort.Ints(*dst)
	for i := range l.field.Sites {
		sort.Ints(l.field.Sites[i].Wells)
	}

	payload := events.WellRelocated{WellNumber: well, ToUngrouped: toUngrouped}
	if !toUngrouped {
		payload.ToSiteID = events.SiteRef(toSiteID)
	}
	if l.bus != nil {
		events.Publish(l.bus, events.WellSiteTopic, payload)
	}
	return nil
}

// container returns the well list of siteID, or of the ungrouped bucket
// for NoSite.
func (l *Layout) container(siteID int) (*[]int, error) {
	if siteID == NoSite {
		return &l.field.Ungrouped, nil
	}
	for i := range l.field.Sites {
		if l.field.Sites[i].ID == siteID {
			return &l.field.Sites[i].Wells, nil
		}
	}
	return nil, fmt.Errorf("site %d: %w", siteID, ErrSiteNotFound)
}

// HasSite reports whether a site with the given id exists.
func (l *Layout) HasSite(siteID int) bool {
	_, err := l.container(siteID)
	return siteID != NoSite && err == nil
}

func describe(siteID int) string {
	if siteID == NoSite {
		return "ungrouped"
	}
	return fmt.Sprintf("site %d", siteID)
}

func (l *Layout) logf(format string, args ...any) {
	if l.Logger != nil {
		fmt.Fprintf(l.Logger, format+"\n", args...)
	}
}

// Package visibility holds the per-well and per-site show/hide flags read by
// the rendering layer. Each channel is an explicit integer-keyed map whose
// keys are iterated in ascending order.
package visibility

import "sort"

// Channel identifies one independent show/hide flag set.
type Channel int

const (
	Curve       Channel = iota // well trajectory curves, keyed by well index
	WellContour                // per-well cost contours, keyed by well index
	SiteContour                // site-aggregated cost contours, keyed by site index
)

// String returns the channel's short name.
func (c Channel) String() string {
	switch c {
	case Curve:
		return "curve"
	case WellContour:
		return "well_contour"
	case SiteContour:
		return "site_contour"
	default:
		return "unknown"
	}
}

// Channels lists every channel in a fixed order.
var Channels = [...]Channel{Curve, WellContour, SiteContour}

// Registry stores the flags of all three channels. Keys are never pruned:
// once an index is known it keeps its flag across resizes and repartitions.
type Registry struct {
	flags [len(Channels)]map[int]bool
}

// New creates a registry in which wells 0..wells-1 (curve and well contour)
// and sites 0..sites-1 (site contour) are visible.
func New(wells, sites int) *Registry {
	r := &Registry{}
	for i := range r.flags {
		r.flags[i] = make(map[int]bool)
	}
	r.Ensure(Curve, wells)
	r.Ensure(WellContour, wells)
	r.Ensure(SiteContour, sites)
	return r
}

// Ensure adds keys 0..n-1 to channel c as visible, leaving existing keys
// untouched.
func (r *Registry) Ensure(c Channel, n int) {
	m := r.flags[c]
	for i := 0; i < n; i++ {
		if _, ok := m[i]; !ok {
			m[i] = true
		}
	}
}

// SetHidden stores !isDelete as the flag of index in channel c. Unknown
// indices are added.
func (r *Registry) SetHidden(c Channel, index int, isDelete bool) {
	r.flags[c][index] = !isDelete
}

// SetAllHidden applies SetHidden to every known key of channel c.
func (r *Registry) SetAllHidden(c Channel, isDelete bool) {
	m := r.flags[c]
	for k := range m {
		m[k] = !isDelete
	}
}

// Visible reports the flag of index in channel c. Unknown indices are not
// visible.
func (r *Registry) Visible(c Channel, index int) bool {
	return r.flags[c][index]
}

// Known reports whether index has a flag in channel c.
func (r *Registry) Known(c Channel, index int) bool {
	_, ok := r.flags[c][index]
	return ok
}

// Keys returns every known key of channel c in ascending order.
func (r *Registry) Keys(c Channel) []int {
	m := r.flags[c]
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// VisibleKeys returns the keys of channel c whose flag is set, ascending.
func (r *Registry) VisibleKeys(c Channel) []int {
	var out []int
	for _, k := range r.Keys(c) {
		if r.flags[c][k] {
			out = append(out, k)
		}
	}
	return out
}

// AnyVisible reports whether at least one key of channel c is visible.
func (r *Registry) AnyVisible(c Channel) bool {
	for _, v := range r.flags[c] {
		if v {
			return true
		}
	}
	return false
}

// Snapshot is a deep copy of all flags, keyed by channel.
type Snapshot map[Channel]map[int]bool

// Snapshot returns a copy of the current flags that later mutations do not
// affect.
func (r *Registry) Snapshot() Snapshot {
	s := make(Snapshot, len(r.flags))
	for _, c := range Channels {
		m := make(map[int]bool, len(r.flags[c]))
		for k, v := range r.flags[c] {
			m[k] = v
		}
		s[c] = m
	}
	return s
}

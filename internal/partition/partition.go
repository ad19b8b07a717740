// Package partition models the grouping of wells into drilling sites: an
// ordered list of disjoint, ascending well-index groups.
package partition

import (
	"sort"
)

// Partition is an ordered sequence of sites, each an ascending list of well
// indices. Site indices are zero-based positions in that sequence.
type Partition struct {
	sites [][]int
}

// New builds a partition from groups. Each group is copied and sorted; the
// group order is preserved. Groups are not checked for disjointness.
func New(groups [][]int) *Partition {
	p := &Partition{sites: make([][]int, len(groups))}
	for i, g := range groups {
		p.sites[i] = sortedCopy(g)
	}
	return p
}

// Len returns the number of sites.
func (p *Partition) Len() int {
	if p == nil {
		return 0
	}
	return len(p.sites)
}

// Sites returns a deep copy of all groups.
func (p *Partition) Sites() [][]int {
	out := make([][]int, p.Len())
	for i := range out {
		out[i] = sortedCopy(p.sites[i])
	}
	return out
}

// Members returns the wells of the site at siteIndex, or false when the
// index is out of range.
func (p *Partition) Members(siteIndex int) ([]int, bool) {
	if siteIndex < 0 || siteIndex >= p.Len() {
		return nil, false
	}
	return sortedCopy(p.sites[siteIndex]), true
}

// SiteOf returns the index of the site containing well, or false when no
// site holds it.
func (p *Partition) SiteOf(well int) (int, bool) {
	for i := 0; i < p.Len(); i++ {
		idx := sort.SearchInts(p.sites[i], well)
		if idx < len(p.sites[i]) && p.sites[i][idx] == well {
			return i, true
		}
	}
	return 0, false
}

// Wells returns every grouped well in ascending order.
func (p *Partition) Wells() []int {
	var all []int
	for i := 0; i < p.Len(); i++ {
		all = append(all, p.sites[i]...)
	}
	sort.Ints(all)
	return all
}

// Point is a surface location in the field's easting/northing plane.
type Point struct {
	East  float64
	North float64
}

// FromWellheads groups wells that share a surface location. points[i] is
// the wellhead of well i. Sites are ordered by their smallest well index.
func FromWellheads(points []Point) *Partition {
	uf := newUnionFind(len(points))
	first := make(map[Point]int, len(points))
	for i, pt := range points {
		if j, ok := first[pt]; ok {
			uf.union(j, i)
			continue
		}
		first[pt] = i
	}

	groups := uf.components()
	sort.Slice(groups, func(a, b int) bool { return groups[a][0] < groups[b][0] })
	return &Partition{sites: groups}
}

func sortedCopy(g []int) []int {
	out := make([]int, len(g))
	copy(out, g)
	sort.Ints(out)
	return out
}

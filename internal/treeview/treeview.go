// Package treeview derives the two visibility-control trees, "by component"
// and "by layout", from the current wells and site partition, and maps
// clicks on their nodes back onto the visibility registry.
//
// Node ids have the form <Category>-<index> or <Category>-all. The same
// leaf id may appear in both trees; within one tree ids are unique.
package treeview

import (
	"fmt"
	"slices"

	"github.com/papapumpkin/wellplan/internal/partition"
	"github.com/papapumpkin/wellplan/internal/visibility"
)

// Node categories used as id prefixes.
const (
	CatComponents      = "Components"
	CatLayout          = "Layout"
	CatTrajectory      = "Trajectory"
	CatTrajectorySite  = "TrajectorySite"
	CatTrajectoryWell  = "TrajectoryWell"
	CatCostContour     = "CostContour"
	CatCostContourWell = "CostContourWell"
	CatSiteCostContour = "SiteCostContour"
	CatSite            = "Site"
	CatWellAll         = "WellAll"
)

// AllToken is the index token addressing every member of a category.
const AllToken = "all"

// Root ids of the two forests.
const (
	ComponentsRootID = CatComponents + "-" + AllToken
	LayoutRootID     = CatLayout + "-" + AllToken
)

// Node is one entry of a projected tree. A leaf has no children.
type Node struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Children []*Node `json:"children"`
}

// Leaf reports whether n has no children.
func (n *Node) Leaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants depth first, parents before children.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns the first node with the given id under n.
func Find(n *Node, id string) (*Node, bool) {
	var found *Node
	Walk(n, func(c *Node) {
		if found == nil && c.ID == id {
			found = c
		}
	})
	return found, found != nil
}

// IDCollector records every id handed out by a Builder, without
// duplicates and in first-seen order, for expand-state bookkeeping.
type IDCollector struct {
	ids  []string
	seen map[string]bool
}

// NewIDCollector returns an empty collector.
func NewIDCollector() *IDCollector {
	return &IDCollector{seen: make(map[string]bool)}
}

// Add records id.
func (c *IDCollector) Add(id string) {
	if c == nil || c.seen[id] {
		return
	}
	c.seen[id] = true
	c.ids = append(c.ids, id)
}

// IDs returns the collected ids.
func (c *IDCollector) IDs() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.ids)
}

// DefaultExpanded returns the ids expanded when a view first opens.
func (c *IDCollector) DefaultExpanded() []string {
	return []string{LayoutRootID, ComponentsRootID}
}

// Builder projects wells and sites into trees. Wells need not be sorted.
// IDs may be nil.
type Builder struct {
	Wells     []int
	Partition *partition.Partition
	IDs       *IDCollector
}

func (b Builder) node(id, label string, children ...*Node) *Node {
	b.IDs.Add(id)
	if children == nil {
		children = []*Node{}
	}
	return &Node{ID: id, Label: label, Children: children}
}

func catID(category string, index int) string {
	return fmt.Sprintf("%s-%d", category, index)
}

func (b Builder) wells() []int {
	w := slices.Clone(b.Wells)
	slices.Sort(w)
	return slices.Compact(w)
}

// Components builds the "by component" tree: trajectories per well, and
// cost contours split into per-well and per-site leaves.
func (b Builder) Components() *Node {
	wells := b.wells()

	trajectories := make([]*Node, 0, len(wells))
	contours := make([]*Node, 0, len(wells))
	for _, w := range wells {
		trajectories = append(trajectories, b.node(catID(CatTrajectoryWell, w), fmt.Sprintf("Well %d", w+1)))
	}
	for _, w := range wells {
		contours = append(contours, b.node(catID(CatCostContourWell, w), fmt.Sprintf("Well %d", w+1)))
	}
	sites := make([]*Node, 0, b.Partition.Len())
	for i := 0; i < b.Partition.Len(); i++ {
		sites = append(sites, b.node(catID(CatSiteCostContour, i), fmt.Sprintf("Site %d", i+1)))
	}

	return b.node(ComponentsRootID, "View by Components",
		b.node(CatTrajectory+"-"+AllToken, "Trajectory", trajectories...),
		b.node(CatCostContour+"-"+AllToken, "Cost Contour",
			b.node(CatCostContourWell+"-"+AllToken, "SatelliteContour", contours...),
			b.node(CatSiteCostContour+"-"+AllToken, "SiteContour", sites...),
		),
	)
}

// Layout builds the "by layout" tree: site, then its site contour and
// member wells, each well holding its contour and trajectory leaves.
func (b Builder) Layout() *Node {
	sites := make([]*Node, 0, b.Partition.Len())
	for i := 0; i < b.Partition.Len(); i++ {
		members, _ := b.Partition.Members(i)
		children := []*Node{b.node(catID(CatSiteCostContour, i), fmt.Sprintf("Site %d Cost Contour", i+1))}
		for _, w := range members {
			children = append(children, b.node(catID(CatWellAll, w), fmt.Sprintf("Well No%d", w+1),
				b.node(catID(CatCostContourWell, w), fmt.Sprintf("Well No%d Cost Contour", w+1)),
				b.node(catID(CatTrajectoryWell, w), fmt.Sprintf("Well No%d Trajectory", w+1)),
			))
		}
		sites = append(sites, b.node(catID(CatSite, i), fmt.Sprintf("Site %d", i+1), children...))
	}
	return b.node(LayoutRootID, "View by Layout", sites...)
}

// Checked returns the ids under root that render as checked: a leaf is
// checked when its channel flag is visible, a branch when any descendant
// leaf is checked. Ids come back in tree order.
func Checked(root *Node, reg *visibility.Registry) []string {
	var out []string
	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		on := false
		if n.Leaf() {
			on = leafVisible(n.ID, reg)
		}
		for _, c := range n.Children {
			if visit(c) {
				on = true
			}
		}
		if on {
			out = append(out, n.ID)
		}
		return on
	}
	if root != nil {
		visit(root)
	}
	return orderLike(root, out)
}

func leafVisible(id string, reg *visibility.Registry) bool {
	ref, err := ParseID(id)
	if err != nil || ref.All {
		return false
	}
	switch ref.Category {
	case CatTrajectoryWell:
		return reg.Visible(visibility.Curve, ref.Index)
	case CatCostContourWell:
		return reg.Visible(visibility.WellContour, ref.Index)
	case CatSiteCostContour:
		return reg.Visible(visibility.SiteContour, ref.Index)
	}
	return false
}

// orderLike puts ids in root's depth-first order.
func orderLike(root *Node, ids []string) []string {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := make([]string, 0, len(ids))
	Walk(root, func(n *Node) {
		if set[n.ID] {
			out = append(out, n.ID)
		}
	})
	return out
}

package tui

import (
	"fmt"

	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/treeview"
)

// row is one visible line of a flattened tree.
type row struct {
	ID       string
	Label    string
	Depth    int
	Branch   bool
	Expanded bool
	Checked  bool
	// Kind is set for grouping-tree rows only.
	Kind oilfield.Kind
}

// flattenView lists the visible rows of a display tree. Children of
// collapsed nodes are skipped.
func flattenView(root *treeview.Node, expanded map[string]bool, checked map[string]bool) []row {
	var out []row
	var walk func(n *treeview.Node, depth int)
	walk = func(n *treeview.Node, depth int) {
		r := row{
			ID:       n.ID,
			Label:    n.Label,
			Depth:    depth,
			Branch:   !n.Leaf(),
			Expanded: expanded[n.ID],
			Checked:  checked[n.ID],
		}
		out = append(out, r)
		if r.Branch && r.Expanded {
			for _, c := range n.Children {
				walk(c, depth+1)
			}
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return out
}

// flattenField lists the visible rows of the grouping tree.
func flattenField(root oilfield.Node, expanded map[string]bool) []row {
	var out []row
	var walk func(n oilfield.Node, depth int)
	walk = func(n oilfield.Node, depth int) {
		label := n.NodeLabel()
		if c, ok := n.(*oilfield.CategoryNode); ok {
			label = fmt.Sprintf("%s (%d)", label, c.WellCount)
		}
		children := n.Children()
		r := row{
			ID:       n.NodeID(),
			Label:    label,
			Depth:    depth,
			Branch:   len(children) > 0,
			Expanded: expanded[n.NodeID()],
			Kind:     n.Kind(),
		}
		out = append(out, r)
		if r.Branch && r.Expanded {
			for _, c := range children {
				walk(c, depth+1)
			}
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return out
}

func set(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

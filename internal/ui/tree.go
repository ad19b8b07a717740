package ui

import (
	"fmt"

	"github.com/papapumpkin/wellplan/internal/ansi"
	"github.com/papapumpkin/wellplan/internal/treeview"
)

// Tree prints a display tree with box-drawing connectors. Nodes whose id is
// in checked get a filled box.
func (p *Printer) Tree(root *treeview.Node, checked []string) {
	if root == nil {
		return
	}
	on := make(map[string]bool, len(checked))
	for _, id := range checked {
		on[id] = true
	}
	fmt.Fprintln(p.w, mark(on[root.ID])+" "+ansi.Wrap(root.Label, ansi.Bold))
	p.children(root, "", on)
}

func (p *Printer) children(n *treeview.Node, prefix string, on map[string]bool) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		fmt.Fprintf(p.w, "%s%s %s %s\n", ansi.Wrap(prefix+branch, ansi.Dim), mark(on[c.ID]), c.Label, ansi.Wrap("("+c.ID+")", ansi.Dim))
		p.children(c, prefix+next, on)
	}
}

func mark(checked bool) string {
	if checked {
		return ansi.Wrap("[x]", ansi.Green)
	}
	return ansi.Wrap("[ ]", ansi.Dim)
}

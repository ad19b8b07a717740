package oilfield

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// RootID is the id of the tree root for the drag-and-drop view.
const RootID = "oilfield-layout"

// Kind names a node variant in the encoded tree.
type Kind string

// Node kinds.
const (
	KindOilfield Kind = "oilfield"
	KindCategory Kind = "category"
	KindSite     Kind = "site"
	KindWell     Kind = "well"
)

// Node is one vertex of the drag-and-drop tree. The set of variants is
// closed: FieldNode, CategoryNode, SiteNode and WellNode.
type Node interface {
	NodeID() string
	NodeLabel() string
	Kind() Kind
	Children() []Node
	sealed()
}

// FieldNode is the tree root.
type FieldNode struct {
	ID         string
	Label      string
	Categories []*CategoryNode
}

// CategoryNode is either the ungrouped bucket (holding wells) or the
// grouped category (holding sites).
type CategoryNode struct {
	ID        string
	Label     string
	Ungrouped bool
	WellCount int
	Wells     []*WellNode
	Sites     []*SiteNode
}

// SiteNode is one drilling site.
type SiteNode struct {
	ID     string
	Label  string
	SiteID int
	Wells  []*WellNode
}

// WellNode is a single well. SiteID is NoSite for ungrouped wells.
type WellNode struct {
	ID         string
	Label      string
	WellNumber int
	SiteID     int
}

func (n *FieldNode) NodeID() string    { return n.ID }
func (n *FieldNode) NodeLabel() string { return n.Label }
func (n *FieldNode) Kind() Kind        { return KindOilfield }
func (n *FieldNode) Children() []Node {
	out := make([]Node, len(n.Categories))
	for i, c := range n.Categories {
		out[i] = c
	}
	return out
}
func (*FieldNode) sealed() {}

func (n *CategoryNode) NodeID() string    { return n.ID }
func (n *CategoryNode) NodeLabel() string { return n.Label }
func (n *CategoryNode) Kind() Kind        { return KindCategory }
func (n *CategoryNode) Children() []Node {
	out := make([]Node, 0, len(n.Wells)+len(n.Sites))
	for _, w := range n.Wells {
		out = append(out, w)
	}
	for _, s := range n.Sites {
		out = append(out, s)
	}
	return out
}
func (*CategoryNode) sealed() {}

func (n *SiteNode) NodeID() string    { return n.ID }
func (n *SiteNode) NodeLabel() string { return n.Label }
func (n *SiteNode) Kind() Kind        { return KindSite }
func (n *SiteNode) Children() []Node {
	out := make([]Node, len(n.Wells))
	for i, w := range n.Wells {
		out[i] = w
	}
	return out
}
func (*SiteNode) sealed() {}

func (n *WellNode) NodeID() string    { return n.ID }
func (n *WellNode) NodeLabel() string { return n.Label }
func (n *WellNode) Kind() Kind        { return KindWell }
func (n *WellNode) Children() []Node  { return nil }
func (*WellNode) sealed()             {}

// Tree projects the current grouping into the drag-and-drop tree.
func (l *Layout) Tree() *FieldNode {
	f := l.field
	ungroupedPrefix := f.ID + "-ungrouped"
	ungrouped := &CategoryNode{
		ID:        ungroupedPrefix,
		Label:     "Ungrouped Wells",
		Ungrouped: true,
		WellCount: len(f.Ungrouped),
		Wells:     l.wellNodes(f.Ungrouped, ungroupedPrefix, NoSite),
	}

	grouped := &CategoryNode{ID: f.ID + "-grouped", Label: "Grouped Wells", Sites: []*SiteNode{}}
	for _, s := range f.Sites {
		id := fmt.Sprintf("%s-site%d", f.ID, s.ID)
		grouped.Sites = append(grouped.Sites, &SiteNode{
			ID:     id,
			Label:  fmt.Sprintf("Site NO%d", s.ID),
			SiteID: s.ID,
			Wells:  l.wellNodes(s.Wells, id, s.ID),
		})
		grouped.WellCount += len(s.Wells)
	}

	return &FieldNode{
		ID:         RootID,
		Label:      "Oilfield Layout",
		Categories: []*CategoryNode{ungrouped, grouped},
	}
}

func (l *Layout) wellNodes(wells []int, prefix string, siteID int) []*WellNode {
	out := make([]*WellNode, 0, len(wells))
	for _, w := range wells {
		out = append(out, &WellNode{
			ID:         fmt.Sprintf("%s-well-%d", prefix, w),
			Label:      l.WellLabel(w),
			WellNumber: w,
			SiteID:     siteID,
		})
	}
	return out
}

// WellLabel returns the display name of a well.
func (l *Layout) WellLabel(well int) string {
	if well >= 0 && well < len(l.wellNames) && l.wellNames[well] != "" {
		return l.wellNames[well]
	}
	return fmt.Sprintf("Well No%d", well+1)
}

// Find returns the node with the given id, searching depth first.
func Find(root Node, id string) (Node, bool) {
	if root == nil {
		return nil, false
	}
	if root.NodeID() == id {
		return root, true
	}
	for _, c := range root.Children() {
		if n, ok := Find(c, id); ok {
			return n, true
		}
	}
	return nil, false
}

type encodedNode struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Type      Kind          `json:"type"`
	WellCount *int          `json:"wellCount,omitempty"`
	Children  []encodedNode `json:"children,omitempty"`
}

func encode(n Node) encodedNode {
	e := encodedNode{ID: n.NodeID(), Label: n.NodeLabel(), Type: n.Kind()}
	switch v := n.(type) {
	case *CategoryNode:
		e.WellCount = &v.WellCount
	case *SiteNode:
		count := len(v.Wells)
		e.WellCount = &count
	}
	for _, c := range n.Children() {
		e.Children = append(e.Children, encode(c))
	}
	return e
}

// Encode renders a tree as JSON with a "type" discriminator on every node.
func Encode(root Node) ([]byte, error) {
	b, err := json.Marshal([]encodedNode{encode(root)})
	if err != nil {
		return nil, fmt.Errorf("oilfield: encode tree: %w", err)
	}
	return b, nil
}

// WellRef is what a well node id encodes.
type WellRef struct {
	FieldID    string
	WellNumber int
	SiteID     int
	FromSite   bool
}

// ParseWellID decodes "<field>-ungrouped-well-<k>" and
// "<field>-site<N>-well-<k>".
func ParseWellID(id string) (WellRef, error) {
	cut := strings.LastIndex(id, "-well-")
	if cut < 0 {
		return WellRef{}, fmt.Errorf("%q: %w", id, ErrNotWellID)
	}
	well, err := strconv.Atoi(id[cut+len("-well-"):])
	if err != nil || well < 0 {
		return WellRef{}, fmt.Errorf("%q: %w", id, ErrNotWellID)
	}
	container := id[:cut]
	if field, ok := strings.CutSuffix(container, "-ungrouped"); ok {
		return WellRef{FieldID: field, WellNumber: well, SiteID: NoSite}, nil
	}
	dash := strings.LastIndex(container, "-site")
	if dash < 0 {
		return WellRef{}, fmt.Errorf("%q: %w", id, ErrNotWellID)
	}
	site, err := strconv.Atoi(container[dash+len("-site"):])
	if err != nil || site <= 0 {
		return WellRef{}, fmt.Errorf("%q: %w", id, ErrNotWellID)
	}
	return WellRef{FieldID: container[:dash], WellNumber: well, SiteID: site, FromSite: true}, nil
}

func defaultExpanded(fieldID string) []string {
	return []string{RootID, fieldID + "-ungrouped", fieldID + "-grouped"}
}

// Expand marks a node as expanded.
func (l *Layout) Expand(id string) {
	if !slices.Contains(l.expanded, id) {
		l.expanded = append(l.expanded, id)
	}
}

// Collapse marks a node as collapsed.
func (l *Layout) Collapse(id string) {
	if i := slices.Index(l.expanded, id); i >= 0 {
		l.expanded = slices.Delete(l.expanded, i, i+1)
	}
}

// ExpandedKeys returns the expanded node ids in the order they were opened.
func (l *Layout) ExpandedKeys() []string {
	return slices.Clone(l.expanded)
}

// IsExpanded reports whether id is currently expanded.
func (l *Layout) IsExpanded(id string) bool {
	return slices.Contains(l.expanded, id)
}

package session

import (
	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/events"
	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/treeview"
	"github.com/papapumpkin/wellplan/internal/visibility"
)

// ComponentTree returns the current "by component" tree. Trees are replaced
// on every rebuild and must not be modified.
func (s *Session) ComponentTree() *treeview.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.components
}

// LayoutTree returns the current "by layout" tree.
func (s *Session) LayoutTree() *treeview.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layoutTree
}

// OilfieldTree returns a fresh grouping tree for drag and drop.
func (s *Session) OilfieldTree() *oilfield.FieldNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Tree()
}

// Field returns a copy of the grouping state.
func (s *Session) Field() oilfield.Oilfield {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Field()
}

// Checked returns the checked node ids of both display trees.
func (s *Session) Checked() CheckedKeys {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CheckedKeys{
		Components: treeview.Checked(s.components, s.registry),
		Layout:     treeview.Checked(s.layoutTree, s.registry),
	}
}

// Visibility returns a copy of every visibility flag.
func (s *Session) Visibility() visibility.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshot()
}

// VisibleContours returns the visible per-well cost contours.
func (s *Session) VisibleContours() []dataset.Contour {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.VisibleContours(s.registry)
}

// VisibleSiteContours returns the visible per-site cost contours.
func (s *Session) VisibleSiteContours() []dataset.Contour {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.VisibleSiteContours(s.registry)
}

// VisibleCurves returns the visible trajectories.
func (s *Session) VisibleCurves() []dataset.Curve {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.VisibleCurves(s.registry)
}

// SitePartition returns the wells of every site in site order.
func (s *Session) SitePartition() [][]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.part.Sites()
}

// Expanded returns the ids open by default in the display trees and the
// ids currently open in the grouping tree.
func (s *Session) Expanded() (views, oilfieldTree []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.DefaultExpanded(), s.layout.ExpandedKeys()
}

// SetExpanded opens or closes a grouping-tree node.
func (s *Session) SetExpanded(id string, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.layout.Expand(id)
		return
	}
	s.layout.Collapse(id)
}

// Kickoffs returns the last kickoff location received for each well.
func (s *Session) Kickoffs() map[int]events.CurvesData {
	return s.kickoffs.snapshot()
}

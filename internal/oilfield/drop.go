package oilfield

import (
	"errors"
	"fmt"
	"strings"
)

// DropType is where a dragged node lands relative to the drop node.
type DropType string

// Drop positions.
const (
	DropInner  DropType = "inner"
	DropBefore DropType = "before"
	DropAfter  DropType = "after"
)

// ParseDropType accepts "inner", "before" and "after", case-insensitively.
func ParseDropType(s string) (DropType, error) {
	switch d := DropType(strings.ToLower(strings.TrimSpace(s))); d {
	case DropInner, DropBefore, DropAfter:
		return d, nil
	}
	return "", fmt.Errorf("drop type %q: %w", s, ErrIllegalDrop)
}

// Level grades a drop outcome.
type Level string

// Notice levels.
const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is the user-facing outcome of a drop. Drops never fail with an
// error value; every outcome is a notice.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Moved reports whether the drop changed the grouping.
func (n Notice) Moved() bool { return n.Level == LevelSuccess }

// AllowDrag reports whether node may be dragged. Only wells move.
func AllowDrag(node Node) bool {
	_, ok := node.(*WellNode)
	return ok
}

// AllowDrop reports whether dragging may land on drop at position dt.
func AllowDrop(dragging, drop Node, dt DropType) bool {
	if !AllowDrag(dragging) {
		return false
	}
	switch dt {
	case DropInner:
		switch d := drop.(type) {
		case *CategoryNode:
			return d.Ungrouped
		case *SiteNode:
			return true
		}
	case DropBefore, DropAfter:
		_, ok := drop.(*WellNode)
		return ok
	}
	return false
}

// target is the container a drop resolves to.
type target struct {
	ungrouped bool
	siteID    int
}

func (t target) String() string {
	if t.ungrouped {
		return "Ungrouped Wells"
	}
	return fmt.Sprintf("Site NO%d", t.siteID)
}

func resolveTarget(drop Node, dt DropType) (target, error) {
	if dt == DropInner {
		if s, ok := drop.(*SiteNode); ok {
			return target{siteID: s.SiteID}, nil
		}
		return target{ungrouped: true}, nil
	}
	ref, err := wellRef(drop.(*WellNode))
	if err != nil {
		return target{}, err
	}
	return target{ungrouped: !ref.FromSite, siteID: ref.SiteID}, nil
}

// wellRef decodes the container and well number from a well node's id and
// rejects nodes whose fields disagree with it.
func wellRef(n *WellNode) (WellRef, error) {
	ref, err := ParseWellID(n.ID)
	if err != nil {
		return WellRef{}, err
	}
	if ref.WellNumber != n.WellNumber || ref.SiteID != n.SiteID {
		return WellRef{}, fmt.Errorf("%q names well %d in %s, node has well %d in %s: %w",
			n.ID, ref.WellNumber, describe(ref.SiteID), n.WellNumber, describe(n.SiteID), ErrNotWellID)
	}
	return ref, nil
}

// HandleDrop validates and applies a drag-and-drop move. The source and
// target containers are decoded from the well node ids. Illegal drops and
// failed moves come back as warning or error notices; a drop onto the
// well's current container is an informational no-op.
func (l *Layout) HandleDrop(dragging, drop Node, dt DropType) Notice {
	if dragging == nil || drop == nil || !AllowDrop(dragging, drop, dt) {
		return Notice{Level: LevelWarning, Message: "drop not allowed"}
	}
	well := dragging.(*WellNode)
	from, err := wellRef(well)
	if err == nil && from.FieldID != l.field.ID {
		err = fmt.Errorf("%q belongs to field %q: %w", well.ID, from.FieldID, ErrNotWellID)
	}
	if err != nil {
		l.logf("oilfield: drop %s: %v", well.ID, err)
		return Notice{Level: LevelWarning, Message: err.Error()}
	}
	to, err := resolveTarget(drop, dt)
	if err != nil {
		l.logf("oilfield: drop onto %s: %v", drop.NodeID(), err)
		return Notice{Level: LevelWarning, Message: err.Error()}
	}

	if from.FromSite != to.ungrouped && (to.ungrouped || from.SiteID == to.siteID) {
		return Notice{Level: LevelInfo, Message: fmt.Sprintf("%s is already in %s", well.Label, to)}
	}

	if err := l.MoveWell(from.WellNumber, from.SiteID, to.siteID, to.ungrouped); err != nil {
		l.logf("oilfield: drop %s: %v", well.ID, err)
		level := LevelError
		if errors.Is(err, ErrWellNotFound) || errors.Is(err, ErrSiteNotFound) {
			level = LevelWarning
		}
		return Notice{Level: level, Message: err.Error()}
	}
	return Notice{Level: LevelSuccess, Message: fmt.Sprintf("%s moved to %s", well.Label, to)}
}

// HandleDropByID resolves both ids against the current tree and applies
// HandleDrop.
func (l *Layout) HandleDropByID(draggingID, dropID string, dt DropType) Notice {
	root := l.Tree()
	dragging, ok := Find(root, draggingID)
	if !ok {
		return Notice{Level: LevelWarning, Message: fmt.Sprintf("node %q not found", draggingID)}
	}
	drop, ok := Find(root, dropID)
	if !ok {
		return Notice{Level: LevelWarning, Message: fmt.Sprintf("node %q not found", dropID)}
	}
	return l.HandleDrop(dragging, drop, dt)
}

package treeview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/wellplan/internal/partition"
	"github.com/papapumpkin/wellplan/internal/visibility"
)

// ErrMalformedID indicates a node id that is not <Category>-<index|all>.
var ErrMalformedID = errors.New("malformed node id")

// Ref is a parsed node id.
type Ref struct {
	Category string
	All      bool
	Index    int
}

// ParseID splits id on its first '-' into a category and an index token,
// which must be "all" or a non-negative integer.
func ParseID(id string) (Ref, error) {
	category, token, ok := strings.Cut(id, "-")
	if !ok || category == "" {
		return Ref{}, fmt.Errorf("%q: %w", id, ErrMalformedID)
	}
	if token == AllToken {
		return Ref{Category: category, All: true}, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return Ref{}, fmt.Errorf("%q: %w", id, ErrMalformedID)
	}
	return Ref{Category: category, Index: n}, nil
}

// Resolver turns tree clicks into registry mutations. checked is the
// node's state when it was clicked: true means currently visible, so the
// click hides what the node covers, and false shows it again.
type Resolver struct {
	Registry  *visibility.Registry
	Partition *partition.Partition
}

// Resolve applies the click on id and reports whether it was handled.
// Unknown or malformed ids are ignored.
func (r Resolver) Resolve(id string, checked bool) bool {
	ref, err := ParseID(id)
	if err != nil {
		return false
	}
	hide := checked
	reg := r.Registry

	switch {
	case ref.Category == CatComponents || ref.Category == CatLayout:
		for _, c := range visibility.Channels {
			reg.SetAllHidden(c, hide)
		}
	case ref.Category == CatTrajectory && ref.All:
		reg.SetAllHidden(visibility.Curve, hide)
	case ref.Category == CatTrajectorySite && !ref.All:
		return r.eachMember(ref.Index, func(w int) {
			reg.SetHidden(visibility.Curve, w, hide)
		})
	case ref.Category == CatTrajectoryWell && !ref.All:
		reg.SetHidden(visibility.Curve, ref.Index, hide)
	case ref.Category == CatCostContour && ref.All:
		reg.SetAllHidden(visibility.WellContour, hide)
		reg.SetAllHidden(visibility.SiteContour, hide)
	case ref.Category == CatCostContourWell && ref.All:
		reg.SetAllHidden(visibility.WellContour, hide)
	case ref.Category == CatCostContourWell:
		reg.SetHidden(visibility.WellContour, ref.Index, hide)
	case ref.Category == CatSiteCostContour && ref.All:
		reg.SetAllHidden(visibility.SiteContour, hide)
	case ref.Category == CatSiteCostContour:
		reg.SetHidden(visibility.SiteContour, ref.Index, hide)
	case ref.Category == CatSite && !ref.All:
		ok := r.eachMember(ref.Index, func(w int) {
			reg.SetHidden(visibility.WellContour, w, hide)
			reg.SetHidden(visibility.Curve, w, hide)
		})
		if ok {
			reg.SetHidden(visibility.SiteContour, ref.Index, hide)
		}
		return ok
	case ref.Category == CatWellAll && !ref.All:
		reg.SetHidden(visibility.WellContour, ref.Index, hide)
		reg.SetHidden(visibility.Curve, ref.Index, hide)
	default:
		return false
	}
	return true
}

func (r Resolver) eachMember(site int, fn func(int)) bool {
	members, ok := r.Partition.Members(site)
	if !ok {
		return false
	}
	for _, w := range members {
		fn(w)
	}
	return true
}

package oilfield

import "errors"

// Sentinel errors for grouping-model mutations.
var (
	// ErrNegativeWellCount indicates Resize was asked for fewer than zero wells.
	ErrNegativeWellCount = errors.New("well count cannot be negative")
	// ErrTooManyWells indicates Resize was asked for more than wellgeom.MaxWells wells.
	ErrTooManyWells = errors.New("well count exceeds limit")
	// ErrWellNotFound indicates a move named a well that is not in the claimed source.
	ErrWellNotFound = errors.New("well not found in source")
	// ErrSiteNotFound indicates a move named a site that does not exist.
	ErrSiteNotFound = errors.New("site not found")
	// ErrIllegalDrop indicates a drag-and-drop combination that is not allowed.
	ErrIllegalDrop = errors.New("drop not allowed")
	// ErrNotWellID indicates an id that does not name a well node.
	ErrNotWellID = errors.New("not a well node id")
)

package wellgeom

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel errors behind each validation category.
var (
	// ErrInvalidWellData wraps every failed validation.
	ErrInvalidWellData = errors.New("invalid well data")
	// ErrRequired indicates a missing field.
	ErrRequired = errors.New("required")
	// ErrPattern indicates a coordinate string with the wrong shape.
	ErrPattern = errors.New("does not match pattern")
	// ErrOutOfRange indicates a number outside its allowed bounds.
	ErrOutOfRange = errors.New("out of range")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	// ValCatRequired indicates a required field is missing or empty.
	ValCatRequired ValidationCategory = "required"
	// ValCatPattern indicates a coordinate has more than two decimals or is not a number.
	ValCatPattern ValidationCategory = "pattern"
	// ValCatBounds indicates a numeric field is out of its valid range.
	ValCatBounds ValidationCategory = "bounds"
)

// ValidationError is one field-level problem. Field is a dotted path such
// as "targetPoints.0.x".
type ValidationError struct {
	Category ValidationCategory `json:"-"`
	Field    string             `json:"field"`
	Message  string             `json:"message"`
}

// Error returns the field path and message.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap returns the sentinel for the error's category.
func (e *ValidationError) Unwrap() error {
	switch e.Category {
	case ValCatRequired:
		return ErrRequired
	case ValCatPattern:
		return ErrPattern
	case ValCatBounds:
		return ErrOutOfRange
	}
	return nil
}

// Result is the outcome of Validate.
type Result struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors"`
}

// Err returns nil for a valid result, otherwise every field error joined
// under ErrInvalidWellData.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return fmt.Errorf("%w: %w", ErrInvalidWellData, errors.Join(errs...))
}

var coordinatePattern = regexp.MustCompile(`^-?\d+(\.\d{1,2})?$`)

type validator struct {
	errs []*ValidationError
}

func (v *validator) add(cat ValidationCategory, field, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Category: cat, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) required(field string, present bool) bool {
	if !present {
		v.add(ValCatRequired, field, "%q is required", field)
	}
	return present
}

// Validate checks d against the well data contract: 1..100 wells, every
// coordinate a decimal with at most two fractional digits, every kickoff
// component present, a non-empty dogleg and a positive radius per well.
// All problems are reported, not just the first.
func Validate(d WellData) Result {
	var v validator

	switch {
	case d.NumberOfWells < 1:
		v.add(ValCatBounds, "numberOfWells", "%q must be greater than or equal to 1", "numberOfWells")
	case d.NumberOfWells > MaxWells:
		v.add(ValCatBounds, "numberOfWells", "%q must be less than or equal to %d", "numberOfWells", MaxWells)
	}

	v.points("targetPoints", d.TargetPoints)
	v.points("entryDirections", d.EntryDirections)

	if v.required("kickoffPoints", d.KickoffPoints != nil) {
		for i, k := range d.KickoffPoints {
			prefix := fmt.Sprintf("kickoffPoints.%d.", i)
			v.required(prefix+"pkx", k.PKX != nil)
			v.required(prefix+"pky", k.PKY != nil)
			v.required(prefix+"pkz", k.PKZ != nil)
		}
	}
	if v.required("kickoffDirections", d.KickoffDirections != nil) {
		for i, k := range d.KickoffDirections {
			prefix := fmt.Sprintf("kickoffDirections.%d.", i)
			v.required(prefix+"vkx", k.VKX != nil)
			v.required(prefix+"vky", k.VKY != nil)
			v.required(prefix+"vkz", k.VKZ != nil)
		}
	}
	if v.required("doglegPoints", d.DoglegPoints != nil) {
		for i, p := range d.DoglegPoints {
			prefix := fmt.Sprintf("doglegPoints.%d.", i)
			v.required(prefix+"dogleg", strings.TrimSpace(p.Dogleg) != "")
			if !v.required(prefix+"radius", strings.TrimSpace(string(p.Radius)) != "") {
				continue
			}
			r, err := strconv.ParseFloat(strings.TrimSpace(string(p.Radius)), 64)
			switch {
			case err != nil:
				v.add(ValCatPattern, prefix+"radius", "%q must be a number", prefix+"radius")
			case r <= 0:
				v.add(ValCatBounds, prefix+"radius", "%q must be a positive number", prefix+"radius")
			}
		}
	}

	return Result{Valid: len(v.errs) == 0, Errors: v.errs}
}

func (v *validator) points(name string, pts []Point) {
	if !v.required(name, pts != nil) {
		return
	}
	for i, p := range pts {
		for _, c := range []struct{ axis, val string }{{"x", p.X}, {"y", p.Y}, {"z", p.Z}} {
			field := fmt.Sprintf("%s.%d.%s", name, i, c.axis)
			if !v.required(field, c.val != "") {
				continue
			}
			if !coordinatePattern.MatchString(c.val) {
				v.add(ValCatPattern, field, "%q with value %q fails to match the required pattern", field, c.val)
			}
		}
	}
}

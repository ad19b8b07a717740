package wellgeom

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Range search defaults: each target is padded by its largest build radius
// plus rangeMargin, then the bounds are widened by rangeStep and snapped
// outward to a multiple of rangeStep.
const (
	rangeMargin = 1000
	rangeStep   = 500
)

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AutoXRange derives the default X search range from the targets and their
// build radii. Wells without a numeric target or positive radius are
// skipped; with none left the range is [0, 0].
func AutoXRange(targets []Point, doglegs []DoglegPoint) Range {
	return autoRange(targets, doglegs, func(p Point) string { return p.X })
}

// AutoYRange is AutoXRange for the Y axis.
func AutoYRange(targets []Point, doglegs []DoglegPoint) Range {
	return autoRange(targets, doglegs, func(p Point) string { return p.Y })
}

func autoRange(targets []Point, doglegs []DoglegPoint, axis func(Point) string) Range {
	var bounds []float64
	for i := 0; i < len(targets) && i < len(doglegs); i++ {
		c, err := strconv.ParseFloat(strings.TrimSpace(axis(targets[i])), 64)
		if err != nil {
			continue
		}
		radii := doglegs[i].Radius.Values()
		if len(radii) == 0 {
			continue
		}
		r := slices.Max(radii)
		if r <= 0 {
			continue
		}
		bounds = append(bounds, c-r-rangeMargin, c+r+rangeMargin)
	}
	if len(bounds) == 0 {
		return Range{}
	}
	return Range{
		Min: math.Floor((slices.Min(bounds)-rangeStep)/rangeStep) * rangeStep,
		Max: math.Ceil((slices.Max(bounds)+rangeStep)/rangeStep) * rangeStep,
	}
}

// AutoInitialGuess returns the mean X and Y of the numeric targets,
// floored to two decimals, or (0, 0) when there are none.
func AutoInitialGuess(targets []Point) (x, y float64) {
	var sx, sy float64
	n := 0
	for _, p := range targets {
		px, errX := strconv.ParseFloat(strings.TrimSpace(p.X), 64)
		py, errY := strconv.ParseFloat(strings.TrimSpace(p.Y), 64)
		if errX != nil || errY != nil {
			continue
		}
		sx += px
		sy += py
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return floor2(sx / float64(n)), floor2(sy / float64(n))
}

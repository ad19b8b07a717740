package dataset

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient errors.
var (
	// ErrTooFewColors indicates a gradient with fewer than two stops.
	ErrTooFewColors = errors.New("at least two colors are required")
	// ErrValueOutOfRange indicates a value outside [min, max].
	ErrValueOutOfRange = errors.New("value is out of range")
)

// CostLegend is the default low-to-high cost palette.
var CostLegend = []string{"#313695", "#4575b4", "#74add1", "#abd9e9", "#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026"}

// GradientColor maps value in [lo, hi] onto the piecewise linear gradient
// through stops and returns the colour as #rrggbb.
func GradientColor(value, lo, hi float64, stops []string) (string, error) {
	if len(stops) < 2 {
		return "", ErrTooFewColors
	}
	if value < lo || value > hi {
		return "", fmt.Errorf("%g not in [%g, %g]: %w", value, lo, hi, ErrValueOutOfRange)
	}
	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s)
		if err != nil {
			return "", fmt.Errorf("stop %d: %w", i, err)
		}
		colors[i] = c
	}

	t := 0.0
	if hi > lo {
		t = (value - lo) / (hi - lo)
	}
	t = math.Max(0, math.Min(1, t))

	scaled := t * float64(len(colors)-1)
	idx := int(math.Floor(scaled))
	start := colors[idx]
	end := start
	if idx < len(colors)-1 {
		end = colors[idx+1]
	}
	return start.BlendRgb(end, math.Mod(scaled, 1)).Clamped().Hex(), nil
}

package wellgeom

import (
	"math"
	"strconv"
	"strings"
)

// doglegConstant converts between dogleg severity in degrees per 30 m and
// build radius in metres: radius = 30*180 / (dogleg*pi), and back.
const doglegConstant = 30 * 180 / math.Pi

// TripleSize is the number of dogleg/radius slots per well.
const TripleSize = 3

func floor2(v float64) float64 {
	return math.Floor(v*100) / 100
}

// FormatValue floors a numeric string to two decimals. Non-numeric input
// is returned unchanged.
func FormatValue(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s
	}
	return formatFloat(floor2(v))
}

// RadiusFromDogleg returns the build radius for a dogleg severity, floored
// to two decimals, or "" when dogleg is not a positive number.
func RadiusFromDogleg(dogleg string) string {
	return convert(dogleg)
}

// DoglegFromRadius is the inverse of RadiusFromDogleg.
func DoglegFromRadius(radius string) string {
	return convert(radius)
}

func convert(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return ""
	}
	return formatFloat(floor2(doglegConstant / v))
}

// SplitTriple splits a comma list into exactly three trimmed slots,
// padding with empty strings and dropping extras.
func SplitTriple(s string) [TripleSize]string {
	var out [TripleSize]string
	if s == "" {
		return out
	}
	for i, part := range strings.SplitN(s, ",", TripleSize+1) {
		if i >= TripleSize {
			break
		}
		out[i] = strings.TrimSpace(part)
	}
	return out
}

func joinTriple(t [TripleSize]string) string {
	parts := make([]string, 0, TripleSize)
	for _, v := range t {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ",")
}

// UpdateDogleg sets slot idx of p's dogleg list to value and, when value is
// numeric, recomputes the matching radius slot.
func UpdateDogleg(p *DoglegPoint, idx int, value string) {
	if idx < 0 || idx >= TripleSize {
		return
	}
	doglegs := SplitTriple(p.Dogleg)
	doglegs[idx] = FormatValue(value)
	p.Dogleg = joinTriple(doglegs)

	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		radii := SplitTriple(string(p.Radius))
		radii[idx] = RadiusFromDogleg(value)
		p.Radius = Radius(joinTriple(radii))
	}
}

// UpdateRadius sets slot idx of p's radius list to value and, when value is
// numeric, recomputes the matching dogleg slot.
func UpdateRadius(p *DoglegPoint, idx int, value string) {
	if idx < 0 || idx >= TripleSize {
		return
	}
	radii := SplitTriple(string(p.Radius))
	radii[idx] = FormatValue(value)
	p.Radius = Radius(joinTriple(radii))

	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		doglegs := SplitTriple(p.Dogleg)
		doglegs[idx] = DoglegFromRadius(value)
		p.Dogleg = joinTriple(doglegs)
	}
}

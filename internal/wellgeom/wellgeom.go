// Package wellgeom holds the per-well geometry a planner enters: target
// points, entry directions, kickoff points and directions, and dogleg
// severities with their build radii. It validates and normalizes that data
// and derives the defaults the solver form pre-fills (radius from dogleg,
// search ranges, initial guess).
package wellgeom

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxWells is the largest well count accepted.
const MaxWells = 100

// Point is a coordinate triple as typed by the user. Values are decimal
// strings with at most two fractional digits.
type Point struct {
	X string `json:"x" toml:"x"`
	Y string `json:"y" toml:"y"`
	Z string `json:"z" toml:"z"`
}

// KickoffPoint is where a well leaves the vertical. Nil fields are missing.
type KickoffPoint struct {
	PKX *float64 `json:"pkx" toml:"pkx"`
	PKY *float64 `json:"pky" toml:"pky"`
	PKZ *float64 `json:"pkz" toml:"pkz"`
}

// KickoffDirection is the unit direction at the kickoff point.
type KickoffDirection struct {
	VKX *float64 `json:"vkx" toml:"vkx"`
	VKY *float64 `json:"vky" toml:"vky"`
	VKZ *float64 `json:"vkz" toml:"vkz"`
}

// Radius holds one build radius or a comma separated list of up to three.
// It decodes from a JSON number or string and encodes back as a number
// when it holds a single value.
type Radius string

// UnmarshalJSON accepts a number or a string.
func (r *Radius) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*r = Radius(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("radius: %w", err)
	}
	*r = Radius(s)
	return nil
}

// MarshalJSON writes a single numeric radius as a number.
func (r Radius) MarshalJSON() ([]byte, error) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(string(r)), 64); err == nil {
		return json.Marshal(v)
	}
	return json.Marshal(string(r))
}

// Values returns the radius entries that parse as numbers.
func (r Radius) Values() []float64 {
	return parseList(string(r))
}

// DoglegPoint pairs dogleg severities (degrees per 30 m, comma separated)
// with the matching build radii.
type DoglegPoint struct {
	Dogleg string `json:"dogleg" toml:"dogleg"`
	Radius Radius `json:"radius" toml:"radius"`
}

// WellData is the full geometry payload for one planning session. Slices
// are indexed by well.
type WellData struct {
	NumberOfWells     int                `json:"numberOfWells" toml:"numberOfWells"`
	TargetPoints      []Point            `json:"targetPoints" toml:"targetPoints"`
	EntryDirections   []Point            `json:"entryDirections" toml:"entryDirections"`
	KickoffPoints     []KickoffPoint     `json:"kickoffPoints" toml:"kickoffPoints"`
	KickoffDirections []KickoffDirection `json:"kickoffDirections" toml:"kickoffDirections"`
	DoglegPoints      []DoglegPoint      `json:"doglegPoints" toml:"doglegPoints"`
}

// Normalize returns a copy of d with target points and entry directions
// floored to two decimals.
func Normalize(d WellData) WellData {
	out := d
	out.TargetPoints = floorPoints(d.TargetPoints)
	out.EntryDirections = floorPoints(d.EntryDirections)
	return out
}

func floorPoints(in []Point) []Point {
	if in == nil {
		return nil
	}
	out := make([]Point, len(in))
	for i, p := range in {
		out[i] = Point{X: FloorTwoDecimals(p.X), Y: FloorTwoDecimals(p.Y), Z: FloorTwoDecimals(p.Z)}
	}
	return out
}

// FloorTwoDecimals floors a decimal string to two fractional digits and
// prints it without trailing zeros. Unparseable input becomes "0".
func FloorTwoDecimals(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "0"
	}
	return formatFloat(floor2(v))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseList splits a comma separated list, accepting full-width commas,
// and returns the entries that parse as numbers.
func parseList(s string) []float64 {
	var out []float64
	for _, part := range splitList(s) {
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// splitList returns the trimmed, non-empty entries of a comma list.
func splitList(s string) []string {
	s = strings.ReplaceAll(s, "，", ",")
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

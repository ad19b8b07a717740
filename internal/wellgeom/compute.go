package wellgeom

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckCompute runs the checks made before a solver request is sent and
// returns one human-readable message per problem.
func CheckCompute(numberOfWells int, targets, entries []Point, doglegs []DoglegPoint) []string {
	var msgs []string
	if numberOfWells < 1 {
		msgs = append(msgs, "Number of wells cannot be less than 1")
	}
	msgs = append(msgs, checkPoints("Target point", "P2", targets)...)
	msgs = append(msgs, checkPoints("Entry direction", "V2", entries)...)

	for i, p := range doglegs {
		well := i + 1
		if strings.TrimSpace(p.Dogleg) == "" {
			msgs = append(msgs, fmt.Sprintf("Well %d dogleg value cannot be empty", well))
			continue
		}
		if strings.TrimSpace(string(p.Radius)) == "" {
			msgs = append(msgs, fmt.Sprintf("Well %d radius value cannot be empty", well))
			continue
		}
		doglegVals := splitList(p.Dogleg)
		radiusVals := splitList(string(p.Radius))
		for j, v := range doglegVals {
			if !isNumber(v) {
				msgs = append(msgs, fmt.Sprintf("Well %d dogleg value %d must be a valid number", well, j+1))
			}
		}
		for j, v := range radiusVals {
			if !isNumber(v) {
				msgs = append(msgs, fmt.Sprintf("Well %d radius value %d must be a valid number", well, j+1))
			}
		}
		if len(doglegVals) != len(radiusVals) {
			msgs = append(msgs, fmt.Sprintf(
				"Well %d dogleg and radius data count mismatch (dogleg: %d values, radius: %d values)",
				well, len(doglegVals), len(radiusVals)))
		}
	}
	return msgs
}

func checkPoints(what, prefix string, pts []Point) []string {
	var msgs []string
	for i, p := range pts {
		n := i + 1
		if p.X == "" || p.Y == "" || p.Z == "" {
			msgs = append(msgs, fmt.Sprintf("%s %d coordinates cannot be empty (%sx: %s, %sy: %s, %sz: %s)",
				what, n, prefix, p.X, prefix, p.Y, prefix, p.Z))
		}
		for _, c := range []struct{ axis, val string }{{"x", p.X}, {"y", p.Y}, {"z", p.Z}} {
			if c.val != "" && !isNumber(c.val) {
				msgs = append(msgs, fmt.Sprintf("%s %d %s%s must be a valid number", what, n, prefix, c.axis))
			}
		}
	}
	return msgs
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

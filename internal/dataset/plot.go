package dataset

import (
	"encoding/json"
	"math"
	"slices"
)

// Cost is one cell of a merged contour: a value, or unset ("-" in JSON).
type Cost struct {
	Value float64
	Set   bool
}

// MarshalJSON writes the value, or "-" when unset.
func (c Cost) MarshalJSON() ([]byte, error) {
	if !c.Set {
		return []byte(`"-"`), nil
	}
	return json.Marshal(c.Value)
}

// SurfacePoint is one heat-map sample, encoded as [x, y, 0, cost].
type SurfacePoint struct {
	X, Y float64
	Cost Cost
}

// MarshalJSON writes the point as a four element array.
func (p SurfacePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.X, p.Y, 0, p.Cost})
}

// ContourPlot is the merged surface of several cost contours.
type ContourPlot struct {
	Data    []SurfacePoint `json:"data"`
	Z       [][]Cost       `json:"z"`
	MinCost float64        `json:"minCost"`
	MaxCost float64        `json:"maxCost"`
	MinX    float64        `json:"minX"`
	MaxX    float64        `json:"maxX"`
	MinY    float64        `json:"minY"`
	MaxY    float64        `json:"maxY"`
}

// FormatContour merges contours onto the grid of the first one. Later
// contours overwrite earlier ones where they have a value. The grid spacing
// is the gap between the two smallest distinct coordinates on each axis.
func FormatContour(contours []Contour) ContourPlot {
	plot := ContourPlot{Data: []SurfacePoint{}, Z: [][]Cost{}}
	if len(contours) == 0 {
		return plot
	}

	xs := uniqueSorted(contours[0].Grid.X)
	ys := uniqueSorted(contours[0].Grid.Y)
	if len(xs) == 0 || len(ys) == 0 {
		return plot
	}
	cols, rows := len(xs), len(ys)
	dx, dy := interval(xs), interval(ys)
	plot.MaxX, plot.MaxY = xs[cols-1], ys[rows-1]

	plot.Z = make([][]Cost, rows)
	for r := range plot.Z {
		plot.Z[r] = make([]Cost, cols)
	}

	minCost, maxCost := math.Inf(1), math.Inf(-1)
	for _, ct := range contours {
		g := ct.Grid
		n := min(len(g.X), len(g.Y), len(g.Cost))
		for i := 0; i < n; i++ {
			if g.Cost[i] == nil {
				continue
			}
			col, row := cell(g.X[i], dx), cell(g.Y[i], dy)
			if col < 0 || row < 0 || col >= cols || row >= rows {
				continue
			}
			v := *g.Cost[i]
			plot.Z[row][col] = Cost{Value: v, Set: true}
			minCost = math.Min(minCost, v)
			maxCost = math.Max(maxCost, v)
		}
	}
	if !math.IsInf(minCost, 1) {
		plot.MinCost, plot.MaxCost = minCost, maxCost
	}

	plot.Data = make([]SurfacePoint, 0, rows*cols)
	for r, row := range plot.Z {
		for c, v := range row {
			plot.Data = append(plot.Data, SurfacePoint{X: float64(c) * dx, Y: float64(r) * dy, Cost: v})
		}
	}
	return plot
}

func uniqueSorted(v []float64) []float64 {
	out := slices.Clone(v)
	slices.Sort(out)
	return slices.Compact(out)
}

func interval(axis []float64) float64 {
	if len(axis) < 2 {
		return 0
	}
	return axis[1] - axis[0]
}

func cell(v, step float64) int {
	if step == 0 {
		return 0
	}
	return int(math.Floor(v / step))
}

// CurvePlot holds 3-D polylines (east, north, tvd) and the TVD extent.
type CurvePlot struct {
	Lines [][][3]float64 `json:"data"`
	MaxZ  float64        `json:"maxZ"`
	MinZ  float64        `json:"minZ"`
}

// FormatCurves converts trajectories into polylines.
func FormatCurves(curves []Curve) CurvePlot {
	plot := CurvePlot{Lines: [][][3]float64{}}
	if len(curves) == 0 {
		return plot
	}
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, cv := range curves {
		p := cv.Path
		n := min(len(p.East), len(p.North), len(p.TVD))
		line := make([][3]float64, 0, n)
		for i := 0; i < n; i++ {
			line = append(line, [3]float64{p.East[i], p.North[i], p.TVD[i]})
			minZ = math.Min(minZ, p.TVD[i])
			maxZ = math.Max(maxZ, p.TVD[i])
		}
		plot.Lines = append(plot.Lines, line)
	}
	if !math.IsInf(minZ, 1) {
		plot.MinZ, plot.MaxZ = minZ, maxZ
	}
	return plot
}

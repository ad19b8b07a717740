package fieldopt

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

// BlockName is the top-level key of a solver request.
const BlockName = "FIELDOPT INPUT BLOCK"

// Input block keys. The solver matches them exactly.
const (
	KeyN          = "n"
	KeyWellNo     = "WellNo"
	KeyPCM        = "PCM"
	KeyVCM        = "VCM"
	KeyPKzM       = "PKzM"
	KeyVKM        = "VKM"
	KeyDLSM       = "DLSM"
	KeyRM         = "rM"
	KeyXRange     = "XRange"
	KeyYRange     = "YRange"
	KeyResolution = "resolution"
	KeyCstRadiusM = "cst_radiusM"
	KeyPKM        = "PKM"
	KeyNecon      = "necon"
	KeyCstSite    = "cst_Site"
	KeySlot       = "slot"
	KeyCstWH      = "cst_WH"
	KeyClusterMin = "cluster_min"
	KeyClusterMax = "cluster_max"
)

// BlockKeys lists every key of a complete input block.
var BlockKeys = []string{
	KeyN, KeyWellNo, KeyPCM, KeyVCM, KeyPKzM, KeyVKM, KeyDLSM, KeyRM,
	KeyXRange, KeyYRange, KeyResolution, KeyCstRadiusM, KeyPKM, KeyNecon,
	KeyCstSite, KeySlot, KeyCstWH, KeyClusterMin, KeyClusterMax,
}

// DefaultResolution is the grid spacing in metres used in Auto mode.
const DefaultResolution = 100.0

// ErrInconsistentInput indicates well arrays whose lengths disagree with
// the well count, or a manual setting that cannot be parsed.
var ErrInconsistentInput = errors.New("inconsistent compute input")

// Param is one entry of the input block.
type Param struct {
	Description string `json:"DESCRIPTION"`
	Unit        string `json:"UNIT"`
	Value       any    `json:"VALUE"`
}

// InputBlock maps block keys to parameters.
type InputBlock map[string]Param

// Request is the body posted to the solver.
type Request struct {
	Block InputBlock `json:"FIELDOPT INPUT BLOCK"`
}

// CheckLengths reports every per-well array whose length differs from the
// well count.
func CheckLengths(d wellgeom.WellData) []string {
	var msgs []string
	if d.NumberOfWells <= 0 {
		msgs = append(msgs, "number of wells must be greater than 0")
	}
	check := func(name string, n int) {
		if n != d.NumberOfWells {
			msgs = append(msgs, fmt.Sprintf("%s count %d does not match number of wells %d", name, n, d.NumberOfWells))
		}
	}
	check("target point", len(d.TargetPoints))
	check("entry direction", len(d.EntryDirections))
	check("kickoff point", len(d.KickoffPoints))
	check("kickoff direction", len(d.KickoffDirections))
	check("dogleg", len(d.DoglegPoints))
	return msgs
}

// Build assembles the solver request from well data and compute settings.
// Auto settings are derived from the well geometry.
func Build(d wellgeom.WellData, cs ComputeState) (Request, error) {
	if msgs := CheckLengths(d); len(msgs) > 0 {
		return Request{}, fmt.Errorf("%w: %s", ErrInconsistentInput, strings.Join(msgs, "; "))
	}

	wellNo, err := wellNumbers(cs.Ranges.WellNo, d.NumberOfWells)
	if err != nil {
		return Request{}, err
	}
	xr, err := rangeSetting("x range", cs.Ranges.X, func() wellgeom.Range { return wellgeom.AutoXRange(d.TargetPoints, d.DoglegPoints) })
	if err != nil {
		return Request{}, err
	}
	yr, err := rangeSetting("y range", cs.Ranges.Y, func() wellgeom.Range { return wellgeom.AutoYRange(d.TargetPoints, d.DoglegPoints) })
	if err != nil {
		return Request{}, err
	}
	resolution, err := scalarSetting("resolution", cs.Ranges.Resolution, func() float64 { return DefaultResolution })
	if err != nil {
		return Request{}, err
	}
	radius, err := scalarSetting("radius", cs.Ranges.Radius, func() float64 { return maxRadius(d.DoglegPoints) })
	if err != nil {
		return Request{}, err
	}
	guess, err := pairSetting("initial guess", cs.Ranges.InitialGuess, func() [2]float64 {
		x, y := wellgeom.AutoInitialGuess(d.TargetPoints)
		return [2]float64{x, y}
	})
	if err != nil {
		return Request{}, err
	}

	pcm, err := pointMatrix("target point", d.TargetPoints)
	if err != nil {
		return Request{}, err
	}
	vcm, err := pointMatrix("entry direction", d.EntryDirections)
	if err != nil {
		return Request{}, err
	}

	pkz := make([]float64, len(d.KickoffPoints))
	for i, k := range d.KickoffPoints {
		pkz[i] = deref(k.PKZ)
	}
	vkm := make([][3]float64, len(d.KickoffDirections))
	for i, k := range d.KickoffDirections {
		vkm[i] = [3]float64{deref(k.VKX), deref(k.VKY), deref(k.VKZ)}
	}
	dls := make([][]float64, len(d.DoglegPoints))
	rm := make([][]float64, len(d.DoglegPoints))
	for i, p := range d.DoglegPoints {
		dls[i] = listOf(p.Dogleg)
		rm[i] = p.Radius.Values()
	}
	slots := make([][2]float64, len(cs.ClusterSizes))
	for i, c := range cs.ClusterSizes {
		slots[i] = [2]float64{float64(c.Size), c.Cost}
	}

	block := InputBlock{
		KeyN:          {"number of wells", "-", d.NumberOfWells},
		KeyWellNo:     {"wells included in the optimization (1-based)", "-", wellNo},
		KeyPCM:        {"target point per well (x, y, z)", "m", pcm},
		KeyVCM:        {"entry direction per well (x, y, z)", "-", vcm},
		KeyPKzM:       {"kickoff depth per well", "m", pkz},
		KeyVKM:        {"kickoff direction per well (x, y, z)", "-", vkm},
		KeyDLSM:       {"dogleg severities per well", "deg/30m", dls},
		KeyRM:         {"build radii per well", "m", rm},
		KeyXRange:     {"search range along x (min, max)", "m", [2]float64{xr.Min, xr.Max}},
		KeyYRange:     {"search range along y (min, max)", "m", [2]float64{yr.Min, yr.Max}},
		KeyResolution: {"search grid resolution", "m", resolution},
		KeyCstRadiusM: {"cost evaluation radius", "m", radius},
		KeyPKM:        {"initial guess for the site location (x, y)", "m", guess},
		KeyNecon:      {"economic zone threshold", "-", cs.EconomicZoneThreshold},
		KeyCstSite:    {"site preparation cost", "USD", cs.SitePreparationCost},
		KeySlot:       {"allowed slots per site and their cost (size, cost)", "-", slots},
		KeyCstWH:      {"wellhead cost", "USD", cs.WellheadCost},
		KeyClusterMin: {"minimum wells per site", "-", cs.ClusterMin},
		KeyClusterMax: {"maximum wells per site", "-", cs.ClusterMax},
	}
	return Request{Block: block}, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func listOf(s string) []float64 {
	out := []float64{}
	for _, part := range strings.Split(strings.ReplaceAll(s, "，", ","), ",") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func maxRadius(points []wellgeom.DoglegPoint) float64 {
	best := 0.0
	for _, p := range points {
		if v := p.Radius.Values(); len(v) > 0 {
			best = max(best, slices.Max(v))
		}
	}
	return best
}

func pointMatrix(what string, pts []wellgeom.Point) ([][3]float64, error) {
	out := make([][3]float64, len(pts))
	for i, p := range pts {
		for j, s := range []string{p.X, p.Y, p.Z} {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %d: %q is not a number", ErrInconsistentInput, what, i+1, s)
			}
			out[i][j] = v
		}
	}
	return out, nil
}

func wellNumbers(s Setting, n int) ([]int, error) {
	if s.Mode != ModeManual {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil
	}
	var out []int
	for _, part := range strings.Split(s.Value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 1 || v > n {
			return nil, fmt.Errorf("%w: well number %q", ErrInconsistentInput, part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no well numbers selected", ErrInconsistentInput)
	}
	return out, nil
}

func manualFloats(what string, s Setting, want int) ([]float64, error) {
	parts := strings.Split(s.Value, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("%w: %s needs %d values, got %q", ErrInconsistentInput, what, want, s.Value)
	}
	out := make([]float64, want)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s value %q", ErrInconsistentInput, what, p)
		}
		out[i] = v
	}
	return out, nil
}

func rangeSetting(what string, s Setting, auto func() wellgeom.Range) (wellgeom.Range, error) {
	if s.Mode != ModeManual {
		return auto(), nil
	}
	v, err := manualFloats(what, s, 2)
	if err != nil {
		return wellgeom.Range{}, err
	}
	if v[0] > v[1] {
		return wellgeom.Range{}, fmt.Errorf("%w: %s minimum above maximum", ErrInconsistentInput, what)
	}
	return wellgeom.Range{Min: v[0], Max: v[1]}, nil
}

func scalarSetting(what string, s Setting, auto func() float64) (float64, error) {
	if s.Mode != ModeManual {
		return auto(), nil
	}
	v, err := manualFloats(what, s, 1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func pairSetting(what string, s Setting, auto func() [2]float64) ([2]float64, error) {
	if s.Mode != ModeManual {
		return auto(), nil
	}
	v, err := manualFloats(what, s, 2)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{v[0], v[1]}, nil
}

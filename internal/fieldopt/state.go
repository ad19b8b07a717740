// Package fieldopt builds requests for the external FieldOpt solver and
// submits them. The solver consumes a flat, fixed-key input block whose
// entries each carry a description, a unit and a value.
package fieldopt

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

// Mode selects whether a setting is derived automatically or typed in.
type Mode string

// Setting modes.
const (
	ModeAuto   Mode = "Auto"
	ModeManual Mode = "Manual"
	ModeAll    Mode = "All"
)

// Setting is a mode plus the manual value, used when Mode is Manual.
type Setting struct {
	Mode  Mode   `json:"mode" toml:"mode"`
	Value string `json:"value" toml:"value"`
}

// Ranges groups the solver's search settings.
type Ranges struct {
	X            Setting `json:"x" toml:"x"`
	Y            Setting `json:"y" toml:"y"`
	Radius       Setting `json:"radius" toml:"radius"`
	Resolution   Setting `json:"resolution" toml:"resolution"`
	WellNo       Setting `json:"wellNo" toml:"wellNo"`
	InitialGuess Setting `json:"initialGuess" toml:"initialGuess"`
}

// ClusterSize is an allowed slot count per site and its cost.
type ClusterSize struct {
	Size int     `json:"size" toml:"size"`
	Cost float64 `json:"cost" toml:"cost"`
}

// ComputeState is the solver configuration entered alongside the well data.
type ComputeState struct {
	ProblemType           string        `json:"problemType" toml:"problemType"`
	ClusterMin            int           `json:"cluster_min" toml:"cluster_min"`
	ClusterMax            int           `json:"cluster_max" toml:"cluster_max"`
	SitePreparationCost   float64       `json:"sitePreparationCost" toml:"sitePreparationCost"`
	WellheadCost          float64       `json:"wellheadCost" toml:"wellheadCost"`
	NumberOfClusterSizes  int           `json:"numberOfClusterSizes" toml:"numberOfClusterSizes"`
	ClusterSizes          []ClusterSize `json:"clusterSizes" toml:"clusterSizes"`
	EconomicZoneThreshold float64       `json:"economicZoneThreshold" toml:"economicZoneThreshold"`
	ParallelComputing     bool          `json:"parallelComputing" toml:"parallelComputing"`
	ThreadCount           int           `json:"threadCount" toml:"threadCount"`
	DesignatePosition     bool          `json:"designatePosition" toml:"designatePosition"`
	Ranges                Ranges        `json:"ranges" toml:"ranges"`
}

// DefaultComputeState returns the settings a new session starts with.
func DefaultComputeState() ComputeState {
	return ComputeState{
		ProblemType: "cluster",
		ClusterMin:  1,
		ClusterMax:  4,
		ThreadCount: 1,
		Ranges: Ranges{
			X:            Setting{Mode: ModeAuto},
			Y:            Setting{Mode: ModeAuto},
			Radius:       Setting{Mode: ModeAuto},
			Resolution:   Setting{Mode: ModeAuto},
			WellNo:       Setting{Mode: ModeAll},
			InitialGuess: Setting{Mode: ModeAuto},
		},
	}
}

// Input is a complete compute request as stored on disk: a [wells] table
// and a [compute] table.
type Input struct {
	Wells   wellgeom.WellData `json:"wells" toml:"wells"`
	Compute ComputeState      `json:"compute" toml:"compute"`
}

// LoadInput reads an Input from a TOML file. Missing compute settings
// fall back to DefaultComputeState.
func LoadInput(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("reading %s: %w", path, err)
	}
	in := Input{Compute: DefaultComputeState()}
	if err := toml.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return in, nil
}

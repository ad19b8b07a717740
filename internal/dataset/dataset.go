// Package dataset loads the precomputed per-well cost contours, per-site
// cost contours and trajectory curves a rendering layer draws, and filters
// them through the visibility registry.
//
// A dataset directory holds JSON files named contour_<n>.json,
// site_contour_<n>.json and curve_<n>.json, where n is the zero-based well
// or site index.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/papapumpkin/wellplan/internal/partition"
	"github.com/papapumpkin/wellplan/internal/visibility"
)

// ErrIncompleteCurves indicates the curve indices are not contiguous from 0,
// so a site partition cannot be derived from them.
var ErrIncompleteCurves = errors.New("curve datasets are not contiguous from index 0")

// Family is the kind of data a file holds.
type Family string

// Dataset families and their filename stems.
const (
	FamilyContour     Family = "contour"
	FamilySiteContour Family = "site_contour"
	FamilyCurve       Family = "curve"
)

var fileName = regexp.MustCompile(`^(contour|site_contour|curve)_(\d+)\.json$`)

// ParseFileName returns the family and index encoded in a dataset file name.
func ParseFileName(name string) (Family, int, bool) {
	m := fileName.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return "", 0, false
	}
	idx, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return Family(m[1]), idx, true
}

// FileName is the inverse of ParseFileName.
func FileName(f Family, index int) string {
	return fmt.Sprintf("%s_%d.json", f, index)
}

// CostGrid is a sampled cost surface. Cost[i] belongs to (X[i], Y[i]); a
// nil cost marks an infeasible sample.
type CostGrid struct {
	X    []float64  `json:"X"`
	Y    []float64  `json:"Y"`
	Cost []*float64 `json:"cost"`
}

// Contour is one cost contour dataset.
type Contour struct {
	Index int      `json:"index"`
	Grid  CostGrid `json:"cost contour"`
}

// Trajectory is a sampled well path.
type Trajectory struct {
	MD    []float64 `json:"MD"`
	East  []float64 `json:"EAST"`
	North []float64 `json:"NORTH"`
	TVD   []float64 `json:"TVD"`
	Incl  []float64 `json:"INCL"`
	Az    []float64 `json:"AZ"`
}

// Curve is one trajectory dataset.
type Curve struct {
	Index int        `json:"index"`
	Path  Trajectory `json:"CURVES"`
}

// Catalog is an in-memory copy of a dataset directory.
type Catalog struct {
	Dir          string
	contours     map[int]Contour
	siteContours map[int]Contour
	curves       map[int]Curve
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		contours:     make(map[int]Contour),
		siteContours: make(map[int]Contour),
		curves:       make(map[int]Curve),
	}
}

// Load reads every dataset file in dir. Files with other names are ignored.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading dataset directory: %w", err)
	}
	c := NewCatalog()
	c.Dir = dir
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fam, idx, ok := ParseFileName(e.Name())
		if !ok {
			continue
		}
		if err := c.loadFile(filepath.Join(dir, e.Name()), fam, idx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) loadFile(path string, fam Family, idx int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	switch fam {
	case FamilyCurve:
		var cv Curve
		if err := json.Unmarshal(data, &cv); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		cv.Index = idx
		c.curves[idx] = cv
	default:
		var ct Contour
		if err := json.Unmarshal(data, &ct); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		ct.Index = idx
		if fam == FamilySiteContour {
			c.siteContours[idx] = ct
		} else {
			c.contours[idx] = ct
		}
	}
	return nil
}

// AddContour stores a well contour under its Index.
func (c *Catalog) AddContour(ct Contour) { c.contours[ct.Index] = ct }

// AddSiteContour stores a site contour under its Index.
func (c *Catalog) AddSiteContour(ct Contour) { c.siteContours[ct.Index] = ct }

// AddCurve stores a curve under its Index.
func (c *Catalog) AddCurve(cv Curve) { c.curves[cv.Index] = cv }

// Counts returns how many well contours, site contours and curves are held.
func (c *Catalog) Counts() (contours, siteContours, curves int) {
	return len(c.contours), len(c.siteContours), len(c.curves)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// VisibleContours returns the well contours whose well-contour flag is
// visible, in ascending index order.
func (c *Catalog) VisibleContours(reg *visibility.Registry) []Contour {
	return visible(c.contours, reg, visibility.WellContour)
}

// VisibleSiteContours returns the visible site contours in index order.
func (c *Catalog) VisibleSiteContours(reg *visibility.Registry) []Contour {
	return visible(c.siteContours, reg, visibility.SiteContour)
}

// VisibleCurves returns the visible curves in index order.
func (c *Catalog) VisibleCurves(reg *visibility.Registry) []Curve {
	return visible(c.curves, reg, visibility.Curve)
}

func visible[V any](m map[int]V, reg *visibility.Registry, ch visibility.Channel) []V {
	out := []V{}
	for _, k := range sortedKeys(m) {
		if reg.Visible(ch, k) {
			out = append(out, m[k])
		}
	}
	return out
}

// Wellheads returns the surface location (first trajectory sample) of
// every curve, indexed by well.
func (c *Catalog) Wellheads() ([]partition.Point, error) {
	keys := sortedKeys(c.curves)
	points := make([]partition.Point, len(keys))
	for i, k := range keys {
		if k != i {
			return nil, fmt.Errorf("well %d: %w", i, ErrIncompleteCurves)
		}
		p := c.curves[k].Path
		if len(p.East) == 0 || len(p.North) == 0 {
			return nil, fmt.Errorf("curve %d has no samples: %w", k, ErrIncompleteCurves)
		}
		points[i] = partition.Point{East: p.East[0], North: p.North[0]}
	}
	return points, nil
}

// SitePartition groups wells sharing a wellhead location into sites.
func (c *Catalog) SitePartition() (*partition.Partition, error) {
	points, err := c.Wellheads()
	if err != nil {
		return nil, err
	}
	return partition.FromWellheads(points), nil
}

package dataset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/papapumpkin/wellplan/internal/visibility"
)

func writeJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func costs(v ...float64) []*float64 {
	out := make([]*float64, len(v))
	for i := range v {
		out[i] = &v[i]
	}
	return out
}

func curveAt(idx int, east, north float64) Curve {
	return Curve{Index: idx, Path: Trajectory{
		MD:    []float64{0, 100},
		East:  []float64{east, east + 10},
		North: []float64{north, north + 5},
		TVD:   []float64{0, -100},
	}}
}

func TestParseFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fam  Family
		idx  int
		ok   bool
	}{
		{"contour_0.json", FamilyContour, 0, true},
		{"/data/site_contour_12.json", FamilySiteContour, 12, true},
		{"curve_3.json", FamilyCurve, 3, true},
		{"curve_3.json.tmp", "", 0, false},
		{"notes.txt", "", 0, false},
		{"contour_x.json", "", 0, false},
	}
	for _, tt := range tests {
		fam, idx, ok := ParseFileName(tt.name)
		if fam != tt.fam || idx != tt.idx || ok != tt.ok {
			t.Errorf("ParseFileName(%q) = %q, %d, %v", tt.name, fam, idx, ok)
		}
	}
	if got := FileName(FamilySiteContour, 4); got != "site_contour_4.json" {
		t.Errorf("FileName = %q", got)
	}
}

func TestLoadAndFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		writeJSON(t, dir, FileName(FamilyCurve, i), curveAt(i, float64(i/2), 0))
		writeJSON(t, dir, FileName(FamilyContour, i), Contour{Grid: CostGrid{X: []float64{0}, Y: []float64{0}, Cost: costs(float64(i))}})
	}
	writeJSON(t, dir, FileName(FamilySiteContour, 0), Contour{})
	writeJSON(t, dir, "readme.json", map[string]string{"skip": "me"})

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n, s, v := c.Counts(); n != 3 || s != 1 || v != 3 {
		t.Fatalf("Counts = %d %d %d", n, s, v)
	}

	reg := visibility.New(3, 1)
	reg.SetHidden(visibility.WellContour, 1, true)
	reg.SetHidden(visibility.Curve, 0, true)

	var contourIdx []int
	for _, ct := range c.VisibleContours(reg) {
		contourIdx = append(contourIdx, ct.Index)
	}
	if !reflect.DeepEqual(contourIdx, []int{0, 2}) {
		t.Errorf("visible contours = %v", contourIdx)
	}
	var curveIdx []int
	for _, cv := range c.VisibleCurves(reg) {
		curveIdx = append(curveIdx, cv.Index)
	}
	if !reflect.DeepEqual(curveIdx, []int{1, 2}) {
		t.Errorf("visible curves = %v", curveIdx)
	}
	if got := c.VisibleSiteContours(reg); len(got) != 1 {
		t.Errorf("visible site contours = %d", len(got))
	}

	p, err := c.SitePartition()
	if err != nil {
		t.Fatal(err)
	}
	if want := [][]int{{0, 1}, {2}}; !reflect.DeepEqual(p.Sites(), want) {
		t.Errorf("SitePartition = %v, want %v", p.Sites(), want)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "curve_0.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected read error")
	}
}

func TestWellheadsRequireContiguousCurves(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.AddCurve(curveAt(0, 0, 0))
	c.AddCurve(curveAt(2, 0, 0))
	if _, err := c.Wellheads(); !errors.Is(err, ErrIncompleteCurves) {
		t.Errorf("Wellheads error = %v, want ErrIncompleteCurves", err)
	}
}

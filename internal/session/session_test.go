package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/events"
	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/telemetry"
	"github.com/papapumpkin/wellplan/internal/treeview"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func writeDataset(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func curveAt(east, north float64) dataset.Curve {
	return dataset.Curve{Path: dataset.Trajectory{
		MD:    []float64{0, 100},
		East:  []float64{east, east + 10},
		North: []float64{north, north + 10},
		TVD:   []float64{0, -100},
	}}
}

func TestGroupingScenario(t *testing.T) {
	t.Parallel()
	s := newSession(t, Options{Wells: 3})

	if got := s.Field().Ungrouped; !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("ungrouped = %v", got)
	}
	if err := s.SetWellCount(5); err != nil {
		t.Fatalf("SetWellCount: %v", err)
	}
	s.LoadPartition([][]int{{0, 1}, {2, 3, 4}})
	if got := s.SitePartition(); !reflect.DeepEqual(got, [][]int{{0, 1}, {2, 3, 4}}) {
		t.Fatalf("partition = %v", got)
	}

	n := s.Drop("oil-field1-site1-well-1", "oil-field1-site2", oilfield.DropInner)
	if !n.Moved() {
		t.Fatalf("drop notice = %+v", n)
	}
	if got := s.SitePartition(); !reflect.DeepEqual(got, [][]int{{0}, {1, 2, 3, 4}}) {
		t.Errorf("partition after drop = %v", got)
	}

	site1, ok := treeview.Find(s.LayoutTree(), "Site-1")
	if !ok {
		t.Fatal("Site-1 missing from layout tree")
	}
	if len(site1.Children) != 5 {
		t.Errorf("Site-1 has %d children, want contour plus 4 wells", len(site1.Children))
	}
	if _, ok := treeview.Find(site1, "WellAll-1"); !ok {
		t.Error("well 1 not listed under Site-1")
	}
}

func TestSetWellCountRejectsNegative(t *testing.T) {
	t.Parallel()
	s := newSession(t, Options{Wells: 2})
	if err := s.SetWellCount(-1); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Field().Ungrouped; !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("field changed: %v", got)
	}
}

func TestSetWellCountRejectsTooMany(t *testing.T) {
	t.Parallel()
	s := newSession(t, Options{Wells: 2})
	err := s.SetWellCount(wellgeom.MaxWells + 1)
	if !errors.Is(err, oilfield.ErrTooManyWells) {
		t.Fatalf("SetWellCount error = %v, want ErrTooManyWells", err)
	}
	if got := s.Field().Ungrouped; !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("field changed: %v", got)
	}
}

func TestTreesAreReplacedOnRebuild(t *testing.T) {
	t.Parallel()
	s := newSession(t, Options{Wells: 2})
	before := s.ComponentTree()
	if err := s.SetWellCount(3); err != nil {
		t.Fatal(err)
	}
	after := s.ComponentTree()
	if before == after {
		t.Fatal("component tree was not replaced")
	}
	if _, ok := treeview.Find(after, "TrajectoryWell-2"); !ok {
		t.Error("new well missing from component tree")
	}
	if _, ok := treeview.Find(before, "TrajectoryWell-2"); ok {
		t.Error("old tree was mutated")
	}
}

func TestToggleSiteHidesMembers(t *testing.T) {
	t.Parallel()
	s := newSession(t, Options{Wells: 4})
	s.LoadPartition([][]int{{0, 1}, {2, 3}})

	if !s.Toggle("Site-1", true) {
		t.Fatal("Site-1 not handled")
	}
	checked := s.Checked()
	if slices.Contains(checked.Layout, "Site-1") {
		t.Errorf("Site-1 still checked: %v", checked.Layout)
	}
	if !slices.Contains(checked.Layout, "Site-0") {
		t.Errorf("Site-0 should stay checked: %v", checked.Layout)
	}
	if slices.Contains(checked.Components, "TrajectoryWell-3") {
		t.Errorf("TrajectoryWell-3 still checked: %v", checked.Components)
	}

	if s.Toggle("Nope-1", true) {
		t.Error("unknown category reported handled")
	}
	if !s.Toggle("Site-1", false) {
		t.Fatal("Site-1 not handled")
	}
	if got := s.Checked().Layout; !slices.Contains(got, "Site-1") {
		t.Errorf("Site-1 not restored: %v", got)
	}
}

func TestReloadDatasets(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeDataset(t, dir, "curve_0.json", curveAt(100, 200))
	writeDataset(t, dir, "curve_1.json", curveAt(-50, 0))
	writeDataset(t, dir, "curve_2.json", curveAt(100, 200))
	writeDataset(t, dir, "site_contour_0.json", dataset.Contour{})
	writeDataset(t, dir, "readme.txt", "ignored")

	var log bytes.Buffer
	s := newSession(t, Options{Logger: &log})
	if err := s.ReloadDatasets(dir); err != nil {
		t.Fatalf("ReloadDatasets: %v", err)
	}

	f := s.Field()
	if len(f.Ungrouped) != 0 {
		t.Errorf("ungrouped = %v, want empty", f.Ungrouped)
	}
	if got := s.SitePartition(); !reflect.DeepEqual(got, [][]int{{0, 2}, {1}}) {
		t.Errorf("partition = %v", got)
	}
	if got := len(s.VisibleCurves()); got != 3 {
		t.Errorf("visible curves = %d, want 3", got)
	}
	if got := len(s.VisibleSiteContours()); got != 1 {
		t.Errorf("visible site contours = %d, want 1", got)
	}

	s.Toggle("TrajectoryWell-1", true)
	curves := s.VisibleCurves()
	if len(curves) != 2 || curves[0].Index != 0 || curves[1].Index != 2 {
		t.Errorf("visible curves after hide = %+v", curves)
	}
	if !strings.Contains(log.String(), "3 curves") {
		t.Errorf("log = %q", log.String())
	}
}

func TestReloadDatasetsLeavesSessionOnError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeDataset(t, dir, "curve_0.json", curveAt(0, 0))
	writeDataset(t, dir, "curve_2.json", curveAt(0, 0))

	s := newSession(t, Options{Wells: 2})
	if err := s.ReloadDatasets(dir); err == nil {
		t.Fatal("expected error for gap in curve indices")
	}
	if got := s.Field().Ungrouped; !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("field changed: %v", got)
	}
	if err := s.ReloadDatasets(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestKickoffListener(t *testing.T) {
	t.Parallel()
	var log bytes.Buffer
	s := newSession(t, Options{Wells: 3, Logger: &log})

	s.UpdateKickoff(events.CurvesData{Index: 1, PKX: 5, PKY: 6, PKZ: -300})
	s.UpdateKickoff(events.CurvesData{Index: 1, PKX: 7, PKY: 8, PKZ: -350})
	got := s.Kickoffs()
	if len(got) != 1 || got[1].PKZ != -350 {
		t.Errorf("kickoffs = %+v", got)
	}

	s.LoadPartition([][]int{{0}, {1, 2}})
	s.Drop("oil-field1-site1-well-0", "oil-field1-site2", oilfield.DropInner)
	s.Drop("oil-field1-site2-well-2", "oil-field1-ungrouped", oilfield.DropInner)
	out := log.String()
	for _, want := range []string{"well 0 moved to site 2", "well 2 moved to ungrouped"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestExpanded(t *testing.T) {
	t.Parallel()
	s := newSession(t, Options{Wells: 1})
	views, _ := s.Expanded()
	if !reflect.DeepEqual(views, []string{treeview.LayoutRootID, treeview.ComponentsRootID}) {
		t.Errorf("views = %v", views)
	}
	s.SetExpanded("oil-field1-site1", true)
	_, tree := s.Expanded()
	if !slices.Contains(tree, "oil-field1-site1") {
		t.Errorf("expanded = %v", tree)
	}
	s.SetExpanded("oil-field1-site1", false)
	_, tree = s.Expanded()
	if slices.Contains(tree, "oil-field1-site1") {
		t.Errorf("collapsed node still expanded: %v", tree)
	}
}

func TestTelemetryRecording(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := telemetry.NewEmitter(path)
	if err != nil {
		t.Fatal(err)
	}
	s := newSession(t, Options{Wells: 2, Recorder: telemetry.NewRecorder(em, nil)})
	s.LoadPartition([][]int{{0}, {1}})
	s.Drop("oil-field1-site1-well-0", "oil-field1-site2", oilfield.DropInner)
	s.Toggle("Site-0", true)
	if err := em.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var evt telemetry.Event
		if err := json.Unmarshal([]byte(line), &evt); err != nil {
			t.Fatalf("bad line %q: %v", line, err)
		}
		kinds = append(kinds, evt.Kind)
	}
	want := []string{
		telemetry.KindSessionStart,
		telemetry.KindSiteData,
		telemetry.KindWellRelocated,
		telemetry.KindDrop,
		telemetry.KindToggle,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

package treeview

import (
	"errors"
	"reflect"
	"testing"

	"github.com/papapumpkin/wellplan/internal/partition"
	"github.com/papapumpkin/wellplan/internal/visibility"
)

func newResolver() Resolver {
	return Resolver{
		Registry:  visibility.New(5, 2),
		Partition: partition.New([][]int{{0, 1}, {2, 3, 4}}),
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		want    Ref
		wantErr bool
	}{
		{"Site-3", Ref{Category: "Site", Index: 3}, false},
		{"Trajectory-all", Ref{Category: "Trajectory", All: true}, false},
		{"CostContourWell-12", Ref{Category: "CostContourWell", Index: 12}, false},
		{"Site", Ref{}, true},
		{"Site-x", Ref{}, true},
		{"Site--1", Ref{}, true},
		{"-3", Ref{}, true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.id)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedID) {
				t.Errorf("ParseID(%q) error = %v", tt.id, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseID(%q) = %+v, %v", tt.id, got, err)
		}
	}
}

func TestResolveCostContourWellHides(t *testing.T) {
	t.Parallel()

	r := newResolver()
	if !r.Resolve("CostContourWell-2", true) {
		t.Fatal("not handled")
	}
	if r.Registry.Visible(visibility.WellContour, 2) {
		t.Error("well contour 2 still visible")
	}
	if !r.Registry.Visible(visibility.Curve, 2) {
		t.Error("curve 2 should be untouched")
	}
}

type regFlag struct {
	c visibility.Channel
	i int
}

func allFlags() []regFlag {
	var out []regFlag
	for i := 0; i < 5; i++ {
		out = append(out, regFlag{visibility.Curve, i}, regFlag{visibility.WellContour, i})
	}
	for i := 0; i < 2; i++ {
		out = append(out, regFlag{visibility.SiteContour, i})
	}
	return out
}

func curves(idx ...int) []regFlag {
	out := make([]regFlag, len(idx))
	for n, i := range idx {
		out[n] = regFlag{visibility.Curve, i}
	}
	return out
}

func TestResolveDispatch(t *testing.T) {
	t.Parallel()

	wellContours := []regFlag{
		{visibility.WellContour, 0}, {visibility.WellContour, 1}, {visibility.WellContour, 2},
		{visibility.WellContour, 3}, {visibility.WellContour, 4},
	}
	siteContours := []regFlag{{visibility.SiteContour, 0}, {visibility.SiteContour, 1}}

	tests := []struct {
		id     string
		hidden []regFlag
	}{
		{"Components-all", allFlags()},
		{"Layout-all", allFlags()},
		{"Trajectory-all", curves(0, 1, 2, 3, 4)},
		{"TrajectorySite-0", curves(0, 1)},
		{"TrajectoryWell-4", curves(4)},
		{"CostContour-all", append(append([]regFlag{}, wellContours...), siteContours...)},
		{"CostContourWell-all", wellContours},
		{"SiteCostContour-all", siteContours},
		{"SiteCostContour-1", []regFlag{{visibility.SiteContour, 1}}},
		{"Site-0", []regFlag{
			{visibility.WellContour, 0}, {visibility.WellContour, 1},
			{visibility.Curve, 0}, {visibility.Curve, 1},
			{visibility.SiteContour, 0},
		}},
		{"WellAll-3", []regFlag{{visibility.WellContour, 3}, {visibility.Curve, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			r := newResolver()
			if !r.Resolve(tt.id, true) {
				t.Fatal("not handled")
			}
			want := make(map[regFlag]bool)
			for _, f := range tt.hidden {
				want[f] = true
			}
			for _, f := range allFlags() {
				if got := !r.Registry.Visible(f.c, f.i); got != want[f] {
					t.Errorf("%s[%d] hidden = %v, want %v", f.c, f.i, got, want[f])
				}
			}
		})
	}
}

func TestResolveUncheckedShows(t *testing.T) {
	t.Parallel()

	r := newResolver()
	r.Resolve("Trajectory-all", true)
	r.Resolve("TrajectoryWell-1", false)
	for i := 0; i < 5; i++ {
		if got := r.Registry.Visible(visibility.Curve, i); got != (i == 1) {
			t.Errorf("curve %d visible = %v", i, got)
		}
	}
}

func TestResolveIgnoresUnhandled(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"TrajectoryWell-all", "TrajectorySite-all", "Site-all", "Site-9", "WellAll-all", "Unknown-1", "garbage"} {
		r := newResolver()
		before := r.Registry.Snapshot()
		if r.Resolve(id, true) {
			t.Errorf("Resolve(%q) reported handled", id)
		}
		if !reflect.DeepEqual(before, r.Registry.Snapshot()) {
			t.Errorf("Resolve(%q) changed the registry", id)
		}
	}
}

func TestSiteToggleRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r Resolver)
		first bool
	}{
		{"visible site hidden then shown", func(Resolver) {}, true},
		{"hidden site shown then hidden", func(r Resolver) { r.Resolve("Site-1", true) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newResolver()
			r.Registry.SetHidden(visibility.WellContour, 0, true)
			tt.setup(r)
			before := r.Registry.Snapshot()

			r.Resolve("Site-1", tt.first)
			if reflect.DeepEqual(before, r.Registry.Snapshot()) {
				t.Fatal("first toggle changed nothing")
			}
			r.Resolve("Site-1", !tt.first)
			if !reflect.DeepEqual(before, r.Registry.Snapshot()) {
				t.Errorf("registry not restored: before %v after %v", before, r.Registry.Snapshot())
			}
		})
	}
}

// From the all-visible default, showing a site is a no-op and the
// following hide sticks, so false-then-true does not restore the start.
func TestSiteShowThenHideFromDefault(t *testing.T) {
	t.Parallel()

	r := newResolver()
	before := r.Registry.Snapshot()

	if !r.Resolve("Site-0", false) {
		t.Fatal("Resolve(Site-0, false) not handled")
	}
	if !reflect.DeepEqual(before, r.Registry.Snapshot()) {
		t.Fatalf("showing a visible site changed the registry: %v", r.Registry.Snapshot())
	}

	r.Resolve("Site-0", true)
	for _, w := range []int{0, 1} {
		if r.Registry.Visible(visibility.WellContour, w) || r.Registry.Visible(visibility.Curve, w) {
			t.Errorf("well %d still visible after hiding Site-0", w)
		}
	}
	if r.Registry.Visible(visibility.SiteContour, 0) {
		t.Error("site contour 0 still visible")
	}
	for _, w := range []int{2, 3, 4} {
		if !r.Registry.Visible(visibility.Curve, w) {
			t.Errorf("well %d of Site-1 was hidden", w)
		}
	}
}

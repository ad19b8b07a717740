package oilfield

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/papapumpkin/wellplan/internal/events"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

func newLayout(t *testing.T, wells int) *Layout {
	t.Helper()
	l := New(nil)
	if err := l.Resize(wells); err != nil {
		t.Fatalf("Resize(%d): %v", wells, err)
	}
	return l
}

// assertCovers checks every well 0..n-1 appears exactly once.
func assertCovers(t *testing.T, l *Layout, n int) {
	t.Helper()
	seen := make(map[int]int)
	f := l.Field()
	for _, w := range f.Ungrouped {
		seen[w]++
	}
	for _, s := range f.Sites {
		for _, w := range s.Wells {
			seen[w]++
		}
	}
	if len(seen) != n {
		t.Fatalf("distinct wells = %d, want %d (%+v)", len(seen), n, f)
	}
	for w := 0; w < n; w++ {
		if seen[w] != 1 {
			t.Errorf("well %d appears %d times", w, seen[w])
		}
	}
}

func TestNewStartsWithOneUngroupedWell(t *testing.T) {
	t.Parallel()

	l := New(nil)
	f := l.Field()
	if f.ID != DefaultFieldID || f.Name != DefaultFieldName {
		t.Errorf("field = %q/%q", f.ID, f.Name)
	}
	if !reflect.DeepEqual(f.Ungrouped, []int{0}) {
		t.Errorf("Ungrouped = %v, want [0]", f.Ungrouped)
	}
	if len(f.Sites) != 0 {
		t.Errorf("Sites = %v, want none", f.Sites)
	}
}

func TestResize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		steps []int
		want  []int
	}{
		{"grow", []int{3, 5}, []int{0, 1, 2, 3, 4}},
		{"shrink removes highest", []int{5, 2}, []int{0, 1}},
		{"idempotent", []int{4, 4}, []int{0, 1, 2, 3}},
		{"to zero", []int{3, 0}, []int{}},
		{"grow shrink grow", []int{6, 1, 3}, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New(nil)
			for _, n := range tt.steps {
				if err := l.Resize(n); err != nil {
					t.Fatalf("Resize(%d): %v", n, err)
				}
				assertCovers(t, l, n)
			}
			if got := l.Field().Ungrouped; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ungrouped = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResizeNegativeIsNoop(t *testing.T) {
	t.Parallel()

	l := newLayout(t, 3)
	err := l.Resize(-1)
	if !errors.Is(err, ErrNegativeWellCount) {
		t.Fatalf("Resize(-1) error = %v, want ErrNegativeWellCount", err)
	}
	assertCovers(t, l, 3)
}

func TestResizeRejectsTooManyWells(t *testing.T) {
	t.Parallel()

	l := newLayout(t, 3)
	if err := l.Resize(wellgeom.MaxWells); err != nil {
		t.Fatalf("Resize(MaxWells): %v", err)
	}
	err := l.Resize(wellgeom.MaxWells + 1)
	if !errors.Is(err, ErrTooManyWells) {
		t.Fatalf("Resize(MaxWells+1) error = %v, want ErrTooManyWells", err)
	}
	assertCovers(t, l, wellgeom.MaxWells)
}

func TestResizeShrinkLargeField(t *testing.T) {
	t.Parallel()

	// LoadPartition has no size cap, so it can seed a field far above MaxWells.
	const n = 100000
	groups := [][]int{make([]int, 0, n/2), make([]int, 0, n/2)}
	for w := 0; w < n; w++ {
		groups[w%2] = append(groups[w%2], w)
	}
	l := New(nil)
	l.LoadPartition(groups)
	l.field.Ungrouped = []int{n}

	start := time.Now()
	if err := l.Resize(10); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("shrinking %d wells took %v", n, elapsed)
	}
	f := l.Field()
	if len(f.Ungrouped) != 0 {
		t.Errorf("Ungrouped = %v, want empty", f.Ungrouped)
	}
	want := []Site{{ID: 1, Wells: []int{0, 2, 4, 6, 8}}, {ID: 2, Wells: []int{1, 3, 5, 7, 9}}}
	if !reflect.DeepEqual(f.Sites, want) {
		t.Errorf("Sites = %+v, want %+v", f.Sites, want)
	}
}

func TestResizeShrinkRemovesHighestAcrossContainers(t *testing.T) {
	t.Parallel()

	l := newLayout(t, 5)
	l.LoadPartition([][]int{{0, 4}, {1, 3}})
	if err := l.MoveWell(1, 2, NoSite, true); err != nil {
		t.Fatal(err)
	}
	// Wells: ungrouped [1], site1 [0 4], site2 [3]; well 2 is no longer present.
	if err := l.Resize(2); err != nil {
		t.Fatal(err)
	}
	f := l.Field()
	if !reflect.DeepEqual(f.Ungrouped, []int{1}) {
		t.Errorf("Ungrouped = %v, want [1]", f.Ungrouped)
	}
	if !reflect.DeepEqual(f.Sites[0].Wells, []int{0}) || len(f.Sites[1].Wells) != 0 {
		t.Errorf("Sites = %+v", f.Sites)
	}
}

func TestGroupingScenario(t *testing.T) {
	t.Parallel()

	l := newLayout(t, 3)
	if got := l.Field().Ungrouped; !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("Ungrouped = %v", got)
	}
	if err := l.Resize(5); err != nil {
		t.Fatal(err)
	}
	l.LoadPartition([][]int{{0, 1}, {2, 3, 4}})

	f := l.Field()
	wantSites := []Site{{ID: 1, Wells: []int{0, 1}}, {ID: 2, Wells: []int{2, 3, 4}}}
	if !reflect.DeepEqual(f.Sites, wantSites) || len(f.Ungrouped) != 0 {
		t.Fatalf("after load: %+v", f)
	}

	if err := l.MoveWell(1, 1, 2, false); err != nil {
		t.Fatalf("MoveWell: %v", err)
	}
	wantSites = []Site{{ID: 1, Wells: []int{0}}, {ID: 2, Wells: []int{1, 2, 3, 4}}}
	if got := l.Field().Sites; !reflect.DeepEqual(got, wantSites) {
		t.Errorf("after move: %+v, want %+v", got, wantSites)
	}
}

func TestMoveWellErrorsLeaveFieldUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		well        int
		from, to    int
		toUngrouped bool
		wantErr     error
	}{
		{"well absent from source", 2, 1, NoSite, true, ErrWellNotFound},
		{"unknown source site", 0, 9, 2, false, ErrSiteNotFound},
		{"unknown destination site", 0, 1, 7, false, ErrSiteNotFound},
		{"no destination", 0, 1, NoSite, false, ErrSiteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := newLayout(t, 4)
			l.LoadPartition([][]int{{0, 1}, {2, 3}})
			before := l.Field()

			err := l.MoveWell(tt.well, tt.from, tt.to, tt.toUngrouped)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if after := l.Field(); !reflect.DeepEqual(before, after) {
				t.Errorf("field changed: before %+v after %+v", before, after)
			}
		})
	}
}

func TestMoveWellPublishesOnSuccessOnly(t *testing.T) {
	t.Parallel()

	bus := events.NewBus(nil)
	l := New(bus)
	if err := l.Resize(3); err != nil {
		t.Fatal(err)
	}
	l.LoadPartition([][]int{{0}, {1, 2}})

	var got []events.WellRelocated
	events.Subscribe(bus, events.WellSiteTopic, func(w events.WellRelocated) error {
		got = append(got, w)
		return nil
	})

	if err := l.MoveWell(2, 2, 1, false); err != nil {
		t.Fatal(err)
	}
	if err := l.MoveWell(0, 1, NoSite, true); err != nil {
		t.Fatal(err)
	}
	_ = l.MoveWell(5, 1, 2, false)

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0].WellNumber != 2 || got[0].ToUngrouped || got[0].ToSiteID == nil || *got[0].ToSiteID != 1 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].WellNumber != 0 || !got[1].ToUngrouped || got[1].ToSiteID != nil {
		t.Errorf("second = %+v", got[1])
	}
	assertCovers(t, l, 3)
}

func TestAttachReloadsPartition(t *testing.T) {
	t.Parallel()

	bus := events.NewBus(nil)
	l := newLayout(t, 4)
	unsub := l.Attach(bus)

	events.Publish(bus, events.SiteDataTopic, events.SiteData{Sites: [][]int{{3, 1}, {0, 2}}})

	want := [][]int{{1, 3}, {0, 2}}
	if got := l.Groups(); !reflect.DeepEqual(got, want) {
		t.Errorf("Groups = %v, want %v", got, want)
	}

	unsub()
	events.Publish(bus, events.SiteDataTopic, events.SiteData{Sites: [][]int{{0, 1, 2, 3}}})
	if got := l.Groups(); !reflect.DeepEqual(got, want) {
		t.Errorf("after unsubscribe Groups = %v, want %v", got, want)
	}
}

func TestFieldIsDeepCopy(t *testing.T) {
	t.Parallel()

	l := newLayout(t, 2)
	l.LoadPartition([][]int{{0, 1}})
	f := l.Field()
	f.Sites[0].Wells[0] = 99
	if got := l.Field().Sites[0].Wells[0]; got != 0 {
		t.Errorf("mutating copy changed layout: %d", got)
	}
}

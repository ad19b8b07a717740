package partition

import (
	"reflect"
	"testing"
)

func TestNewSortsAndCopies(t *testing.T) {
	t.Parallel()

	groups := [][]int{{4, 2, 3}, {1, 0}}
	p := New(groups)
	groups[0][0] = 99

	want := [][]int{{2, 3, 4}, {0, 1}}
	if got := p.Sites(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sites() = %v, want %v", got, want)
	}
}

func TestMembersAndSiteOf(t *testing.T) {
	t.Parallel()

	p := New([][]int{{0, 1}, {2, 3, 4}})

	tests := []struct {
		well     int
		wantSite int
		wantOK   bool
	}{
		{0, 0, true},
		{1, 0, true},
		{4, 1, true},
		{5, 0, false},
	}
	for _, tt := range tests {
		site, ok := p.SiteOf(tt.well)
		if ok != tt.wantOK || (ok && site != tt.wantSite) {
			t.Errorf("SiteOf(%d) = (%d, %v), want (%d, %v)", tt.well, site, ok, tt.wantSite, tt.wantOK)
		}
	}

	if m, ok := p.Members(1); !ok || !reflect.DeepEqual(m, []int{2, 3, 4}) {
		t.Errorf("Members(1) = %v, %v", m, ok)
	}
	if _, ok := p.Members(2); ok {
		t.Error("Members(2) should be out of range")
	}
	if _, ok := p.Members(-1); ok {
		t.Error("Members(-1) should be out of range")
	}
}

func TestMembersReturnsCopy(t *testing.T) {
	t.Parallel()

	p := New([][]int{{0, 1}})
	m, _ := p.Members(0)
	m[0] = 42
	if again, _ := p.Members(0); again[0] != 0 {
		t.Error("Members must not expose internal storage")
	}
}

func TestWells(t *testing.T) {
	t.Parallel()

	p := New([][]int{{3, 1}, {0}, {}})
	if got := p.Wells(); !reflect.DeepEqual(got, []int{0, 1, 3}) {
		t.Errorf("Wells() = %v", got)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (empty sites keep their slot)", p.Len())
	}
}

func TestNilPartition(t *testing.T) {
	t.Parallel()

	var p *Partition
	if p.Len() != 0 {
		t.Error("nil partition should have no sites")
	}
	if _, ok := p.SiteOf(0); ok {
		t.Error("nil partition should not contain wells")
	}
}

func TestFromWellheads(t *testing.T) {
	t.Parallel()

	points := []Point{
		{East: 100, North: 200}, // 0
		{East: 500, North: 500}, // 1
		{East: 100, North: 200}, // 2
		{East: 900, North: 100}, // 3
		{East: 500, North: 500}, // 4
	}
	got := FromWellheads(points).Sites()
	want := [][]int{{0, 2}, {1, 4}, {3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromWellheads = %v, want %v", got, want)
	}
}

func TestFromWellheadsEmpty(t *testing.T) {
	t.Parallel()

	if n := FromWellheads(nil).Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestUnionFind(t *testing.T) {
	t.Parallel()

	uf := newUnionFind(6)
	uf.union(0, 1)
	uf.union(2, 3)
	uf.union(1, 3)
	if uf.find(0) != uf.find(2) {
		t.Error("0 and 2 should be connected through 1-3")
	}
	if uf.find(4) == uf.find(0) {
		t.Error("4 should be a singleton")
	}
	if got := len(uf.components()); got != 3 {
		t.Errorf("components = %d, want 3", got)
	}
}

package fieldopt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

func fp(v float64) *float64 { return &v }

func twoWells() wellgeom.WellData {
	return wellgeom.WellData{
		NumberOfWells:     2,
		TargetPoints:      []wellgeom.Point{{X: "100", Y: "200", Z: "-1500"}, {X: "-300", Y: "50", Z: "-1600"}},
		EntryDirections:   []wellgeom.Point{{X: "0", Y: "0", Z: "-1"}, {X: "0.5", Y: "0.5", Z: "-1"}},
		KickoffPoints:     []wellgeom.KickoffPoint{{PKX: fp(0), PKY: fp(0), PKZ: fp(-300)}, {PKX: fp(0), PKY: fp(0), PKZ: fp(-350)}},
		KickoffDirections: []wellgeom.KickoffDirection{{VKX: fp(0), VKY: fp(0), VKZ: fp(-1)}, {VKX: fp(0), VKY: fp(0), VKZ: fp(-1)}},
		DoglegPoints:      []wellgeom.DoglegPoint{{Dogleg: "3", Radius: "572.95"}, {Dogleg: "3,6", Radius: "572.95,286.47"}},
	}
}

func TestBuildProducesExactKeySet(t *testing.T) {
	t.Parallel()

	req, err := Build(twoWells(), DefaultComputeState())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	block, ok := decoded[BlockName]
	if !ok {
		t.Fatalf("missing %q in %s", BlockName, data)
	}

	var got []string
	for k, p := range block {
		got = append(got, k)
		for _, field := range []string{"DESCRIPTION", "UNIT", "VALUE"} {
			if _, ok := p[field]; !ok {
				t.Errorf("%s missing %s", k, field)
			}
		}
	}
	want := append([]string(nil), BlockKeys...)
	sort.Strings(got)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
	if len(want) != 19 {
		t.Errorf("BlockKeys has %d entries, want 19", len(want))
	}
}

func TestBuildAutoValues(t *testing.T) {
	t.Parallel()

	req, err := Build(twoWells(), DefaultComputeState())
	if err != nil {
		t.Fatal(err)
	}
	b := req.Block

	if got := b[KeyWellNo].Value; !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("WellNo = %v", got)
	}
	if got := b[KeyXRange].Value; got != [2]float64{-2500, 2500} {
		t.Errorf("XRange = %v", got)
	}
	if got := b[KeyPKM].Value; got != [2]float64{-100, 125} {
		t.Errorf("PKM = %v", got)
	}
	if got := b[KeyCstRadiusM].Value; got != 572.95 {
		t.Errorf("cst_radiusM = %v", got)
	}
	if got := b[KeyDLSM].Value; !reflect.DeepEqual(got, [][]float64{{3}, {3, 6}}) {
		t.Errorf("DLSM = %v", got)
	}
	if got := b[KeyPKzM].Value; !reflect.DeepEqual(got, []float64{-300, -350}) {
		t.Errorf("PKzM = %v", got)
	}
	if got := b[KeyResolution].Value; got != DefaultResolution {
		t.Errorf("resolution = %v", got)
	}
}

func TestBuildManualSettings(t *testing.T) {
	t.Parallel()

	cs := DefaultComputeState()
	cs.Ranges.X = Setting{Mode: ModeManual, Value: "-1000, 1000"}
	cs.Ranges.WellNo = Setting{Mode: ModeManual, Value: "2"}
	cs.Ranges.Resolution = Setting{Mode: ModeManual, Value: "25"}

	req, err := Build(twoWells(), cs)
	if err != nil {
		t.Fatal(err)
	}
	if got := req.Block[KeyXRange].Value; got != [2]float64{-1000, 1000} {
		t.Errorf("XRange = %v", got)
	}
	if got := req.Block[KeyWellNo].Value; !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("WellNo = %v", got)
	}
	if got := req.Block[KeyResolution].Value; got != 25.0 {
		t.Errorf("resolution = %v", got)
	}
}

func TestBuildRejectsInconsistentInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*wellgeom.WellData, *ComputeState)
	}{
		{"short targets", func(d *wellgeom.WellData, _ *ComputeState) { d.TargetPoints = d.TargetPoints[:1] }},
		{"bad coordinate", func(d *wellgeom.WellData, _ *ComputeState) { d.TargetPoints[0].X = "east" }},
		{"bad well number", func(_ *wellgeom.WellData, cs *ComputeState) { cs.Ranges.WellNo = Setting{Mode: ModeManual, Value: "3"} }},
		{"inverted range", func(_ *wellgeom.WellData, cs *ComputeState) { cs.Ranges.Y = Setting{Mode: ModeManual, Value: "5,1"} }},
		{"one value range", func(_ *wellgeom.WellData, cs *ComputeState) { cs.Ranges.Y = Setting{Mode: ModeManual, Value: "5"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, cs := twoWells(), DefaultComputeState()
			tt.mutate(&d, &cs)
			if _, err := Build(d, cs); !errors.Is(err, ErrInconsistentInput) {
				t.Errorf("Build error = %v, want ErrInconsistentInput", err)
			}
		})
	}
}

func TestLoadInput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.toml")
	content := `
[wells]
numberOfWells = 1

[[wells.targetPoints]]
x = "1"
y = "2"
z = "-3"

[compute]
cluster_max = 6
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := LoadInput(path)
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if in.Wells.NumberOfWells != 1 || in.Wells.TargetPoints[0].Z != "-3" {
		t.Errorf("wells = %+v", in.Wells)
	}
	if in.Compute.ClusterMax != 6 || in.Compute.ClusterMin != 1 || in.Compute.Ranges.WellNo.Mode != ModeAll {
		t.Errorf("compute = %+v", in.Compute)
	}
}

func TestClientSubmit(t *testing.T) {
	t.Parallel()

	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != SubmitPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"queued","data":{"job":"42"}}`))
	}))
	defer srv.Close()

	req, err := Build(twoWells(), DefaultComputeState())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(ClientConfig{BaseURL: srv.URL}, nil)
	resp, err := c.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !resp.Success || string(resp.Data) != `{"job":"42"}` {
		t.Errorf("response = %+v", resp)
	}
	if _, ok := gotBody[BlockName]; !ok {
		t.Errorf("server did not receive the input block: %v", gotBody)
	}
}

func TestClientSubmitError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"bad block"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL}, nil)
	resp, err := c.Submit(context.Background(), Request{Block: InputBlock{}})
	if !errors.Is(err, ErrSolver) {
		t.Fatalf("Submit error = %v, want ErrSolver", err)
	}
	if resp.Message != "bad block" {
		t.Errorf("message = %q", resp.Message)
	}
}

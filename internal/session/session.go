// Package session wires one oilfield layout to its visibility registry,
// site partition, dataset catalog and display trees, and keeps them
// consistent across structural mutations.
//
// Every mutation (well count, partition load, drop, dataset reload) ends
// with a rebuild: the partition is re-derived from the layout's sites, the
// registry is extended to cover every known well and site, and both
// display trees are replaced wholesale.
package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/events"
	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/partition"
	"github.com/papapumpkin/wellplan/internal/telemetry"
	"github.com/papapumpkin/wellplan/internal/treeview"
	"github.com/papapumpkin/wellplan/internal/visibility"
)

// Options configures a new Session.
type Options struct {
	// Wells is the initial well count. Zero keeps the single default well.
	Wells     int
	WellNames []string
	// Logger receives informational messages. If nil, they are discarded.
	Logger io.Writer
	// Recorder mirrors session activity into telemetry. May be nil.
	Recorder *telemetry.Recorder
}

// CheckedKeys lists the checked node ids of both display trees.
type CheckedKeys struct {
	Components []string `json:"components"`
	Layout     []string `json:"layout"`
}

// Session is the in-process oilfield core. It is safe for concurrent use;
// a single mutex serializes every caller.
type Session struct {
	mu         sync.Mutex
	bus        *events.Bus
	layout     *oilfield.Layout
	registry   *visibility.Registry
	part       *partition.Partition
	catalog    *dataset.Catalog
	ids        *treeview.IDCollector
	components *treeview.Node
	layoutTree *treeview.Node
	rec        *telemetry.Recorder
	logger     io.Writer
	detach     []func()

	kickoffs *kickoffTable
}

// New creates a session with opts.Wells wells, all ungrouped.
func New(opts Options) (*Session, error) {
	bus := events.NewBus(opts.Logger)
	layout := oilfield.New(bus)
	layout.Logger = opts.Logger
	layout.SetWellNames(opts.WellNames)

	s := &Session{
		bus:      bus,
		layout:   layout,
		catalog:  dataset.NewCatalog(),
		ids:      treeview.NewIDCollector(),
		rec:      opts.Recorder,
		logger:   opts.Logger,
		kickoffs: newKickoffTable(),
	}
	s.detach = append(s.detach,
		layout.Attach(bus),
		s.kickoffs.attach(bus, s.logf),
	)
	if opts.Recorder != nil {
		s.detach = append(s.detach, opts.Recorder.Attach(bus))
	}

	if opts.Wells > 0 {
		if err := layout.Resize(opts.Wells); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}
	s.registry = visibility.New(layout.WellCount(), 0)
	s.rebuild()
	s.rec.Record(telemetry.KindSessionStart, map[string]int{"wells": layout.WellCount()})
	return s, nil
}

// Close detaches every bus subscriber the session installed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.detach {
		d()
	}
	s.detach = nil
}

// rebuild re-derives the partition and both display trees. Callers hold mu.
func (s *Session) rebuild() {
	s.part = partition.New(s.layout.Groups())
	n := s.layout.WellCount()
	s.registry.Ensure(visibility.Curve, n)
	s.registry.Ensure(visibility.WellContour, n)
	s.registry.Ensure(visibility.SiteContour, s.part.Len())

	b := treeview.Builder{Wells: s.layout.AllWells(), Partition: s.part, IDs: s.ids}
	s.components = b.Components()
	s.layoutTree = b.Layout()
}

// SetWellCount resizes the field to n wells.
func (s *Session) SetWellCount(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.layout.WellCount()
	if err := s.layout.Resize(n); err != nil {
		return fmt.Errorf("session: set well count: %w", err)
	}
	s.rebuild()
	s.rec.Record(telemetry.KindResize, map[string]int{"from": from, "to": n})
	return nil
}

// LoadPartition replaces the field's sites with groups. The partition is
// broadcast on the bus and applied by the layout's subscriber.
func (s *Session) LoadPartition(groups [][]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events.Publish(s.bus, events.SiteDataTopic, events.SiteData{Sites: groups})
	s.rebuild()
}

// Drop moves the well node draggingID relative to dropID.
func (s *Session) Drop(draggingID, dropID string, dt oilfield.DropType) oilfield.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.layout.HandleDropByID(draggingID, dropID, dt)
	if n.Moved() {
		s.rebuild()
	}
	s.rec.Record(telemetry.KindDrop, map[string]string{
		"dragging": draggingID,
		"drop":     dropID,
		"type":     string(dt),
		"level":    string(n.Level),
		"message":  n.Message,
	})
	return n
}

// ReloadDatasets replaces the catalog with the contents of dir. When the
// directory holds curves, the field is resized to the curve count and the
// wellhead partition is loaded. On error the session is unchanged.
func (s *Session) ReloadDatasets(dir string) error {
	cat, err := dataset.Load(dir)
	if err != nil {
		return fmt.Errorf("session: reload datasets: %w", err)
	}
	contours, siteContours, curves := cat.Counts()
	var sites [][]int
	if curves > 0 {
		p, err := cat.SitePartition()
		if err != nil {
			return fmt.Errorf("session: reload datasets: %w", err)
		}
		sites = p.Sites()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat
	if curves > 0 {
		if err := s.layout.Resize(curves); err != nil {
			return fmt.Errorf("session: reload datasets: %w", err)
		}
		events.Publish(s.bus, events.SiteDataTopic, events.SiteData{Sites: sites})
	}
	s.rebuild()
	s.logf("session: loaded %d contours, %d site contours, %d curves from %s\n", contours, siteContours, curves, dir)
	s.rec.Record(telemetry.KindDatasetReload, map[string]any{
		"dir":          dir,
		"contours":     contours,
		"siteContours": siteContours,
		"curves":       curves,
	})
	return nil
}

// Toggle applies a checkbox click on a display-tree node. checked is the
// node's state before the click. It reports whether the id was handled.
func (s *Session) Toggle(id string, checked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := treeview.Resolver{Registry: s.registry, Partition: s.part}.Resolve(id, checked)
	s.rec.Record(telemetry.KindToggle, map[string]any{"id": id, "checked": checked, "handled": ok})
	return ok
}

// UpdateKickoff broadcasts a new kickoff location for one well.
func (s *Session) UpdateKickoff(d events.CurvesData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events.Publish(s.bus, events.CurvesDataTopic, d)
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		fmt.Fprintf(s.logger, format, args...)
	}
}

package telemetry

import (
	"fmt"
	"io"

	"github.com/papapumpkin/wellplan/internal/events"
)

// Recorder mirrors bus traffic into an Emitter.
type Recorder struct {
	emitter *Emitter
	// Logger receives write failures. If nil, they are discarded.
	Logger io.Writer
}

// NewRecorder creates a Recorder writing to emitter. A nil emitter makes
// every recording a no-op.
func NewRecorder(emitter *Emitter, logger io.Writer) *Recorder {
	return &Recorder{emitter: emitter, Logger: logger}
}

// Attach subscribes the recorder to every well-known topic on bus and
// returns a function that removes those subscriptions.
func (r *Recorder) Attach(bus *events.Bus) func() {
	unsubs := []func(){
		events.Subscribe(bus, events.WellSiteTopic, func(p events.WellRelocated) error {
			return r.emitter.Record(KindWellRelocated, p)
		}),
		events.Subscribe(bus, events.SiteDataTopic, func(p events.SiteData) error {
			return r.emitter.Record(KindSiteData, p)
		}),
		events.Subscribe(bus, events.CurvesDataTopic, func(p events.CurvesData) error {
			return r.emitter.Record(KindCurvesData, p)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Record writes one event. Write failures go to Logger.
func (r *Recorder) Record(kind string, data any) {
	if r == nil {
		return
	}
	if err := r.emitter.Record(kind, data); err != nil {
		r.logf("telemetry: %s: %v\n", kind, err)
	}
}

func (r *Recorder) logf(format string, args ...any) {
	if r.Logger != nil {
		fmt.Fprintf(r.Logger, format, args...)
	}
}

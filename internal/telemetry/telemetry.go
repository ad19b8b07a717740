// Package telemetry provides a JSONL event stream recording how an oilfield
// layout evolves during a session. Resizes, relocations, partition reloads,
// kickoff updates and visibility toggles are each written as one structured
// JSON line, making sessions auditable and replayable.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds identify the type of telemetry event.
const (
	KindSessionStart  = "session_start"
	KindResize        = "resize"
	KindWellRelocated = "well_relocated"
	KindSiteData      = "site_data"
	KindCurvesData    = "curves_data"
	KindDrop          = "drop"
	KindToggle        = "toggle"
	KindDatasetReload = "dataset_reload"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag, the session it belongs to and arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	SessionID string    `json:"session,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file      *os.File
	enc       *json.Encoder
	sessionID string
	now       func() time.Time
	mu        sync.Mutex
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it does.
// Every emitter gets a fresh session id.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file:      f,
		enc:       json.NewEncoder(f),
		sessionID: uuid.NewString(),
		now:       time.Now,
	}, nil
}

// SessionID returns the id stamped on events that carry none. A nil
// Emitter has an empty session id.
func (e *Emitter) SessionID() string {
	if e == nil {
		return ""
	}
	return e.sessionID
}

// Emit writes a single event to the JSONL file. A zero timestamp is set to
// the current time and an empty session id to the emitter's own.
// Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if evt.SessionID == "" {
		evt.SessionID = e.sessionID
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record emits an event of the given kind with data attached.
func (e *Emitter) Record(kind string, data any) error {
	return e.Emit(Event{Kind: kind, Data: data})
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

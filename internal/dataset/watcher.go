package dataset

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // Dataset file written or created
	ChangeRemoved                    // Dataset file deleted or renamed away
)

// Change is a settled change to one dataset file.
type Change struct {
	Kind   ChangeKind
	Family Family
	Index  int
	File   string
}

// Watcher monitors a dataset directory and reports changes to dataset
// files once they have been quiet for the debounce interval.
type Watcher struct {
	Dir      string
	Changes  <-chan Change
	Debounce time.Duration

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// NewWatcher creates a watcher for dir. Call Start to begin watching.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan Change, 16)
	return &Watcher{
		Dir:      dir,
		Changes:  ch,
		Debounce: DefaultDebounce,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.emit(file)
				}
				return
			}
			if _, _, ok := ParseFileName(event.Name); !ok {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for file, t := range pending {
				if now.Sub(t) >= w.Debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) emit(file string) {
	fam, idx, _ := ParseFileName(file)
	kind := ChangeModified
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		kind = ChangeRemoved
	}
	w.changes <- Change{Kind: kind, Family: fam, Index: idx, File: file}
}

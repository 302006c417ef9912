package embedctl

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// WatchEvent describes one observed change while watching a service
type WatchEvent struct {
	// State is the service's active-state after the change
	State State
	// Prev is the state before the change
	Prev State
	// ReloadNeeded is set when the unit file changed on disk, meaning the
	// loaded unit no longer matches it until a daemon-reload
	ReloadNeeded bool
	// Err is set when a state poll failed; the watch keeps running
	Err error
	// At is when the event was observed
	At time.Time
}

// WatchCleanupFunc stops a watch and releases its resources
type WatchCleanupFunc func() error

// Watcher follows a service's state transitions. State changes come from
// periodic polling; unit file edits are picked up via fsnotify on the unit
// directory, since systemd gives no file to watch for the state itself.
type Watcher struct {
	// Interval is the state polling interval
	Interval time.Duration

	// UnitPath is the unit file whose edits trigger ReloadNeeded events
	UnitPath string

	// StateFn reports the current state; defaults to the supervisor's
	StateFn func(context.Context) (State, error)
}

// NewWatcher creates a Watcher for the supervisor's service
func NewWatcher(sup *Supervisor) *Watcher {
	return &Watcher{
		Interval: DefaultWatchInterval,
		UnitPath: filepath.Join(DefaultUnitDir, sup.unit()),
		StateFn:  sup.ActiveState,
	}
}

// Watch starts following the service. It returns a channel of events and a
// cleanup function; the channel is closed after cleanup or context
// cancellation.
func (w *Watcher) Watch(ctx context.Context) (<-chan WatchEvent, WatchCleanupFunc, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &OpError{Op: OpWatch, Target: w.UnitPath, Err: err}
	}

	// Watch the directory, not the file: editors and renameio replace the
	// file, which would drop a direct file watch.
	unitDir := filepath.Dir(w.UnitPath)
	if err := watcher.Add(unitDir); err != nil {
		_ = watcher.Close()
		return nil, nil, &OpError{Op: OpWatch, Target: unitDir, Err: err}
	}

	ch := make(chan WatchEvent, 10)

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	sctx.Go(func(sctx *stopper.Context) error {
		last := StateUnknown
		if st, serr := w.StateFn(ctx); serr == nil {
			last = st
		}

		emit := func(ev WatchEvent) {
			ev.At = time.Now()
			select {
			case ch <- ev:
			case <-sctx.Stopping():
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-sctx.Stopping():
				return nil
			case <-ctx.Done():
				return nil
			case fev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(fev.Name) != filepath.Clean(w.UnitPath) {
					continue
				}
				if fev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					emit(WatchEvent{State: last, Prev: last, ReloadNeeded: true})
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				emit(WatchEvent{State: last, Prev: last, Err: werr})
			case <-ticker.C:
				st, serr := w.StateFn(ctx)
				if serr != nil {
					emit(WatchEvent{State: last, Prev: last, Err: serr})
					continue
				}
				if st != last {
					emit(WatchEvent{State: st, Prev: last})
					last = st
				}
			}
		}
	})

	return ch, cleanup, nil
}

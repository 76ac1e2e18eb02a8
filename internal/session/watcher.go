package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultWatchInterval is how often the watcher re-checks the persisted
// document for external updates.
const DefaultWatchInterval = time.Second

// Watcher polls the session store's content fingerprint at a fixed
// interval and fires a callback when it changes, so a view can recompute
// its derived state when the underlying document was replaced from the
// outside.
type Watcher struct {
	store    *Store
	interval time.Duration
	log      *zap.Logger
}

// NewWatcher creates a Watcher over store. Non-positive intervals use the
// default; a nil logger is replaced with a no-op one.
func NewWatcher(store *Store, interval time.Duration, log *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{store: store, interval: interval, log: log}
}

// Watch blocks until ctx is done, invoking onChange whenever the store's
// fingerprint differs from the last observed one. Fingerprint read errors
// are logged and the previous fingerprint kept, so a transient read
// failure does not trigger a spurious recompute.
func (w *Watcher) Watch(ctx context.Context, onChange func()) {
	last, err := w.store.Fingerprint()
	if err != nil {
		w.log.Warn("initial session fingerprint failed", zap.Error(err))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current, err := w.store.Fingerprint()
			if err != nil {
				w.log.Warn("session fingerprint failed", zap.Error(err))
				continue
			}
			if current != last {
				last = current
				onChange()
			}
		}
	}
}

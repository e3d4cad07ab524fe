package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
)

// DefaultDebounce is the settle window used when no debounce is configured.
const DefaultDebounce = 2 * time.Second

// State is where the watch loop currently is.
type State string

const (
	StateIdle        State = "idle"
	StateDebouncing  State = "debouncing"
	StateReconciling State = "reconciling"
)

// PassFunc runs one reconciliation pass and returns its report.
type PassFunc func(ctx context.Context) (*reconcile.Report, error)

// Options configure the watch loop.
type Options struct {
	// Debounce is how long events must settle before a pass runs.
	// Zero or negative means DefaultDebounce.
	Debounce time.Duration

	// OnReport is called after every completed pass, the initial one
	// included. Optional.
	OnReport func(*reconcile.Report)

	// OnState is called on every state transition. Optional.
	OnState func(State)
}

// Watcher re-runs reconciliation passes when Steam's screenshot storage
// changes. Each pass rebuilds the subscription set from its own report, so
// accounts and games appearing later are picked up without a restart.
type Watcher struct {
	logger   zerolog.Logger
	run      PassFunc
	notify   notifier
	debounce time.Duration
	onReport func(*reconcile.Report)
	onState  func(State)
}

// New creates a watch loop around run, backed by fsnotify.
func New(run PassFunc, opts Options) (*Watcher, error) {
	notify, err := newFsnotifyNotifier()
	if err != nil {
		return nil, err
	}
	return newWithNotifier(run, notify, opts), nil
}

func newWithNotifier(run PassFunc, notify notifier, opts Options) *Watcher {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		logger:   logging.GetLogger("watcher"),
		run:      run,
		notify:   notify,
		debounce: debounce,
		onReport: opts.OnReport,
		onState:  opts.OnState,
	}
}

// Run performs an initial pass, then watches until ctx is cancelled. An
// initial pass failure is fatal; pass failures inside the loop are logged
// and watching continues. A dead notification stream ends the loop with a
// NOTIFY_STREAM_FAILED error.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.notify.Close(); err != nil {
			w.logger.Debug().Err(err).Msg("Closing notifier failed")
		}
	}()

	w.setState(StateReconciling)
	report, err := w.run(ctx)
	if err != nil {
		return err
	}
	w.subscribe(report.WatchRoots)
	w.emit(report)
	w.setState(StateIdle)

	const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watch loop shutting down")
			return nil

		case event, ok := <-w.notify.Events():
			if !ok {
				return errors.New(errors.ErrNotifyStream, "notification event stream closed")
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			w.logger.Debug().
				Str("path", event.Name).
				Str("op", event.Op.String()).
				Msg("Storage changed")
			timer, timerC = w.schedule(timer, timerC)

		case err, ok := <-w.notify.Errors():
			if !ok {
				return errors.New(errors.ErrNotifyStream, "notification error stream closed")
			}
			// Events may have been dropped; schedule a pass to catch up.
			w.logger.Warn().Err(err).Msg("Notifier reported an error")
			timer, timerC = w.schedule(timer, timerC)

		case <-timerC:
			timer = nil
			timerC = nil
			w.setState(StateReconciling)
			report, err := w.run(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error().Err(err).Msg("Pass failed, still watching")
				w.setState(StateIdle)
				continue
			}
			w.subscribe(report.WatchRoots)
			w.emit(report)
			w.setState(StateIdle)
		}
	}
}

// schedule starts the debounce window, or restarts it when already open.
func (w *Watcher) schedule(timer *time.Timer, timerC <-chan time.Time) (*time.Timer, <-chan time.Time) {
	if timer == nil {
		w.setState(StateDebouncing)
		timer = time.NewTimer(w.debounce)
		return timer, timer.C
	}
	timer.Reset(w.debounce)
	return timer, timerC
}

// subscribe points the notifier at every watch root from the last pass.
// Adding an already-watched directory is a no-op, and a root that vanished
// since the pass is only worth a debug line; its account will simply stop
// producing events.
func (w *Watcher) subscribe(roots []string) {
	for _, root := range roots {
		if err := w.notify.Add(root); err != nil {
			w.logger.Debug().Err(err).Str("path", root).Msg("Could not watch directory")
			continue
		}
	}
	w.logger.Debug().Int("roots", len(roots)).Msg("Subscriptions refreshed")
}

func (w *Watcher) emit(report *reconcile.Report) {
	if w.onReport != nil {
		w.onReport(report)
	}
}

func (w *Watcher) setState(state State) {
	if w.onState != nil {
		w.onState(state)
	}
}

package watcher

import (
	"github.com/fsnotify/fsnotify"

	"github.com/arthur-debert/steamshots/pkg/errors"
)

// notifier is the slice of fsnotify the watch loop needs. Tests drive the
// loop with a fake; production wraps a real fsnotify.Watcher.
type notifier interface {
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Add(name string) error
	Close() error
}

type fsnotifyNotifier struct {
	w *fsnotify.Watcher
}

func newFsnotifyNotifier() (*fsnotifyNotifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotifyStream,
			"failed to create filesystem notifier")
	}
	return &fsnotifyNotifier{w: w}, nil
}

func (n *fsnotifyNotifier) Events() <-chan fsnotify.Event { return n.w.Events }
func (n *fsnotifyNotifier) Errors() <-chan error          { return n.w.Errors }
func (n *fsnotifyNotifier) Add(name string) error         { return n.w.Add(name) }
func (n *fsnotifyNotifier) Close() error                  { return n.w.Close() }

package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"imagehelper/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change is a filesystem event inside the watched folder
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Notifier reports changes to the files of a single folder using fsnotify
type Notifier struct {
	// Folder currently watched
	dir string

	// Channel to receive changes
	events chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the watched folder
	mutex sync.RWMutex

	// Whether the event loop is running
	running bool

	wg sync.WaitGroup
}

// NewNotifier creates a notifier. Events are buffered so that bursts
// collapse into a few notifications instead of blocking the loop.
func NewNotifier() (*Notifier, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Notifier{
		events:    make(chan Change, 16),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Watch switches the notifier to dir, dropping the previously watched folder,
// and starts the event loop on first use.
func (n *Notifier) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.fsWatcher == nil {
		return fmt.Errorf("notifier is closed")
	}
	if n.dir == dir {
		return nil
	}
	if n.dir != "" {
		// The old folder may already be gone; fsnotify drops it either way
		_ = n.fsWatcher.Remove(n.dir)
	}
	if err := n.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	n.dir = dir
	log.LogWithFields(log.F("directory", dir)).Debug("watching folder")

	if !n.running {
		n.running = true
		n.wg.Add(1)
		go n.loop(n.fsWatcher)
	}
	return nil
}

// Events returns the channel that delivers changes
func (n *Notifier) Events() <-chan Change {
	return n.events
}

// Dir returns the folder being watched
func (n *Notifier) Dir() string {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.dir
}

func (n *Notifier) loop(fsWatcher *fsnotify.Watcher) {
	defer n.wg.Done()
	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			// Permission changes do not affect what the gallery shows
			if event.Op == fsnotify.Chmod {
				continue
			}
			change := Change{Path: event.Name, Op: event.Op, Timestamp: time.Now()}

			// Send non-blockingly; a full channel already guarantees a rescan
			select {
			case n.events <- change:
			default:
				log.LogWithFields(log.F("file", event.Name)).Debug("change channel full, coalesced event")
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-n.stopChan:
			return
		}
	}
}

// Close stops the event loop and releases the fsnotify watcher. The Events
// channel is closed afterwards.
func (n *Notifier) Close() {
	n.mutex.Lock()
	if n.fsWatcher == nil {
		n.mutex.Unlock()
		return
	}
	close(n.stopChan)
	if err := n.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	n.fsWatcher = nil
	n.mutex.Unlock()

	n.wg.Wait()
	close(n.events)
}

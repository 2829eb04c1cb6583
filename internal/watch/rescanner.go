package watch

import (
	"sync"
	"time"

	"imagehelper/internal/log"
)

// Reason says what triggered a rescan.
type Reason int

const (
	ReasonTimer Reason = iota
	ReasonChange
)

func (r Reason) String() string {
	if r == ReasonChange {
		return "change"
	}
	return "timer"
}

// DefaultSettle is how long change events are collected before one rescan.
const DefaultSettle = 300 * time.Millisecond

// Status represents the current state of the rescanner
type Status struct {
	Running  bool      // Whether a folder is being rescanned
	Folder   string    // The active folder
	Watching bool      // Whether change events are delivered
	LastScan time.Time // When the callback last fired
	Scans    int       // Callback count since Start
}

// Rescanner keeps the active folder fresh: it calls scan on a fixed interval
// and, when change events are enabled, shortly after the folder changes.
// scan runs on a background goroutine; callers marshal it to their UI thread.
// Start and Stop must be called from a single goroutine.
type Rescanner struct {
	interval    time.Duration
	settle      time.Duration
	watchEvents bool
	scan        func(Reason)

	ticker   *Ticker
	notifier *Notifier
	stopChan chan struct{}
	wg       sync.WaitGroup

	// Lock for status fields
	mutex    sync.RWMutex
	folder   string
	running  bool
	watching bool
	lastScan time.Time
	scans    int
}

// NewRescanner creates a rescanner that calls scan every interval.
func NewRescanner(interval time.Duration, watchEvents bool, scan func(Reason)) *Rescanner {
	return &Rescanner{
		interval:    interval,
		settle:      DefaultSettle,
		watchEvents: watchEvents,
		scan:        scan,
	}
}

// SetSettle changes how long change events are coalesced.
func (r *Rescanner) SetSettle(d time.Duration) {
	r.settle = d
}

// Start begins rescanning folder, replacing any previous folder. A change
// watcher that cannot be set up is logged and the timer runs alone.
func (r *Rescanner) Start(folder string) error {
	r.Stop()

	r.ticker = NewTicker(r.interval, func() { r.fire(ReasonTimer) })
	if err := r.ticker.Start(); err != nil {
		return err
	}

	r.mutex.Lock()
	r.folder = folder
	r.running = true
	r.scans = 0
	r.mutex.Unlock()

	if r.watchEvents {
		if err := r.startNotifier(folder); err != nil {
			log.LogWithFields(log.F("folder", folder), log.F("error", err.Error())).
				Warn("change notifications unavailable, relying on timer")
		} else {
			r.mutex.Lock()
			r.watching = true
			r.mutex.Unlock()
		}
	}
	return nil
}

func (r *Rescanner) startNotifier(folder string) error {
	n, err := NewNotifier()
	if err != nil {
		return err
	}
	if err := n.Watch(folder); err != nil {
		n.Close()
		return err
	}
	r.notifier = n
	r.stopChan = make(chan struct{})
	r.wg.Add(1)
	go r.processEvents(n.Events(), r.stopChan)
	return nil
}

// processEvents coalesces bursts of changes into a single rescan once the
// folder has been quiet for the settle time.
func (r *Rescanner) processEvents(events <-chan Change, stop <-chan struct{}) {
	defer r.wg.Done()

	settle := time.NewTimer(r.settle)
	settle.Stop()
	pending := false

	for {
		select {
		case change, ok := <-events:
			if !ok {
				return
			}
			log.LogWithFields(log.F("file", change.Path), log.F("op", change.Op.String())).Debug("folder changed")
			pending = true
			settle.Reset(r.settle)

		case <-settle.C:
			if pending {
				pending = false
				r.fire(ReasonChange)
			}

		case <-stop:
			settle.Stop()
			return
		}
	}
}

func (r *Rescanner) fire(reason Reason) {
	r.mutex.Lock()
	r.lastScan = time.Now()
	r.scans++
	r.mutex.Unlock()

	r.scan(reason)
}

// Stop halts rescanning. It is safe to call when not running.
func (r *Rescanner) Stop() {
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.notifier != nil {
		r.notifier.Close()
		r.notifier = nil
	}
	r.wg.Wait()

	r.mutex.Lock()
	r.running = false
	r.watching = false
	r.mutex.Unlock()
}

// Status returns the current status of the rescanner
func (r *Rescanner) Status() Status {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return Status{
		Running:  r.running,
		Folder:   r.folder,
		Watching: r.watching,
		LastScan: r.lastScan,
		Scans:    r.scans,
	}
}

package watch

import (
	"fmt"
	"sync"
	"time"
)

// Ticker calls a function at a fixed interval until stopped.
type Ticker struct {
	interval time.Duration
	fn       func()

	mutex    sync.Mutex
	stopChan chan struct{}
	running  bool
	wg       sync.WaitGroup
}

func NewTicker(interval time.Duration, fn func()) *Ticker {
	return &Ticker{interval: interval, fn: fn}
}

// Start begins ticking. The first call happens one interval from now.
func (t *Ticker) Start() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.running {
		return fmt.Errorf("ticker already running")
	}
	if t.interval <= 0 {
		return fmt.Errorf("invalid ticker interval %v", t.interval)
	}
	t.running = true
	t.stopChan = make(chan struct{})

	t.wg.Add(1)
	go t.run(t.stopChan)
	return nil
}

func (t *Ticker) run(stop <-chan struct{}) {
	defer t.wg.Done()
	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			t.fn()
		case <-stop:
			return
		}
	}
}

// Stop halts the ticker and waits for an in-flight call to return.
func (t *Ticker) Stop() {
	t.mutex.Lock()
	if !t.running {
		t.mutex.Unlock()
		return
	}
	close(t.stopChan)
	t.running = false
	t.mutex.Unlock()

	t.wg.Wait()
}

// IsRunning returns whether the ticker is active
func (t *Ticker) IsRunning() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.running
}

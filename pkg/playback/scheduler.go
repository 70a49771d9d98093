package playback

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned cancel func is
// called. Cancel must be idempotent.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler runs tasks on a time.Ticker in their own goroutine.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() { once.Do(func() { close(stop) }) }
}

// ManualScheduler runs tasks only when Tick is called. It drives playback
// in tests and in headless runs where wall-clock pacing is unwanted.
type ManualScheduler struct {
	mu    sync.Mutex
	next  int
	tasks map[int]manualTask
}

type manualTask struct {
	interval time.Duration
	fn       func()
}

// NewManualScheduler creates an idle scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]manualTask)}
}

// Every implements Scheduler.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.tasks[id] = manualTask{interval: interval, fn: fn}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tasks, id)
	}
}

// Active returns the number of scheduled tasks.
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Intervals returns the interval of every scheduled task, oldest first.
func (m *ManualScheduler) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.sortedIDs()
	out := make([]time.Duration, len(ids))
	for i, id := range ids {
		out[i] = m.tasks[id].interval
	}
	return out
}

// Tick runs every scheduled task once and returns how many ran. Tasks may
// cancel themselves while running.
func (m *ManualScheduler) Tick() int {
	m.mu.Lock()
	ids := m.sortedIDs()
	fns := make([]func(), len(ids))
	for i, id := range ids {
		fns[i] = m.tasks[id].fn
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func (m *ManualScheduler) sortedIDs() []int {
	ids := make([]int, 0, len(m.tasks))
	for id := range m.tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

package heartbeat

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by explicit Advance calls. Callbacks run
// synchronously on the goroutine calling Advance, in due-time order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	seq      int
	interval time.Duration
	next     time.Time
	fn       func()
	handle   *Handle
}

// NewManual creates a manual scheduler whose clock starts at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock without firing any heartbeat
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
	for _, task := range m.tasks {
		task.next = t.Add(task.interval)
	}
}

// Every arms fn to run each time the clock passes another interval
func (m *Manual) Every(interval time.Duration, fn func()) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	task := &manualTask{
		seq:      m.seq,
		interval: interval,
		next:     m.now.Add(interval),
		fn:       fn,
	}
	task.handle = newHandle(func() { m.remove(task) })
	if interval <= 0 {
		task.handle.stopped.Store(true)
		return task.handle
	}
	m.tasks = append(m.tasks, task)
	return task.handle
}

// Advance moves the clock forward by d, firing every heartbeat that comes due
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		task := m.nextDueLocked(target)
		if task == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = task.next
		task.next = task.next.Add(task.interval)
		m.mu.Unlock()

		if !task.handle.Cancelled() {
			task.fn()
		}
	}
}

// Active returns the number of heartbeats that are still armed
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) nextDueLocked(target time.Time) *manualTask {
	var due *manualTask
	for _, task := range m.tasks {
		if task.next.After(target) {
			continue
		}
		if due == nil || task.next.Before(due.next) || (task.next.Equal(due.next) && task.seq < due.seq) {
			due = task
		}
	}
	return due
}

func (m *Manual) remove(task *manualTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t == task {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

// Package sched is the cooperative scheduler every handler runs on. One
// goroutine (Run) executes posted work, periodic tasks and the idle hook, so a
// handler always runs to completion before the next unit starts.
package sched

import (
	"context"
	"sync"
	"time"

	"circuitplay-go/bus"
)

const defaultQueueLen = 32

type periodic struct {
	every time.Duration
	due   time.Duration
	fn    func()
}

type Scheduler struct {
	mu    sync.Mutex
	queue []func()
	qLen  int
	wake  chan struct{}

	// Touched only from the run goroutine (or before Run starts).
	tasks []*periodic
	idle  func()
	live  bool
	tick  time.Duration
}

// New returns a scheduler with a bounded run queue and the given tick
// resolution for periodic tasks.
func New(queueLen int, tick time.Duration) *Scheduler {
	if queueLen <= 0 {
		queueLen = defaultQueueLen
	}
	if tick <= 0 {
		tick = 6 * time.Millisecond
	}
	return &Scheduler{
		qLen: queueLen,
		wake: make(chan struct{}, 1),
		tick: tick,
	}
}

// Init attaches the scheduler to the bus; from here on listeners may register.
func (s *Scheduler) Init(b *bus.Bus) {
	b.AttachScheduler(s)
	s.live = true
}

func (s *Scheduler) Live() bool { return s.live }

// Post queues fn for the run goroutine. Safe from any goroutine;
// false means the queue is full and fn was dropped.
func (s *Scheduler) Post(fn func()) bool {
	s.mu.Lock()
	if len(s.queue) >= s.qLen {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// Every runs fn each period, first after one period. Call before Run.
func (s *Scheduler) Every(period time.Duration, fn func()) {
	if period < s.tick {
		period = s.tick
	}
	s.tasks = append(s.tasks, &periodic{every: period, due: period, fn: fn})
}

// SetIdleHook installs the lowest-priority background callback.
func (s *Scheduler) SetIdleHook(fn func()) { s.idle = fn }

// RunPending drains the run queue, including work posted while draining,
// and returns how many units ran.
func (s *Scheduler) RunPending() int {
	n := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return n
		}
		fn := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()
		fn()
		n++
	}
}

// Tick runs every periodic task due at elapsed (time since Run started),
// then drains the queue. Missed periods are coalesced into one call.
func (s *Scheduler) Tick(elapsed time.Duration) {
	for _, t := range s.tasks {
		if elapsed < t.due {
			continue
		}
		t.fn()
		for t.due <= elapsed {
			t.due += t.every
		}
	}
	s.RunPending()
}

// Idle calls the idle hook if nothing else is runnable.
func (s *Scheduler) Idle() {
	s.mu.Lock()
	busy := len(s.queue) > 0
	s.mu.Unlock()
	if !busy && s.idle != nil {
		s.idle()
	}
}

// Run drives the scheduler until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	start := time.Now()
	tk := time.NewTicker(s.tick)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			s.Tick(time.Since(start))
		case <-s.wake:
			s.RunPending()
		}
		s.Idle()
	}
}

package sched

import (
	"context"
	"testing"
	"time"

	"circuitplay-go/bus"
	"circuitplay-go/errcode"
	"circuitplay-go/types"
)

func TestInitMakesBusLive(t *testing.T) {
	b := bus.New(nil)
	s := New(4, time.Millisecond)
	if _, err := b.Listen(types.IDButtonA, types.EvtAny, func(bus.Event) {}); err != errcode.SchedulerNotReady {
		t.Fatalf("err=%v, want scheduler_not_ready", err)
	}
	s.Init(b)
	if !s.Live() {
		t.Fatal("scheduler not live after Init")
	}
	if _, err := b.Listen(types.IDButtonA, types.EvtAny, func(bus.Event) {}); err != nil {
		t.Fatalf("Listen: %v", err)
	}
}

func TestPostOrderAndBound(t *testing.T) {
	s := New(2, time.Millisecond)
	var got []int
	if !s.Post(func() { got = append(got, 1) }) || !s.Post(func() { got = append(got, 2) }) {
		t.Fatal("post rejected")
	}
	if s.Post(func() {}) {
		t.Fatal("third post should be rejected by a queue of 2")
	}
	if n := s.RunPending(); n != 2 {
		t.Fatalf("RunPending = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("order = %v", got)
	}
}

func TestWorkPostedWhileDrainingRuns(t *testing.T) {
	s := New(4, time.Millisecond)
	ran := false
	s.Post(func() { s.Post(func() { ran = true }) })
	if n := s.RunPending(); n != 2 || !ran {
		t.Fatalf("n=%d ran=%v", n, ran)
	}
}

func TestPeriodicTasks(t *testing.T) {
	s := New(4, time.Millisecond)
	n := 0
	s.Every(10*time.Millisecond, func() { n++ })

	s.Tick(5 * time.Millisecond)
	if n != 0 {
		t.Fatal("ran before first period")
	}
	s.Tick(10 * time.Millisecond)
	s.Tick(12 * time.Millisecond)
	if n != 1 {
		t.Fatalf("n=%d after 12ms, want 1", n)
	}
	s.Tick(45 * time.Millisecond) // missed periods coalesce
	if n != 2 {
		t.Fatalf("n=%d after 45ms, want 2", n)
	}
	s.Tick(50 * time.Millisecond)
	if n != 3 {
		t.Fatalf("n=%d after 50ms, want 3", n)
	}
}

func TestIdleOnlyWhenQueueEmpty(t *testing.T) {
	s := New(4, time.Millisecond)
	idle := 0
	s.SetIdleHook(func() { idle++ })
	s.Post(func() {})
	s.Idle()
	if idle != 0 {
		t.Fatal("idle hook ran with pending work")
	}
	s.RunPending()
	s.Idle()
	if idle != 1 {
		t.Fatalf("idle=%d, want 1", idle)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(4, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ran := make(chan struct{}, 1)
	go func() { s.Run(ctx); close(done) }()
	s.Post(func() { ran <- struct{}{} })

	select {
	case <-ran:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("posted work never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Run did not return after cancel")
	}
}

package multibutton

import (
	"testing"
	"time"

	"circuitplay-go/bus"
	"circuitplay-go/drivers/button"
	"circuitplay-go/types"
)

type fakePin struct{ level bool }

func (p *fakePin) Get() bool { return p.level }

type nopTicker struct{}

func (nopTicker) Every(time.Duration, func()) {}

// queue stands in for the scheduler: posted work runs after the current
// dispatch, when drain is called.
type queue struct{ fns []func() }

func (q *queue) Post(fn func()) bool { q.fns = append(q.fns, fn); return true }

func (q *queue) drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

type rig struct {
	now    int64 // ms
	pa, pb *fakePin
	a, b   *button.Button
	ab     *MultiButton
	group  *Group
	q      *queue
	got    map[types.ID][]uint16
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{pa: &fakePin{}, pb: &fakePin{}, got: map[types.ID][]uint16{}}
	b := bus.New(func() int64 { return r.now * 1000 })
	r.q = &queue{}
	b.AttachScheduler(r.q)
	ms := func() int64 { return r.now }
	r.a = button.New(b, nopTicker{}, ms, r.pa, types.IDButtonA, types.ButtonAllEvents, true)
	r.b = button.New(b, nopTicker{}, ms, r.pb, types.IDButtonB, types.ButtonAllEvents, true)
	r.ab = New(b, types.IDButtonA, types.IDButtonB, types.IDButtonAB)
	if err := r.ab.Init(); err != nil {
		t.Fatal(err)
	}
	r.group = NewGroup(r.a, r.b, r.ab)
	for _, id := range []types.ID{types.IDButtonA, types.IDButtonB, types.IDButtonAB} {
		id := id
		b.Listen(id, types.EvtAny, func(ev bus.Event) { r.got[id] = append(r.got[id], ev.Value) })
	}
	return r
}

func (r *rig) run(a, b bool, d time.Duration) {
	r.pa.level, r.pb.level = a, b
	for i := 0; i < int(d/button.TickPeriod); i++ {
		r.now += button.TickPeriod.Milliseconds()
		r.a.Tick(r.now)
		r.b.Tick(r.now)
		r.q.drain()
	}
}

func (r *rig) count(id types.ID, v uint16) int {
	n := 0
	for _, x := range r.got[id] {
		if x == v {
			n++
		}
	}
	return n
}

func expect(t *testing.T, name string, got []uint16, want ...uint16) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s events = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s events = %v, want %v", name, got, want)
		}
	}
}

func TestIndependentModeButtonsReportFullSets(t *testing.T) {
	r := newRig(t)
	if r.group.Mode() != ModeIndependent {
		t.Fatal("group must start independent")
	}
	r.run(true, false, 150*time.Millisecond)
	r.run(false, false, 150*time.Millisecond)
	r.run(false, true, 150*time.Millisecond)
	r.run(false, false, 150*time.Millisecond)

	expect(t, "A", r.got[types.IDButtonA], types.ButtonEvtDown, types.ButtonEvtUp, types.ButtonEvtClick)
	expect(t, "B", r.got[types.IDButtonB], types.ButtonEvtDown, types.ButtonEvtUp, types.ButtonEvtClick)
	if len(r.got[types.IDButtonAB]) != 0 {
		t.Fatalf("AB events on solo presses: %v", r.got[types.IDButtonAB])
	}
}

func TestIndependentModeChordRacesAsPrimitiveClicks(t *testing.T) {
	r := newRig(t)
	r.run(true, true, 150*time.Millisecond)
	r.run(false, false, 150*time.Millisecond)

	if r.count(types.IDButtonA, types.ButtonEvtClick) != 1 || r.count(types.IDButtonB, types.ButtonEvtClick) != 1 {
		t.Fatalf("A=%v B=%v", r.got[types.IDButtonA], r.got[types.IDButtonB])
	}
	expect(t, "AB", r.got[types.IDButtonAB], types.ButtonEvtDown, types.ButtonEvtUp)
}

func TestCompositeModeChordYieldsSingleCompositeClick(t *testing.T) {
	r := newRig(t)
	if !r.group.EnableComposite() {
		t.Fatal("EnableComposite reported no change")
	}
	r.run(true, true, 150*time.Millisecond)
	r.run(false, false, 150*time.Millisecond)

	expect(t, "A", r.got[types.IDButtonA], types.ButtonEvtDown, types.ButtonEvtUp)
	expect(t, "B", r.got[types.IDButtonB], types.ButtonEvtDown, types.ButtonEvtUp)
	expect(t, "AB", r.got[types.IDButtonAB], types.ButtonEvtDown, types.ButtonEvtUp, types.ButtonEvtClick)
}

func TestCompositeModeSoloPressStillClicks(t *testing.T) {
	r := newRig(t)
	r.group.EnableComposite()
	r.run(true, false, 150*time.Millisecond)
	r.run(false, false, 150*time.Millisecond)
	r.run(false, true, 1200*time.Millisecond)
	r.run(false, false, 150*time.Millisecond)

	expect(t, "A", r.got[types.IDButtonA], types.ButtonEvtDown, types.ButtonEvtUp, types.ButtonEvtClick)
	expect(t, "B", r.got[types.IDButtonB], types.ButtonEvtDown, types.ButtonEvtUp, types.ButtonEvtLongClick)
	if len(r.got[types.IDButtonAB]) != 0 {
		t.Fatalf("AB events on solo presses: %v", r.got[types.IDButtonAB])
	}
}

func TestStaggeredChordSuppressesTrailingClick(t *testing.T) {
	r := newRig(t)
	r.group.EnableComposite()
	r.run(true, false, 60*time.Millisecond)
	r.run(true, true, 150*time.Millisecond)
	r.run(false, true, 150*time.Millisecond) // A released first
	r.run(false, false, 150*time.Millisecond)

	if n := r.count(types.IDButtonAB, types.ButtonEvtClick); n != 1 {
		t.Fatalf("AB clicks = %d, want 1", n)
	}
	if r.count(types.IDButtonA, types.ButtonEvtClick)+r.count(types.IDButtonB, types.ButtonEvtClick) != 0 {
		t.Fatalf("constituent clicks leaked: A=%v B=%v", r.got[types.IDButtonA], r.got[types.IDButtonB])
	}
}

func TestEnableCompositeIsOneWay(t *testing.T) {
	r := newRig(t)
	r.group.EnableComposite()
	if r.group.EnableComposite() {
		t.Fatal("second EnableComposite reported a change")
	}
	if r.group.Mode() != ModeCompositeAware {
		t.Fatalf("mode = %v", r.group.Mode())
	}
	if r.a.EventConfiguration() != types.ButtonSimpleEvents ||
		r.b.EventConfiguration() != types.ButtonSimpleEvents ||
		r.ab.EventConfiguration() != types.ButtonAllEvents {
		t.Fatal("event configurations not switched together")
	}
}

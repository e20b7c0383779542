package accel

import (
	"errors"
	"testing"
	"time"

	"circuitplay-go/bus"
	"circuitplay-go/types"

	"tinygo.org/x/drivers"
)

type fakeReader struct {
	s      types.AccelSample
	reads  int
	err    error
	cfgErr error
}

func (f *fakeReader) ReadAcceleration() (int32, int32, int32, error) {
	f.reads++
	return f.s.X, f.s.Y, f.s.Z, f.err
}
func (f *fakeReader) Configure() error { return f.cfgErr }

type fakeTicker struct{ fns []func() }

func (t *fakeTicker) Every(_ time.Duration, fn func()) { t.fns = append(t.fns, fn) }
func (t *fakeTicker) fire() {
	for _, fn := range t.fns {
		fn()
	}
}

type inline struct{}

func (inline) Post(fn func()) bool { fn(); return true }

func newDevice(t *testing.T, r *fakeReader) (*Device, *fakeTicker, map[types.ID][]uint16) {
	t.Helper()
	b := bus.New(nil)
	b.AttachScheduler(inline{})
	got := map[types.ID][]uint16{}
	for _, id := range []types.ID{types.IDAccelerometer, types.IDGesture} {
		id := id
		b.Listen(id, types.EvtAny, func(ev bus.Event) { got[id] = append(got[id], ev.Value) })
	}
	tk := &fakeTicker{}
	d := New(b, tk, r, 0)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	return d, tk, got
}

func TestLazyUntilFirstSample(t *testing.T) {
	r := &fakeReader{s: types.AccelSample{Z: -1000}}
	d, tk, got := newDevice(t, r)

	for i := 0; i < 10; i++ {
		tk.fire()
	}
	if d.Active() || r.reads != 0 {
		t.Fatalf("inactive device read %d samples", r.reads)
	}

	d.UpdateSample()
	if !d.Active() || r.reads != 1 || len(got[types.IDAccelerometer]) != 1 {
		t.Fatalf("after UpdateSample: active=%v reads=%d events=%v", d.Active(), r.reads, got[types.IDAccelerometer])
	}
	tk.fire()
	if r.reads != 2 {
		t.Fatalf("periodic sampling did not start: reads=%d", r.reads)
	}
}

func TestUpdateImplementsSensor(t *testing.T) {
	r := &fakeReader{}
	d, _, _ := newDevice(t, r)
	if err := d.Update(drivers.Temperature); err != nil || r.reads != 0 || d.Active() {
		t.Fatal("non-acceleration measurement must be ignored")
	}
	r.err = errors.New("nack")
	if err := d.Update(drivers.Acceleration); err == nil {
		t.Fatal("read error not returned")
	}
	if !d.Active() || d.Samples() != 0 {
		t.Fatalf("active=%v samples=%d", d.Active(), d.Samples())
	}
}

func TestPostureGestureAfterDamping(t *testing.T) {
	r := &fakeReader{s: types.AccelSample{Z: -1000}}
	d, tk, got := newDevice(t, r)
	d.UpdateSample()
	for i := 0; i < gestureDamping-1; i++ {
		tk.fire()
	}
	if len(got[types.IDGesture]) != 0 {
		t.Fatal("gesture before damping window")
	}
	tk.fire()
	tk.fire()
	if g := got[types.IDGesture]; len(g) != 1 || g[0] != types.GestureFaceUp {
		t.Fatalf("gestures = %v, want [face up]", g)
	}

	r.s = types.AccelSample{X: 600, Z: -700}
	for i := 0; i < 10; i++ {
		tk.fire()
	}
	if g := got[types.IDGesture]; len(g) != 2 || g[1] != types.GestureTiltRight || d.Gesture() != types.GestureTiltRight {
		t.Fatalf("gestures = %v", g)
	}
}

func TestShake(t *testing.T) {
	r := &fakeReader{s: types.AccelSample{Z: -1000}}
	d, tk, got := newDevice(t, r)
	d.UpdateSample()
	for i := 0; i < shakeCount; i++ {
		if i%2 == 0 {
			r.s.X = 1500
		} else {
			r.s.X = -1500
		}
		tk.fire()
	}
	found := false
	for _, g := range got[types.IDGesture] {
		found = found || g == types.GestureShake
	}
	if !found {
		t.Fatalf("no shake in %v", got[types.IDGesture])
	}
}

func TestPosture(t *testing.T) {
	for _, c := range []struct {
		s    types.AccelSample
		want uint16
	}{
		{types.AccelSample{}, types.GestureFreefall},
		{types.AccelSample{X: -500, Z: -800}, types.GestureTiltLeft},
		{types.AccelSample{Y: 500, Z: -800}, types.GestureTiltUp},
		{types.AccelSample{Y: -500, Z: -800}, types.GestureTiltDown},
		{types.AccelSample{Z: 1000}, types.GestureFaceDown},
		{types.AccelSample{Z: -1000}, types.GestureFaceUp},
		{types.AccelSample{X: 100, Y: 100, Z: -700}, types.GestureNone},
	} {
		if got := posture(c.s); got != c.want {
			t.Fatalf("posture(%+v) = %d, want %d", c.s, got, c.want)
		}
	}
}

func TestInitPropagatesConfigureError(t *testing.T) {
	b := bus.New(nil)
	d := New(b, &fakeTicker{}, &fakeReader{cfgErr: errors.New("no ack")}, 0)
	if err := d.Init(); err == nil {
		t.Fatal("expected configure error")
	}
}

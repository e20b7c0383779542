package pixels

import "testing"

type recTx struct{ frames [][]byte }

func (r *recTx) Write(b []byte) (int, error) {
	r.frames = append(r.frames, append([]byte(nil), b...))
	return len(b), nil
}

func TestSetShowAndBlank(t *testing.T) {
	tx := &recTx{}
	s := New(tx, 10)
	if s.Len() != 10 || s.FrameSize() != 30 {
		t.Fatalf("Len=%d FrameSize=%d", s.Len(), s.FrameSize())
	}
	s.Set(1, 0x10, 0x20, 0x30)
	s.Set(10, 1, 1, 1) // out of range, ignored
	if err := s.Show(); err != nil {
		t.Fatal(err)
	}
	f := tx.frames[0]
	if f[3] != 0x20 || f[4] != 0x10 || f[5] != 0x30 {
		t.Fatalf("pixel 1 = % x, want GRB 20 10 30", f[3:6])
	}

	s.Blank()
	for _, b := range tx.frames[1] {
		if b != 0 {
			t.Fatalf("blank frame not zero: % x", tx.frames[1])
		}
	}
	s.Show()
	if tx.frames[2][3] != 0x20 {
		t.Fatal("Blank must not clear stored colours")
	}
}

// Package dmesg is the in-memory diagnostic log. Lines accumulate in a Store
// and are drained to a byte sink from the scheduler's idle hook.
package dmesg

import (
	"circuitplay-go/errcode"
	"circuitplay-go/x/conv"
)

// Size is the store capacity in bytes.
const Size = 1024

// Store is a fixed-size log buffer. When full, the oldest bytes are
// discarded to make room.
type Store struct {
	buf [Size]byte
	ptr int
}

func (s *Store) Len() int      { return s.ptr }
func (s *Store) Bytes() []byte { return s.buf[:s.ptr] }
func (s *Store) reset()        { s.ptr = 0 }
func (s *Store) at(i int) byte { return s.buf[i] }

// Write implements io.Writer. It never fails.
func (s *Store) Write(p []byte) (int, error) {
	n := len(p)
	if n >= Size {
		copy(s.buf[:], p[n-Size:])
		s.ptr = Size
		return n, nil
	}
	if over := s.ptr + n - Size; over > 0 {
		copy(s.buf[:], s.buf[over:s.ptr])
		s.ptr -= over
	}
	copy(s.buf[s.ptr:], p)
	s.ptr += n
	return n, nil
}

// Log appends one line built from parts, space separated, like println.
// Supported parts: string, error, bool and the integer kinds.
func (s *Store) Log(parts ...any) {
	var line [128]byte
	b := line[:0]
	for i, p := range parts {
		if i > 0 {
			b = append(b, ' ')
		}
		switch v := p.(type) {
		case string:
			b = append(b, v...)
		case error:
			b = append(b, v.Error()...)
		case bool:
			if v {
				b = append(b, "true"...)
			} else {
				b = append(b, "false"...)
			}
		case int:
			b = conv.AppendInt(b, int64(v))
		case int32:
			b = conv.AppendInt(b, int64(v))
		case int64:
			b = conv.AppendInt(b, v)
		case uint8:
			b = conv.AppendUint(b, uint64(v))
		case uint16:
			b = conv.AppendUint(b, uint64(v))
		case uint32:
			b = conv.AppendUint(b, uint64(v))
		case uint64:
			b = conv.AppendUint(b, v)
		default:
			b = append(b, '?')
		}
	}
	b = append(b, '\n')
	s.Write(b)
}

// -----------------------------------------------------------------------------
// Flusher
// -----------------------------------------------------------------------------

// Sink is the single-byte output primitive used for draining.
type Sink interface {
	Putc(c byte) error
}

// Flusher drains a Store into a Sink bound once at bring-up.
type Flusher struct {
	store *Store
	sink  Sink
}

func NewFlusher(s *Store) *Flusher { return &Flusher{store: s} }

// Bind sets the sink. It may be called once.
func (f *Flusher) Bind(sink Sink) error {
	if sink == nil {
		return errcode.InvalidParams
	}
	if f.sink != nil {
		return errcode.AlreadyBound
	}
	f.sink = sink
	return nil
}

// Flush emits every buffered byte in order and empties the store, even when
// the sink fails on some of them. With no sink bound yet the bytes stay
// buffered.
func (f *Flusher) Flush() int {
	if f.store.ptr == 0 || f.sink == nil {
		return 0
	}
	n := f.store.ptr
	for i := 0; i < n; i++ {
		// Best effort: a byte the sink rejects is lost, the rest still go out.
		_ = f.sink.Putc(f.store.at(i))
	}
	f.store.reset()
	return n
}

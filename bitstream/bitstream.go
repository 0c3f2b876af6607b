// Package bitstream implements a finite, ordered, double-ended sequence
// of bits, with a lossy-tail byte round trip and the prefix-cutting
// operation the partitioner's encoder relies on to consume Huffman
// codewords off the front of a payload.
//
// Bits flow MSB-first when derived from a byte: byte b expands to
// bits b7, b6, ..., b0.
package bitstream

import (
	"bytes"
	"container/list"

	"github.com/icza/bitio"

	"github.com/wjx/zencoder/zerrs"
)

// Stream is a deque of bits. The zero value is an empty stream, ready to
// use. A Stream is not safe for concurrent use; callers give each
// encode/decode call its own Stream, per the sharing model in spec.md §5.
type Stream struct {
	bits *list.List // of bool
}

// New returns an empty Stream.
func New() *Stream {
	return &Stream{bits: list.New()}
}

func (s *Stream) ensure() {
	if s.bits == nil {
		s.bits = list.New()
	}
}

// FromBytes builds a Stream holding 8*len(b) bits, MSB-first per byte.
func FromBytes(b []byte) *Stream {
	s := New()
	if len(b) == 0 {
		return s
	}
	r := bitio.NewReader(bytes.NewReader(b))
	for i := 0; i < len(b)*8; i++ {
		bit, err := r.ReadBool()
		if err != nil {
			// Cannot happen: we only ever read exactly len(b)*8 bits from
			// a reader backed by exactly len(b) bytes.
			panic(err)
		}
		s.bits.PushBack(bit)
	}
	return s
}

// Push appends a bit at the tail.
func (s *Stream) Push(bit bool) {
	s.ensure()
	s.bits.PushBack(bit)
}

// Pop removes and returns the head bit, or ErrBitstreamUnderflow if empty.
func (s *Stream) Pop() (bool, error) {
	s.ensure()
	front := s.bits.Front()
	if front == nil {
		return false, zerrs.ErrBitstreamUnderflow
	}
	s.bits.Remove(front)
	return front.Value.(bool), nil
}

// Front peeks the head bit without removing it.
func (s *Stream) Front() (bool, error) {
	s.ensure()
	front := s.bits.Front()
	if front == nil {
		return false, zerrs.ErrBitstreamUnderflow
	}
	return front.Value.(bool), nil
}

// Recover prepends a bit at the head. Used to undo a speculative Pop.
func (s *Stream) Recover(bit bool) {
	s.ensure()
	s.bits.PushFront(bit)
}

// Size returns the number of bits currently held.
func (s *Stream) Size() int {
	s.ensure()
	return s.bits.Len()
}

// IsEmpty reports whether the stream holds no bits.
func (s *Stream) IsEmpty() bool {
	return s.Size() == 0
}

// ToBytes consumes 8*floor(size/8) head bits, MSB-first per byte, and
// returns them packed as bytes. Any trailing sub-byte bits remain in the
// stream untouched.
func (s *Stream) ToBytes() []byte {
	s.ensure()
	n := s.bits.Len() / 8
	if n == 0 {
		return nil
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < n*8; i++ {
		front := s.bits.Front()
		s.bits.Remove(front)
		if err := w.WriteBool(front.Value.(bool)); err != nil {
			// Cannot happen: buf is an in-memory bytes.Buffer.
			panic(err)
		}
	}
	return buf.Bytes()
}

// Cut removes matching leading bits from both s and other. It pops from
// both sides only while their heads compare equal, and stops the moment
// either stream is exhausted or a mismatch is seen. It does not skip past
// a mismatch: on unequal fronts it stops immediately without advancing
// either side. Callers in this codebase only ever call Cut when one
// stream's remaining bits are a prefix of the other's (a Huffman
// codeword against the payload it was read from), so a genuine
// non-prefix mismatch never arises in practice.
func (s *Stream) Cut(other *Stream) {
	s.ensure()
	other.ensure()
	for other.bits.Len() > 0 && s.bits.Len() > 0 {
		a := s.bits.Front()
		b := other.bits.Front()
		if a.Value.(bool) == b.Value.(bool) {
			s.bits.Remove(a)
			other.bits.Remove(b)
		} else {
			return
		}
	}
}

// Append moves every bit out of other, in order, onto the tail of s.
// other is left empty.
func (s *Stream) Append(other *Stream) {
	s.ensure()
	other.ensure()
	for other.bits.Len() > 0 {
		front := other.bits.Front()
		other.bits.Remove(front)
		s.bits.PushBack(front.Value.(bool))
	}
}

// String renders the stream as a string of '0'/'1' characters, head first.
func (s *Stream) String() string {
	s.ensure()
	buf := make([]byte, 0, s.bits.Len())
	for e := s.bits.Front(); e != nil; e = e.Next() {
		if e.Value.(bool) {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
	}
	return string(buf)
}

// Bits returns a fresh Stream holding bits, with bits[0] at the head.
// Used by huffman.Tree.GetStringBitStream to build a Stream from a
// walked path.
func Bits(bits []bool) *Stream {
	s := New()
	for _, b := range bits {
		s.bits.PushBack(b)
	}
	return s
}

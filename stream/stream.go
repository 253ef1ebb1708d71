// Package stream provides the position-tracked cursor that parsers consume.
package stream

import "fmt"

// Position is an offset, counted in items, into a Stream.
type Position int

func (p Position) String() string {
	return fmt.Sprintf("%d", int(p))
}

// Stream is a cursor over a sequence of items. The position only moves
// forward through Next, or to an earlier checkpoint through Restore.
//
// A Stream is not safe for concurrent use.
type Stream[I any] struct {
	items []I
	pos   Position
}

// New creates a stream positioned at the first item.
func New[I any](items []I) *Stream[I] {
	return &Stream[I]{items: items}
}

// FromString creates a stream over the runes of s.
func FromString(s string) *Stream[rune] {
	return New([]rune(s))
}

// FromBytes creates a stream over b. The slice is not copied.
func FromBytes(b []byte) *Stream[byte] {
	return New(b)
}

// Next returns the item at the current position and advances past it.
// At end of input it returns false and leaves the position unchanged.
func (s *Stream[I]) Next() (I, bool) {
	if int(s.pos) >= len(s.items) {
		var zero I
		return zero, false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}

// Peek returns the item at the current position without consuming it.
func (s *Stream[I]) Peek() (I, bool) {
	if int(s.pos) >= len(s.items) {
		var zero I
		return zero, false
	}
	return s.items[s.pos], true
}

func (s *Stream[I]) Pos() Position {
	return s.pos
}

// Restore moves the stream back (or forward) to a position previously
// obtained from Pos. It panics if p lies outside [0, Len()].
func (s *Stream[I]) Restore(p Position) {
	if p < 0 || int(p) > len(s.items) {
		panic(fmt.Sprintf("stream: restore to position %d out of range [0, %d]", p, len(s.items)))
	}
	s.pos = p
}

func (s *Stream[I]) Len() int {
	return len(s.items)
}

func (s *Stream[I]) AtEnd() bool {
	return int(s.pos) >= len(s.items)
}

// Remaining returns the items not yet consumed. The result aliases the
// stream's storage and must not be modified.
func (s *Stream[I]) Remaining() []I {
	return s.items[s.pos:]
}

// Items returns every item of the stream, consumed or not.
func (s *Stream[I]) Items() []I {
	return s.items
}

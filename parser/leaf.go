package parser

import "github.com/dhamidi/pcx/stream"

type anyParser[I any] struct{}

// Any returns a parser that consumes and returns the next item. It fails
// only at end of input.
func Any[I any]() Parser[I, I] {
	return anyParser[I]{}
}

func (anyParser[I]) ParseIter(s *stream.Stream[I]) (I, error) {
	item, ok := s.Next()
	if !ok {
		var zero I
		return zero, Expected(s.Pos(), ExpectedAny)
	}
	return item, nil
}

type positionParser[I any] struct{}

// Position returns a parser that succeeds with the current stream position
// without consuming anything.
func Position[I any]() Parser[I, stream.Position] {
	return positionParser[I]{}
}

func (positionParser[I]) ParseIter(s *stream.Stream[I]) (stream.Position, error) {
	return s.Pos(), nil
}

// ValueOnce hands out its value to exactly one attempt.
type ValueOnce[I, O any] struct {
	v    O
	used bool
}

// Value returns a single-use parser that succeeds with v without consuming
// input.
func Value[I, O any](v O) *ValueOnce[I, O] {
	return &ValueOnce[I, O]{v: v}
}

func (p *ValueOnce[I, O]) ParseIterOnce(s *stream.Stream[I]) (O, error) {
	var zero O
	if p.used {
		return zero, ErrConsumed
	}
	p.used = true
	v := p.v
	p.v = zero
	return v, nil
}

// ValueCloner succeeds with a fresh copy of its value on every attempt.
type ValueCloner[I, O any] struct {
	v     O
	clone func(O) O
}

// ValueClone returns a reusable parser that succeeds with clone(v) without
// consuming input. A nil clone returns v by plain assignment, which is
// enough for values that hold no references.
func ValueClone[I, O any](v O, clone func(O) O) *ValueCloner[I, O] {
	return &ValueCloner[I, O]{v: v, clone: clone}
}

func (p *ValueCloner[I, O]) ParseIter(s *stream.Stream[I]) (O, error) {
	if p.clone == nil {
		return p.v, nil
	}
	return p.clone(p.v), nil
}

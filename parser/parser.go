package parser

import "github.com/dhamidi/pcx/stream"

// Parser is a reusable match attempt over a stream of I producing O.
//
// On success the stream has advanced exactly over the consumed items. On
// failure the returned error reports where the mismatch was detected; the
// stream is not rewound; combinators that try alternatives do that.
type Parser[I, O any] interface {
	ParseIter(s *stream.Stream[I]) (O, error)
}

// ParserOnce is a match attempt that may be performed only once, because
// it owns state that cannot be duplicated. After the first call every
// further call returns ErrConsumed.
type ParserOnce[I, O any] interface {
	ParseIterOnce(s *stream.Stream[I]) (O, error)
}

// Func adapts an ordinary function to the Parser interface.
type Func[I, O any] func(s *stream.Stream[I]) (O, error)

func (f Func[I, O]) ParseIter(s *stream.Stream[I]) (O, error) {
	return f(s)
}

// FuncOnce adapts a function to the ParserOnce interface. The function is
// released after its first call.
type FuncOnce[I, O any] struct {
	fn func(s *stream.Stream[I]) (O, error)
}

func NewFuncOnce[I, O any](fn func(s *stream.Stream[I]) (O, error)) *FuncOnce[I, O] {
	return &FuncOnce[I, O]{fn: fn}
}

func (f *FuncOnce[I, O]) ParseIterOnce(s *stream.Stream[I]) (O, error) {
	fn := f.fn
	if fn == nil {
		var zero O
		return zero, ErrConsumed
	}
	f.fn = nil
	return fn(s)
}

// Once lifts a reusable parser into the single-use contract.
func Once[I, O any](p Parser[I, O]) ParserOnce[I, O] {
	return NewFuncOnce(p.ParseIter)
}

// Parse runs p over items from the beginning and returns its output along
// with the position the stream reached.
func Parse[I, O any](p Parser[I, O], items []I) (O, stream.Position, error) {
	s := stream.New(items)
	out, err := p.ParseIter(s)
	return out, s.Pos(), err
}

// ParseAll is like Parse but also fails if input remains after p succeeds.
func ParseAll[I, O any](p Parser[I, O], items []I) (O, error) {
	s := stream.New(items)
	out, err := p.ParseIter(s)
	if err != nil {
		return out, err
	}
	if !s.AtEnd() {
		var zero O
		return zero, Expected(s.Pos(), ExpectedEndOfInput)
	}
	return out, nil
}

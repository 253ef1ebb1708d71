package parser

import (
	"strconv"

	"github.com/dhamidi/pcx/stream"
)

// Seq runs ps in order and collects their outputs. It stops at the first
// failure and returns that error unchanged.
func Seq[I, O any](ps ...Parser[I, O]) Parser[I, []O] {
	return Func[I, []O](func(s *stream.Stream[I]) ([]O, error) {
		out := make([]O, 0, len(ps))
		for _, p := range ps {
			v, err := p.ParseIter(s)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// Or tries each alternative from the same starting position and returns
// the first success. If all fail the stream is restored and the error that
// got furthest is returned; on a tie the later alternative wins.
func Or[I, O any](ps ...Parser[I, O]) Parser[I, O] {
	return Func[I, O](func(s *stream.Stream[I]) (O, error) {
		start := s.Pos()
		var best error
		bestPos := stream.Position(-1)
		for _, p := range ps {
			v, err := p.ParseIter(s)
			if err == nil {
				return v, nil
			}
			pos := s.Pos()
			if pe, ok := AsParseError(err); ok {
				pos = pe.Position
			}
			if pos >= bestPos {
				best, bestPos = err, pos
			}
			s.Restore(start)
		}
		var zero O
		if best == nil {
			return zero, Expected(start, "<alternative>")
		}
		return zero, best
	})
}

// Many applies p until it fails and returns every output. The failed
// attempt is rolled back, so Many itself never fails. Repetition also
// stops when p succeeds without consuming anything.
func Many[I, O any](p Parser[I, O]) Parser[I, []O] {
	return Func[I, []O](func(s *stream.Stream[I]) ([]O, error) {
		return many(s, p, nil)
	})
}

// Many1 is like Many but requires at least one match.
func Many1[I, O any](p Parser[I, O]) Parser[I, []O] {
	return Func[I, []O](func(s *stream.Stream[I]) ([]O, error) {
		first, err := p.ParseIter(s)
		if err != nil {
			return nil, err
		}
		return many(s, p, []O{first})
	})
}

func many[I, O any](s *stream.Stream[I], p Parser[I, O], out []O) ([]O, error) {
	for {
		start := s.Pos()
		v, err := p.ParseIter(s)
		if err != nil {
			s.Restore(start)
			return out, nil
		}
		if s.Pos() == start {
			return out, nil
		}
		out = append(out, v)
	}
}

// Optional succeeds with p's output, or with the zero value and no input
// consumed when p fails. Maybe.Ok reports whether p matched.
func Optional[I, O any](p Parser[I, O]) Parser[I, Maybe[O]] {
	return Func[I, Maybe[O]](func(s *stream.Stream[I]) (Maybe[O], error) {
		start := s.Pos()
		v, err := p.ParseIter(s)
		if err != nil {
			s.Restore(start)
			return Maybe[O]{}, nil
		}
		return Maybe[O]{Value: v, Ok: true}, nil
	})
}

// Maybe is the output of Optional.
type Maybe[O any] struct {
	Value O
	Ok    bool
}

// Attempt runs p and rewinds the stream if it fails. The error is passed
// through unchanged.
func Attempt[I, O any](p Parser[I, O]) Parser[I, O] {
	return Func[I, O](func(s *stream.Stream[I]) (O, error) {
		start := s.Pos()
		v, err := p.ParseIter(s)
		if err != nil {
			s.Restore(start)
		}
		return v, err
	})
}

// Map transforms the output of p.
func Map[I, A, B any](p Parser[I, A], f func(A) B) Parser[I, B] {
	return Func[I, B](func(s *stream.Stream[I]) (B, error) {
		a, err := p.ParseIter(s)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	})
}

// Lazy defers building a parser until its first use, which allows
// recursive grammars.
func Lazy[I, O any](build func() Parser[I, O]) Parser[I, O] {
	var p Parser[I, O]
	return Func[I, O](func(s *stream.Stream[I]) (O, error) {
		if p == nil {
			p = build()
		}
		return p.ParseIter(s)
	})
}

// Named replaces the expected text of any ParseError produced by p. The
// position is kept.
func Named[I, O any](name string, p Parser[I, O]) Parser[I, O] {
	return Func[I, O](func(s *stream.Stream[I]) (O, error) {
		v, err := p.ParseIter(s)
		if err != nil {
			if pe, ok := AsParseError(err); ok {
				return v, Expected(pe.Position, name)
			}
		}
		return v, err
	})
}

// Literal matches want item by item. On mismatch it fails at the position
// after the offending item, like Is, with expected set to the literal.
func Literal[I comparable](want []I, expected string) Parser[I, []I] {
	return Func[I, []I](func(s *stream.Stream[I]) ([]I, error) {
		for _, w := range want {
			item, ok := s.Next()
			if !ok || item != w {
				return nil, Expected(s.Pos(), expected)
			}
		}
		return want, nil
	})
}

// String matches the runes of lit and returns lit.
func String(lit string) Parser[rune, string] {
	return Map(Literal([]rune(lit), strconv.Quote(lit)), func([]rune) string {
		return lit
	})
}

// End succeeds only at end of input.
func End[I any]() Parser[I, struct{}] {
	return Func[I, struct{}](func(s *stream.Stream[I]) (struct{}, error) {
		if !s.AtEnd() {
			return struct{}{}, Expected(s.Pos(), ExpectedEndOfInput)
		}
		return struct{}{}, nil
	})
}

// SeqOnce runs single-use parsers in order. Each one is invoked exactly
// once; parsers after a failure are never invoked and remain unused.
func SeqOnce[I, O any](ps ...ParserOnce[I, O]) ParserOnce[I, []O] {
	return NewFuncOnce(func(s *stream.Stream[I]) ([]O, error) {
		out := make([]O, 0, len(ps))
		for _, p := range ps {
			v, err := p.ParseIterOnce(s)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// MapOnce transforms the output of a single-use parser with a single-use
// function.
func MapOnce[I, A, B any](p ParserOnce[I, A], f func(A) B) ParserOnce[I, B] {
	return NewFuncOnce(func(s *stream.Stream[I]) (B, error) {
		a, err := p.ParseIterOnce(s)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	})
}

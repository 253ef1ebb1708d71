// Package parser provides recursive-descent parser combinators over a
// stream of arbitrary items.
//
// # Contracts
//
// Every parser implements one of two interfaces:
//
//	// Parser may be invoked any number of times.
//	type Parser[I, O any] interface {
//	    ParseIter(s *stream.Stream[I]) (O, error)
//	}
//
//	// ParserOnce owns state that cannot be duplicated; it is spent by
//	// its first attempt and returns ErrConsumed afterwards.
//	type ParserOnce[I, O any] interface {
//	    ParseIterOnce(s *stream.Stream[I]) (O, error)
//	}
//
// A successful attempt advances the stream exactly over what it consumed.
// A failed attempt returns a *ParseError and makes no promise about the
// stream position; Or, Optional, Many and Attempt restore it.
//
// # Primitives
//
// Is and IsNot consume one item and succeed when a predicate holds (or does
// not hold). IsOnce and IsNotOnce are their single-use forms:
//
//	digit := parser.Is(parser.IsDigit)
//	s := stream.FromString("7a")
//	r, err := digit.ParseIter(s) // '7', nil; s.Pos() == 1
//	_, err = digit.ParseIter(s)  // Expected{Position: 2, "<condition>"}
//
// The item is read before the predicate runs, so a mismatch still consumes
// it and the error reports the position after the read. End of input is an
// ordinary mismatch reported at the unchanged position.
//
// # Errors
//
// There is one failure kind, KindExpected. Parsers never log or print
// errors; wrap a parser in Trace to log its attempts at debug level.
//
// # Thread Safety
//
// Streams and parsers are not safe for concurrent use.
package parser

package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/pcx/stream"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// KindExpected means the input at Position did not satisfy Expected.
	KindExpected ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case KindExpected:
		return "expected"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Expected texts used by the built-in parsers.
const (
	ExpectedCondition  = "<condition>"
	ExpectedAny        = "<any>"
	ExpectedEndOfInput = "<end of input>"
)

// ErrConsumed is returned when a single-use parser is invoked a second time.
var ErrConsumed = errors.New("single-use parser already consumed")

// ParseError reports that a match attempt failed.
type ParseError struct {
	Kind     ErrorKind
	Position stream.Position
	Expected string
}

// Expected creates a KindExpected error.
func Expected(pos stream.Position, expected string) *ParseError {
	return &ParseError{
		Kind:     KindExpected,
		Position: pos,
		Expected: expected,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: expected %s", e.Position, e.Expected)
}

// AsParseError unwraps err into a *ParseError if it holds one.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

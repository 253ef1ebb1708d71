package grammar

import (
	"fmt"

	"github.com/dhamidi/pcx/parser"
	"github.com/dhamidi/pcx/stream"
)

// SyntaxError is a parse failure located within the source text.
//
// Location follows the engine's convention: when an item was examined and
// rejected, it points just past that item.
type SyntaxError struct {
	Location stream.Location
	Expected string
	Err      *parser.ParseError
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse error at %s: expected %s", e.Location, e.Expected)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (g *Grammar) syntaxError(src []rune, err error) error {
	pe, ok := parser.AsParseError(err)
	if !ok {
		return err
	}
	loc := stream.Locate(src, pe.Position)
	loc.Filename = g.file
	return &SyntaxError{
		Location: loc,
		Expected: pe.Expected,
		Err:      pe,
	}
}

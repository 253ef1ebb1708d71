package stream

import "fmt"

// Location is a human-readable position within rune input.
type Location struct {
	Filename string
	Offset   int // rune offset
	Line     int // 1-based
	Column   int // 1-based, in runes
}

func (l Location) String() string {
	if l.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Locate converts a stream position over src into a line and column.
// LF, CR and CRLF all end a line. Positions past the end of src are
// clamped to the end.
func Locate(src []rune, p Position) Location {
	end := int(p)
	if end > len(src) {
		end = len(src)
	}
	if end < 0 {
		end = 0
	}
	loc := Location{Offset: end, Line: 1, Column: 1}
	for i := 0; i < end; i++ {
		switch src[i] {
		case '\n':
			loc.Line++
			loc.Column = 1
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			loc.Line++
			loc.Column = 1
		default:
			loc.Column++
		}
	}
	return loc
}

package lsp

import (
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// toProtocolPosition converts a rune offset into a zero-based line and a
// character offset counted in UTF-16 code units.
func toProtocolPosition(src []rune, offset int) protocol.Position {
	if offset > len(src) {
		offset = len(src)
	}
	var line, char protocol.UInteger
	for i := 0; i < offset; i++ {
		switch src[i] {
		case '\n':
			line++
			char = 0
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			line++
			char = 0
		default:
			n := utf16.RuneLen(src[i])
			if n < 0 {
				n = 1
			}
			char += protocol.UInteger(n)
		}
	}
	return protocol.Position{Line: line, Character: char}
}

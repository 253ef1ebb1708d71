package grammar

import (
	"fmt"
	"strings"

	"github.com/dhamidi/pcx/stream"
)

// Span is the range of input covered by a node.
type Span struct {
	Start stream.Position `json:"start" yaml:"start"`
	End   stream.Position `json:"end" yaml:"end"`
}

// Node is a node in the concrete syntax tree.
//
// Terminals (literal tokens and character ranges) and nodes for lexical
// productions carry Text and no children. Nodes for non-terminal
// productions carry Children.
type Node struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Span     Span    `json:"span" yaml:"span,flow"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsTerminal reports whether n is a leaf.
func (n *Node) IsTerminal() bool {
	return len(n.Children) == 0
}

// String renders the tree as an indented outline.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.Text != "" || n.IsTerminal() {
		fmt.Fprintf(b, "%s %q [%d,%d)\n", n.Kind, n.Text, n.Span.Start, n.Span.End)
	} else {
		fmt.Fprintf(b, "%s [%d,%d)\n", n.Kind, n.Span.Start, n.Span.End)
	}
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}

// Find returns the first node of the given kind in depth-first order.
func (n *Node) Find(kind string) *Node {
	if n.Kind == kind {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// Package grammar compiles EBNF grammars into parser combinators that build
// concrete syntax trees.
//
// Grammars use the notation of golang.org/x/exp/ebnf. Productions whose
// names start with an uppercase letter are non-terminal: when a skip
// production is configured with WithSkip, it is matched and discarded before
// every item inside them. All other productions are lexical: nothing is
// skipped inside them and their nodes carry the matched text instead of
// children.
//
// Compiled grammars are recursive descent without memoization. Alternatives
// are tried in order and the first match wins. A production that reaches
// itself again without consuming input fails instead of looping, so
// left-recursive alternatives never match and should be written with
// repetition.
package grammar

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/ebnf"
)

// Load reads an EBNF grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar reads an EBNF grammar from r.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production reachable from start is defined and
// that every production is reachable from start or one of extra, such as
// the skip production.
func Verify(g ebnf.Grammar, start string, extra ...string) error {
	if len(extra) == 0 {
		return ebnf.Verify(g, start)
	}
	if _, ok := g[start]; !ok {
		return fmt.Errorf("no start production %s", start)
	}

	const root = "Root·"
	alts := ebnf.Alternative{&ebnf.Name{String: start}}
	for _, name := range extra {
		alts = append(alts, &ebnf.Name{String: name})
	}
	withRoot := make(ebnf.Grammar, len(g)+1)
	for name, prod := range g {
		withRoot[name] = prod
	}
	withRoot[root] = &ebnf.Production{Name: &ebnf.Name{String: root}, Expr: alts}
	return ebnf.Verify(withRoot, root)
}

// Option configures Compile.
type Option func(*Grammar)

// WithSkip names a production that is skipped between the items of
// non-terminal productions, typically whitespace and comments.
func WithSkip(name string) Option {
	return func(g *Grammar) {
		g.skipName = name
	}
}

// WithFile sets the file name used in syntax error locations.
func WithFile(path string) Option {
	return func(g *Grammar) {
		g.file = path
	}
}

// WithTrace logs every production attempt at debug level.
func WithTrace() Option {
	return func(g *Grammar) {
		g.trace = true
	}
}

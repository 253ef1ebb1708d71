package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/pcx/parser"
	"github.com/dhamidi/pcx/stream"
	"golang.org/x/exp/ebnf"
)

// Grammar is an EBNF grammar compiled into parsers.
//
// A Grammar is not safe for concurrent use: each production tracks the
// positions it is currently being attempted at.
type Grammar struct {
	source   ebnf.Grammar
	start    string
	skipName string
	file     string
	trace    bool
	rules    map[string]*rule
	skip     parser.Parser[rune, []*Node]
}

// Compile turns g into parsers rooted at the start production.
func Compile(g ebnf.Grammar, start string, opts ...Option) (*Grammar, error) {
	gr := &Grammar{
		source: g,
		start:  start,
		rules:  make(map[string]*rule, len(g)),
	}
	for _, opt := range opts {
		opt(gr)
	}

	if prod := g[start]; prod == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}

	for name := range g {
		gr.rules[name] = &rule{
			name:    name,
			lexical: isLexical(name),
			active:  make(map[stream.Position]bool),
		}
	}

	if gr.skipName != "" {
		r, ok := gr.rules[gr.skipName]
		if !ok {
			return nil, fmt.Errorf("skip production %q not found in grammar", gr.skipName)
		}
		if !r.lexical {
			return nil, fmt.Errorf("skip production %q must be lexical (lowercase name)", gr.skipName)
		}
		gr.skip = parser.Many(gr.ref(gr.skipName))
	}

	for name, prod := range g {
		r := gr.rules[name]
		body, err := gr.compile(prod.Expr, r.lexical)
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
		r.body = body
	}

	return gr, nil
}

// Start returns the name of the start production.
func (g *Grammar) Start() string {
	return g.start
}

// Rules returns the production names in sorted order.
func (g *Grammar) Rules() []string {
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parser returns the parser for the start production.
func (g *Grammar) Parser() parser.Parser[rune, *Node] {
	return g.ref(g.start)
}

// Rule returns the parser for the named production.
func (g *Grammar) Rule(name string) (parser.Parser[rune, *Node], bool) {
	if _, ok := g.rules[name]; !ok {
		return nil, false
	}
	return g.ref(name), true
}

// Parse parses src from the start production and requires that all of
// it is consumed, apart from trailing skipped input.
func (g *Grammar) Parse(src []rune) (*Node, error) {
	s := stream.New(src)
	n, err := g.Parser().ParseIter(s)
	if err == nil {
		g.skipTrivia(s)
		if !s.AtEnd() {
			err = parser.Expected(s.Pos(), parser.ExpectedEndOfInput)
		}
	}
	if err != nil {
		return nil, g.syntaxError(src, err)
	}
	return n, nil
}

// ParseString is Parse over the runes of src.
func (g *Grammar) ParseString(src string) (*Node, error) {
	return g.Parse([]rune(src))
}

func (g *Grammar) ref(name string) parser.Parser[rune, *Node] {
	var p parser.Parser[rune, *Node] = g.rules[name]
	if g.trace {
		p = parser.Trace(name, p)
	}
	return p
}

func (g *Grammar) skipTrivia(s *stream.Stream[rune]) {
	if g.skip != nil {
		g.skip.ParseIter(s)
	}
}

// item prefixes p with skipped input when it appears inside a
// non-terminal production.
func (g *Grammar) item(p parser.Parser[rune, []*Node], lexical bool) parser.Parser[rune, []*Node] {
	if lexical || g.skipName == "" {
		return p
	}
	return parser.Func[rune, []*Node](func(s *stream.Stream[rune]) ([]*Node, error) {
		g.skipTrivia(s)
		return p.ParseIter(s)
	})
}

func (g *Grammar) compile(expr ebnf.Expression, lexical bool) (parser.Parser[rune, []*Node], error) {
	switch e := expr.(type) {
	case nil:
		return parser.Func[rune, []*Node](func(*stream.Stream[rune]) ([]*Node, error) {
			return nil, nil
		}), nil

	case *ebnf.Token:
		kind := strconv.Quote(e.String)
		return g.item(terminal(kind, parser.Literal([]rune(e.String), kind), lexical), lexical), nil

	case *ebnf.Range:
		lo, hi, err := rangeBounds(e)
		if err != nil {
			return nil, err
		}
		kind := strconv.Quote(string(lo)) + " … " + strconv.Quote(string(hi))
		one := parser.Map(parser.Is(parser.InRange(lo, hi)), func(r rune) []rune {
			return []rune{r}
		})
		return g.item(terminal(kind, parser.Named(kind, one), lexical), lexical), nil

	case ebnf.Sequence:
		items := make([]parser.Parser[rune, []*Node], 0, len(e))
		for _, sub := range e {
			p, err := g.compile(sub, lexical)
			if err != nil {
				return nil, err
			}
			items = append(items, p)
		}
		return parser.Map(parser.Seq(items...), flatten), nil

	case ebnf.Alternative:
		alts := make([]parser.Parser[rune, []*Node], 0, len(e))
		for _, sub := range e {
			p, err := g.compile(sub, lexical)
			if err != nil {
				return nil, err
			}
			alts = append(alts, p)
		}
		return parser.Or(alts...), nil

	case *ebnf.Repetition:
		body, err := g.compile(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return parser.Map(parser.Many(body), flatten), nil

	case *ebnf.Option:
		body, err := g.compile(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return parser.Map(parser.Optional(body), func(m parser.Maybe[[]*Node]) []*Node {
			return m.Value
		}), nil

	case *ebnf.Group:
		return g.compile(e.Body, lexical)

	case *ebnf.Name:
		if _, ok := g.rules[e.String]; !ok {
			return nil, fmt.Errorf("undefined production %q", e.String)
		}
		return g.item(parser.Map(g.ref(e.String), func(n *Node) []*Node {
			if lexical {
				return nil
			}
			return []*Node{n}
		}), lexical), nil

	case *ebnf.Bad:
		return nil, fmt.Errorf("bad expression: %s", e.Error)

	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
}

// terminal turns a rune matcher into a leaf node. Inside lexical
// productions no node is built because the production keeps only text.
func terminal(kind string, p parser.Parser[rune, []rune], lexical bool) parser.Parser[rune, []*Node] {
	return parser.Func[rune, []*Node](func(s *stream.Stream[rune]) ([]*Node, error) {
		start := s.Pos()
		runes, err := p.ParseIter(s)
		if err != nil {
			return nil, err
		}
		if lexical {
			return nil, nil
		}
		return []*Node{{
			Kind: kind,
			Text: string(runes),
			Span: Span{Start: start, End: s.Pos()},
		}}, nil
	})
}

func flatten(groups [][]*Node) []*Node {
	var out []*Node
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func rangeBounds(r *ebnf.Range) (rune, rune, error) {
	lo, n := utf8.DecodeRuneInString(r.Begin.String)
	if n == 0 || n != len(r.Begin.String) {
		return 0, 0, fmt.Errorf("range start %q is not a single character", r.Begin.String)
	}
	hi, n := utf8.DecodeRuneInString(r.End.String)
	if n == 0 || n != len(r.End.String) {
		return 0, 0, fmt.Errorf("range end %q is not a single character", r.End.String)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("empty range %q … %q", lo, hi)
	}
	return lo, hi, nil
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// rule is a compiled production.
type rule struct {
	name    string
	lexical bool
	body    parser.Parser[rune, []*Node]
	active  map[stream.Position]bool
}

func (r *rule) ParseIter(s *stream.Stream[rune]) (*Node, error) {
	start := s.Pos()
	if r.active[start] {
		return nil, parser.Expected(start, r.name)
	}
	r.active[start] = true
	children, err := r.body.ParseIter(s)
	delete(r.active, start)
	if err != nil {
		return nil, err
	}

	n := &Node{
		Kind: r.name,
		Span: Span{Start: start, End: s.Pos()},
	}
	if r.lexical {
		n.Text = string(s.Items()[start:s.Pos()])
	} else {
		n.Children = children
	}
	return n, nil
}

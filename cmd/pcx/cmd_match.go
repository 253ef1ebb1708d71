package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/pcx/parser"
	"github.com/dhamidi/pcx/stream"
	"github.com/spf13/cobra"
)

func (a *app) newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <text>",
		Short: "Match runes of a text against a character class",
		Long: "Repeatedly apply the one-item condition parser for --class to the runes of\n" +
			"text and print the matched prefix and the position reached. With --once a\n" +
			"single attempt is made with the single-use form.\n\n" +
			"Classes: " + strings.Join(parser.ClassNames, ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class := a.conf.GetString("class")
			pred, ok := parser.ClassPredicate(class)
			if !ok {
				return fmt.Errorf("unknown class %q (want one of %s)", class, strings.Join(parser.ClassNames, ", "))
			}

			res := runMatch(args[0], pred, a.conf.GetBool("not"), a.conf.GetBool("once"))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "matched %q\nposition %d\n", res.matched, res.pos)
			if res.err != nil {
				fmt.Fprintf(out, "stopped: %s\n", res.err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("class", "c", "letter", "character class to match")
	cmd.Flags().Bool("not", false, "match runes outside the class")
	cmd.Flags().Bool("once", false, "make a single attempt with a single-use parser")

	return cmd
}

type matchResult struct {
	matched string
	pos     stream.Position
	err     error
}

// runMatch applies the condition until it fails. The failed attempt has
// consumed the rejected rune, so the reported position is one past it.
func runMatch(text string, pred parser.Predicate[rune], negate, once bool) matchResult {
	s := stream.FromString(text)
	var matched []rune

	if once {
		var p parser.ParserOnce[rune, rune]
		if negate {
			p = parser.IsNotOnce(pred)
		} else {
			p = parser.IsOnce(pred)
		}
		r, err := p.ParseIterOnce(s)
		if err == nil {
			matched = append(matched, r)
		}
		return matchResult{matched: string(matched), pos: s.Pos(), err: err}
	}

	var p parser.Parser[rune, rune]
	if negate {
		p = parser.IsNot(pred)
	} else {
		p = parser.Is(pred)
	}
	for {
		r, err := p.ParseIter(s)
		if err != nil {
			return matchResult{matched: string(matched), pos: s.Pos(), err: err}
		}
		matched = append(matched, r)
	}
}

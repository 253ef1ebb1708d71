package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dhamidi/pcx/grammar"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <grammar.ebnf> <file>",
		Short: "Parse a file with an EBNF grammar and print the syntax tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compileGrammar(args[0], grammar.WithFile(args[1]))
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			node, err := g.Parse([]rune(string(data)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format := a.conf.GetString("format"); format {
			case "tree":
				fmt.Fprint(out, node.String())
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				if err := enc.Close(); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			return nil
		},
	}

	cmd.Flags().String("start", "", "start production (required)")
	cmd.Flags().String("skip", "", "lexical production skipped between items (e.g. whitespace)")
	cmd.Flags().StringP("format", "f", "tree", "output format (tree, json, yaml)")
	cmd.Flags().Bool("trace", false, "log every production attempt (needs -vv)")

	return cmd
}

// compileGrammar loads and compiles a grammar using the start, skip and
// trace settings.
func (a *app) compileGrammar(filename string, opts ...grammar.Option) (*grammar.Grammar, error) {
	start := a.conf.GetString("start")
	if start == "" {
		return nil, fmt.Errorf("no start production: set --start")
	}

	g, err := grammar.Load(filename)
	if err != nil {
		return nil, err
	}

	if skip := a.conf.GetString("skip"); skip != "" {
		opts = append(opts, grammar.WithSkip(skip))
	}
	if a.conf.GetBool("trace") {
		opts = append(opts, grammar.WithTrace())
	}

	compiled, err := grammar.Compile(g, start, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile grammar: %w", err)
	}
	log.Infof("compiled %s from %s", start, filename)
	return compiled, nil
}

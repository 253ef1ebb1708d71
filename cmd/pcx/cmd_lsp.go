package main

import (
	"github.com/dhamidi/pcx/lsp"
	"github.com/spf13/cobra"
)

func (a *app) newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp <grammar.ebnf>",
		Short: "Start a Language Server that reports parse errors for a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.compileGrammar(args[0])
			if err != nil {
				return err
			}
			server := lsp.NewServer(g, version)
			return server.RunStdio()
		},
	}

	cmd.Flags().String("start", "", "start production")
	cmd.Flags().String("skip", "", "lexical production skipped between items")
	cmd.Flags().Bool("trace", false, "log every production attempt (needs -vv)")

	return cmd
}

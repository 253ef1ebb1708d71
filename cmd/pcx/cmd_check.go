package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/dhamidi/pcx/grammar"
	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <grammar.ebnf>",
		Short: "Parse and verify an EBNF grammar file",
		Long: "Parse an EBNF grammar file. With --start the grammar is also verified from\n" +
			"that production and compiled, using --skip as the skip production.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			out := cmd.OutOrStdout()

			g, err := grammar.Load(filename)
			if err != nil {
				printErrors(out, err)
				return err
			}

			start := a.conf.GetString("start")
			if start == "" {
				fmt.Fprintf(out, "%s: %d productions\n", filename, len(g))
				return nil
			}

			var opts []grammar.Option
			var extra []string
			if skip := a.conf.GetString("skip"); skip != "" {
				opts = append(opts, grammar.WithSkip(skip))
				extra = append(extra, skip)
			}
			if err := grammar.Verify(g, start, extra...); err != nil {
				printErrors(out, err)
				return err
			}

			compiled, err := grammar.Compile(g, start, opts...)
			if err != nil {
				fmt.Fprintln(out, err)
				return err
			}

			fmt.Fprintf(out, "%s: %d productions, start %s\n", filename, len(compiled.Rules()), start)
			return nil
		},
	}

	cmd.Flags().String("start", "", "start production for verification (if empty, only checks syntax)")
	cmd.Flags().String("skip", "", "lexical production skipped between items (e.g. whitespace)")

	return cmd
}

// printErrors prints each element of an error list on its own line. The
// list may be wrapped.
func printErrors(w io.Writer, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}

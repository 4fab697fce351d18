package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parsec/ebnf"
	"github.com/dhamidi/parsec/grammar"
)

func newGrammarCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the EBNF description of the accepted language",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := ebnf.ParseString("json.ebnf", grammar.EBNF())
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), grammar.EBNF())
			return err
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "document", "start production for verification")

	return cmd
}

// printErrors writes one line per error when err wraps an error list.
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

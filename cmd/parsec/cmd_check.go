package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parsec/ebnf"
	"github.com/dhamidi/parsec/grammar"
)

var errDisagree = errors.New("grammars disagree")

func newCheckCmd() *cobra.Command {
	var grammarFile string
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Cross-check a document against the combinator and EBNF grammars",
		Long: `Parse a document with the combinator grammar and recognize it with the
EBNF description of the same language, then compare the verdicts.

The embedded EBNF grammar is used unless --grammar names another file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadEBNF(grammarFile)
			if err != nil {
				return err
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				return err
			}

			name, text, err := readSource(args)
			if err != nil {
				return err
			}

			_, parseErr := grammar.Parse(text)
			recErr := ebnf.NewRecognizer(g, startProduction).Recognize([]byte(text))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "combinator\t%s\n", verdict(parseErr))
			fmt.Fprintf(out, "ebnf\t%s\n", verdict(recErr))

			if (parseErr == nil) != (recErr == nil) {
				return fmt.Errorf("%s: %w", name, errDisagree)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar file (defaults to the embedded grammar)")
	cmd.Flags().StringVar(&startProduction, "start", "document", "start production")

	return cmd
}

func loadEBNF(filename string) (ebnf.Grammar, error) {
	if filename == "" {
		return ebnf.ParseString("json.ebnf", grammar.EBNF())
	}
	return ebnf.LoadGrammar(filename)
}

func verdict(err error) string {
	if err == nil {
		return "accept"
	}
	return "reject: " + err.Error()
}

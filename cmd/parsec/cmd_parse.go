package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/parsec"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var trace bool
	var allErrors bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a document and print its value tree",
		Long: `Parse a document and print its value tree.

Reads from stdin when no file is given. On failure the position of the
error and the expected input are reported as line:column: messages.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoder, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			name, text, err := readSource(args)
			if err != nil {
				return err
			}

			var opts []grammar.Option
			if trace {
				if verbosity < 2 {
					commonlog.Configure(2, nil)
				}
				opts = append(opts, grammar.WithTrace(commonlog.GetLogger("parsec.grammar")))
			}
			if allErrors {
				opts = append(opts, grammar.WithAccumulatedErrors())
			}

			v, err := parsec.Parse(grammar.New(opts...).Document(), text).Unwrap()
			if err != nil {
				return fmt.Errorf("%s:%w", name, err)
			}
			log.Debugf("parsed %s as %s", name, v.Kind())

			if err := encoder.Encode(v); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "compact" {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text",
		"output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every grammar rule as it is tried")
	cmd.Flags().BoolVar(&allErrors, "all-errors", false, "report the messages of every failed alternative")

	return cmd
}

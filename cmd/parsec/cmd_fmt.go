package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var indent string

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a document",
		Long: `Pretty-print a document to stdout.

If no file is provided, reads the document from stdin. Object members are
written in sorted key order.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && fmtOverwrite {
				return fmt.Errorf("-w requires a file argument")
			}

			name, text, err := readSource(args)
			if err != nil {
				return err
			}

			v, err := grammar.Parse(text)
			if err != nil {
				return fmt.Errorf("%s:%w", name, err)
			}

			enc := format.NewTextEncoder(nil)
			enc.SetIndent(indent)
			output, err := enc.Marshal(v)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				if string(output) == text {
					return nil
				}
				log.Infof("rewriting %s", name)
				return os.WriteFile(name, output, 0644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().StringVar(&indent, "indent", "  ", "indentation unit (empty for compact output)")

	return cmd
}

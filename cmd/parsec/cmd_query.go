package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/query"
)

var errNoMatch = errors.New("no match")

func newQueryCmd() *cobra.Command {
	var first bool

	cmd := &cobra.Command{
		Use:   "query <path> [file]",
		Short: "Select values with a JSONPath expression",
		Long: `Select values with a JSONPath expression (RFC 9535).

Every match is printed on its own line in compact form. Reads from stdin
when no file is given.`,
		Example: `  parsec query '$.items[*].name' data.json
  parsec query --first '$..id' < data.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := query.Compile(args[0])
			if err != nil {
				return err
			}

			name, text, err := readSource(args[1:])
			if err != nil {
				return err
			}

			v, err := grammar.Parse(text)
			if err != nil {
				return fmt.Errorf("%s:%w", name, err)
			}

			matches, err := path.Select(v)
			if err != nil {
				return err
			}
			log.Debugf("%s: %d matches for %s", name, len(matches), path)

			if first {
				if len(matches) == 0 {
					return fmt.Errorf("%s: %w", path, errNoMatch)
				}
				matches = matches[:1]
			}

			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintln(out, format.String(m))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&first, "first", false, "print only the first match and fail when there is none")

	return cmd
}

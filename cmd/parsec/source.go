package main

import (
	"fmt"
	"io"
	"os"
)

const stdinName = "<stdin>"

// readSource reads the file named by the first argument, or stdin when
// there is none.
func readSource(args []string) (name string, text string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return stdinName, string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	return args[0], string(data), nil
}

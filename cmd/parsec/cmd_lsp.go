package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/parsec/lsp"
)

func newLSPCmd() *cobra.Command {
	var tcpAddr string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.New(version)
			if tcpAddr != "" {
				log.Infof("language server listening on %s", tcpAddr)
				return server.RunTCP(tcpAddr)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "listen on a TCP address instead of stdio")

	return cmd
}

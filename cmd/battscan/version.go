package main

import (
	"github.com/spf13/cobra"

	"github.com/battscan/battscan/pkg/version"
)

// NewVersionCommand prints the client version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: gBasic,
		Short:   "Print battscan version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

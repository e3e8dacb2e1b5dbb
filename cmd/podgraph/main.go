package main

import (
	"os"

	"github.com/podgraph/podgraph/cmd"
	"github.com/podgraph/podgraph/cmd/run"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	rootCmd.AddCommand(run.NewRunCommand())
	rootCmd.AddCommand(cmd.NewCheckCommand())
	rootCmd.AddCommand(cmd.NewAccessCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/psurana/pulse-etl/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

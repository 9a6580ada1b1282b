package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/davidroman0O/leaselite/cmd/leaselite/cmd"
)

// set at build time
var version = "dev"

func init() {
	maxprocs.Set()
}

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "leaselite:", err)
		os.Exit(1)
	}
}

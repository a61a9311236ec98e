package main

import (
	"fmt"
	"os"

	"github.com/zephyrtronium/calc/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "calc: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}

package main

import (
	"fmt"
	"os"

	"github.com/maastricht-university/edmo-dereval/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dereval:", err)
		os.Exit(1)
	}
}

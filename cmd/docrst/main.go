package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/docrst/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docrst:", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/eawag-rdm/lucparser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

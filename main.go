package main

import (
	"os"

	"github.com/tandem-run/tandem/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

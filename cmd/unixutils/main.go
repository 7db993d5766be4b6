package main

import (
	"os"

	"github.com/jocassid/unixutils/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

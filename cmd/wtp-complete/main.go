package main

import (
	"os"

	"github.com/agarcher/wtp-complete/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

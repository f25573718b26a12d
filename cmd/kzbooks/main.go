package main

import (
	"os"

	"github.com/SscSPs/kz_bookkeeping/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

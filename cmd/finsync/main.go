package main

import (
	"os"

	"github.com/finsync-dev/finsync/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

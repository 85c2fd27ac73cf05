package main

import (
	"os"

	"imkit/cmd/imkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

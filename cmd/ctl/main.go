package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"emptycup-directory/cmd/ctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

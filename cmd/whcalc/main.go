package main

import (
	"os"

	"github.com/epeers/warehouse/cmd/whcalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

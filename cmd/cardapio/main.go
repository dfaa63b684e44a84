package main

import (
	"os"

	"cardapio/cmd/cardapio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

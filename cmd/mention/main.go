package main

import (
	"os"

	"github.com/olivermillard/mention/internal/command"
)

func main() {
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the gamesl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Moushudyx/game-sl/cmd/gamesl/commands"
	"github.com/Moushudyx/game-sl/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	exitErr := errors.FromKind(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr)
	if exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(exitErr.Code)
}

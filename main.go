// Package main is the entry point for the articlelint CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/eykd/articlelint/cmd"
)

func main() {
	// Create a context that is cancelled on SIGINT (Ctrl+C).
	// The check loop stops between articles once it is cancelled.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, cmd.FormatError(err))
		os.Exit(cmd.ExitCodeFromError(err))
	}
}

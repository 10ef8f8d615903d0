// Package main provides the entry point for the remannis CLI tool.
package main

import (
	"context"
	"os"

	"github.com/matthias-stemmler/rem-treebank-annis/cmd/remannis/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	if err := application.Execute(context.Background(), os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}

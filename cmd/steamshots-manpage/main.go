// Command steamshots-manpage writes the steamshots man page to stdout.
// Packaging scripts run it at build time so the page always matches the
// command tree it was generated from.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/steamshots/cmd/steamshots"
	"github.com/arthur-debert/steamshots/internal/version"
)

func main() {
	rootCmd := steamshots.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "STEAMSHOTS",
		Section: "1",
		Source:  "steamshots " + version.Version,
		Manual:  "steamshots manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/steamshots/cmd/steamshots"
	"github.com/arthur-debert/steamshots/pkg/style"
)

func main() {
	rootCmd := steamshots.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.NewTerminalRenderer().RenderError(err))
		os.Exit(1)
	}
}

// Command tmux-layout saves and restores the layout of tmux sessions.
package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/tmux-layout/internal/cmd"
	"github.com/Iron-Ham/tmux-layout/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tmux-layout: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}

// Package termio handles the interactive side of live mode: detecting
// whether stdin is a terminal and listening for the quit keystroke.
package termio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ListenForQuit reads lines from r until one of q/quit/exit arrives or r is
// exhausted, then calls cancel. It communicates with the live driver only
// through that cancellation. Run it in its own goroutine; it exits with the
// process if the reader never yields.
func ListenForQuit(r io.Reader, cancel func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "q", "quit", "exit":
			cancel()
			return
		}
	}
}

package termio

import (
	"strings"
	"testing"
)

func TestListenForQuit(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantCancel bool
	}{
		{"q", "q\n", true},
		{"quit", "quit\n", true},
		{"exit", "exit\n", true},
		{"uppercase", "QUIT\n", true},
		{"surrounding whitespace", "  q  \n", true},
		{"after other input", "hello\nstats\nq\n", true},
		{"eof without quit", "hello\nworld\n", false},
		{"empty input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cancelled := false
			ListenForQuit(strings.NewReader(tt.input), func() { cancelled = true })

			if cancelled != tt.wantCancel {
				t.Errorf("cancelled = %v, want %v", cancelled, tt.wantCancel)
			}
		})
	}
}

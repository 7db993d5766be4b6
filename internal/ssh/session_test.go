package ssh

import (
	"io"
	"strings"
	"testing"
)

func TestLineReader_Lines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"terminated lines", "a\nb\n", []string{"a", "b"}},
		{"final unterminated line", "a\nb", []string{"a", "b"}},
		{"crlf endings", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank line preserved", "a\n\nb\n", []string{"a", "", "b"}},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newLineReader(strings.NewReader(tt.input))

			var lines []string
			for {
				line, err := reader.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				lines = append(lines, line)
			}

			if len(lines) != len(tt.expected) {
				t.Fatalf("expected %d lines, got %d: %v", len(tt.expected), len(lines), lines)
			}
			for i, want := range tt.expected {
				if lines[i] != want {
					t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
				}
			}
		})
	}
}

func TestLineReader_EOFIsSticky(t *testing.T) {
	reader := newLineReader(strings.NewReader("only\n"))

	if _, err := reader.ReadLine(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := reader.ReadLine(); err != io.EOF {
			t.Errorf("read %d after end: expected io.EOF, got %v", i, err)
		}
	}
}

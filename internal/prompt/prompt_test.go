package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func terminal(t *testing.T, input string, retries int) (*Terminal, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	return NewTerminalWith(strings.NewReader(input), &out, retries), &out
}

func TestTerminalLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello\n", "hello"},
		{"trims whitespace", "  hello  \n", "hello"},
		{"strips drag-drop quotes", "\"/srv/My Playlists\"\n", "/srv/My Playlists"},
		{"strips single quotes", "'/srv/playlists'\n", "/srv/playlists"},
		{"last line without newline", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := terminal(t, tt.input, 3)
			got, err := term.Line("label")
			if err != nil {
				t.Fatalf("Line: %v", err)
			}
			if got != tt.want {
				t.Errorf("Line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminalLine_ClosedInput(t *testing.T) {
	term, _ := terminal(t, "", 3)
	_, err := term.Line("label")
	if !errors.Is(err, ErrAborted) {
		t.Errorf("Line on closed input = %v, want ErrAborted", err)
	}
}

func TestTerminalConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		term, _ := terminal(t, tt.input, 3)
		got, err := term.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTerminalPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Run("valid directory", func(t *testing.T) {
		term, _ := terminal(t, dir+"\n", 3)
		got, err := term.Path("Input directory")
		if err != nil {
			t.Fatalf("Path: %v", err)
		}
		if got != dir {
			t.Errorf("Path = %q, want %q", got, dir)
		}
	})

	t.Run("retry after invalid answer", func(t *testing.T) {
		missing := filepath.Join(dir, "nope")
		term, _ := terminal(t, missing+"\ny\n"+dir+"\n", 3)
		got, err := term.Path("Input directory")
		if err != nil {
			t.Fatalf("Path: %v", err)
		}
		if got != dir {
			t.Errorf("Path = %q, want %q", got, dir)
		}
	})

	t.Run("file rejected", func(t *testing.T) {
		term, _ := terminal(t, file+"\nn\n", 3)
		_, err := term.Path("Input directory")
		if !errors.Is(err, ErrAborted) {
			t.Errorf("Path = %v, want ErrAborted", err)
		}
	})

	t.Run("decline retry aborts", func(t *testing.T) {
		term, _ := terminal(t, "nope\nn\n", 3)
		_, err := term.Path("Input directory")
		if !errors.Is(err, ErrAborted) {
			t.Errorf("Path = %v, want ErrAborted", err)
		}
	})

	t.Run("retry budget exhausted", func(t *testing.T) {
		term, _ := terminal(t, "a\ny\nb\ny\nc\n", 1)
		_, err := term.Path("Input directory")
		if !errors.Is(err, ErrAborted) {
			t.Errorf("Path = %v, want ErrAborted", err)
		}
	})
}

func TestTerminalFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Library.xml")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Run("valid file", func(t *testing.T) {
		term, _ := terminal(t, file+"\n", 3)
		got, err := term.File("Library XML")
		if err != nil {
			t.Fatalf("File: %v", err)
		}
		if got != file {
			t.Errorf("File = %q, want %q", got, file)
		}
	})

	t.Run("directory rejected", func(t *testing.T) {
		term, _ := terminal(t, dir+"\nn\n", 3)
		_, err := term.File("Library XML")
		if !errors.Is(err, ErrAborted) {
			t.Errorf("File = %v, want ErrAborted", err)
		}
	})
}

func TestTerminalChoice(t *testing.T) {
	options := []string{"Relative (../)", "Absolute (/music/)", "Custom"}

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"first option", "1\n", 0},
		{"last option", "3\n", 2},
		{"empty picks default", "\n", 1},
		{"invalid then valid", "9\n2\n", 1},
		{"garbage then valid", "abc\n1\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := terminal(t, tt.input, 3)
			got, err := term.Choice("Target prefix", options, 1)
			if err != nil {
				t.Fatalf("Choice: %v", err)
			}
			if got != tt.want {
				t.Errorf("Choice = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("options listed", func(t *testing.T) {
		term, out := terminal(t, "1\n", 3)
		if _, err := term.Choice("Target prefix", options, 0); err != nil {
			t.Fatalf("Choice: %v", err)
		}
		for i, opt := range options {
			if !strings.Contains(out.String(), opt) {
				t.Errorf("output missing option %d (%q): %q", i+1, opt, out.String())
			}
		}
	})
}

func TestScript(t *testing.T) {
	s := &Script{
		Lines:    []string{"C:/Music/"},
		Paths:    []string{"/srv/playlists"},
		Choices:  []int{2},
		Confirms: []bool{true, false},
	}

	if got, err := s.Line(""); err != nil || got != "C:/Music/" {
		t.Errorf("Line = (%q, %v)", got, err)
	}
	if got, err := s.Path(""); err != nil || got != "/srv/playlists" {
		t.Errorf("Path = (%q, %v)", got, err)
	}
	if got, err := s.Choice("", []string{"a", "b", "c"}, 0); err != nil || got != 2 {
		t.Errorf("Choice = (%d, %v)", got, err)
	}
	if got, err := s.Confirm(""); err != nil || !got {
		t.Errorf("first Confirm = (%v, %v)", got, err)
	}
	if got, err := s.Confirm(""); err != nil || got {
		t.Errorf("second Confirm = (%v, %v)", got, err)
	}

	// Exhausted queues abort.
	if _, err := s.Line(""); !errors.Is(err, ErrAborted) {
		t.Errorf("exhausted Line = %v, want ErrAborted", err)
	}
	if _, err := s.Confirm(""); !errors.Is(err, ErrAborted) {
		t.Errorf("exhausted Confirm = %v, want ErrAborted", err)
	}

	// Out-of-range scripted choice falls back to the default.
	s2 := &Script{Choices: []int{9}}
	if got, err := s2.Choice("", []string{"a", "b"}, 1); err != nil || got != 1 {
		t.Errorf("out-of-range Choice = (%d, %v), want default 1", got, err)
	}
}

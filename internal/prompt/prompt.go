// Package prompt abstracts the interactive operator surface so the rewrite
// engine and batch driver can be exercised by automated tests with a
// scripted implementation, never requiring real standard input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrAborted means the operator declined to continue (answered no to a
// retry, exhausted the retry budget, or closed the input stream).
var ErrAborted = errors.New("aborted by operator")

// Interactor is the operator interaction surface used by the tools.
type Interactor interface {
	// Path prompts for an existing directory, re-prompting on invalid
	// input up to the configured retry budget.
	Path(label string) (string, error)
	// File prompts for an existing regular file, with the same retry rules.
	File(label string) (string, error)
	// Line prompts for one free-form line (whitespace-trimmed).
	Line(label string) (string, error)
	// Choice prompts for a numbered selection among options; def is the
	// zero-based default used on empty input. Returns the zero-based index.
	Choice(label string, options []string, def int) (int, error)
	// Confirm asks a y/n question. Empty input means no.
	Confirm(label string) (bool, error)
}

// Terminal implements Interactor over an input reader and output writer,
// normally stdin/stdout.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	Retries int // Invalid-input retries before a prompt aborts.
}

// NewTerminal returns a Terminal reading stdin and writing stdout.
func NewTerminal(retries int) *Terminal {
	return &Terminal{in: bufio.NewReader(os.Stdin), out: os.Stdout, Retries: retries}
}

// NewTerminalWith returns a Terminal over explicit streams, for tests.
func NewTerminalWith(in io.Reader, out io.Writer, retries int) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, Retries: retries}
}

func (t *Terminal) read(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", ErrAborted
	}
	line = strings.TrimSpace(line)
	// Strip quotes left by drag-and-drop of paths into the terminal.
	line = strings.Trim(line, `"'`)
	return line, nil
}

// Line prompts once and returns the trimmed answer.
func (t *Terminal) Line(label string) (string, error) {
	return t.read(label)
}

// Path prompts for an existing directory path with validation and retry.
func (t *Terminal) Path(label string) (string, error) {
	return t.validated(label, func(answer string) error {
		fi, err := os.Stat(answer)
		if err != nil {
			return fmt.Errorf("path does not exist: %s", answer)
		}
		if !fi.IsDir() {
			return fmt.Errorf("path is not a directory: %s", answer)
		}
		return nil
	})
}

// File prompts for an existing regular file path with validation and retry.
func (t *Terminal) File(label string) (string, error) {
	return t.validated(label, func(answer string) error {
		fi, err := os.Stat(answer)
		if err != nil {
			return fmt.Errorf("file does not exist: %s", answer)
		}
		if fi.IsDir() {
			return fmt.Errorf("path is not a file: %s", answer)
		}
		return nil
	})
}

// validated runs the prompt/validate/retry loop. After each invalid answer
// the operator may retry or abort; the retry budget bounds the loop.
func (t *Terminal) validated(label string, check func(string) error) (string, error) {
	for attempt := 0; ; attempt++ {
		answer, err := t.read(label)
		if err != nil {
			return "", err
		}
		if answer == "" {
			fmt.Fprintln(t.out, "Input must not be empty.")
		} else if err := check(answer); err != nil {
			fmt.Fprintln(t.out, err.Error())
		} else {
			return answer, nil
		}

		if attempt >= t.Retries {
			return "", ErrAborted
		}
		retry, err := t.Confirm("Try again?")
		if err != nil {
			return "", err
		}
		if !retry {
			return "", ErrAborted
		}
	}
}

// Choice prints numbered options and reads a selection.
func (t *Terminal) Choice(label string, options []string, def int) (int, error) {
	fmt.Fprintln(t.out, label)
	for i, opt := range options {
		fmt.Fprintf(t.out, "%d. %s\n", i+1, opt)
	}
	for attempt := 0; ; attempt++ {
		answer, err := t.read(fmt.Sprintf("Enter your choice (1-%d, default is %d)", len(options), def+1))
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		if attempt >= t.Retries {
			return 0, ErrAborted
		}
		fmt.Fprintf(t.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// Confirm asks "label (y/n)". Only y/yes are affirmative.
func (t *Terminal) Confirm(label string) (bool, error) {
	answer, err := t.read(label + " (y/n)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Package console implements the interactive operator prompts used by the
// query generator.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"recipe-assistant/internal/domain"
)

// Terminal reads operator answers line by line and writes prompts to out.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Decide prints the item and keeps it only on an exact "y" answer.
func (t *Terminal) Decide(_ context.Context, description string) (bool, error) {
	fmt.Fprintln(t.out, description)
	answer, err := t.prompt("Keep? (y/n): ")
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// AuthorQuery prints the dimensions and returns the typed query verbatim.
func (t *Terminal) AuthorQuery(_ context.Context, dims domain.Dimensions) (string, error) {
	fmt.Fprintln(t.out, dims.JSON())
	return t.prompt("Query: ")
}

func (t *Terminal) prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	return t.ReadLine()
}

// ReadLine returns the next input line without its line terminator. A final
// line without a newline is returned as is; end of input with nothing read
// is an error.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("console: read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

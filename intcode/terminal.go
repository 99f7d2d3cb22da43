package intcode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Terminal is the interactive Device. It prompts for each input value
// and prints each output value.
type Terminal struct {
	r *bufio.Reader
	w io.Writer
}

// NewTerminal returns a Terminal that reads input lines from r and
// writes prompts and output to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{r: bufio.NewReader(r), w: w}
}

func stdTerminal() *Terminal { return NewTerminal(os.Stdin, os.Stdout) }

func (t *Terminal) In() (int, error) {
	if _, err := io.WriteString(t.w, "<= "); err != nil {
		return 0, err
	}
	line, err := t.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, fmt.Errorf("reading input: %w", err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("invalid input: %w", err)
	}
	return v, nil
}

func (t *Terminal) Out(v int) error {
	_, err := fmt.Fprintf(t.w, "=> %d\n", v)
	return err
}

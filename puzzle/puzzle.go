// Package puzzle holds the Advent of Code 2019 days that run on the
// Intcode machine.
package puzzle

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nf/intcode/intcode"
)

// Day is a puzzle whose input is an Intcode program.
type Day struct {
	Num     int
	Name    string
	PartOne func(program []int) (string, error)
	PartTwo func(program []int) (string, error)

	// Samples are known answers for small inputs, checked before
	// solving the real input.
	Samples []Sample
}

// Sample is an example program with the answer one part should give.
type Sample struct {
	Input string
	Part  int
	Want  string
}

var days = []*Day{
	gravityAssist,
	diagnostics,
	amplifiers,
}

// Days returns the registered days in order.
func Days() []*Day { return days }

// Lookup returns the day named by ident, which may be a number ("7",
// "07") or carry a "day" prefix ("day07").
func Lookup(ident string) (*Day, error) {
	s := strings.TrimPrefix(strings.ToLower(ident), "day")
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid day %q", ident)
	}
	for _, d := range days {
		if d.Num == n {
			return d, nil
		}
	}
	return nil, fmt.Errorf("day %d has no solver", n)
}

func (d *Day) String() string { return fmt.Sprintf("day%.2d (%s)", d.Num, d.Name) }

func (d *Day) part(n int) func([]int) (string, error) {
	if n == 1 {
		return d.PartOne
	}
	return d.PartTwo
}

// CheckSamples solves each sample and reports the first wrong answer.
func (d *Day) CheckSamples() error {
	for i, s := range d.Samples {
		prog, err := intcode.Parse(s.Input)
		if err != nil {
			return fmt.Errorf("%v sample %d: %w", d, i, err)
		}
		got, err := d.part(s.Part)(prog)
		if err != nil {
			return fmt.Errorf("%v sample %d: %w", d, i, err)
		}
		if got != s.Want {
			return fmt.Errorf("%v sample %d part %d: got %v, want %v", d, i, s.Part, got, s.Want)
		}
	}
	return nil
}

// Solve parses input and writes the answers of both parts to w.
func (d *Day) Solve(w io.Writer, input string) error {
	prog, err := intcode.Parse(input)
	if err != nil {
		return fmt.Errorf("%v: parsing input: %w", d, err)
	}
	for _, p := range []struct {
		label string
		n     int
	}{{"Part One", 1}, {"Part Two", 2}} {
		v, err := d.part(p.n)(prog)
		if err != nil {
			return fmt.Errorf("%v: %s: %w", d, p.label, err)
		}
		fmt.Fprintf(w, "%s: %s\n", p.label, v)
	}
	return nil
}

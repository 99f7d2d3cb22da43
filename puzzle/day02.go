package puzzle

import (
	"errors"
	"strconv"

	"github.com/nf/intcode/intcode"
)

var gravityAssist = &Day{
	Num:  2,
	Name: "1202 Program Alarm",
	PartOne: func(prog []int) (string, error) {
		v, err := runPatched(prog, 12, 2)
		return strconv.Itoa(v), err
	},
	PartTwo: func(prog []int) (string, error) {
		noun, verb, err := findInputs(prog, 19690720)
		return strconv.Itoa(100*noun + verb), err
	},
}

// runPatched runs prog with its noun (address 1) and verb (address 2)
// replaced and returns the value left at address 0.
func runPatched(prog []int, noun, verb int) (int, error) {
	if len(prog) < 3 {
		return 0, errors.New("program too short to patch")
	}
	m := intcode.NewMachine(prog, 0)
	m.Mem[1], m.Mem[2] = noun, verb
	if err := m.Run(); err != nil {
		return 0, err
	}
	return m.Mem[0], nil
}

// findInputs searches nouns and verbs between 0 and 99 for the pair that
// leaves want at address 0. Pairs that make the program fault are skipped.
func findInputs(prog []int, want int) (noun, verb int, err error) {
	for noun := 0; noun < 100; noun++ {
		for verb := 0; verb < 100; verb++ {
			v, err := runPatched(prog, noun, verb)
			if err != nil {
				var f *intcode.Fault
				if errors.As(err, &f) {
					continue
				}
				return 0, 0, err
			}
			if v == want {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errors.New("no noun and verb produce the wanted output")
}

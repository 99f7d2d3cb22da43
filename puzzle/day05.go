package puzzle

import (
	"fmt"
	"strconv"

	"github.com/nf/intcode/intcode"
)

const compareTo8 = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
	"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
	"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

var diagnostics = &Day{
	Num:  5,
	Name: "Sunny with a Chance of Asteroids",
	PartOne: func(prog []int) (string, error) {
		v, err := diagnose(prog, 1)
		return strconv.Itoa(v), err
	},
	PartTwo: func(prog []int) (string, error) {
		v, err := diagnose(prog, 5)
		return strconv.Itoa(v), err
	},
	Samples: []Sample{
		{Input: compareTo8, Part: 1, Want: "999"},
		{Input: compareTo8, Part: 2, Want: "999"},
	},
}

// diagnose runs the diagnostic program for the given system and returns
// its diagnostic code, the final output. Every earlier output is a test
// result that must be zero.
func diagnose(prog []int, system int) (int, error) {
	m := intcode.NewMachine(prog, 0)
	m.Input(system)
	if err := m.Run(); err != nil {
		return 0, err
	}
	var out []int
	for {
		v, ok := m.Output()
		if !ok {
			break
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("system %d: no diagnostic code", system)
	}
	for i, v := range out[:len(out)-1] {
		if v != 0 {
			return 0, fmt.Errorf("system %d: test %d failed with %d", system, i, v)
		}
	}
	return out[len(out)-1], nil
}

package puzzle

import (
	"strconv"

	"github.com/nf/intcode/amp"
)

var amplifiers = &Day{
	Num:  7,
	Name: "Amplification Circuit",
	PartOne: func(prog []int) (string, error) {
		v, _, err := amp.MaxSignal(prog, amp.Range(0, 4), amp.Series)
		return strconv.Itoa(v), err
	},
	PartTwo: func(prog []int) (string, error) {
		v, _, err := amp.MaxSignal(prog, amp.Range(5, 9), amp.Feedback)
		return strconv.Itoa(v), err
	},
	Samples: []Sample{
		{
			Input: "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
			Part:  1,
			Want:  "43210",
		},
		{
			Input: "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
			Part:  2,
			Want:  "139629729",
		},
		{
			Input: "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54," +
				"1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56," +
				"1005,56,6,99,0,0,0,0,10",
			Part: 2,
			Want: "18216",
		},
	},
}

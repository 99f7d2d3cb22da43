package intcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads an Intcode program: signed decimal integers separated by
// commas, possibly spread over several lines.
func Parse(text string) ([]int, error) {
	var prog []int
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, f := range strings.Split(line, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", n+1, err)
			}
			prog = append(prog, v)
		}
	}
	if len(prog) == 0 {
		return nil, fmt.Errorf("empty program")
	}
	return prog, nil
}

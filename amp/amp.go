// Package amp wires Intcode machines together into amplifier circuits.
//
// Each amplifier runs its own copy of the same program. It is first given
// its phase setting and then the input signal, and emits an output signal
// that becomes the input of the next amplifier.
package amp

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/nf/intcode/intcode"
)

// Circuit computes the final output signal of a chain of amplifiers, one
// per phase setting, given the signal fed to the first amplifier.
type Circuit func(program, phases []int, signal int) (int, error)

// Series runs the amplifiers one after another, each to completion, and
// returns the output of the last one.
func Series(program, phases []int, signal int) (int, error) {
	for i, phase := range phases {
		m := intcode.NewMachine(program, 0)
		m.Input(phase)
		m.Input(signal)
		if err := m.Run(); err != nil {
			return 0, ampError(i, err)
		}
		v, ok := m.Output()
		if !ok {
			return 0, ampError(i, errNoOutput)
		}
		signal = v
	}
	return signal, nil
}

// Feedback connects the output of the last amplifier back to the input of
// the first, and drives the machines in turn until the first amplifier
// halts. It returns the last signal emitted by the final amplifier.
func Feedback(program, phases []int, signal int) (int, error) {
	if len(phases) == 0 {
		return signal, nil
	}
	ms := make([]*intcode.Machine, len(phases))
	for i, phase := range phases {
		ms[i] = intcode.NewMachine(program, 0)
		ms[i].Input(phase)
	}
	var (
		last = 0
		sent = false
	)
	for {
		for i, m := range ms {
			m.Input(signal)
			err := m.RunUntilOutput()
			if err == intcode.ErrHalt {
				if i == 0 && sent {
					return last, nil
				}
				return 0, ampError(i, errNoOutput)
			}
			if err != nil {
				return 0, ampError(i, err)
			}
			signal, _ = m.Output()
		}
		last, sent = signal, true
	}
}

// MaxSignal tries every ordering of phases and returns the highest output
// signal the circuit produces from an input signal of 0, together with
// the phase setting that produced it.
func MaxSignal(program, phases []int, circuit Circuit) (best int, setting []int, err error) {
	for _, p := range Permutations(phases) {
		v, err := circuit(program, p, 0)
		if err != nil {
			return 0, nil, fmt.Errorf("phases %v: %w", p, err)
		}
		if setting == nil || v > best {
			best, setting = v, p
		}
	}
	if setting == nil {
		return 0, nil, errors.New("no phase settings")
	}
	return best, setting, nil
}

var errNoOutput = errors.New("halted without output")

func ampError(i int, err error) error {
	return fmt.Errorf("amplifier %c: %w", 'A'+rune(i), err)
}

// Permutations returns every ordering of s.
func Permutations[T any](s []T) [][]T {
	if len(s) == 0 {
		return nil
	}
	var (
		out  [][]T
		cur  = make([]T, len(s))
		used = make([]bool, len(s))
	)
	var walk func(n int)
	walk = func(n int) {
		if n == len(s) {
			out = append(out, append([]T(nil), cur...))
			return
		}
		for i, v := range s {
			if used[i] {
				continue
			}
			used[i] = true
			cur[n] = v
			walk(n + 1)
			used[i] = false
		}
	}
	walk(0)
	return out
}

// Range returns the integers lo through hi inclusive.
func Range[T constraints.Integer](lo, hi T) []T {
	var r []T
	for v := lo; v <= hi; v++ {
		r = append(r, v)
	}
	return r
}

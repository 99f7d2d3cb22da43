package intcode

import (
	"errors"
	"fmt"
)

// Fault is returned by Step if an instruction cannot be executed.
type Fault struct {
	Code FaultCode
	Op   Op // zero if the instruction could not be decoded
	Addr int
	Err  error // further detail, may be nil
}

func (f *Fault) Error() string {
	s := f.Code.String()
	if f.Op.Valid() {
		s += " executing " + f.Op.String()
	}
	s += fmt.Sprintf(" at %.4d", f.Addr)
	if f.Err != nil {
		s += ": " + f.Err.Error()
	}
	return s
}

func (f *Fault) Unwrap() error { return f.Err }

// Is reports whether target is the FaultCode of f, so that callers may
// write errors.Is(err, intcode.InputStarvation).
func (f *Fault) Is(target error) bool {
	c, ok := target.(FaultCode)
	return ok && c == f.Code
}

// FaultCode signifies the type of condition that stopped execution.
type FaultCode byte

const (
	// MalformedProgram means an instruction word holds an unknown opcode
	// or parameter mode, or a destination parameter is in immediate mode.
	MalformedProgram FaultCode = 0x01
	// OutOfBounds means an instruction addressed memory outside the tape.
	OutOfBounds FaultCode = 0x02
	// InputStarvation means a non-interactive machine executed IN with
	// nothing in its input queue.
	InputStarvation FaultCode = 0x03
	// TerminalIO means the device failed to read or write a value.
	TerminalIO FaultCode = 0x04
)

func (c FaultCode) String() string {
	if s, ok := map[FaultCode]string{
		MalformedProgram: "malformed program",
		OutOfBounds:      "out of bounds",
		InputStarvation:  "input starvation",
		TerminalIO:       "terminal i/o failure",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}

func (c FaultCode) Error() string { return c.String() }

// deviceFault converts an error returned by a Device into a Fault.
func deviceFault(err error) *Fault {
	var c FaultCode
	if errors.As(err, &c) {
		if err == c {
			err = nil
		}
		return &Fault{Code: c, Err: err}
	}
	return &Fault{Code: TerminalIO, Err: err}
}

func malformed(format string, args ...any) *Fault {
	return &Fault{Code: MalformedProgram, Err: fmt.Errorf(format, args...)}
}

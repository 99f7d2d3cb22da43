// Package intcode provides an implementation of the Intcode computer,
// called Machine, that can be used to execute Intcode programs.
package intcode

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// Machine is an Intcode computer. Program and data share Mem, which has a
// fixed size after construction.
type Machine struct {
	Mem []int
	PC  int

	// Dev performs the machine's input and output. It is a Terminal on
	// the process's standard input and output until the first call to
	// Input, which replaces it with the machine's own queues.
	Dev Device

	// Trace, if non-nil, receives one line per executed instruction.
	Trace io.Writer

	queues *queues
	halted bool
}

// NewMachine returns an interactive machine whose memory is a copy of
// program and whose instruction pointer is start.
func NewMachine(program []int, start int) *Machine {
	return &Machine{
		Mem: slices.Clone(program),
		PC:  start,
		Dev: stdTerminal(),
	}
}

// Input queues v as an input value. The first call switches the machine
// out of interactive mode for the rest of its lifetime.
func (m *Machine) Input(v int) {
	if m.queues == nil {
		m.queues = &queues{}
		m.Dev = m.queues
	}
	m.queues.in.Push(v)
}

// Output removes and returns the oldest queued output value. It reports
// false if no output is queued, which is always the case for an
// interactive machine.
func (m *Machine) Output() (int, bool) {
	if m.queues == nil {
		return 0, false
	}
	return m.queues.out.Pop()
}

// Interactive reports whether the machine still uses the terminal for
// input and output.
func (m *Machine) Interactive() bool { return m.queues == nil }

// Queues returns the pending input and output values of a non-interactive
// machine.
func (m *Machine) Queues() (in, out []int) {
	if m.queues == nil {
		return nil, nil
	}
	return m.queues.in.Values(), m.queues.out.Values()
}

// Halted reports whether the machine has executed a HLT instruction.
func (m *Machine) Halted() bool { return m.halted }

// ErrHalt is returned by Step when it executes HLT.
var ErrHalt = errors.New("HLT")

// Step executes the instruction at m.PC. It returns ErrHalt if that
// instruction is HLT, and a *Fault if the instruction cannot be executed.
// A faulting instruction leaves m.PC and m.Mem unchanged.
func (m *Machine) Step() (err error) {
	var (
		pc = m.PC
		in Instr
	)
	defer func() {
		if e := recover(); e != nil {
			f, ok := e.(*Fault)
			if !ok {
				panic(e)
			}
			f.Op, f.Addr = in.Op, pc
			err = f
		}
	}()

	if m.Trace != nil {
		s, _ := m.Disasm(pc)
		fmt.Fprintf(m.Trace, "%.4d %s\n", pc, s)
	}

	var derr error
	if in, derr = Decode(m.load(pc)); derr != nil {
		panic(derr)
	}

	switch in.Op {
	case HLT:
		m.halted = true
		return ErrHalt
	case ADD, MUL, LT, EQ:
		var (
			a   = m.param(pc, in, 0)
			b   = m.param(pc, in, 1)
			dst = m.dest(pc, in, 2)
		)
		switch in.Op {
		case ADD:
			m.Mem[dst] = a + b
		case MUL:
			m.Mem[dst] = a * b
		case LT:
			m.Mem[dst] = boolInt(a < b)
		case EQ:
			m.Mem[dst] = boolInt(a == b)
		}
	case IN:
		dst := m.dest(pc, in, 0)
		v, err := m.Dev.In()
		if err != nil {
			panic(deviceFault(err))
		}
		m.Mem[dst] = v
	case OUT:
		if err := m.Dev.Out(m.param(pc, in, 0)); err != nil {
			panic(deviceFault(err))
		}
	case JNZ, JZ:
		a, b := m.param(pc, in, 0), m.param(pc, in, 1)
		if (a != 0) == (in.Op == JNZ) {
			m.PC = b
			return nil
		}
	}
	m.PC = pc + in.Op.Width()
	return nil
}

// Run steps the machine until it halts. It returns nil once HLT has been
// executed, or the first fault. A program that never halts never returns.
func (m *Machine) Run() error {
	for {
		if err := m.Step(); err != nil {
			if err == ErrHalt {
				return nil
			}
			return err
		}
	}
}

// RunUntilOutput steps the machine until a new value has been added to
// its output queue or it halts, in which case it returns ErrHalt.
func (m *Machine) RunUntilOutput() error {
	n := m.pendingOutput()
	for {
		if err := m.Step(); err != nil {
			return err
		}
		if m.pendingOutput() > n {
			return nil
		}
	}
}

func (m *Machine) pendingOutput() int {
	if m.queues == nil {
		return 0
	}
	return m.queues.out.Len()
}

// load returns Mem[addr], faulting if addr is outside of memory.
func (m *Machine) load(addr int) int {
	if addr < 0 || addr >= len(m.Mem) {
		panic(&Fault{Code: OutOfBounds, Err: fmt.Errorf("address %d outside memory of %d cells", addr, len(m.Mem))})
	}
	return m.Mem[addr]
}

// resolve returns the value of the parameter p in the given mode.
func (m *Machine) resolve(p int, mode Mode) int {
	if mode == Immediate {
		return p
	}
	return m.load(p)
}

// param returns the resolved value of the i'th parameter of the
// instruction at pc.
func (m *Machine) param(pc int, in Instr, i int) int {
	return m.resolve(m.load(pc+1+i), in.Modes[i])
}

// dest returns the address written by the i'th parameter of the
// instruction at pc, which must be in position mode and within memory.
func (m *Machine) dest(pc int, in Instr, i int) int {
	if in.Modes[i] != Position {
		panic(malformed("parameter %d is an immediate destination", i+1))
	}
	addr := m.load(pc + 1 + i)
	m.load(addr)
	return addr
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

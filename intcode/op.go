package intcode

import (
	"fmt"
	"strings"
)

// Op represents an Intcode opcode.
type Op int

const (
	ADD Op = 1
	MUL Op = 2
	IN  Op = 3
	OUT Op = 4
	JNZ Op = 5 // jump-if-true
	JZ  Op = 6 // jump-if-false
	LT  Op = 7
	EQ  Op = 8
	HLT Op = 99
)

var opNames = map[Op]string{
	ADD: "ADD",
	MUL: "MUL",
	IN:  "IN",
	OUT: "OUT",
	JNZ: "JNZ",
	JZ:  "JZ",
	LT:  "LT",
	EQ:  "EQ",
	HLT: "HLT",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// Valid reports whether op is a known opcode.
func (op Op) Valid() bool {
	_, ok := opNames[op]
	return ok
}

// Width returns the number of memory cells occupied by an instruction with
// this opcode, including the opcode itself.
func (op Op) Width() int {
	switch op {
	case ADD, MUL, LT, EQ:
		return 4
	case JNZ, JZ:
		return 3
	case IN, OUT:
		return 2
	default:
		return 1
	}
}

// Params returns the number of parameters the opcode takes.
func (op Op) Params() int { return op.Width() - 1 }

// Dest returns the index of the parameter the opcode writes to,
// or -1 if it does not write to memory.
func (op Op) Dest() int {
	switch op {
	case ADD, MUL, LT, EQ:
		return 2
	case IN:
		return 0
	default:
		return -1
	}
}

// Mode is a parameter addressing mode.
type Mode byte

const (
	Position  Mode = 0 // the parameter is an address
	Immediate Mode = 1 // the parameter is a literal value
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	}
	return fmt.Sprintf("mode(%d)", byte(m))
}

// Instr is a decoded instruction word.
type Instr struct {
	Op    Op
	Modes [3]Mode
}

// Decode splits the instruction word raw into its opcode and the modes of
// its three parameter slots. The modes are always decoded, whether or not
// the opcode uses them. An invalid word yields a *Fault with code
// MalformedProgram.
func Decode(raw int) (Instr, error) {
	if raw < 0 {
		return Instr{}, malformed("negative instruction %d", raw)
	}
	in := Instr{Op: Op(raw % 100)}
	if !in.Op.Valid() {
		return Instr{}, malformed("unknown opcode %d", raw%100)
	}
	for i, div := range [3]int{100, 1000, 10000} {
		switch d := (raw / div) % 10; d {
		case 0:
			in.Modes[i] = Position
		case 1:
			in.Modes[i] = Immediate
		default:
			return Instr{}, malformed("unknown mode %d for parameter %d of %d", d, i+1, raw)
		}
	}
	return in, nil
}

// Encode returns the instruction word for in.
func (in Instr) Encode() int {
	raw := int(in.Op)
	for i, mul := range [3]int{100, 1000, 10000} {
		raw += int(in.Modes[i]) * mul
	}
	return raw
}

func (in Instr) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i := 0; i < in.Op.Params(); i++ {
		if in.Modes[i] == Immediate {
			b.WriteString(" imm")
		} else {
			b.WriteString(" pos")
		}
	}
	return b.String()
}

package intcode

import (
	"fmt"
	"strings"
)

// Disasm returns a textual form of the instruction at addr and its width.
// Position parameters are shown as [n] and immediate parameters as (n).
// Words that do not decode are shown as data with a width of 1.
func (m *Machine) Disasm(addr int) (string, int) {
	if addr < 0 || addr >= len(m.Mem) {
		return "????", 1
	}
	in, err := Decode(m.Mem[addr])
	if err != nil {
		return fmt.Sprintf("%-4s %d", "DATA", m.Mem[addr]), 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s", in.Op)
	for i := 0; i < in.Op.Params(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		p := addr + 1 + i
		if p >= len(m.Mem) {
			b.WriteString("?")
			continue
		}
		b.WriteString(formatParam(m.Mem[p], in.Modes[i]))
	}
	return b.String(), in.Op.Width()
}

func formatParam(p int, mode Mode) string {
	if mode == Immediate {
		return fmt.Sprintf("(%d)", p)
	}
	return fmt.Sprintf("[%d]", p)
}

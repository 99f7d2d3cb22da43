package intcode

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slices"
	"pgregory.net/rand"
)

func TestNewMachine(t *testing.T) {
	prog := []int{1, 0, 0, 0, 99}
	m := NewMachine(prog, 0)
	prog[0] = 2
	if g := m.Mem[0]; g != 1 {
		t.Errorf("Mem[0] = %d after modifying program, want 1", g)
	}
	if !m.Interactive() {
		t.Error("new machine is not interactive")
	}
	if m.Halted() {
		t.Error("new machine is halted")
	}
	if _, ok := m.Output(); ok {
		t.Error("new machine has output")
	}
	if m := NewMachine(prog, 3); m.PC != 3 {
		t.Errorf("PC = %d, want 3", m.PC)
	}
}

func TestExec(t *testing.T) {
	c := newExecTestCase
	for i, c := range []*execTestCase{
		c(1, 0, 0, 0, 99).want().mem(0, 2).pc(4),
		c(1101, 100, -1, 4, 0).want().mem(4, 99).pc(4),
		c(2, 3, 0, 3, 99).want().mem(3, 6).pc(4),
		c(1002, 4, 3, 4, 33).want().mem(4, 99).pc(4),
		c(2, 4, 4, 5, 99, 0).want().mem(5, 9801).pc(4),
		c(1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50).want().mem(3, 70).pc(4),

		c(3, 0, 4, 0, 99).input(573).want().mem(0, 573).pc(2),
		c(4, 2, 42).input().want().output(42).pc(2),
		c(104, -7).input().want().output(-7).pc(2),

		c(1107, 1, 2, 0).want().mem(0, 1).pc(4),
		c(1107, 2, 2, 0).want().mem(0, 0).pc(4),
		c(1107, 3, 2, 0).want().mem(0, 0).pc(4),
		c(1108, 2, 2, 0).want().mem(0, 1).pc(4),
		c(1108, 2, 3, 0).want().mem(0, 0).pc(4),
		c(7, 4, 5, 0, -1, 8).want().mem(0, 1).pc(4),

		c(1105, 1, 9).want().pc(9),
		c(1105, 0, 9).want().pc(3),
		c(1106, 0, 9).want().pc(9),
		c(1106, 7, 9).want().pc(3),
		c(5, 3, 4, 1, 7).want().pc(7),
		c(6, 3, 4, 1, 7).want().pc(3),
		c(1105, 1, -4).want().pc(-4),

		c(99, 1, 2).want().error(ErrHalt),

		c(42).want().error(MalformedProgram),
		c(-1).want().error(MalformedProgram),
		c(201, 0, 0, 0).want().error(MalformedProgram),
		c(10001, 0, 0, 0).want().error(MalformedProgram),
		c(3, 0).input().want().error(InputStarvation),
		c(1, 0, 0).want().error(OutOfBounds),
		c(1, 0, 50, 0).want().error(OutOfBounds),
		c(1, 0, 0, 50).want().error(OutOfBounds),
		c(1, 0, 0, -1).want().error(OutOfBounds),
		c(3, 9).input(1).want().error(OutOfBounds),
	} {
		t.Run(fmt.Sprintf("%v_%d", Op(c.m.Mem[0]%100), i), func(t *testing.T) {
			err := c.m.Step()
			if c.err == nil && err != nil {
				t.Fatalf("got error %v, want none", err)
			}
			if c.err != nil && !errors.Is(err, c.err) {
				t.Fatalf("got error %v, want %v", err, c.err)
			}
			if g, w := c.m.Mem, c.w.Mem; !slices.Equal(g, w) {
				t.Errorf("memory is\n\t%v\nwant\n\t%v", g, w)
			}
			if g, w := c.m.PC, c.w.PC; g != w {
				t.Errorf("PC is %d, want %d", g, w)
			}
			if _, g := c.m.Queues(); !slices.Equal(g, c.out) {
				t.Errorf("output is %v, want %v", g, c.out)
			}
		})
	}
}

type execTestCase struct {
	m, w *Machine
	err  error
	out  []int
	set  *Machine
}

func newExecTestCase(prog ...int) *execTestCase {
	c := &execTestCase{}
	c.m = NewMachine(prog, 0)
	c.w = NewMachine(prog, 0)
	c.set = c.m
	return c
}

// input switches the machine under test to queued mode with the given
// input values, which may be none.
func (c *execTestCase) input(vals ...int) *execTestCase {
	c.m.Input(0)
	c.m.queues.in = Queue{}
	for _, v := range vals {
		c.m.Input(v)
	}
	return c
}

func (c *execTestCase) mem(addr int, vals ...int) *execTestCase {
	copy(c.set.Mem[addr:], vals)
	if c.set == c.m {
		copy(c.w.Mem[addr:], vals)
	}
	return c
}

func (c *execTestCase) pc(addr int) *execTestCase {
	c.set.PC = addr
	return c
}

func (c *execTestCase) output(vals ...int) *execTestCase {
	c.out = vals
	return c
}

func (c *execTestCase) want() *execTestCase {
	c.set = c.w
	return c
}

func (c *execTestCase) error(err error) *execTestCase {
	c.err = err
	return c
}

func TestRun(t *testing.T) {
	for _, c := range []struct {
		prog, want []int
	}{
		{[]int{1, 0, 0, 0, 99}, []int{2, 0, 0, 0, 99}},
		{[]int{2, 3, 0, 3, 99}, []int{2, 3, 0, 6, 99}},
		{[]int{2, 4, 4, 5, 99, 0}, []int{2, 4, 4, 5, 99, 9801}},
		{[]int{1, 1, 1, 4, 99, 5, 6, 0, 99}, []int{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{
			[]int{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50},
			[]int{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50},
		},
	} {
		m := NewMachine(c.prog, 0)
		if err := m.Run(); err != nil {
			t.Errorf("Run(%v): %v", c.prog, err)
			continue
		}
		if !slices.Equal(m.Mem, c.want) {
			t.Errorf("Run(%v) left memory %v, want %v", c.prog, m.Mem, c.want)
		}
		if !m.Halted() {
			t.Errorf("Run(%v) did not halt", c.prog)
		}
	}
}

func TestRunReturnsFault(t *testing.T) {
	m := NewMachine([]int{1101, 1, 1, 0, 3, 0, 99}, 0)
	m.Input(5)
	m.Input(6)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	m = NewMachine([]int{1101, 1, 1, 0, 77}, 0)
	err := m.Run()
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("Run returned %v, want a *Fault", err)
	}
	if f.Code != MalformedProgram || f.Addr != 4 {
		t.Errorf("got fault %v at %d, want %v at 4", f.Code, f.Addr, MalformedProgram)
	}
	if m.Halted() {
		t.Error("machine halted after fault")
	}
}

// Programs consisting only of ADD, MUL and HLT produce the same memory
// every time they are run from the same initial memory.
func TestRunDeterministic(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 200; i++ {
		prog := randomArithmetic(rnd)
		a, b := NewMachine(prog, 0), NewMachine(prog, 0)
		errA, errB := a.Run(), b.Run()
		if !errors.Is(errA, errB) && fmt.Sprint(errA) != fmt.Sprint(errB) {
			t.Fatalf("program %v: runs returned %v and %v", prog, errA, errB)
		}
		if !slices.Equal(a.Mem, b.Mem) || a.PC != b.PC {
			t.Fatalf("program %v: runs left\n\t%v\nand\n\t%v", prog, a.Mem, b.Mem)
		}
	}
}

// randomArithmetic returns a program of ADD and MUL instructions with
// in-range operands, followed by HLT and some data cells.
func randomArithmetic(rnd *rand.Rand) []int {
	var (
		n    = 1 + rnd.Intn(8)
		data = 1 + rnd.Intn(8)
		size = n*4 + 1 + data
		prog = make([]int, 0, size)
	)
	for i := 0; i < n; i++ {
		in := Instr{Op: ADD}
		if rnd.Intn(2) == 1 {
			in.Op = MUL
		}
		a, b := rnd.Intn(size), rnd.Intn(size)
		if rnd.Intn(3) == 0 {
			in.Modes[0] = Immediate
			a = rnd.Intn(100) - 50
		}
		if rnd.Intn(3) == 0 {
			in.Modes[1] = Immediate
			b = rnd.Intn(100) - 50
		}
		// Only write to the data cells so the code stays intact.
		dst := n*4 + 1 + rnd.Intn(data)
		prog = append(prog, in.Encode(), a, b, dst)
	}
	prog = append(prog, int(HLT))
	for i := 0; i < data; i++ {
		prog = append(prog, rnd.Intn(20))
	}
	return prog
}

func TestQueuedIO(t *testing.T) {
	m := NewMachine([]int{3, 0, 4, 0, 99}, 0)
	m.Input(573)
	if m.Interactive() {
		t.Fatal("machine still interactive after Input")
	}
	if !slices.Equal(m.Mem, []int{3, 0, 4, 0, 99}) {
		t.Errorf("Input modified memory: %v", m.Mem)
	}

	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(m.Mem, []int{573, 0, 4, 0, 99}) {
		t.Errorf("memory after IN is %v", m.Mem)
	}
	if v, ok := m.Output(); ok {
		t.Errorf("unexpected output %d after IN", v)
	}

	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if v, ok := m.Output(); !ok || v != 573 {
		t.Errorf("Output() = %d, %v; want 573, true", v, ok)
	}
	if v, ok := m.Output(); ok {
		t.Errorf("second Output() = %d, want none", v)
	}

	if err := m.Step(); err != ErrHalt {
		t.Errorf("third Step returned %v, want ErrHalt", err)
	}
	if !m.Halted() {
		t.Error("machine not halted")
	}
}

func TestCompare(t *testing.T) {
	for _, c := range []struct {
		name string
		prog []int
		in   int
		want int
	}{
		{"position_eq_8", []int{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 1},
		{"position_eq_8", []int{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 0},
		{"position_lt_8", []int{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 0},
		{"position_lt_8", []int{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 1},
		{"immediate_eq_8", []int{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 8, 1},
		{"immediate_eq_8", []int{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 7, 0},
		{"immediate_lt_8", []int{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 8, 0},
		{"immediate_lt_8", []int{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 7, 1},
		{"position_jump", []int{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 0, 0},
		{"position_jump", []int{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 1, 1},
		{"immediate_jump", []int{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, 0, 0},
		{"immediate_jump", []int{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, 1, 1},
	} {
		t.Run(fmt.Sprintf("%s_%d", c.name, c.in), func(t *testing.T) {
			m := NewMachine(c.prog, 0)
			m.Input(c.in)
			if err := m.Run(); err != nil {
				t.Fatal(err)
			}
			if _, out := m.Queues(); !slices.Equal(out, []int{c.want}) {
				t.Errorf("output %v, want [%d]", out, c.want)
			}
		})
	}
}

func TestJumpPointer(t *testing.T) {
	m := NewMachine([]int{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 0)
	m.Input(0)
	for _, want := range []int{2, 9, 11} {
		if err := m.Step(); err != nil {
			t.Fatal(err)
		}
		if m.PC != want {
			t.Fatalf("PC = %d, want %d", m.PC, want)
		}
	}
	if v, ok := m.Output(); !ok || v != 0 {
		t.Errorf("Output() = %d, %v; want 0, true", v, ok)
	}
	if err := m.Step(); err != ErrHalt {
		t.Errorf("Step returned %v, want ErrHalt", err)
	}
}

func TestInputStarvation(t *testing.T) {
	prog := []int{3, 5, 3, 6, 99, 0, 0}
	m := NewMachine(prog, 0)
	m.Input(11)
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	mem := slices.Clone(m.Mem)
	err := m.Step()
	if !errors.Is(err, InputStarvation) {
		t.Fatalf("Step returned %v, want InputStarvation", err)
	}
	var f *Fault
	if errors.As(err, &f); f.Op != IN || f.Addr != 2 {
		t.Errorf("fault at %v %d, want IN 2", f.Op, f.Addr)
	}
	if m.PC != 2 {
		t.Errorf("PC = %d after starvation, want 2", m.PC)
	}
	if !slices.Equal(m.Mem, mem) {
		t.Errorf("memory changed after starvation: %v, was %v", m.Mem, mem)
	}
	// The machine may continue once input is supplied.
	m.Input(22)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if g := m.Mem[5:]; !slices.Equal(g, []int{11, 22}) {
		t.Errorf("inputs stored as %v, want [11 22]", g)
	}
}

func TestRunUntilOutput(t *testing.T) {
	// Outputs its input twice, then halts.
	m := NewMachine([]int{3, 9, 4, 9, 4, 9, 99, 0, 0, 0}, 0)
	m.Input(5)
	for i := 0; i < 2; i++ {
		if err := m.RunUntilOutput(); err != nil {
			t.Fatalf("RunUntilOutput %d: %v", i, err)
		}
		if v, ok := m.Output(); !ok || v != 5 {
			t.Fatalf("Output() = %d, %v; want 5, true", v, ok)
		}
	}
	if err := m.RunUntilOutput(); err != ErrHalt {
		t.Fatalf("RunUntilOutput returned %v, want ErrHalt", err)
	}
	if !m.Halted() {
		t.Error("machine not halted")
	}
}

func TestRunUntilOutputWithPendingOutput(t *testing.T) {
	m := NewMachine([]int{104, 1, 104, 2, 99}, 0)
	m.Input(0)
	if err := m.RunUntilOutput(); err != nil {
		t.Fatal(err)
	}
	if err := m.RunUntilOutput(); err != nil {
		t.Fatal(err)
	}
	if _, out := m.Queues(); !slices.Equal(out, []int{1, 2}) {
		t.Errorf("output %v, want [1 2]", out)
	}
	if m.PC != 4 {
		t.Errorf("PC = %d, want 4", m.PC)
	}
}

func TestTerminal(t *testing.T) {
	var (
		in  = strings.NewReader("8\n")
		out bytes.Buffer
		m   = NewMachine([]int{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 0)
	)
	m.Dev = NewTerminal(in, &out)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if g, w := out.String(), "<= => 1\n"; g != w {
		t.Errorf("terminal output %q, want %q", g, w)
	}
	if _, ok := m.Output(); ok {
		t.Error("interactive machine queued output")
	}
}

func TestTerminalLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	m := NewMachine([]int{3, 0, 4, 0, 99}, 0)
	m.Dev = NewTerminal(strings.NewReader(" -12 "), &out)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if g, w := out.String(), "<= => -12\n"; g != w {
		t.Errorf("terminal output %q, want %q", g, w)
	}
}

func TestTerminalFailure(t *testing.T) {
	for _, input := range []string{"", "seven\n"} {
		m := NewMachine([]int{3, 0, 99}, 0)
		m.Dev = NewTerminal(strings.NewReader(input), &bytes.Buffer{})
		if err := m.Run(); !errors.Is(err, TerminalIO) {
			t.Errorf("input %q: Run returned %v, want TerminalIO", input, err)
		}
		if m.PC != 0 || m.Mem[0] != 3 {
			t.Errorf("input %q: machine changed after failure", input)
		}
	}
}

func TestDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := NewMockDevice(ctrl)
	gomock.InOrder(
		dev.EXPECT().In().Return(20, nil),
		dev.EXPECT().Out(40).Return(nil),
	)

	m := NewMachine([]int{3, 0, 102, 2, 0, 0, 4, 0, 99}, 0)
	m.Dev = dev
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestDeviceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := NewMockDevice(ctrl)
	broken := errors.New("broken pipe")
	dev.EXPECT().Out(7).Return(broken)

	m := NewMachine([]int{104, 7, 99}, 0)
	m.Dev = dev
	err := m.Run()
	if !errors.Is(err, TerminalIO) || !errors.Is(err, broken) {
		t.Fatalf("Run returned %v, want TerminalIO wrapping %v", err, broken)
	}
	if g, w := err.Error(), "terminal i/o failure executing OUT at 0000: broken pipe"; g != w {
		t.Errorf("error is %q, want %q", g, w)
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	m := NewMachine([]int{1101, 2, 3, 5, 99, 0}, 0)
	m.Trace = &buf
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	want := "0000 ADD  (2), (3), [5]\n0004 HLT \n"
	if g := buf.String(); g != want {
		t.Errorf("trace is\n%q\nwant\n%q", g, want)
	}
}

package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/intcode/intcode"
)

// debugMode runs program under the interactive debugger until the user
// exits.
func debugMode(program []int, cfg *Config) error {
	d := newDebugger(program, cfg.MaxSteps)
	log.SetPrefix("")
	log.SetOutput(d.log)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("intcode: ")
	}()
	log.Printf("debug: %d cells loaded; type help for commands", len(program))
	d.render(pauseState)
	return d.app.Run()
}

type stateKind int

const (
	pauseState stateKind = iota
	breakState
	waitState // blocked on input
	haltState
	faultState
)

// debugDevice feeds the machine from inputs typed into the debugger. An
// IN instruction with no pending input starves, which leaves the machine
// unchanged so it can continue once input is given.
type debugDevice struct {
	in  intcode.Queue
	out []int
}

func (d *debugDevice) In() (int, error) {
	v, ok := d.in.Pop()
	if !ok {
		return 0, intcode.InputStarvation
	}
	return v, nil
}

func (d *debugDevice) Out(v int) error {
	d.out = append(d.out, v)
	log.Printf("=> %d", v)
	return nil
}

type debugger struct {
	prog     []int
	maxSteps int

	m       *intcode.Machine
	dev     *debugDevice
	err     error
	brk     map[int]bool
	watches []int

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application
}

func newDebugger(prog []int, maxSteps int) *debugger {
	d := &debugger{
		prog:     prog,
		maxSteps: maxSteps,
		brk:      map[int]bool{},
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.reset()

	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 4, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := strings.TrimSpace(d.input.GetText())
		if cmd == "" {
			return
		}
		d.input.SetText("")
		if cmd == "exit" || cmd == "q" {
			d.app.Stop()
			return
		}
		d.render(d.exec(cmd))
	})
	return d
}

func (d *debugger) reset() {
	d.dev = &debugDevice{}
	d.m = intcode.NewMachine(d.prog, 0)
	d.m.Dev = d.dev
	d.err = nil
}

const debugHelp = `commands:
  s, step [n]     execute n instructions (default 1)
  c, cont         run until halt, fault, break point or step limit
  i, input v...   queue input values
  b, break [a]    toggle a break point at address a, or clear all
  w, watch [a]    watch the cell at address a, or clear all
  r, reset        reload the program
  q, exit         leave the debugger`

// exec performs a debugger command and returns the resulting state.
func (d *debugger) exec(line string) stateKind {
	cmd, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)
	switch cmd {
	case "help", "h", "?":
		log.Print(debugHelp)
	case "s", "step":
		n := 1
		if args != "" {
			v, err := strconv.Atoi(args)
			if err != nil || v < 1 {
				log.Printf("invalid step count %q", args)
				return d.current()
			}
			n = v
		}
		return d.run(n, false)
	case "c", "cont":
		n := d.maxSteps
		if n <= 0 {
			n = math.MaxInt
		}
		return d.run(n, true)
	case "i", "input":
		for _, f := range strings.Fields(args) {
			v, err := strconv.Atoi(f)
			if err != nil {
				log.Printf("invalid input %q", f)
				return d.current()
			}
			d.dev.in.Push(v)
		}
		log.Printf("input queue %v", &d.dev.in)
		if errors.Is(d.err, intcode.InputStarvation) && d.dev.in.Len() > 0 {
			d.err = nil
		}
	case "b", "break":
		if args == "" {
			d.brk = map[int]bool{}
			log.Print("cleared break points")
			break
		}
		addr, ok := d.addr(args)
		if !ok {
			break
		}
		if d.brk[addr] {
			delete(d.brk, addr)
			log.Printf("cleared break %.4d", addr)
		} else {
			d.brk[addr] = true
			log.Printf("set break %.4d", addr)
		}
	case "w", "watch":
		if args == "" {
			d.watches = nil
			log.Print("cleared watches")
			break
		}
		if addr, ok := d.addr(args); ok {
			d.watches = append(d.watches, addr)
			log.Printf("watching %.4d", addr)
		}
	case "r", "reset":
		d.reset()
		log.Print("reset")
	default:
		log.Printf("unknown command %q", cmd)
	}
	return d.current()
}

func (d *debugger) addr(s string) (int, bool) {
	addr, err := strconv.Atoi(s)
	if err != nil || addr < 0 || addr >= len(d.m.Mem) {
		log.Printf("invalid address %q", s)
		return 0, false
	}
	return addr, true
}

// run executes up to n instructions. If stopAtBreak is set, execution
// stops before an instruction at a break point, other than the first.
func (d *debugger) run(n int, stopAtBreak bool) stateKind {
	if d.m.Halted() || d.err != nil && !errors.Is(d.err, intcode.InputStarvation) {
		return d.current()
	}
	for i := 0; i < n; i++ {
		if stopAtBreak && i > 0 && d.brk[d.m.PC] {
			return breakState
		}
		d.err = d.m.Step()
		if d.err == intcode.ErrHalt {
			d.err = nil
			log.Print("halted")
			return haltState
		}
		if d.err != nil {
			if !errors.Is(d.err, intcode.InputStarvation) {
				log.Printf("fault: %v", d.err)
			}
			return d.current()
		}
	}
	if stopAtBreak {
		log.Printf("stopped after %d steps", n)
	}
	return d.current()
}

func (d *debugger) current() stateKind {
	switch {
	case d.m.Halted():
		return haltState
	case errors.Is(d.err, intcode.InputStarvation):
		return waitState
	case d.err != nil:
		return faultState
	case d.brk[d.m.PC]:
		return breakState
	}
	return pauseState
}

func (d *debugger) render(k stateKind) {
	switch k {
	case pauseState:
		d.state.SetTextColor(tcell.ColorBlack)
		d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	case breakState:
		d.state.SetTextColor(tcell.ColorYellow)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	case waitState:
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	case haltState, faultState:
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkRed)
	}
	d.state.SetText(stateMsg(d.m, &d.dev.in, k))
	d.watch.SetText(d.watchContent())
}

func stateMsg(m *intcode.Machine, in *intcode.Queue, k stateKind) string {
	kind := "       "
	switch k {
	case breakState:
		kind = "[break]"
	case waitState:
		kind = "[input]"
	case haltState:
		kind = "[HALT!]"
	case faultState:
		kind = "[FAULT]"
	}
	op, _ := m.Disasm(m.PC)
	return fmt.Sprintf("%.4d %s %s\nin: %v\n", m.PC, kind, op, in)
}

func (d *debugger) watchContent() string {
	var b strings.Builder
	brk := make([]int, 0, len(d.brk))
	for addr := range d.brk {
		brk = append(brk, addr)
	}
	sort.Ints(brk)
	for _, addr := range brk {
		fmt.Fprintf(&b, "[%.4d] brk!\n", addr)
	}
	for _, addr := range d.watches {
		fmt.Fprintf(&b, "[%.4d] %d\n", addr, d.m.Mem[addr])
	}
	return b.String()
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/puzzle"
)

var (
	inputFlag = &cli.IntSliceFlag{
		Name:  "input",
		Usage: "queue `value` as input, may be repeated; without inputs the program runs on the terminal",
	}
	traceFlag = &cli.BoolFlag{
		Name:  "trace",
		Usage: "write each executed instruction to standard error",
	}
	maxStepsFlag = &cli.IntFlag{
		Name:  "max-steps",
		Usage: "give up after `n` instructions, 0 for no limit",
	}
)

var runCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "run an Intcode program",
	ArgsUsage: "<program.txt>",
	Flags:     []cli.Flag{inputFlag, traceFlag, maxStepsFlag},
}

func doRun(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	prog, err := programArg(c)
	if err != nil {
		return err
	}
	term := intcode.NewTerminal(os.Stdin, os.Stdout)
	return execute(prog, c.IntSlice("input"), cfg, term, os.Stdout, os.Stderr)
}

var errStepLimit = errors.New("step limit reached")

// execute runs prog until it halts. If inputs are given the machine is
// queued and its outputs are written to w one per line. Otherwise it
// performs I/O on term.
func execute(prog, inputs []int, cfg *Config, term intcode.Device, w, trace io.Writer) error {
	m := intcode.NewMachine(prog, 0)
	m.Dev = term
	for _, v := range inputs {
		m.Input(v)
	}
	if cfg.Trace {
		m.Trace = trace
	}
	err := runLimited(m, cfg.MaxSteps)
	for {
		v, ok := m.Output()
		if !ok {
			break
		}
		fmt.Fprintln(w, v)
	}
	return err
}

// runLimited runs m until it halts or has executed limit instructions.
// A limit of zero or less means no limit.
func runLimited(m *intcode.Machine, limit int) error {
	if limit <= 0 {
		return m.Run()
	}
	for n := 0; n < limit; n++ {
		switch err := m.Step(); err {
		case nil:
		case intcode.ErrHalt:
			return nil
		default:
			return err
		}
	}
	return fmt.Errorf("%w after %d instructions at %.4d", errStepLimit, limit, m.PC)
}

var solveCmd = cli.Command{
	Action:    doSolve,
	Name:      "solve",
	Usage:     "check a puzzle's samples and solve it",
	ArgsUsage: "<day>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Usage: "read the puzzle input from `file`, - for standard input (default dayNN.txt in the input directory)",
		},
		&cli.StringFlag{
			Name:  "input-dir",
			Usage: "look for puzzle inputs in `dir`",
		},
	},
}

func doSolve(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return fmt.Errorf("usage: %s %s %s", c.App.Name, c.Command.Name, c.Command.ArgsUsage)
	}
	d, err := puzzle.Lookup(c.Args().First())
	if err != nil {
		return err
	}
	return solve(d, c.String("input"), cfg, os.Stdin, os.Stdout)
}

func solve(d *puzzle.Day, file string, cfg *Config, stdin io.Reader, w io.Writer) error {
	if err := d.CheckSamples(); err != nil {
		return err
	}
	input, err := readInput(file, cfg.InputDir, d.Num, stdin)
	if err != nil {
		return err
	}
	return d.Solve(w, input)
}

func readInput(file, dir string, day int, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	switch file {
	case "-":
		b, err = io.ReadAll(stdin)
	case "":
		file = filepath.Join(dir, fmt.Sprintf("day%.2d.txt", day))
		fallthrough
	default:
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("reading puzzle input: %w", err)
	}
	return string(b), nil
}

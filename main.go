// Command intcode runs Intcode programs and the Advent of Code 2019
// puzzles built on them.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v2"

	"github.com/nf/intcode/intcode"
)

func main() {
	log.SetPrefix("intcode: ")
	log.SetFlags(0)

	var cpuProfile io.Closer
	app := &cli.App{
		Name:  "intcode",
		Usage: "run Intcode programs and puzzles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "read settings from TOML `file` (default " + defaultConfigFile + " if present)",
			},
			&cli.StringFlag{
				Name:  "cpu_profile",
				Usage: "write CPU profile to `file`",
			},
		},
		Before: func(c *cli.Context) error {
			prof := c.String("cpu_profile")
			if prof == "" {
				return nil
			}
			f, err := os.Create(prof)
			if err != nil {
				return fmt.Errorf("creating CPU profile file: %v", err)
			}
			pprof.StartCPUProfile(f)
			cpuProfile = f
			return nil
		},
		After: func(c *cli.Context) error {
			if f := cpuProfile; f != nil {
				pprof.StopCPUProfile()
				return f.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			&runCmd,
			&solveCmd,
			&debugCmd,
			&devCmd,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var debugCmd = cli.Command{
	Action:    doDebug,
	Name:      "debug",
	Usage:     "step through a program in the interactive debugger",
	ArgsUsage: "<program.txt>",
}

func doDebug(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	prog, err := programArg(c)
	if err != nil {
		return err
	}
	return debugMode(prog, cfg)
}

// config loads the configuration named by the global -config flag and
// applies the flags of the current command over it.
func config(c *cli.Context) (*Config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	for _, n := range c.LocalFlagNames() {
		switch n {
		case "max-steps":
			cfg.MaxSteps = c.Int(n)
		case "trace":
			cfg.Trace = c.Bool(n)
		case "input-dir":
			cfg.InputDir = c.String(n)
		}
	}
	return cfg, nil
}

// programArg reads the program named by the command's only argument.
func programArg(c *cli.Context) ([]int, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("usage: %s %s %s", c.App.Name, c.Command.Name, c.Command.ArgsUsage)
	}
	return loadProgram(c.Args().First())
}

func loadProgram(file string) ([]int, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	prog, err := intcode.Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return prog, nil
}

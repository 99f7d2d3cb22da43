package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/nf/intcode/intcode"
)

var devCmd = cli.Command{
	Action:    doDev,
	Name:      "dev",
	Usage:     "run a program each time its file changes",
	ArgsUsage: "<program.txt>",
	Flags:     []cli.Flag{inputFlag, traceFlag, maxStepsFlag},
}

func doDev(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	if _, err := programArg(c); err != nil {
		return err
	}
	return devMode(c.Args().First(), c.IntSlice("input"), cfg)
}

// devMode runs file, and runs it again whenever it is written, until the
// process is interrupted.
func devMode(file string, inputs []int, cfg *Config) error {
	file = filepath.Clean(file)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(file)); err != nil {
		return err
	}

	run := time.After(1 * time.Millisecond)
	for {
		select {
		case <-run:
			log.Printf("dev: run %s", filepath.Base(file))
			if err := devRun(file, inputs, cfg); err != nil {
				log.Printf("dev: %v", err)
				break
			}
			log.Printf("dev: halted")
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == file && !ev.IsAttrib() {
				run = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("dev: watcher: %v", err)
		}
	}
}

func devRun(file string, inputs []int, cfg *Config) error {
	prog, err := loadProgram(file)
	if err != nil {
		return err
	}
	term := intcode.NewTerminal(os.Stdin, os.Stdout)
	return execute(prog, inputs, cfg, term, os.Stdout, os.Stderr)
}

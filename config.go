package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// defaultConfigFile is read from the working directory when no -config
// flag is given. It need not exist.
const defaultConfigFile = "intcode.toml"

// Config holds settings shared by the commands.
type Config struct {
	// MaxSteps bounds the number of instructions executed by run, dev
	// and the debugger's cont command. Zero or less means no bound.
	MaxSteps int `toml:"max-steps"`
	// Trace writes each executed instruction to standard error.
	Trace bool `toml:"trace"`
	// InputDir is where solve looks for dayNN.txt puzzle inputs.
	InputDir string `toml:"input-dir"`
}

func defaultConfig() *Config {
	return &Config{
		MaxSteps: 10_000_000,
		InputDir: ".",
	}
}

// loadConfig reads the TOML file at path over the defaults. If path is
// empty the default file is used if present.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	optional := path == ""
	if optional {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		var names []string
		for _, k := range keys {
			names = append(names, k.String())
		}
		return nil, fmt.Errorf("%s: unknown settings %s", path, strings.Join(names, ", "))
	}
	if cfg.InputDir == "" {
		cfg.InputDir = "."
	}
	return cfg, nil
}

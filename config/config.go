// Package config loads optional ambient tuning knobs for the CLI and VM
// from a ".ember.yaml" file. Nothing in the CORE pipeline requires it -
// every field has a zero-config default, matching spec.md's non-goal of
// persisted interpreter state.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const FileName = ".ember.yaml"

// Config holds the tunables the CLI reads before starting a run, repl, or
// emit session.
type Config struct {
	// StackCapacity is the VM operand stack's initial capacity. The stack
	// still grows on demand via Go's slice append; this just sizes the
	// first allocation.
	StackCapacity int `yaml:"stack_capacity"`

	// DisassembleByDefault makes `ember emit` behave as though -disassemble
	// was passed even when it wasn't.
	DisassembleByDefault bool `yaml:"disassemble_by_default"`

	// TraceOnStart makes `ember run`/`ember repl` start with VM.Trace set.
	TraceOnStart bool `yaml:"trace_on_start"`
}

// Default returns the configuration used when no .ember.yaml is found.
func Default() Config {
	return Config{StackCapacity: 256}
}

// Load reads dir/.ember.yaml if present, overlaying its fields onto the
// defaults. A missing file is not an error - it just means Default() is
// used as-is.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := dir + string(os.PathSeparator) + FileName
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

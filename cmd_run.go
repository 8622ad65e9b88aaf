package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"ember/compiler"
	"ember/vm"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/subcommands"
)

// Exit codes follow spec.md §6: a clean run exits 0, a compile error exits
// 65, and a runtime error exits 70.
const (
	exitCompileError subcommands.ExitStatus = 65
	exitRuntimeError subcommands.ExitStatus = 70
)

// runCmd compiles and executes a source file through the CORE bytecode
// pipeline: lexer -> compiler.Compile -> vm.VM.Run.
type runCmd struct {
	trace bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Compile and run an Ember source file" }
func (*runCmd) Usage() string {
	return heredoc.Doc(`
		run <file>:
		  Compile <file> through the bytecode pipeline and execute it.
	`)
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "log each instruction and the operand stack before executing it")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "💥 file not provided")
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	cfg := loadConfig(filepath.Dir(args[0]))

	log := newLogger()
	c, err := compiler.Compile(string(source))
	if err != nil {
		log.Errorf("compile error: %v", err)
		return exitCompileError
	}

	machine := vm.New(log, cfg.StackCapacity)
	machine.Trace = r.trace || cfg.TraceOnStart
	if _, err := machine.Run(c); err != nil {
		log.Errorf("runtime error: %v", err)
		return exitRuntimeError
	}

	return subcommands.ExitSuccess
}

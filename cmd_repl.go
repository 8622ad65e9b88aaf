package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ember/compiler"
	"ember/vm"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

// replCmd starts an interactive REPL over the CORE bytecode pipeline. Each
// line is compiled and run independently; the VM instance persists across
// lines so a print statement from one line can't see state from another
// (the CORE grammar has no variables), but this keeps the session warm for
// future statement forms.
type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Ember REPL" }
func (*replCmd) Usage() string {
	return heredoc.Doc(`
		repl:
		  Start an interactive session. Type "exit" or press Ctrl-D to quit.
	`)
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "log each instruction and the operand stack before executing it")
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\nWelcome to Ember!")

	historyFile := filepath.Join(os.TempDir(), ".ember_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	cfg := loadConfig(dir)

	log := newLogger()
	machine := vm.New(log, cfg.StackCapacity)
	machine.Trace = r.trace || cfg.TraceOnStart

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		if line == "exit" {
			return subcommands.ExitSuccess
		}
		if line == "" {
			continue
		}

		c, err := compiler.Compile(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if _, err := machine.Run(c); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

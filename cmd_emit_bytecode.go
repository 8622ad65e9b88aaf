package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ember/compiler"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/subcommands"
)

// emitBytecodeCmd compiles a source file through the CORE pipeline without
// running it, writing a human-readable disassembly and/or a hex dump of
// the raw bytecode to disk.
type emitBytecodeCmd struct {
	disassemble  bool
	dumpBytecode bool
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Compile a file without running it and write out its bytecode"
}
func (*emitBytecodeCmd) Usage() string {
	return heredoc.Doc(`
		emit <file> [-disassemble] [-dump]:
		  Compile <file> and write a disassembly listing (<file>.dnic) and/or
		  a hex bytecode dump (<file>.nic) alongside it. -disassemble falls
		  back to .ember.yaml's disassemble_by_default when not passed.
	`)
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", false, "write a disassembly listing to <file>.dnic (defaults to config.DisassembleByDefault when unset)")
	f.BoolVar(&cmd.dumpBytecode, "dump", true, "write the raw bytecode as hexadecimal to <file>.nic")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "💥 file not provided")
		return subcommands.ExitUsageError
	}
	emberFile := args[0]

	data, err := os.ReadFile(emberFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	cfg := loadConfig(filepath.Dir(emberFile))
	disassemble := cmd.disassemble
	if !flagWasSet(f, "disassemble") {
		disassemble = cfg.DisassembleByDefault
	}

	c, err := compiler.Compile(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 compile error:\n%v\n", err)
		return exitCompileError
	}

	base := strings.TrimSuffix(emberFile, filepath.Ext(emberFile))

	if disassemble {
		if err := c.DumpDisassembly(base, base); err != nil {
			fmt.Fprintf(os.Stderr, "💥 bytecode disassemble error:\n\t%s\n", err.Error())
			return subcommands.ExitFailure
		}
	}

	if cmd.dumpBytecode {
		if err := c.DumpBytecode(base); err != nil {
			fmt.Fprintf(os.Stderr, "💥 dump bytecode error:\n\t%s\n", err.Error())
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

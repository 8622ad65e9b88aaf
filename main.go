package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ember/config"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// newLogger builds the logrus.Logger used for non-interactive diagnostics
// (ember run, --trace output). The repl and emit subcommands write
// straight to stderr instead, so it doesn't clutter interactive sessions
// with structured-log furniture.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&easy.Formatter{
		TimestampFormat: "15:04:05",
		LogFormat:       "[%lvl%] %time% - %msg%\n",
	})
	return log
}

// loadConfig reads dir/.ember.yaml, falling back to config.Default() both
// when the file is absent and when it fails to parse - a broken config
// file should never be the reason a run/repl/emit session can't start.
func loadConfig(dir string) config.Config {
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to load %s: %v\n", config.FileName, err)
		return config.Default()
	}
	return cfg
}

// flagWasSet reports whether name was explicitly passed on the command
// line, as opposed to carrying its zero/default value - lets a config file
// supply the default without being overridden by flag.FlagSet's own default.
func flagWasSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&emitBytecodeCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

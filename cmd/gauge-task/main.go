// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package main implements the gauge-task executable, used to run gauge specs
// as a build step.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/term"

	"github.com/getgauge/gauge-task/internal/command"
	"github.com/getgauge/gauge-task/internal/logging"
)

// Version is the version info of this command. It is filled in at link time.
var Version = "<unknown>"

// newLogger creates a logging.Logger based on the supplied command-line flags.
func newLogger(w io.Writer, verbose, logTime bool) logging.Logger {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.NewSinkLogger(level, logTime, logging.NewWriterSink(w))
}

// installSignalHandler restores the terminal state before the process is
// terminated by a signal, since deferred functions don't run in that case.
func installSignalHandler() {
	var st *term.State
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		st, _ = term.GetState(fd)
	}
	command.InstallSignalHandler(os.Stderr, func(os.Signal) {
		if st != nil {
			term.Restore(fd, st)
		}
	})
}

// newCommander returns a subcommands.Commander with all gauge-task
// subcommands registered. Output of subcommands is written to stdout and
// stderr.
func newCommander(fs *flag.FlagSet, stdout, stderr io.Writer) *subcommands.Commander {
	cdr := subcommands.NewCommander(fs, "gauge-task")
	cdr.Output = stdout
	cdr.Error = stderr
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")
	cdr.Register(newRunCmd(stdout, stderr), "")
	cdr.Register(newCommandCmd(stdout), "")
	return cdr
}

// doMain implements the main body of the program. It's a separate function so
// that its deferred functions will run before os.Exit makes the program exit
// immediately.
func doMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gauge-task", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cdr := newCommander(fs, stdout, stderr)

	version := fs.Bool("version", false, "print version and exit")
	verbose := fs.Bool("verbose", false, "use verbose logging")
	logTime := fs.Bool("logtime", false, "include date/time headers in logs")
	if err := fs.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}

	if *version {
		fmt.Fprintf(stdout, "gauge-task version %s\n", Version)
		return int(subcommands.ExitSuccess)
	}

	ctx := logging.AttachLogger(context.Background(), newLogger(stderr, *verbose, *logTime))
	return int(cdr.Execute(ctx))
}

func main() {
	installSignalHandler()
	os.Exit(doMain(os.Args[1:], os.Stdout, os.Stderr))
}

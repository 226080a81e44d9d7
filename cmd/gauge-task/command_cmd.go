// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/getgauge/gauge-task/internal/command"
	"github.com/getgauge/gauge-task/internal/config"
	"github.com/getgauge/gauge-task/internal/gauge"
	"github.com/getgauge/gauge-task/internal/logging"
	"github.com/getgauge/gauge-task/internal/shutil"
)

// commandCmd implements subcommands.Command to print the gauge command line
// without running it.
type commandCmd struct {
	cfg *config.MutableConfig
	out io.Writer
}

var _ = subcommands.Command(&commandCmd{})

func newCommandCmd(out io.Writer) *commandCmd {
	return &commandCmd{cfg: config.NewMutableConfig(), out: out}
}

func (*commandCmd) Name() string     { return "command" }
func (*commandCmd) Synopsis() string { return "print the gauge command line" }
func (*commandCmd) Usage() string {
	return `Usage: command [flag]...

Description:
    Prints the gauge command line that "run" would execute with the same
    flags, one shell-escaped line, without running it.

Flag:
`
}

func (c *commandCmd) SetFlags(f *flag.FlagSet) {
	c.cfg.SetFlags(f)
}

func (c *commandCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		logging.Info(ctx, "Unexpected arguments.\n\n"+c.Usage())
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(ctx, c.cfg)
	if err != nil {
		logging.Error(ctx, err)
		return subcommands.ExitStatus(command.Status(err, int(subcommands.ExitFailure)))
	}
	args, err := gauge.Command(ctx, cfg)
	if err != nil {
		logging.Error(ctx, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.out, shutil.EscapeSlice(args))
	return subcommands.ExitSuccess
}

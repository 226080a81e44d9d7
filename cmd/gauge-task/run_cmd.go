// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/pkg/errors"

	"github.com/getgauge/gauge-task/internal/command"
	"github.com/getgauge/gauge-task/internal/config"
	"github.com/getgauge/gauge-task/internal/gauge"
	"github.com/getgauge/gauge-task/internal/logging"
	"github.com/getgauge/gauge-task/internal/timing"
)

// runCmd implements subcommands.Command to support running gauge specs.
type runCmd struct {
	cfg       *config.MutableConfig
	timingLog string // path to write timing information to; empty to disable
	stdout    io.Writer
	stderr    io.Writer
}

var _ = subcommands.Command(&runCmd{})

func newRunCmd(stdout, stderr io.Writer) *runCmd {
	return &runCmd{
		cfg:    config.NewMutableConfig(),
		stdout: stdout,
		stderr: stderr,
	}
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run gauge specs" }
func (*runCmd) Usage() string {
	return `Usage: run [flag]...

Description:
    Runs gauge with arguments derived from the build configuration.
    The configuration is read from the build file (gauge.hcl or gauge.yaml),
    then the properties file (gauge.properties), then -P flags, then the
    dedicated flags below. Later sources override earlier ones.

    Exits with 0 if gauge succeeded and 1 if it failed, could not be started,
    or the specs directory does not exist.

Flag:
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.timingLog, "timinglog", "", "write timing information as JSON to this file")
	r.cfg.SetFlags(f)
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		logging.Info(ctx, "Unexpected arguments.\n\n"+r.Usage())
		return subcommands.ExitUsageError
	}

	tl := timing.NewLog()
	ctx = timing.NewContext(ctx, tl)
	st := timing.Start(ctx, "run")
	if r.timingLog != "" {
		defer func() {
			st.End()
			if err := writeTimingLog(r.timingLog, tl); err != nil {
				logging.Info(ctx, "Failed to write timing log: ", err)
			}
		}()
	}

	err := r.run(ctx)
	if err != nil {
		logging.Error(ctx, err)
	}
	return subcommands.ExitStatus(command.Status(err, int(subcommands.ExitFailure)))
}

func (r *runCmd) run(ctx context.Context) error {
	cfg, err := loadConfig(ctx, r.cfg)
	if err != nil {
		return err
	}
	return gauge.Run(ctx, cfg, r.stdout, r.stderr)
}

// loadConfig loads mcfg and returns the frozen configuration. Failures are
// reported as usage errors.
func loadConfig(ctx context.Context, mcfg *config.MutableConfig) (*config.Config, error) {
	defer timing.Start(ctx, "config").End()
	if err := mcfg.Load(ctx); err != nil {
		return nil, command.NewStatusErrorf(int(subcommands.ExitUsageError), "Failed to load configuration: %v", err)
	}
	return mcfg.Freeze(), nil
}

func writeTimingLog(path string, tl *timing.Log) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tl.Write(f); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write timing")
	}
	return f.Close()
}

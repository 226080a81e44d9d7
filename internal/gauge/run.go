// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gauge

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/getgauge/gauge-task/internal/config"
	"github.com/getgauge/gauge-task/internal/logging"
	"github.com/getgauge/gauge-task/internal/shutil"
	"github.com/getgauge/gauge-task/internal/timing"
)

// NewCmd returns an unstarted gauge command for cfg.
//
// The command inherits the environment of the current process, with
// ClasspathEnv set to the configured classpath (empty if unset). Its standard
// streams are left unset.
func NewCmd(ctx context.Context, cfg *config.Config) (*exec.Cmd, error) {
	args, err := Command(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(args[0], args[1:]...)
	logging.Debugf(ctx, "Setting custom classpath => %s", cfg.Classpath())
	cmd.Env = append(os.Environ(), ClasspathEnv+"="+cfg.Classpath())
	return cmd, nil
}

// drainTimeout is how long Run keeps relaying output after gauge exits.
// Output still open after that, e.g. held by a process gauge left running in
// the background, is discarded.
var drainTimeout = 2 * time.Second

// Run runs gauge as configured by cfg and waits for it to exit.
// Output of gauge is copied to stdout and stderr as it is produced.
//
// The returned error wraps ErrSpecsDirNotFound, ErrNotInstalled or
// ErrExecutionFailed depending on the failure.
func Run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	defer timing.Start(ctx, "gauge").End()

	cmd, err := NewCmd(ctx, cfg)
	if err != nil {
		return err
	}
	logging.Info(ctx, "Executing command => ", shutil.EscapeSlice(cmd.Args))

	outR, outW, err := os.Pipe()
	if err != nil {
		return errors.Wrap(ErrExecutionFailed, err.Error())
	}
	defer outR.Close()
	errR, errW, err := os.Pipe()
	if err != nil {
		outW.Close()
		return errors.Wrap(ErrExecutionFailed, err.Error())
	}
	defer errR.Close()
	cmd.Stdout = outW
	cmd.Stderr = errW

	err = cmd.Start()
	// The write ends are held by gauge from now on.
	outW.Close()
	errW.Close()
	if err != nil {
		logging.Debug(ctx, "Failed to start gauge: ", err)
		return ErrNotInstalled
	}

	var g errgroup.Group
	g.Go(func() error { return relay(stdout, outR) })
	g.Go(func() error { return relay(stderr, errR) })
	relayed := make(chan error, 1)
	go func() { relayed <- g.Wait() }()

	waitErr := cmd.Wait()

	var relayErr error
	select {
	case relayErr = <-relayed:
	case <-time.After(drainTimeout):
		logging.Debugf(ctx, "Output of gauge still open %v after it exited; discarding the rest", drainTimeout)
		outR.Close()
		errR.Close()
		if err := <-relayed; !errors.Is(err, os.ErrClosed) {
			relayErr = err
		}
	}

	if waitErr != nil {
		var xerr *exec.ExitError
		if errors.As(waitErr, &xerr) {
			logging.Debugf(ctx, "gauge exited with status %d", xerr.ExitCode())
			return ErrExecutionFailed
		}
		return errors.Wrap(ErrExecutionFailed, waitErr.Error())
	}
	if relayErr != nil {
		return errors.Wrapf(ErrExecutionFailed, "failed to relay output: %v", relayErr)
	}
	return nil
}

// relay copies r to w until r is exhausted. If w fails, the remaining output
// is discarded so that the subprocess is not blocked on a full pipe.
func relay(w io.Writer, r io.Reader) error {
	if _, err := io.Copy(w, r); err != nil {
		io.Copy(io.Discard, r)
		return err
	}
	return nil
}

// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gauge builds and runs gauge command lines.
package gauge

import (
	"context"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/getgauge/gauge-task/internal/config"
	"github.com/getgauge/gauge-task/internal/logging"
	"github.com/getgauge/gauge-task/internal/shutil"
)

const (
	executable     = "gauge"
	tagsFlag       = "--tags"
	parallelFlag   = "--parallel"
	nodesFlag      = "-n"
	envFlag        = "--env"
	defaultSpecDir = "specs"

	// ClasspathEnv is the environment variable carrying the custom classpath
	// to the gauge language runner.
	ClasspathEnv = "gauge_custom_classpath"
)

// Command returns the gauge command line described by cfg, starting with the
// executable name.
//
// If cfg names a specs directory that does not exist, an error wrapping
// ErrSpecsDirNotFound is returned.
func Command(ctx context.Context, cfg *config.Config) ([]string, error) {
	cmd := []string{executable}

	if tags := cfg.Tags(); tags != "" {
		cmd = append(cmd, tagsFlag, tags)
	}

	if cfg.InParallel() {
		cmd = append(cmd, parallelFlag)
		if n := cfg.Nodes(); n != 0 {
			cmd = append(cmd, nodesFlag, strconv.Itoa(n))
		}
	}

	if env := cfg.Env(); env != "" {
		cmd = append(cmd, envFlag, env)
	}

	cmd = append(cmd, shutil.SplitFlags(cfg.AdditionalFlags())...)

	dir, err := specsDir(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return append(cmd, dir), nil
}

// specsDir returns the specs directory to pass to gauge.
func specsDir(ctx context.Context, cfg *config.Config) (string, error) {
	dir := cfg.SpecsDir()
	if dir == "" {
		logging.Warningf(ctx, "Property %q not set. Using default value => %q", config.PropSpecsDir, defaultSpecDir)
		return defaultSpecDir, nil
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(ErrSpecsDirNotFound, dir)
		}
		return "", errors.Wrapf(ErrSpecsDirNotFound, "%s: %v", dir, err)
	}
	return dir, nil
}

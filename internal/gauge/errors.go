// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gauge

import "github.com/pkg/errors"

// Failures reported by Command, NewCmd and Run. Use errors.Is to classify
// an error returned by them.
var (
	// ErrNotInstalled indicates that the gauge executable could not be started.
	ErrNotInstalled = errors.New("Gauge or Java runner is not installed! Read " + installDocURL)
	// ErrExecutionFailed indicates that gauge exited with a nonzero status or
	// that waiting for it was interrupted.
	ErrExecutionFailed = errors.New("Execution failed for one or more tests!")
	// ErrSpecsDirNotFound indicates that the configured specs directory does
	// not exist.
	ErrSpecsDirNotFound = errors.New("Specs directory specified is not existing!")
)

const installDocURL = "http://getgauge.io/documentation/user/current/getting_started/download_and_install.html"

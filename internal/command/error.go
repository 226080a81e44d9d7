// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package command contains code shared by the gauge-task executable's subcommands.
package command

import (
	"fmt"

	"github.com/pkg/errors"
)

// StatusError implements the error interface and contains an additional status code.
type StatusError struct {
	msg    string
	status int
}

func (e *StatusError) Error() string {
	return e.msg
}

// Status returns e's status code.
func (e *StatusError) Status() int {
	return e.status
}

// NewStatusErrorf creates a StatusError with the passed status code and formatted string.
func NewStatusErrorf(status int, format string, args ...interface{}) *StatusError {
	return &StatusError{fmt.Sprintf(format, args...), status}
}

// Status returns the exit status to use for err.
// It is 0 for a nil error, the status of the first *StatusError found in the
// chain of err, or def otherwise.
func Status(err error, def int) int {
	if err == nil {
		return 0
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.status
	}
	return def
}

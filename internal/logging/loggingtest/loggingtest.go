// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package loggingtest provides logging utilities for unit tests.
package loggingtest

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/getgauge/gauge-task/internal/logging"
)

// Entry is a log received by Logger.
type Entry struct {
	Level logging.Level
	Msg   string
}

// Logger is a logging.Logger that accumulates logs to an in-memory buffer,
// as well as emitting them as unit test logs.
type Logger struct {
	t     *testing.T
	level logging.Level

	mu      sync.Mutex
	entries []Entry
}

// NewLogger creates a new Logger keeping logs at level or above.
func NewLogger(t *testing.T, level logging.Level) *Logger {
	return &Logger{t: t, level: level}
}

// Log gets called for a log event.
func (l *Logger) Log(level logging.Level, ts time.Time, msg string) {
	l.t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.t.Logf("[%v] %s", level, msg)
	if level >= l.level {
		l.entries = append(l.entries, Entry{Level: level, Msg: msg})
	}
}

// Entries returns the logs received so far.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Logs returns the messages received so far.
func (l *Logger) Logs() []string {
	var msgs []string
	for _, e := range l.Entries() {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

// String returns received logs as a newline-separated string.
func (l *Logger) String() string {
	return strings.Join(l.Logs(), "\n")
}

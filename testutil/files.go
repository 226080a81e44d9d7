// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testutil provides support code for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFiles creates and writes files (keys are relative filenames,
// values are contents) within dir.
func WriteFiles(dir string, files map[string]string) error {
	for fn, c := range files {
		p := filepath.Join(dir, fn)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(c), 0644); err != nil {
			return err
		}
	}
	return nil
}

// TempDirWithFiles creates a temporary directory removed at the end of the
// test, writes files into it as WriteFiles does and returns its path.
// Errors are reported to t as fatal.
func TempDirWithFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	td := t.TempDir()
	if err := WriteFiles(td, files); err != nil {
		t.Fatal(err)
	}
	return td
}

// Chdir changes the current directory to dir until the end of the test.
// Tests calling Chdir must not run in parallel.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
}

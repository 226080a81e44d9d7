// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"github.com/getgauge/gauge-task/internal/fakegauge"
	"github.com/getgauge/gauge-task/testutil"
)

func TestCommandCmd(t *testing.T) {
	testutil.Chdir(t, t.TempDir())
	fake := fakegauge.Install(t, fakegauge.Behavior{})

	for _, tc := range []struct {
		args []string
		want string
	}{
		{
			args: []string{"command", "-tags", "smoke", "-parallel", "-nodes", "4", "-env", "ci"},
			want: "gauge --tags smoke --parallel -n 4 --env ci specs\n",
		},
		{
			args: []string{"command", "-tags", "smoke && !slow", "-nodes", "4"},
			want: "gauge --tags 'smoke && !slow' specs\n",
		},
		{
			args: []string{"command", "-flags", "--verbose --fail-safe"},
			want: "gauge --verbose --fail-safe specs\n",
		},
	} {
		var stdout, stderr bytes.Buffer
		if status := doMain(tc.args, &stdout, &stderr); status != int(subcommands.ExitSuccess) {
			t.Errorf("doMain(%q) = %d; want %d (stderr: %q)", tc.args, status, subcommands.ExitSuccess, stderr.String())
			continue
		}
		if got := stdout.String(); got != tc.want {
			t.Errorf("doMain(%q) printed %q; want %q", tc.args, got, tc.want)
		}
	}

	if _, ok := fake.Invocation(); ok {
		t.Error("command executed gauge")
	}
}

func TestCommandCmdMissingSpecsDir(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	args := []string{"command", "-specsdir", "nosuchdir"}
	if status := doMain(args, &stdout, &stderr); status != int(subcommands.ExitFailure) {
		t.Errorf("doMain(%q) = %d; want %d", args, status, subcommands.ExitFailure)
	}
	if stdout.Len() != 0 {
		t.Errorf("doMain(%q) printed %q; want nothing", args, stdout.String())
	}
	const msg = "Specs directory specified is not existing!"
	if n := strings.Count(stderr.String(), msg); n != 1 {
		t.Errorf("doMain(%q) reported %q %d times; want once (stderr: %q)", args, msg, n, stderr.String())
	}
}

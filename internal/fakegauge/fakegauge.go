// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package fakegauge provides a fake gauge executable for unit tests.
//
// Install places a "gauge" symlink to the current test executable in a
// temporary directory and makes it the only entry of PATH. When the test
// executable is started through the symlink, the init function of this package
// acts as gauge: it records its invocation, prints canned output and exits
// with a canned status, without running any test.
//
// A test package must import this package (directly or indirectly) for the
// fake to take effect in its subprocesses.
package fakegauge

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const (
	// behaviorEnv carries a JSON-encoded Behavior to the fake executable.
	behaviorEnv = "FAKE_GAUGE_BEHAVIOR"

	// lingerEnv makes the test executable sleep for the given duration.
	lingerEnv = "FAKE_GAUGE_LINGER"

	classpathEnv = "gauge_custom_classpath"
)

// Behavior describes what the fake gauge does when executed.
type Behavior struct {
	// Stdout and Stderr are written to the corresponding streams.
	Stdout string
	Stderr string
	// ExitCode is the status the fake exits with.
	ExitCode int
	// Linger, if positive, makes the fake leave a background process that
	// keeps its stdout and stderr open for that long after the fake exits.
	Linger time.Duration

	// RecordPath is where the Invocation is written. Set by Install.
	RecordPath string
}

// Invocation describes how the fake gauge was executed.
type Invocation struct {
	// Args contains command-line arguments excluding the executable name.
	Args []string
	// Classpath is the value of gauge_custom_classpath.
	Classpath string
	// ClasspathSet is true if gauge_custom_classpath was set at all.
	ClasspathSet bool
	// LingerPID is the process ID of the background process started for
	// Behavior.Linger, or 0.
	LingerPID int
}

func init() {
	if v, ok := os.LookupEnv(lingerEnv); ok {
		d, _ := time.ParseDuration(v)
		time.Sleep(d)
		os.Exit(0)
	}

	v, ok := os.LookupEnv(behaviorEnv)
	if !ok {
		return
	}
	var b Behavior
	if err := json.Unmarshal([]byte(v), &b); err != nil {
		fmt.Fprintf(os.Stderr, "fakegauge: bad %s: %v\n", behaviorEnv, err)
		os.Exit(125)
	}
	os.Exit(run(&b))
}

// run implements the fake gauge and returns its exit status.
func run(b *Behavior) int {
	cp, cpSet := os.LookupEnv(classpathEnv)
	inv := Invocation{Args: os.Args[1:], Classpath: cp, ClasspathSet: cpSet}
	if b.Linger > 0 {
		pid, err := linger(b.Linger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fakegauge: %v\n", err)
			return 125
		}
		inv.LingerPID = pid
	}
	data, err := json.Marshal(&inv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakegauge: %v\n", err)
		return 125
	}
	if err := os.WriteFile(b.RecordPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "fakegauge: %v\n", err)
		return 125
	}
	fmt.Fprint(os.Stdout, b.Stdout)
	fmt.Fprint(os.Stderr, b.Stderr)
	return b.ExitCode
}

// linger starts a copy of the current executable that inherits stdout and
// stderr and sleeps for d. It returns the process ID of the copy.
func linger(d time.Duration) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, err
	}
	cmd := exec.Command(exe)
	cmd.Env = append(os.Environ(), lingerEnv+"="+d.String())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	return cmd.Process.Pid, nil
}

// Fake is a fake gauge installed by Install.
type Fake struct {
	t   *testing.T
	dir string
	b   Behavior
}

// Install installs a fake gauge behaving as b until the end of the test.
// The PATH and FAKE_GAUGE_BEHAVIOR environment variables of the current
// process are modified, so tests calling Install must not run in parallel.
func Install(t *testing.T, b Behavior) *Fake {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Symlink(exe, filepath.Join(dir, "gauge")); err != nil {
		t.Fatal(err)
	}
	b.RecordPath = filepath.Join(dir, "invocation.json")
	data, err := json.Marshal(&b)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("PATH", dir)
	t.Setenv(behaviorEnv, string(data))
	f := &Fake{t: t, dir: dir, b: b}
	t.Cleanup(f.killLinger)
	return f
}

// killLinger kills the background process left by Behavior.Linger, if any.
func (f *Fake) killLinger() {
	data, err := os.ReadFile(f.b.RecordPath)
	if err != nil {
		return
	}
	var inv Invocation
	if err := json.Unmarshal(data, &inv); err != nil || inv.LingerPID == 0 {
		return
	}
	if p, err := os.FindProcess(inv.LingerPID); err == nil {
		p.Kill()
	}
}

// RemoveFromPath makes the fake unreachable so that starting gauge fails.
func (f *Fake) RemoveFromPath() {
	f.t.Helper()
	f.t.Setenv("PATH", f.t.TempDir())
}

// Invocation returns the recorded invocation of the fake. ok is false if the
// fake has not been executed.
func (f *Fake) Invocation() (inv *Invocation, ok bool) {
	f.t.Helper()
	data, err := os.ReadFile(f.b.RecordPath)
	if os.IsNotExist(err) {
		return nil, false
	} else if err != nil {
		f.t.Fatal(err)
	}
	inv = &Invocation{}
	if err := json.Unmarshal(data, inv); err != nil {
		f.t.Fatal(err)
	}
	return inv, true
}

// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config_test

import (
	"context"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/getgauge/gauge-task/internal/config"
	"github.com/getgauge/gauge-task/testutil"
)

// values is a comparable snapshot of a Config.
type values struct {
	Tags            string
	InParallel      bool
	Nodes           int
	Env             string
	AdditionalFlags string
	SpecsDir        string
	Classpath       string
}

func snapshot(cfg *config.Config) values {
	return values{
		Tags:            cfg.Tags(),
		InParallel:      cfg.InParallel(),
		Nodes:           cfg.Nodes(),
		Env:             cfg.Env(),
		AdditionalFlags: cfg.AdditionalFlags(),
		SpecsDir:        cfg.SpecsDir(),
		Classpath:       cfg.Classpath(),
	}
}

// load creates a MutableConfig, parses args as flags, loads it in dir and
// returns the frozen result.
func load(t *testing.T, dir string, args ...string) (*config.Config, error) {
	t.Helper()
	testutil.Chdir(t, dir)

	c := config.NewMutableConfig()
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%q) failed: %v", args, err)
	}
	if err := c.Load(context.Background()); err != nil {
		return nil, err
	}
	return c.Freeze(), nil
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, t.TempDir())
	if err != nil {
		t.Fatal("Load failed: ", err)
	}
	if diff := cmp.Diff(snapshot(cfg), values{}); diff != "" {
		t.Errorf("Config mismatch (-got +want):\n%s", diff)
	}
}

func TestLoadHCLBuildFile(t *testing.T) {
	td := testutil.TempDirWithFiles(t, map[string]string{
		config.DefaultHCLBuildFile: `
project = "acme"

gauge {
  tags             = "smoke"
  in_parallel      = true
  nodes            = 4
  env              = "ci"
  additional_flags = "--verbose"
  specs_dir        = "specs/acceptance"
  classpath        = "build/classes:lib/*"
}

repository "central" {}
`,
	})
	cfg, err := load(t, td)
	if err != nil {
		t.Fatal("Load failed: ", err)
	}
	want := values{
		Tags:            "smoke",
		InParallel:      true,
		Nodes:           4,
		Env:             "ci",
		AdditionalFlags: "--verbose",
		SpecsDir:        "specs/acceptance",
		Classpath:       "build/classes:lib/*",
	}
	if diff := cmp.Diff(snapshot(cfg), want); diff != "" {
		t.Errorf("Config mismatch (-got +want):\n%s", diff)
	}
}

func TestLoadYAMLBuildFile(t *testing.T) {
	td := testutil.TempDirWithFiles(t, map[string]string{
		"build/gauge.yml": `
gauge:
  tags: "smoke & !wip"
  inParallel: true
  env: staging
other:
  key: value
`,
	})
	cfg, err := load(t, td, "-buildfile=build/gauge.yml")
	if err != nil {
		t.Fatal("Load failed: ", err)
	}
	want := values{Tags: "smoke & !wip", InParallel: true, Env: "staging"}
	if diff := cmp.Diff(snapshot(cfg), want); diff != "" {
		t.Errorf("Config mismatch (-got +want):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	td := testutil.TempDirWithFiles(t, map[string]string{
		config.DefaultHCLBuildFile: `
gauge {
  tags  = "from-build"
  env   = "from-build"
  nodes = 2
  specs_dir = "build-specs"
}
`,
		config.DefaultPropertiesFile: `
tags=from-properties
env=from-properties
additionalFlags=--verbose --fail-safe
org.gradle.jvmargs=-Xmx2g
`,
	})
	cfg, err := load(t, td, "-P", "env=from-P", "-P", "nodes=8", "-P", "unknown=1", "-nodes=16", "-parallel")
	if err != nil {
		t.Fatal("Load failed: ", err)
	}
	want := values{
		Tags:            "from-properties",
		InParallel:      true,
		Nodes:           16,
		Env:             "from-P",
		AdditionalFlags: "--verbose --fail-safe",
		SpecsDir:        "build-specs",
	}
	if diff := cmp.Diff(snapshot(cfg), want); diff != "" {
		t.Errorf("Config mismatch (-got +want):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		files map[string]string
		args  []string
	}{
		{"missing build file", nil, []string{"-buildfile=nonexistent.hcl"}},
		{"missing properties file", nil, []string{"-propfile=nonexistent.properties"}},
		{"unsupported extension", map[string]string{"gauge.toml": ""}, []string{"-buildfile=gauge.toml"}},
		{"bad HCL syntax", map[string]string{config.DefaultHCLBuildFile: "gauge {"}, nil},
		{"bad HCL type", map[string]string{config.DefaultHCLBuildFile: `gauge { nodes = "many" }`}, nil},
		{"duplicate HCL block", map[string]string{config.DefaultHCLBuildFile: "gauge {}\ngauge {}\n"}, nil},
		{"bad YAML", map[string]string{config.DefaultYAMLBuildFile: "gauge: [\n"}, nil},
		{"bad properties bool", map[string]string{config.DefaultPropertiesFile: "inParallel=maybe\n"}, nil},
		{"unquoted $ in properties", map[string]string{config.DefaultPropertiesFile: "classpath=lib/$HOME/x.jar\n"}, nil},
		{"double-quoted $ in properties", map[string]string{config.DefaultPropertiesFile: `classpath="${LIB}/x.jar"` + "\n"}, nil},
		{"bad -P nodes", nil, []string{"-P", "nodes=four"}},
		{"bad -nodes", nil, []string{"-nodes=four"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			td := testutil.TempDirWithFiles(t, tc.files)
			if _, err := load(t, td, tc.args...); err == nil {
				t.Error("Load unexpectedly succeeded")
			}
		})
	}
}

func TestLoadPropertiesLiteralValues(t *testing.T) {
	td := testutil.TempDirWithFiles(t, map[string]string{
		config.DefaultPropertiesFile: `# gauge settings
tags=smoke #fast
env = "ci"
classpath='lib/$HOME/x.jar:lib/#1.jar'
additionalFlags=--verbose # costs $5
`,
	})
	cfg, err := load(t, td)
	if err != nil {
		t.Fatal("Load failed: ", err)
	}
	want := values{
		Tags:            "smoke",
		Env:             "ci",
		AdditionalFlags: "--verbose",
		Classpath:       "lib/$HOME/x.jar:lib/#1.jar",
	}
	if diff := cmp.Diff(snapshot(cfg), want); diff != "" {
		t.Errorf("Config mismatch (-got +want):\n%s", diff)
	}
}

func TestLoadPropertiesRejectsExpansion(t *testing.T) {
	td := testutil.TempDirWithFiles(t, map[string]string{
		config.DefaultPropertiesFile: "tags=smoke\nclasspath=lib/$HOME/x.jar\n",
	})
	_, err := load(t, td)
	if err == nil {
		t.Fatal("Load unexpectedly succeeded")
	}
	if msg := err.Error(); !strings.Contains(msg, "line 2") || !strings.Contains(msg, `"classpath"`) {
		t.Errorf("Load error %q does not name line 2 and classpath", msg)
	}
}

func TestSet(t *testing.T) {
	c := config.NewMutableConfig()
	if err := c.Set(config.PropNodes, "3"); err != nil {
		t.Fatal(err)
	}
	if c.Nodes != 3 {
		t.Errorf("Nodes = %d; want 3", c.Nodes)
	}
	if err := c.Set("bogus", "1"); !errors.Is(err, config.ErrUnknownProperty) {
		t.Errorf("Set(bogus) = %v; want ErrUnknownProperty", err)
	}
}

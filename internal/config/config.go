// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config defines the configuration of a gauge invocation and loads it
// from build files, properties files and command-line flags.
package config

import (
	"context"
	"flag"
	"strconv"

	"github.com/pkg/errors"

	"github.com/getgauge/gauge-task/internal/command"
	"github.com/getgauge/gauge-task/internal/logging"
)

// Names of properties accepted in build files, properties files and -P flags.
const (
	PropTags            = "tags"
	PropInParallel      = "inParallel"
	PropNodes           = "nodes"
	PropEnv             = "env"
	PropAdditionalFlags = "additionalFlags"
	PropSpecsDir        = "specsDir"
	PropClasspath       = "classpath"
)

// propertyNames lists all known properties in the order they are applied.
var propertyNames = []string{
	PropTags,
	PropInParallel,
	PropNodes,
	PropEnv,
	PropAdditionalFlags,
	PropSpecsDir,
	PropClasspath,
}

// ErrUnknownProperty is returned by MutableConfig.Set for unknown property names.
var ErrUnknownProperty = errors.New("unknown property")

// assignment is a property assignment supplied on the command line.
type assignment struct {
	key, value string
}

// MutableConfig is similar to Config, but its fields are mutable.
// Call Freeze to obtain a Config from MutableConfig.
type MutableConfig struct {
	// See Config for descriptions of these fields.

	Tags            string
	InParallel      bool
	Nodes           int
	Env             string
	AdditionalFlags string
	SpecsDir        string
	Classpath       string

	// BuildFile is the path to an HCL or YAML build file. If empty, gauge.hcl
	// or gauge.yaml in the current directory is used if present.
	BuildFile string
	// PropertiesFile is the path to a KEY=VALUE properties file. If empty,
	// gauge.properties in the current directory is used if present.
	PropertiesFile string

	properties []assignment // from -P, in command-line order
	overrides  []assignment // from dedicated flags, in command-line order
}

// NewMutableConfig returns a MutableConfig with every property unset.
func NewMutableConfig() *MutableConfig {
	return &MutableConfig{}
}

// SetFlags adds common run-related flags to f that store values in c.
func (c *MutableConfig) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.BuildFile, "buildfile", "", "path to build file (.hcl, .yaml or .yml); "+DefaultHCLBuildFile+" or "+DefaultYAMLBuildFile+" if empty")
	f.StringVar(&c.PropertiesFile, "propfile", "", "path to KEY=VALUE properties file; "+DefaultPropertiesFile+" if empty")

	props := command.KeyValueFlag(func(k, v string) error {
		c.properties = append(c.properties, assignment{k, v})
		return nil
	})
	f.Var(&props, "P", "set a property as key=value; may be repeated")

	for _, o := range []struct {
		name, prop, usage string
	}{
		{"tags", PropTags, "tag expression selecting specs to run"},
		{"nodes", PropNodes, "number of parallel execution streams"},
		{"env", PropEnv, "gauge environment to use"},
		{"flags", PropAdditionalFlags, "additional space-separated flags passed to gauge"},
		{"specsdir", PropSpecsDir, "directory containing specs"},
		{"classpath", PropClasspath, "custom classpath passed to the runner"},
	} {
		o := o
		rf := command.RepeatedFlag(func(v string) error {
			c.overrides = append(c.overrides, assignment{o.prop, v})
			return nil
		})
		f.Var(&rf, o.name, o.usage)
	}
	par := command.BoolFunc(func(v bool) error {
		c.overrides = append(c.overrides, assignment{PropInParallel, strconv.FormatBool(v)})
		return nil
	})
	f.Var(&par, "parallel", "execute specs in parallel")
}

// Set assigns value to the property named key.
func (c *MutableConfig) Set(key, value string) error {
	switch key {
	case PropTags:
		c.Tags = value
	case PropInParallel:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Errorf("invalid value %q for property %s: want a boolean", value, key)
		}
		c.InParallel = b
	case PropNodes:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Errorf("invalid value %q for property %s: want an integer", value, key)
		}
		c.Nodes = n
	case PropEnv:
		c.Env = value
	case PropAdditionalFlags:
		c.AdditionalFlags = value
	case PropSpecsDir:
		c.SpecsDir = value
	case PropClasspath:
		c.Classpath = value
	default:
		return errors.Wrap(ErrUnknownProperty, key)
	}
	return nil
}

// Load reads the build file and the properties file, then applies properties
// given on the command line. Later sources override earlier ones.
func (c *MutableConfig) Load(ctx context.Context) error {
	if err := c.loadBuildFile(ctx); err != nil {
		return err
	}
	if err := c.loadPropertiesFile(ctx); err != nil {
		return err
	}
	for _, a := range c.properties {
		if err := c.setLogged(ctx, a.key, a.value); err != nil {
			return errors.Wrap(err, "bad -P flag")
		}
	}
	for _, a := range c.overrides {
		if err := c.Set(a.key, a.value); err != nil {
			return err
		}
	}
	return nil
}

// setLogged is similar to Set, but unknown properties are logged and skipped.
func (c *MutableConfig) setLogged(ctx context.Context, key, value string) error {
	err := c.Set(key, value)
	if errors.Is(err, ErrUnknownProperty) {
		logging.Debugf(ctx, "Ignoring unknown property %q", key)
		return nil
	}
	return err
}

// Freeze returns a frozen configuration object.
func (c *MutableConfig) Freeze() *Config {
	return &Config{m: *c}
}

// Config contains the configuration of a gauge invocation.
type Config struct {
	m MutableConfig
}

// Tags returns the tag expression selecting specs to execute. Empty if unset.
func (c *Config) Tags() string { return c.m.Tags }

// InParallel returns whether specs are executed in parallel.
func (c *Config) InParallel() bool { return c.m.InParallel }

// Nodes returns the number of parallel execution streams. 0 lets gauge decide.
func (c *Config) Nodes() int { return c.m.Nodes }

// Env returns the gauge environment name. Empty if unset.
func (c *Config) Env() string { return c.m.Env }

// AdditionalFlags returns raw space-separated flags passed through to gauge.
func (c *Config) AdditionalFlags() string { return c.m.AdditionalFlags }

// SpecsDir returns the path to the specs directory. Empty if unset.
func (c *Config) SpecsDir() string { return c.m.SpecsDir }

// Classpath returns the custom classpath handed to the runner. Empty if unset.
func (c *Config) Classpath() string { return c.m.Classpath }

// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/getgauge/gauge-task/internal/logging"
)

// Build files looked up in the current directory when MutableConfig.BuildFile is empty.
const (
	DefaultHCLBuildFile  = "gauge.hcl"
	DefaultYAMLBuildFile = "gauge.yaml"
)

// gaugeBlock is the "gauge" block of a build file.
//
// In HCL:
//
//	gauge {
//	  specs_dir   = "specs"
//	  in_parallel = true
//	  nodes       = 4
//	}
//
// In YAML:
//
//	gauge:
//	  specsDir: specs
//	  inParallel: true
//	  nodes: 4
type gaugeBlock struct {
	Tags            *string `hcl:"tags,optional" yaml:"tags"`
	InParallel      *bool   `hcl:"in_parallel,optional" yaml:"inParallel"`
	Nodes           *int    `hcl:"nodes,optional" yaml:"nodes"`
	Env             *string `hcl:"env,optional" yaml:"env"`
	AdditionalFlags *string `hcl:"additional_flags,optional" yaml:"additionalFlags"`
	SpecsDir        *string `hcl:"specs_dir,optional" yaml:"specsDir"`
	Classpath       *string `hcl:"classpath,optional" yaml:"classpath"`
}

// properties returns the attributes set in b keyed by property name.
func (b *gaugeBlock) properties() map[string]string {
	props := make(map[string]string)
	if b == nil {
		return props
	}
	setString := func(name string, v *string) {
		if v != nil {
			props[name] = *v
		}
	}
	setString(PropTags, b.Tags)
	setString(PropEnv, b.Env)
	setString(PropAdditionalFlags, b.AdditionalFlags)
	setString(PropSpecsDir, b.SpecsDir)
	setString(PropClasspath, b.Classpath)
	if b.InParallel != nil {
		props[PropInParallel] = strconv.FormatBool(*b.InParallel)
	}
	if b.Nodes != nil {
		props[PropNodes] = strconv.Itoa(*b.Nodes)
	}
	return props
}

// hclRoot decodes the top level of an HCL build file. Blocks and attributes
// other than "gauge" are left to other tools sharing the file.
type hclRoot struct {
	Gauge  *gaugeBlock `hcl:"gauge,block"`
	Remain hcl.Body    `hcl:",remain"`
}

type yamlRoot struct {
	Gauge *gaugeBlock `yaml:"gauge"`
}

// findBuildFile returns the default build file in the current directory, or
// an empty string if there is none.
func findBuildFile() string {
	for _, fn := range []string{DefaultHCLBuildFile, DefaultYAMLBuildFile} {
		if _, err := os.Stat(fn); err == nil {
			return fn
		}
	}
	return ""
}

func (c *MutableConfig) loadBuildFile(ctx context.Context) error {
	path := c.BuildFile
	if path == "" {
		if path = findBuildFile(); path == "" {
			logging.Debug(ctx, "No build file found; using defaults")
			return nil
		}
	}
	logging.Debug(ctx, "Reading build file ", path)

	props, err := readBuildFile(path)
	if err != nil {
		return err
	}
	for _, name := range propertyNames {
		if v, ok := props[name]; ok {
			if err := c.Set(name, v); err != nil {
				return errors.Wrapf(err, "bad build file %s", path)
			}
		}
	}
	return nil
}

// readBuildFile reads the gauge block of the build file at path and returns
// its attributes keyed by property name.
func readBuildFile(path string) (map[string]string, error) {
	switch ext := filepath.Ext(path); ext {
	case ".hcl":
		return readHCLBuildFile(path)
	case ".yaml", ".yml":
		return readYAMLBuildFile(path)
	default:
		return nil, errors.Errorf("unsupported build file extension %q for %s", ext, path)
	}
}

func readHCLBuildFile(path string) (map[string]string, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse %s", path)
	}
	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to decode %s", path)
	}
	return root.Gauge.properties(), nil
}

func readYAMLBuildFile(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var root yamlRoot
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return root.Gauge.properties(), nil
}

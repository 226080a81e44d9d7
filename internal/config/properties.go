// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/getgauge/gauge-task/internal/logging"
)

// DefaultPropertiesFile is read when MutableConfig.PropertiesFile is empty and
// the file exists in the current directory.
const DefaultPropertiesFile = "gauge.properties"

// loadPropertiesFile applies the properties file, which uses dotenv syntax:
// KEY=VALUE lines, "#" comments (including a " #" tail of an unquoted value)
// and single-quoted literal values. Values dotenv would expand, i.e. a "$"
// outside single quotes, are rejected rather than rewritten.
func (c *MutableConfig) loadPropertiesFile(ctx context.Context) error {
	path := c.PropertiesFile
	if path == "" {
		if _, err := os.Stat(DefaultPropertiesFile); err != nil {
			return nil
		}
		path = DefaultPropertiesFile
	}
	logging.Debug(ctx, "Reading properties file ", path)

	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read properties")
	}
	if err := checkNoExpansion(b); err != nil {
		return errors.Wrapf(err, "bad properties file %s", path)
	}
	props, err := godotenv.UnmarshalBytes(b)
	if err != nil {
		return errors.Wrapf(err, "failed to read properties from %s", path)
	}

	// Apply in a stable order so that errors are reproducible.
	keys := maps.Keys(props)
	slices.Sort(keys)
	for _, k := range keys {
		if err := c.setLogged(ctx, k, props[k]); err != nil {
			return errors.Wrapf(err, "bad properties file %s", path)
		}
	}
	return nil
}

// checkNoExpansion returns an error if a value in the dotenv data b contains
// a variable reference that godotenv would substitute.
func checkNoExpansion(b []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(b))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		i := strings.IndexAny(line, "=:")
		if i < 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		val := strings.TrimSpace(line[i+1:])
		if strings.HasPrefix(val, "'") {
			continue
		}
		if !strings.HasPrefix(val, `"`) {
			// Strip a comment tail the way godotenv does.
			for j := len(val) - 1; j > 0; j-- {
				if val[j] == '#' && (val[j-1] == ' ' || val[j-1] == '\t') {
					val = val[:j]
					break
				}
			}
		}
		if strings.Contains(val, "$") {
			return errors.Errorf("line %d: value of %q contains $; use single quotes for a literal value", n, key)
		}
	}
	return sc.Err()
}

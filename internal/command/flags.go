// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package command

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RepeatedFlag implements flag.Value around an assignment function that is executed each
// time the flag is supplied.
type RepeatedFlag func(val string) error

// String implements flag.Value.
func (f *RepeatedFlag) String() string { return "" }

// Set implements flag.Value.
func (f *RepeatedFlag) Set(val string) error { return (*f)(val) }

// KeyValueFlag implements flag.Value for repeated "key=value" arguments.
// The function is executed each time the flag is supplied.
type KeyValueFlag func(key, val string) error

// String implements flag.Value.
func (f *KeyValueFlag) String() string { return "" }

// Set implements flag.Value.
func (f *KeyValueFlag) Set(v string) error {
	parts := strings.SplitN(v, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return errors.Errorf("%q is not in the form of key=value", v)
	}
	return (*f)(parts[0], parts[1])
}

// BoolFunc implements flag.Value for a boolean flag whose assignment function is
// only executed when the flag is explicitly supplied.
type BoolFunc func(val bool) error

// String implements flag.Value.
func (f *BoolFunc) String() string { return "" }

// IsBoolFlag allows the flag to be supplied without a value.
func (f *BoolFunc) IsBoolFlag() bool { return true }

// Set implements flag.Value.
func (f *BoolFunc) Set(v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	return (*f)(b)
}

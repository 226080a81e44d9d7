// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package command_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/getgauge/gauge-task/internal/command"
)

func TestStatus(t *testing.T) {
	const def = 1
	se := command.NewStatusErrorf(2, "bad property %q", "nodes")
	for _, tc := range []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", errors.New("boom"), def},
		{"status", se, 2},
		{"wrapped", errors.Wrap(se, "failed to load config"), 2},
	} {
		if got := command.Status(tc.err, def); got != tc.want {
			t.Errorf("%s: Status(%v) = %d; want %d", tc.name, tc.err, got, tc.want)
		}
	}
	if got, want := se.Error(), `bad property "nodes"`; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}

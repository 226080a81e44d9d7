// Copyright 2026 The gauge-task Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package timing collects and writes timing information about the stages of a
// gauge-task invocation.
package timing

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
)

type key int // unexported context.Context key type to avoid collisions with other packages

const logKey key = iota

// Log contains nested timing information.
type Log struct {
	mu     sync.Mutex
	clk    clock.Clock
	Stages []*Stage `json:"stages"`
}

// NewLog returns a Log using the real clock.
func NewLog() *Log {
	return NewLogWithClock(clock.NewClock())
}

// NewLogWithClock returns a Log using clk as its time source.
func NewLogWithClock(clk clock.Clock) *Log {
	return &Log{clk: clk}
}

// NewContext returns a new context that carries value l.
func NewContext(ctx context.Context, l *Log) context.Context {
	return context.WithValue(ctx, logKey, l)
}

// FromContext returns the Log value stored in ctx, if any.
func FromContext(ctx context.Context) (*Log, bool) {
	l, ok := ctx.Value(logKey).(*Log)
	return l, ok
}

// Start starts and returns a new Stage named name within the Log attached
// to ctx. If no Log is attached to ctx, nil is returned. It is safe to call End
// on a nil stage.
//
//	defer timing.Start(ctx, "my_stage").End()
func Start(ctx context.Context, name string) *Stage {
	l, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	return l.Start(name)
}

// Empty returns true if l doesn't contain any stages.
func (l *Log) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Stages) == 0
}

// Start creates and returns a new named timing stage as a child of the
// currently-active stage. Stage.End should be called when the stage is
// completed.
func (l *Log) Start(name string) *Stage {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := &Stage{
		Name:      name,
		StartTime: l.clk.Now(),
		log:       l,
	}

	if len(l.Stages) == 0 || !l.Stages[len(l.Stages)-1].active() {
		l.Stages = append(l.Stages, s)
		return s
	}
	p := l.Stages[len(l.Stages)-1]
	for len(p.Children) > 0 && p.Children[len(p.Children)-1].active() {
		p = p.Children[len(p.Children)-1]
	}
	p.Children = append(p.Children, s)
	return s
}

// Write writes timing information to w as JSON, consisting of an array
// of stages, each represented by an array consisting of the stage's duration, name,
// and an optional array of child stages.
//
//	[[4.000, "run", [
//	         [1.000, "config"],
//	         [3.000, "gauge"]]]]
func (l *Log) Write(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	bw := bufio.NewWriter(w)
	io.WriteString(bw, "[")
	for i, s := range l.Stages {
		var indent string
		if i > 0 {
			indent = " "
		}
		if err := s.write(bw, indent, " ", i == len(l.Stages)-1); err != nil {
			return err
		}
	}
	io.WriteString(bw, "]\n")
	return bw.Flush()
}

// Stage represents a discrete unit of work that is being timed.
type Stage struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Children  []*Stage  `json:"children"`
	log       *Log
}

// Elapsed returns the amount of time that passed between the start and end of the stage.
// If the stage hasn't been completed, it returns the time since the start of the stage.
func (s *Stage) Elapsed() time.Duration {
	if s.active() {
		return s.log.clk.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// End ends the stage. Child stages are recursively ended too.
func (s *Stage) End() {
	if s == nil {
		return
	}
	s.log.mu.Lock()
	defer s.log.mu.Unlock()
	s.end(s.log.clk.Now())
}

func (s *Stage) end(now time.Time) {
	for _, c := range s.Children {
		c.end(now)
	}
	if s.active() {
		s.EndTime = now
	}
}

func (s *Stage) active() bool {
	return s.EndTime.IsZero()
}

// write writes the stage and its children to w as a JSON array.
// The caller is responsible for checking w for errors encountered while writing.
func (s *Stage) write(w *bufio.Writer, initialIndent, followIndent string, last bool) error {
	mn, err := json.Marshal(&s.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s[%0.3f, %s", initialIndent, s.Elapsed().Seconds(), mn)

	if len(s.Children) > 0 {
		io.WriteString(w, ", [\n")
		ci := followIndent + strings.Repeat(" ", 8)
		for i, c := range s.Children {
			if err := c.write(w, ci, ci, i == len(s.Children)-1); err != nil {
				return err
			}
		}
		io.WriteString(w, "]")
	}

	io.WriteString(w, "]")
	if !last {
		io.WriteString(w, ",\n")
	}
	return nil
}

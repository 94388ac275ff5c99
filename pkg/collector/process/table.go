// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package process

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/NVIDIA/host-assessment/pkg/collector/pkgdb"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	"github.com/NVIDIA/host-assessment/pkg/run"
)

// fixedColumns precede the command column in the process table.
const fixedColumns = 10

// Record is one live process, optionally attributed to the package owning
// its executable.
type Record struct {
	User       string        `json:"user" yaml:"user"`
	PID        int           `json:"pid" yaml:"pid"`
	CPU        float64       `json:"cpu" yaml:"cpu"`
	Mem        float64       `json:"mem" yaml:"mem"`
	VSZ        int64         `json:"vsz" yaml:"vsz"`
	RSS        int64         `json:"rss" yaml:"rss"`
	TTY        *string       `json:"tty" yaml:"tty"`
	State      string        `json:"stat" yaml:"stat"`
	Start      string        `json:"start" yaml:"start"`
	Time       string        `json:"time" yaml:"time"`
	Command    string        `json:"command" yaml:"command"`
	Args       []string      `json:"args" yaml:"args"`
	Executable *string       `json:"executable" yaml:"executable"`
	Package    *pkgdb.Record `json:"package" yaml:"package"`
	Unit       *string       `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// KernelThread reports whether the record looks like a kernel thread.
func (r *Record) KernelThread() bool {
	return strings.HasPrefix(r.Command, "[")
}

// Lister enumerates the live process table.
type Lister interface {
	List(ctx context.Context) ([]Record, error)
}

// PSLister lists processes with ps.
type PSLister struct {
	Runner run.Runner
}

// List runs ps and parses its table.
func (l *PSLister) List(ctx context.Context) ([]Record, error) {
	res := l.Runner.WithOutput(ctx, defaults.PSCommand, defaults.PSArgs)
	if !res.Started() {
		return nil, fmt.Errorf("failed to start %s: %s", defaults.PSCommand, res.Error())
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%s exited with code %d: %s", defaults.PSCommand, res.ExitCode, res.Error())
	}
	return ParseTable(res.StdOut), nil
}

// ParseTable parses ps aux style output. The header row is dropped, columns
// are separated by runs of whitespace, the eleventh column is the command and
// every later token is an argument. Rows that do not parse are skipped.
func ParseTable(out string) []Record {
	lines := strings.Split(out, "\n")
	recs := make([]Record, 0, len(lines))

	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rec, err := parseRow(fields)
		if err != nil {
			slog.Debug("skipping process row", slog.String("row", line), slog.String("error", err.Error()))
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

func parseRow(f []string) (Record, error) {
	if len(f) <= fixedColumns {
		return Record{}, fmt.Errorf("expected at least %d columns, got %d", fixedColumns+1, len(f))
	}

	pid, err := strconv.Atoi(f[1])
	if err != nil {
		return Record{}, fmt.Errorf("invalid pid %q: %w", f[1], err)
	}
	cpu, err := strconv.ParseFloat(f[2], 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid cpu %q: %w", f[2], err)
	}
	mem, err := strconv.ParseFloat(f[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid mem %q: %w", f[3], err)
	}
	vsz, err := strconv.ParseInt(f[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid vsz %q: %w", f[4], err)
	}
	rss, err := strconv.ParseInt(f[5], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid rss %q: %w", f[5], err)
	}

	var tty *string
	if f[6] != "?" {
		tty = &f[6]
	}

	return Record{
		User:    f[0],
		PID:     pid,
		CPU:     cpu,
		Mem:     mem,
		VSZ:     vsz,
		RSS:     rss,
		TTY:     tty,
		State:   f[7],
		Start:   f[8],
		Time:    f[9],
		Command: f[10],
		Args:    append([]string{}, f[fixedColumns+1:]...),
	}, nil
}

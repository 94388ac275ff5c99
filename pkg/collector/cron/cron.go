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

package cron

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	schedule "github.com/robfig/cron/v3"

	"github.com/NVIDIA/host-assessment/pkg/collector/file"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
)

// standardFields is the number of time fields in a user crontab schedule.
const standardFields = 5

// Job is one uncommented line of a crontab. Schedule, Command and NextRun are
// set only when the line carries a schedule the standard parser accepts.
type Job struct {
	Line     string     `json:"line" yaml:"line"`
	Schedule *string    `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Command  *string    `json:"command,omitempty" yaml:"command,omitempty"`
	NextRun  *time.Time `json:"next_run,omitempty" yaml:"next_run,omitempty"`
}

// JobSet maps a crontab file name to its jobs in file order.
type JobSet map[string][]Job

// Collector walks a cron spool directory.
type Collector struct {
	Dir string
	Now func() time.Time
}

// NewCollector returns a Collector for the spool directory under root.
func NewCollector(root string) *Collector {
	return &Collector{
		Dir: filepath.Join(root, defaults.CronSpoolDir),
		Now: time.Now,
	}
}

// Collect walks the spool directory recursively and returns the jobs of every
// regular file keyed by its base name. A base name seen twice is keyed by its
// path relative to the spool directory instead. A missing directory yields an
// empty set.
func (c *Collector) Collect(ctx context.Context) (JobSet, error) {
	jobs := JobSet{}

	ok, err := file.Exists(c.Dir)
	if err != nil {
		return nil, apperrors.FromSource("failed to read cron spool", err)
	}
	if !ok {
		slog.Debug("cron spool not present", slog.String("path", c.Dir))
		return jobs, nil
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	at := now()
	p := file.NewParser(file.WithMaxSize(defaults.ConfigMaxSize))

	err = filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() {
			return nil
		}

		lines, err := p.GetUncommentedLines(path)
		if err != nil {
			return err
		}

		key := d.Name()
		if _, dup := jobs[key]; dup {
			if rel, relErr := filepath.Rel(c.Dir, path); relErr == nil {
				key = rel
			}
		}

		set := make([]Job, 0, len(lines))
		for _, line := range lines {
			set = append(set, ParseJob(line, at))
		}
		jobs[key] = set
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, apperrors.FromSource(fmt.Sprintf("failed to walk cron spool %s", c.Dir), err)
	}

	slog.Debug("collected crontabs", slog.Int("files", len(jobs)))
	return jobs, nil
}

// ParseJob decorates a raw crontab line with its parsed schedule, command and
// next activation after at. Lines that are not schedules, such as environment
// assignments, keep only the raw line.
func ParseJob(line string, at time.Time) Job {
	job := Job{Line: line}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return job
	}

	n := standardFields
	if strings.HasPrefix(fields[0], "@") {
		n = 1
	}
	if len(fields) <= n {
		return job
	}

	expr := strings.Join(fields[:n], " ")
	sched, err := schedule.ParseStandard(expr)
	if err != nil {
		return job
	}

	command := strings.Join(fields[n:], " ")
	next := sched.Next(at)
	job.Schedule = &expr
	job.Command = &command
	if !next.IsZero() {
		job.NextRun = &next
	}
	return job
}

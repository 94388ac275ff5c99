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

package pkgdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NVIDIA/host-assessment/pkg/defaults"
	"github.com/NVIDIA/host-assessment/pkg/run"
)

const (
	rpmQueryFormat = "%{INSTALLTIME}#%{NAME}#%{VERSION}#%{RELEASE}#%{VENDOR}\n"
	rpmFields      = 5
)

// RPM queries the rpm database through the rpm command.
type RPM struct {
	Runner   run.Runner
	Command  string
	Location *time.Location
}

func (q *RPM) command() string {
	if q.Command == "" {
		return defaults.RPMCommand
	}
	return q.Command
}

// List returns every installed package.
func (q *RPM) List(ctx context.Context) ([]Record, error) {
	res := q.Runner.WithOutput(ctx, q.command(), "-qa", "--queryformat", rpmQueryFormat)
	if !res.Started() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, res.Error())
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("rpm query failed with exit code %d: %s", res.ExitCode, res.Error())
	}
	return q.parse(res.StdOut), nil
}

// Owner returns the package owning path. When several packages own it the
// first is reported.
func (q *RPM) Owner(ctx context.Context, path string) (*Record, error) {
	res := q.Runner.WithOutput(ctx, q.command(), "-qf", "--queryformat", rpmQueryFormat, path)
	if !res.Started() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, res.Error())
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotOwned)
	}
	recs := q.parse(res.StdOut)
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotOwned)
	}
	return &recs[0], nil
}

func (q *RPM) parse(out string) []Record {
	recs := make([]Record, 0)
	for _, line := range strings.Split(out, "\n") {
		items := strings.Split(strings.TrimSpace(line), "#")
		if len(items) != rpmFields {
			continue
		}
		r := Record{
			Name:    items[1],
			Version: items[2],
			Release: items[3],
			Vendor:  optional(items[4]),
		}
		r.stamp(items[0], q.Location)
		recs = append(recs, r)
	}
	return recs
}

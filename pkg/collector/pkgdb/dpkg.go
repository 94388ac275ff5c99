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
	"errors"
	"fmt"
	"strings"

	"github.com/NVIDIA/host-assessment/pkg/defaults"
	"github.com/NVIDIA/host-assessment/pkg/run"
)

const (
	dpkgShowFormat = "${db:Status-Abbrev}#${Package}#${Version}#${Maintainer}\n"
	dpkgFields     = 4
)

// Desired and current state of a package that is installed: "ii" installed,
// "hi" installed and held. Removed packages keeping their conffiles ("rc")
// are still listed by dpkg-query -W.
var dpkgInstalled = map[string]bool{"ii": true, "hi": true}

// usrMergedDirs are the top-level directories that merged-/usr systems link
// into /usr while dpkg keeps recording the original path.
var usrMergedDirs = map[string]bool{
	"bin": true, "sbin": true, "lib": true, "lib32": true, "lib64": true, "libx32": true,
}

// DPKG queries the dpkg database through dpkg-query. dpkg records no install
// time, so those fields are always nil.
type DPKG struct {
	Runner  run.Runner
	Command string
}

func (q *DPKG) command() string {
	if q.Command == "" {
		return defaults.DPKGQueryCmd
	}
	return q.Command
}

// List returns every installed package.
func (q *DPKG) List(ctx context.Context) ([]Record, error) {
	res := q.Runner.WithOutput(ctx, q.command(), "-W", "-f", dpkgShowFormat)
	if !res.Started() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, res.Error())
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("dpkg-query failed with exit code %d: %s", res.ExitCode, res.Error())
	}
	return parseDPKG(res.StdOut), nil
}

// Owner returns the package owning path. When dpkg knows no owner and path
// lies below a merged-/usr directory, the other spelling of the path
// (/usr/bin/x for /bin/x and back) is tried once.
func (q *DPKG) Owner(ctx context.Context, path string) (*Record, error) {
	name, err := q.search(ctx, path)
	if errors.Is(err, ErrNotOwned) {
		if alias, ok := usrAlias(path); ok {
			name, err = q.search(ctx, alias)
		}
	}
	if err != nil {
		if errors.Is(err, ErrNotOwned) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotOwned)
		}
		return nil, err
	}

	show := q.Runner.WithOutput(ctx, q.command(), "-W", "-f", dpkgShowFormat, name)
	if !show.Started() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, show.Error())
	}
	if show.ExitCode != 0 {
		return nil, fmt.Errorf("failed to show package %s: %s", name, show.Error())
	}
	recs := parseDPKG(show.StdOut)
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotOwned)
	}
	return &recs[0], nil
}

func (q *DPKG) search(ctx context.Context, path string) (string, error) {
	res := q.Runner.WithOutput(ctx, q.command(), "-S", path)
	if !res.Started() {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, res.Error())
	}
	if res.ExitCode != 0 {
		return "", ErrNotOwned
	}
	name := ownerName(res.StdOut)
	if name == "" {
		return "", ErrNotOwned
	}
	return name, nil
}

// usrAlias returns the merged-/usr counterpart of path: /usr/bin/bash for
// /bin/bash and /bin/bash for /usr/bin/bash.
func usrAlias(path string) (string, bool) {
	rest, underUsr := strings.CutPrefix(path, "/usr")
	if !strings.HasPrefix(rest, "/") {
		return "", false
	}
	top, _, found := strings.Cut(rest[1:], "/")
	if !found || !usrMergedDirs[top] {
		return "", false
	}
	if underUsr {
		return rest, true
	}
	return "/usr" + path, true
}

// ownerName extracts the first package name from dpkg-query -S output such as
// "coreutils: /bin/ls" or "libc6:amd64, libc6:i386: /usr/share/doc/libc6".
func ownerName(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "diversion by") {
			continue
		}
		pkgs, _, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		first, _, _ := strings.Cut(pkgs, ",")
		return strings.TrimSpace(first)
	}
	return ""
}

// parseDPKG parses dpkg-query -W output in dpkgShowFormat, keeping only
// installed packages.
func parseDPKG(out string) []Record {
	recs := make([]Record, 0)
	for _, line := range strings.Split(out, "\n") {
		items := strings.SplitN(strings.TrimSpace(line), "#", dpkgFields)
		if len(items) != dpkgFields || items[1] == "" {
			continue
		}
		if status := strings.TrimSpace(items[0]); len(status) < 2 || !dpkgInstalled[status[:2]] {
			continue
		}
		version, release := items[2], ""
		if i := strings.LastIndex(version, "-"); i > 0 {
			version, release = items[2][:i], items[2][i+1:]
		}
		recs = append(recs, Record{
			Name:    items[1],
			Version: version,
			Release: release,
			Vendor:  optional(strings.TrimSpace(items[3])),
		})
	}
	return recs
}

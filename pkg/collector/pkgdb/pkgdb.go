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
	"log/slog"
	"strconv"
	"time"

	"github.com/NVIDIA/host-assessment/pkg/defaults"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
	"github.com/NVIDIA/host-assessment/pkg/run"
)

var (
	// ErrNotOwned is returned by Owner when no installed package owns the path.
	ErrNotOwned = errors.New("not owned by any package")
	// ErrUnavailable is returned when the package database cannot be queried at all.
	ErrUnavailable = errors.New("package database unavailable")
)

// Record describes one installed package.
type Record struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"ver" yaml:"ver"`
	Release     string   `json:"rel" yaml:"rel"`
	Vendor      *string  `json:"vendor" yaml:"vendor"`
	InstalledAt *string  `json:"installation_date" yaml:"installation_date"`
	InstallTime *float64 `json:"install_time" yaml:"install_time"`
}

// Querier answers the two package database questions the assessment needs.
type Querier interface {
	// List returns every installed package.
	List(ctx context.Context) ([]Record, error)
	// Owner returns the package owning path, ErrNotOwned when there is none,
	// or ErrUnavailable when the database cannot be queried.
	Owner(ctx context.Context, path string) (*Record, error)
}

// Detect returns the first package database backend whose query command is
// present in dirs: rpm, then dpkg-query. Without either, the returned
// Querier fails every query with ErrUnavailable.
func Detect(runner run.Runner, dirs []string, loc *time.Location) Querier {
	if path, ok := run.LookPath(defaults.RPMCommand, dirs); ok {
		slog.Debug("using rpm package database", slog.String("command", path))
		return &RPM{Runner: runner, Command: path, Location: loc}
	}
	if path, ok := run.LookPath(defaults.DPKGQueryCmd, dirs); ok {
		slog.Debug("using dpkg package database", slog.String("command", path))
		return &DPKG{Runner: runner, Command: path}
	}
	slog.Warn("no package database found")
	return Unavailable{}
}

// Unavailable is the Querier used when no package database is present.
type Unavailable struct{}

// List always fails with ErrUnavailable.
func (Unavailable) List(context.Context) ([]Record, error) {
	return nil, ErrUnavailable
}

// Owner always fails with ErrUnavailable.
func (Unavailable) Owner(context.Context, string) (*Record, error) {
	return nil, ErrUnavailable
}

// Collector produces the installed package inventory.
type Collector struct {
	Querier Querier
}

// Collect lists every installed package. A database that cannot be queried
// fails the collection.
func (c *Collector) Collect(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := c.Querier
	if q == nil {
		q = Unavailable{}
	}

	recs, err := q.List(ctx)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to list installed packages", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to list installed packages", err)
	}

	slog.Debug("collected packages", slog.Int("count", len(recs)))
	return recs, nil
}

// stamp sets the install time fields from epoch seconds formatted in loc.
func (r *Record) stamp(epoch string, loc *time.Location) {
	secs, err := strconv.ParseFloat(epoch, 64)
	if err != nil || secs <= 0 {
		return
	}
	if loc == nil {
		loc = time.Local
	}
	ts := time.Unix(int64(secs), 0).In(loc).Format(defaults.InstallTimeForm)
	r.InstallTime = &secs
	r.InstalledAt = &ts
}

func optional(s string) *string {
	if s == "" || s == "(none)" {
		return nil
	}
	return &s
}

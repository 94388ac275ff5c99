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
	"errors"
	"log/slog"
	"strings"

	"github.com/NVIDIA/host-assessment/pkg/collector/pkgdb"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
)

const deletedSuffix = " (deleted)"

// UnitResolver maps a pid to the service unit that owns it.
type UnitResolver interface {
	Unit(ctx context.Context, pid int) (string, error)
}

// Collector lists live processes and attributes each to the package owning
// its executable. Inspector, Packages and Units are optional.
type Collector struct {
	Lister    Lister
	Inspector Inspector
	Resolver  *Resolver
	Packages  pkgdb.Querier
	Units     UnitResolver
	// Self is the pid of the collecting process, excluded from the result.
	Self int
}

// Collect returns the attributed process table in listing order. Processes
// that exit before they are inspected are omitted. A process whose executable
// cannot be resolved or is not owned by a package is kept with a nil package.
func (c *Collector) Collect(ctx context.Context) ([]Record, error) {
	rows, err := c.Lister.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to list processes", err)
	}

	resolver := c.Resolver
	if resolver == nil {
		resolver = &Resolver{Interpreters: DefaultInterpreters}
	}

	owners := make(map[string]*pkgdb.Record)
	recs := make([]Record, 0, len(rows))
	var vanished int

	for _, rec := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec.PID < defaults.MinUserPID || rec.PID == c.Self || rec.KernelThread() {
			continue
		}
		if c.Inspector != nil && !c.Inspector.Alive(rec.PID) {
			vanished++
			continue
		}

		if exe, ok := c.executable(resolver, &rec); ok {
			rec.Executable = &exe
			rec.Package = c.owner(ctx, owners, exe)
		}

		if c.Units != nil {
			if unit, err := c.Units.Unit(ctx, rec.PID); err == nil && unit != "" {
				rec.Unit = &unit
			}
		}

		recs = append(recs, rec)
	}

	slog.Debug("collected processes",
		slog.Int("listed", len(rows)),
		slog.Int("reported", len(recs)),
		slog.Int("vanished", vanished))

	return recs, nil
}

func (c *Collector) executable(r *Resolver, rec *Record) (string, bool) {
	var cwd string
	if c.Inspector != nil {
		if dir, err := c.Inspector.Cwd(rec.PID); err == nil {
			cwd = dir
		}
	}

	if exe, ok := r.Resolve(rec.Command, rec.Args, cwd); ok {
		return exe, true
	}

	if c.Inspector == nil {
		return "", false
	}
	exe, err := c.Inspector.Executable(rec.PID)
	if err != nil || exe == "" || strings.HasSuffix(exe, deletedSuffix) {
		return "", false
	}
	return exe, true
}

// owner memoizes package lookups; misses are cached as nil.
func (c *Collector) owner(ctx context.Context, cache map[string]*pkgdb.Record, path string) *pkgdb.Record {
	if c.Packages == nil {
		return nil
	}
	if rec, ok := cache[path]; ok {
		return rec
	}

	rec, err := c.Packages.Owner(ctx, path)
	if err != nil {
		if !errors.Is(err, pkgdb.ErrNotOwned) {
			slog.Debug("package lookup failed", slog.String("path", path), slog.String("error", err.Error()))
		}
		rec = nil
	}
	cache[path] = rec
	return rec
}

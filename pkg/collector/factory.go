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

package collector

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NVIDIA/host-assessment/pkg/collector/cron"
	"github.com/NVIDIA/host-assessment/pkg/collector/identity"
	hostos "github.com/NVIDIA/host-assessment/pkg/collector/os"
	"github.com/NVIDIA/host-assessment/pkg/collector/pkgdb"
	"github.com/NVIDIA/host-assessment/pkg/collector/process"
	"github.com/NVIDIA/host-assessment/pkg/collector/repo"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	"github.com/NVIDIA/host-assessment/pkg/run"
)

// Factory creates the collectors of every assessment domain.
type Factory interface {
	CreateIdentityCollector() *identity.Collector
	CreateOSCollector() *hostos.Collector
	CreateCronCollector() *cron.Collector
	CreateRepoCollector() *repo.Collector
	CreatePackageCollector() *pkgdb.Collector
	CreateProcessCollector() *process.Collector
}

// Option is a functional option for configuring DefaultFactory instances.
type Option func(*DefaultFactory)

// WithRoot prefixes every file-based source with root.
func WithRoot(root string) Option {
	return func(f *DefaultFactory) {
		f.Root = root
	}
}

// WithProcRoot sets the proc filesystem mount used to inspect processes.
func WithProcRoot(procRoot string) Option {
	return func(f *DefaultFactory) {
		f.ProcRoot = procRoot
	}
}

// WithSearchPath sets the directories searched for commands and executables.
func WithSearchPath(dirs []string) Option {
	return func(f *DefaultFactory) {
		f.SearchPath = dirs
	}
}

// WithRunner sets the runner used for external commands.
func WithRunner(r run.Runner) Option {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// WithLocation sets the time zone used to format package install times.
func WithLocation(loc *time.Location) Option {
	return func(f *DefaultFactory) {
		f.Location = loc
	}
}

// WithPackageQuerier overrides package database detection.
func WithPackageQuerier(q pkgdb.Querier) Option {
	return func(f *DefaultFactory) {
		f.querier = q
	}
}

// WithUnitResolver enables systemd unit decoration of process records.
func WithUnitResolver(u process.UnitResolver) Option {
	return func(f *DefaultFactory) {
		f.Units = u
	}
}

// WithSelfPID sets the pid excluded from the process table.
func WithSelfPID(pid int) Option {
	return func(f *DefaultFactory) {
		f.SelfPID = pid
	}
}

// WithClock sets the clock used to compute next cron activations.
func WithClock(now func() time.Time) Option {
	return func(f *DefaultFactory) {
		f.Now = now
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Root       string
	ProcRoot   string
	SearchPath []string
	Runner     run.Runner
	Location   *time.Location
	Units      process.UnitResolver
	SelfPID    int
	Now        func() time.Time

	querierOnce sync.Once
	querier     pkgdb.Querier
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		ProcRoot: defaults.ProcRoot,
		Runner:   run.Exec{Env: defaults.CommandEnv},
		Location: time.Local,
		SelfPID:  os.Getpid(),
		Now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *DefaultFactory) path(p string) string {
	if f.Root == "" {
		return p
	}
	return filepath.Join(f.Root, p)
}

// CreateIdentityCollector creates the account, group and credential collector.
func (f *DefaultFactory) CreateIdentityCollector() *identity.Collector {
	return &identity.Collector{
		PasswdPath: f.path(defaults.PasswdPath),
		GroupPath:  f.path(defaults.GroupPath),
		ShadowPath: f.path(defaults.ShadowPath),
	}
}

// CreateOSCollector creates the static configuration collector.
func (f *DefaultFactory) CreateOSCollector() *hostos.Collector {
	return hostos.NewCollector(f.Root)
}

// CreateCronCollector creates the crontab collector.
func (f *DefaultFactory) CreateCronCollector() *cron.Collector {
	c := cron.NewCollector(f.Root)
	if f.Now != nil {
		c.Now = f.Now
	}
	return c
}

// CreateRepoCollector creates the repository definition collector.
func (f *DefaultFactory) CreateRepoCollector() *repo.Collector {
	return repo.NewCollector(f.Root)
}

// PackageQuerier returns the package database backend, detecting it on first use.
func (f *DefaultFactory) PackageQuerier() pkgdb.Querier {
	f.querierOnce.Do(func() {
		if f.querier == nil {
			f.querier = pkgdb.Detect(f.Runner, f.SearchPath, f.Location)
		}
	})
	return f.querier
}

// CreatePackageCollector creates the installed package collector.
func (f *DefaultFactory) CreatePackageCollector() *pkgdb.Collector {
	return &pkgdb.Collector{Querier: f.PackageQuerier()}
}

// CreateProcessCollector creates the attributed process table collector.
// Without a readable proc filesystem processes are neither liveness checked
// nor resolved through their executable link.
func (f *DefaultFactory) CreateProcessCollector() *process.Collector {
	c := &process.Collector{
		Lister: &process.PSLister{Runner: f.Runner},
		Resolver: &process.Resolver{
			SearchPath:   f.SearchPath,
			Interpreters: process.DefaultInterpreters,
		},
		Packages: f.PackageQuerier(),
		Units:    f.Units,
		Self:     f.SelfPID,
	}

	insp, err := process.NewProcFS(f.ProcRoot)
	if err != nil {
		slog.Warn("process inspection disabled", slog.String("error", err.Error()))
	} else {
		c.Inspector = insp
	}
	return c
}

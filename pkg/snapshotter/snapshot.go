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

package snapshotter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/NVIDIA/host-assessment/pkg/collector"
	"github.com/NVIDIA/host-assessment/pkg/collector/identity"
	hostos "github.com/NVIDIA/host-assessment/pkg/collector/os"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
	"github.com/NVIDIA/host-assessment/pkg/header"
	"github.com/NVIDIA/host-assessment/pkg/serializer"
)

// hostInfo is replaced in tests.
var hostInfo = host.InfoWithContext

// HostSnapshotter collects the enabled assessment domains from the current
// host, one at a time in a fixed order, and serializes the result.
// The first domain that fails aborts the run and nothing is serialized.
type HostSnapshotter struct {
	// Version is the snapshotter version.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Config selects the domains to collect.
	Config Config

	// Serializer is the serializer to use for output. If nil, a default stdout JSON serializer is used.
	Serializer serializer.Serializer
}

// Measure collects the assessment and serializes it.
func (h *HostSnapshotter) Measure(ctx context.Context) error {
	snap, err := h.Collect(ctx)
	if err != nil {
		return err
	}

	if h.Serializer == nil {
		h.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := h.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return apperrors.Wrap(apperrors.CodeOf(err), "failed to serialize assessment", err)
	}

	return nil
}

// Collect gathers every enabled domain. It returns either the complete
// document or an error naming the first domain that failed.
func (h *HostSnapshotter) Collect(ctx context.Context) (*Snapshot, error) {
	if h.Factory == nil {
		h.Factory = collector.NewDefaultFactory()
	}

	slog.Debug("starting host assessment", slog.Any("domains", h.Config.EnabledDomains()))

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	snap := NewSnapshot()
	snap.Init(header.KindAssessment, APIVersion, h.Version)
	snap.Metadata[header.MetaID] = uuid.NewString()
	describeHost(ctx, &snap.Header)

	run := &collection{factory: h.Factory}
	for _, d := range Domains {
		if !h.Config.Enabled(d) {
			continue
		}
		if err := ctx.Err(); err != nil {
			snapshotCollectionTotal.WithLabelValues("error").Inc()
			return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "assessment canceled", err)
		}

		domainStart := time.Now()
		value, err := run.collect(ctx, d)
		snapshotDomainDuration.WithLabelValues(string(d)).Observe(time.Since(domainStart).Seconds())
		if err != nil {
			snapshotCollectionTotal.WithLabelValues("error").Inc()
			slog.Error("failed to collect domain",
				slog.String("domain", string(d)),
				slog.String("error", err.Error()))
			return nil, apperrors.WrapWithContext(apperrors.CodeOf(err),
				"failed to collect "+string(d), err,
				map[string]any{"domain": string(d)})
		}

		snap.Assessment[d.Key()] = value
		slog.Debug("collected domain", slog.String("domain", string(d)))
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotDomainCount.Set(float64(len(snap.Assessment)))

	slog.Debug("host assessment complete", slog.Int("domains", len(snap.Assessment)))

	return snap, nil
}

// describeHost adds best-effort host identity to the header.
func describeHost(ctx context.Context, h *header.Header) {
	info, err := hostInfo(ctx)
	if err != nil || info == nil {
		slog.Warn("host identity unavailable", slog.Any("error", err))
		return
	}

	for k, v := range map[string]string{
		header.MetaHostname:        info.Hostname,
		header.MetaOS:              info.OS,
		header.MetaPlatform:        info.Platform,
		header.MetaPlatformVersion: info.PlatformVersion,
		header.MetaKernel:          info.KernelVersion,
	} {
		if v != "" {
			h.Metadata[k] = v
		}
	}
}

// collection holds the state shared between the domains of one run.
type collection struct {
	factory  collector.Factory
	identity *identity.Collector
	os       *hostos.Collector
	accounts []identity.Account
	loaded   bool
}

func (c *collection) identityCollector() *identity.Collector {
	if c.identity == nil {
		c.identity = c.factory.CreateIdentityCollector()
	}
	return c.identity
}

func (c *collection) osCollector() *hostos.Collector {
	if c.os == nil {
		c.os = c.factory.CreateOSCollector()
	}
	return c.os
}

// loadAccounts reads the account list once. Groups link into the returned
// slice so the users entry reflects group membership.
func (c *collection) loadAccounts(ctx context.Context) ([]identity.Account, error) {
	if c.loaded {
		return c.accounts, nil
	}
	accounts, err := c.identityCollector().Accounts(ctx)
	if err != nil {
		return nil, err
	}
	c.accounts = accounts
	c.loaded = true
	return accounts, nil
}

func (c *collection) collect(ctx context.Context, d Domain) (any, error) {
	switch d {
	case DomainUsers:
		return c.loadAccounts(ctx)
	case DomainGroups:
		accounts, err := c.loadAccounts(ctx)
		if err != nil {
			return nil, err
		}
		return c.identityCollector().Groups(ctx, accounts)
	case DomainCreds:
		accounts, err := c.loadAccounts(ctx)
		if err != nil {
			return nil, err
		}
		return c.identityCollector().Credentials(ctx, accounts)
	case DomainSudoers:
		return c.osCollector().Sudoers(ctx)
	case DomainCron:
		return c.factory.CreateCronCollector().Collect(ctx)
	case DomainSysctl:
		return c.osCollector().Sysctl(ctx)
	case DomainPackages:
		return c.factory.CreatePackageCollector().Collect(ctx)
	case DomainProcs:
		return c.factory.CreateProcessCollector().Collect(ctx)
	case DomainFstab:
		return c.osCollector().Fstab(ctx)
	case DomainLimits:
		return c.osCollector().Limits(ctx)
	case DomainNTP:
		return c.osCollector().NTP(ctx)
	case DomainDNS:
		return c.osCollector().DNS(ctx)
	case DomainRepos:
		return c.factory.CreateRepoCollector().Collect(ctx)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "unknown domain "+string(d))
	}
}

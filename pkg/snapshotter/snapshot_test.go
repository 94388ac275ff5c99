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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/host-assessment/pkg/collector"
	"github.com/NVIDIA/host-assessment/pkg/collector/identity"
	"github.com/NVIDIA/host-assessment/pkg/collector/pkgdb"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
	"github.com/NVIDIA/host-assessment/pkg/header"
	"github.com/NVIDIA/host-assessment/pkg/run"
)

const psHeader = "USER PID %CPU %MEM VSZ RSS TTY STAT START TIME COMMAND\n"

type mockSerializer struct {
	serialized bool
	data       any
}

func (m *mockSerializer) Serialize(_ context.Context, data any) error {
	m.serialized = true
	m.data = data
	return nil
}

type stubQuerier struct {
	err error
}

func (s stubQuerier) List(context.Context) ([]pkgdb.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []pkgdb.Record{{Name: "bash", Version: "5.1.8", Release: "6.el9"}}, nil
}

func (s stubQuerier) Owner(context.Context, string) (*pkgdb.Record, error) {
	return nil, pkgdb.ErrNotOwned
}

func writeFixture(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

// hostRoot builds a host tree with every file-based source present.
func hostRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, "etc/passwd", strings.Join([]string{
		"root:x:0:0:root:/root:/bin/bash",
		"alice:x:1000:1000:Alice:/home/alice:/bin/bash",
		"bob:x:1001:1001::/home/bob:",
	}, "\n")+"\n")
	writeFixture(t, root, "etc/group", "wheel:x:10:alice\ndev:x:2000:alice,bob\n")
	writeFixture(t, root, "etc/shadow", "alice:$6$x:19000:0:99999:7:::\nroot:!:19000:0:99999:7:::\n")
	writeFixture(t, root, "etc/sudoers", "# comment\n%wheel ALL=(ALL) ALL\n")
	writeFixture(t, root, "etc/sysctl.conf", "net.ipv4.ip_forward = 1\n")
	writeFixture(t, root, "etc/fstab", "/dev/sda1 / xfs defaults 0 0\n")
	writeFixture(t, root, "etc/security/limits.conf", "* soft nofile 1024\n")
	writeFixture(t, root, "etc/ntp.conf", "server 0.pool.ntp.org\n")
	writeFixture(t, root, "etc/resolv.conf", "; generated\nnameserver 10.0.0.2\n")
	writeFixture(t, root, "var/spool/cron/alice", "*/5 * * * * /usr/bin/backup\n")
	writeFixture(t, root, "etc/yum.repos.d/base.repo", "[base]\nname=Base\nenabled=1\n")
	return root
}

func newFactory(t *testing.T, root string, q pkgdb.Querier) collector.Factory {
	t.Helper()
	runner := run.RunnerFunc(func(context.Context, string, ...string) *run.Result {
		return &run.Result{StdOut: psHeader}
	})
	return collector.NewDefaultFactory(
		collector.WithRoot(root),
		collector.WithProcRoot(t.TempDir()),
		collector.WithRunner(runner),
		collector.WithPackageQuerier(q),
	)
}

func stubHostInfo(t *testing.T, info *host.InfoStat, err error) {
	t.Helper()
	orig := hostInfo
	hostInfo = func(context.Context) (*host.InfoStat, error) { return info, err }
	t.Cleanup(func() { hostInfo = orig })
}

func only(domains ...Domain) Config {
	var c Config
	for _, d := range domains {
		c.Set(d, true)
	}
	return c
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot()
	require.NotNil(t, snap)
	assert.NotNil(t, snap.Assessment)
	assert.Empty(t, snap.Assessment)
}

func TestHostSnapshotter_Collect_AllDomains(t *testing.T) {
	stubHostInfo(t, &host.InfoStat{Hostname: "node-1", OS: "linux", KernelVersion: "5.14.0"}, nil)
	root := hostRoot(t)

	h := &HostSnapshotter{
		Version: "1.0.0",
		Factory: newFactory(t, root, stubQuerier{}),
		Config:  DefaultConfig(),
	}

	snap, err := h.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, header.KindAssessment, snap.Kind)
	assert.Equal(t, APIVersion, snap.APIVersion)
	assert.Equal(t, "1.0.0", snap.Metadata[header.MetaVersion])
	assert.Equal(t, "node-1", snap.Metadata[header.MetaHostname])
	assert.Equal(t, "5.14.0", snap.Metadata[header.MetaKernel])
	assert.NotContains(t, snap.Metadata, header.MetaPlatform)
	assert.NotEmpty(t, snap.Metadata[header.MetaID])

	for _, d := range Domains {
		assert.Contains(t, snap.Assessment, d.Key(), "domain %s", d)
	}
	assert.Len(t, snap.Assessment, len(Domains))

	users, ok := snap.Assessment["users"].([]identity.Account)
	require.True(t, ok)
	require.Len(t, users, 2)
	assert.Equal(t, []string{"dev"}, users[0].Groups, "group membership is linked into users")
	assert.Equal(t, []string{"dev"}, users[1].Groups)

	creds, ok := snap.Assessment["credentials"].([]identity.Credential)
	require.True(t, ok)
	require.Len(t, creds, 1)
	assert.Equal(t, "alice", creds[0].Username)
}

func TestHostSnapshotter_Collect_OnlyUsers(t *testing.T) {
	stubHostInfo(t, nil, errors.New("no host"))

	h := &HostSnapshotter{
		Factory: newFactory(t, hostRoot(t), stubQuerier{}),
		Config:  only(DomainUsers),
	}

	snap, err := h.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Assessment, 1)
	assert.Contains(t, snap.Assessment, "users")
	assert.NotContains(t, snap.Metadata, header.MetaHostname)
}

func TestHostSnapshotter_Collect_GroupsWithoutUsers(t *testing.T) {
	stubHostInfo(t, &host.InfoStat{}, nil)

	h := &HostSnapshotter{
		Factory: newFactory(t, hostRoot(t), stubQuerier{}),
		Config:  only(DomainGroups, DomainCreds),
	}

	snap, err := h.Collect(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, snap.Assessment, "users")
	assert.Contains(t, snap.Assessment, "groups")
	assert.Contains(t, snap.Assessment, "credentials")
}

func TestHostSnapshotter_Collect_NoDomains(t *testing.T) {
	stubHostInfo(t, &host.InfoStat{}, nil)

	h := &HostSnapshotter{
		Factory: newFactory(t, t.TempDir(), stubQuerier{}),
	}

	snap, err := h.Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Assessment)
}

func TestHostSnapshotter_Collect_MissingOptionalSources(t *testing.T) {
	stubHostInfo(t, &host.InfoStat{}, nil)

	h := &HostSnapshotter{
		Factory: newFactory(t, t.TempDir(), stubQuerier{}),
		Config:  only(DomainSudoers, DomainCron, DomainSysctl, DomainNTP, DomainDNS, DomainRepos),
	}

	snap, err := h.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, snap.Assessment["dns"])
	assert.Len(t, snap.Assessment, 6)
}

func TestHostSnapshotter_Measure_FailingDomain(t *testing.T) {
	stubHostInfo(t, &host.InfoStat{}, nil)

	tests := []struct {
		name   string
		root   func(t *testing.T) string
		q      pkgdb.Querier
		config Config
		code   apperrors.ErrorCode
		domain string
	}{
		{
			name:   "missing passwd",
			root:   func(t *testing.T) string { return t.TempDir() },
			q:      stubQuerier{},
			config: DefaultConfig(),
			code:   apperrors.ErrCodeNotFound,
			domain: "users",
		},
		{
			name:   "package database unavailable",
			root:   hostRoot,
			q:      pkgdb.Unavailable{},
			config: DefaultConfig(),
			code:   apperrors.ErrCodeUnavailable,
			domain: "packages",
		},
		{
			name:   "package listing fails",
			root:   hostRoot,
			q:      stubQuerier{err: errors.New("rpmdb locked")},
			config: only(DomainPackages),
			code:   apperrors.ErrCodeInternal,
			domain: "packages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockSerializer{}
			h := &HostSnapshotter{
				Factory:    newFactory(t, tt.root(t), tt.q),
				Config:     tt.config,
				Serializer: s,
			}

			err := h.Measure(context.Background())
			require.Error(t, err)
			assert.False(t, s.serialized, "no partial document is written")

			var se *apperrors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.domain, se.Context["domain"])
		})
	}
}

func TestHostSnapshotter_Measure(t *testing.T) {
	stubHostInfo(t, &host.InfoStat{}, nil)

	s := &mockSerializer{}
	h := &HostSnapshotter{
		Factory:    newFactory(t, hostRoot(t), stubQuerier{}),
		Config:     only(DomainSysctl, DomainFstab),
		Serializer: s,
	}

	require.NoError(t, h.Measure(context.Background()))
	require.True(t, s.serialized)

	snap, ok := s.data.(*Snapshot)
	require.True(t, ok)
	assert.Len(t, snap.Assessment, 2)
	assert.Equal(t, []string{"/dev/sda1 / xfs defaults 0 0"}, snap.Assessment["fstab"])
}

func TestHostSnapshotter_Collect_Canceled(t *testing.T) {
	stubHostInfo(t, &host.InfoStat{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &HostSnapshotter{
		Factory: newFactory(t, hostRoot(t), stubQuerier{}),
		Config:  DefaultConfig(),
	}

	_, err := h.Collect(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostassess.prom")
	require.NoError(t, WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hostassess_collection_duration_seconds")
}

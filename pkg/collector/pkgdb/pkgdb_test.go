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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
	"github.com/NVIDIA/host-assessment/pkg/run"
)

// fakeRunner answers commands keyed by their joined argument list.
type fakeRunner struct {
	results map[string]*run.Result
	calls   []string
}

func (f *fakeRunner) WithOutput(_ context.Context, name string, args ...string) *run.Result {
	key := strings.Join(append([]string{filepath.Base(name)}, args...), " ")
	f.calls = append(f.calls, key)
	if r, ok := f.results[key]; ok {
		return r
	}
	return &run.Result{ExitCode: 1, StdErr: "unexpected command"}
}

func notStarted() *run.Result {
	return &run.Result{ExitCode: -1, StdErr: "exec: not found", Err: errors.New("exec: not found")}
}

func TestRPMList(t *testing.T) {
	r := &fakeRunner{results: map[string]*run.Result{
		"rpm -qa --queryformat " + rpmQueryFormat: {StdOut: "1700000000#bash#5.1.8#6.el9#Red Hat, Inc.\n" +
			"1700000100#gpg-pubkey#fd431d51#4ae0493b#(none)\n" +
			"garbage line\n"},
	}}
	q := &RPM{Runner: r, Location: time.UTC}

	recs, err := q.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "bash", recs[0].Name)
	assert.Equal(t, "5.1.8", recs[0].Version)
	assert.Equal(t, "6.el9", recs[0].Release)
	require.NotNil(t, recs[0].Vendor)
	assert.Equal(t, "Red Hat, Inc.", *recs[0].Vendor)
	require.NotNil(t, recs[0].InstalledAt)
	assert.Equal(t, "2023-11-14 22:13:20", *recs[0].InstalledAt)
	require.NotNil(t, recs[0].InstallTime)
	assert.InDelta(t, 1700000000.0, *recs[0].InstallTime, 0)

	assert.Nil(t, recs[1].Vendor)
}

func TestRPMListUnavailable(t *testing.T) {
	r := &fakeRunner{results: map[string]*run.Result{
		"rpm -qa --queryformat " + rpmQueryFormat: notStarted(),
	}}
	_, err := (&RPM{Runner: r}).List(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRPMOwner(t *testing.T) {
	r := &fakeRunner{results: map[string]*run.Result{
		"rpm -qf --queryformat " + rpmQueryFormat + " /usr/sbin/sshd": {StdOut: "1700000000#openssh-server#8.7p1#34.el9#Red Hat, Inc.\n"},
		"rpm -qf --queryformat " + rpmQueryFormat + " /tmp/script":    {ExitCode: 1, StdOut: "file /tmp/script is not owned by any package\n"},
	}}
	q := &RPM{Runner: r, Location: time.UTC}

	rec, err := q.Owner(context.Background(), "/usr/sbin/sshd")
	require.NoError(t, err)
	assert.Equal(t, "openssh-server", rec.Name)

	_, err = q.Owner(context.Background(), "/tmp/script")
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestDPKGList(t *testing.T) {
	r := &fakeRunner{results: map[string]*run.Result{
		"dpkg-query -W -f " + dpkgShowFormat: {StdOut: "ii #bash#5.2.15-2+b2#Matthias Klose <doko@debian.org>\n" +
			"ii #tzdata#2024a#\n" +
			"hi #libc6#1:2.36-9#GNU Libc Maintainers <debian-glibc@lists.debian.org>\n"},
	}}

	recs, err := (&DPKG{Runner: r}).List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, Record{Name: "bash", Version: "5.2.15", Release: "2+b2", Vendor: recs[0].Vendor}, recs[0])
	require.NotNil(t, recs[0].Vendor)
	assert.Equal(t, "Matthias Klose <doko@debian.org>", *recs[0].Vendor)
	assert.Equal(t, "2024a", recs[1].Version)
	assert.Empty(t, recs[1].Release)
	assert.Nil(t, recs[1].Vendor)
	assert.Equal(t, "1:2.36", recs[2].Version)
	assert.Equal(t, "9", recs[2].Release)
	assert.Nil(t, recs[2].InstalledAt)
	assert.Nil(t, recs[2].InstallTime)
}

func TestParseDPKG_SkipsPackagesNotInstalled(t *testing.T) {
	recs := parseDPKG("ii #bash#5.2.15-2#Matthias Klose\n" +
		"rc #nginx-core#1.22.1-9#Debian Nginx Maintainers\n" +
		"un #vim-tiny##\n" +
		"iU #openssl#3.0.11-1#Debian OpenSSL Team\n" +
		"hi #linux-image-amd64#6.1.76-1#Debian Kernel Team\n" +
		"bash#5.2.15-2#missing status\n")

	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"bash", "linux-image-amd64"}, names)
}

func TestDPKGOwner(t *testing.T) {
	r := &fakeRunner{results: map[string]*run.Result{
		"dpkg-query -S /usr/bin/ls":                         {StdOut: "coreutils: /usr/bin/ls\n"},
		"dpkg-query -W -f " + dpkgShowFormat + " coreutils": {StdOut: "ii #coreutils#9.1-1#Michael Stone <mstone@debian.org>\n"},
		"dpkg-query -S /opt/app":                            {ExitCode: 1, StdErr: "dpkg-query: no path found matching pattern /opt/app\n"},
	}}
	q := &DPKG{Runner: r}

	rec, err := q.Owner(context.Background(), "/usr/bin/ls")
	require.NoError(t, err)
	assert.Equal(t, "coreutils", rec.Name)
	assert.Equal(t, "9.1", rec.Version)

	_, err = q.Owner(context.Background(), "/opt/app")
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.Equal(t, "dpkg-query -S /opt/app", r.calls[len(r.calls)-1], "paths outside merged dirs are not retried")
}

func TestDPKGOwner_MergedUsr(t *testing.T) {
	noPath := func(p string) *run.Result {
		return &run.Result{ExitCode: 1, StdErr: "dpkg-query: no path found matching pattern " + p + "\n"}
	}
	r := &fakeRunner{results: map[string]*run.Result{
		"dpkg-query -S /usr/bin/bash":                      noPath("/usr/bin/bash"),
		"dpkg-query -S /bin/bash":                          {StdOut: "bash: /bin/bash\n"},
		"dpkg-query -W -f " + dpkgShowFormat + " bash":     {StdOut: "ii #bash#5.2.15-2+b2#Matthias Klose <doko@debian.org>\n"},
		"dpkg-query -S /sbin/iptables":                     noPath("/sbin/iptables"),
		"dpkg-query -S /usr/sbin/iptables":                 {StdOut: "iptables: /usr/sbin/iptables\n"},
		"dpkg-query -W -f " + dpkgShowFormat + " iptables": {StdOut: "ii #iptables#1.8.9-2#Debian Netfilter Packaging Team\n"},
		"dpkg-query -S /usr/lib/missing.so":                noPath("/usr/lib/missing.so"),
		"dpkg-query -S /lib/missing.so":                    noPath("/lib/missing.so"),
	}}
	q := &DPKG{Runner: r}

	rec, err := q.Owner(context.Background(), "/usr/bin/bash")
	require.NoError(t, err)
	assert.Equal(t, "bash", rec.Name)

	rec, err = q.Owner(context.Background(), "/sbin/iptables")
	require.NoError(t, err)
	assert.Equal(t, "iptables", rec.Name)

	_, err = q.Owner(context.Background(), "/usr/lib/missing.so")
	require.ErrorIs(t, err, ErrNotOwned)
	assert.Contains(t, err.Error(), "/usr/lib/missing.so")
}

func TestUsrAlias(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/usr/bin/bash", "/bin/bash", true},
		{"/bin/bash", "/usr/bin/bash", true},
		{"/usr/sbin/sshd", "/sbin/sshd", true},
		{"/lib64/ld-linux-x86-64.so.2", "/usr/lib64/ld-linux-x86-64.so.2", true},
		{"/usr/local/bin/tool", "", false},
		{"/opt/app/bin/app", "", false},
		{"/usrx/bin/tool", "", false},
		{"/bin", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := usrAlias(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOwnerName(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{"coreutils: /bin/ls\n", "coreutils"},
		{"libc6:amd64, libc6:i386: /usr/share/doc/libc6\n", "libc6:amd64"},
		{"diversion by dash from: /bin/sh\ndiversion by dash to: /bin/sh.distrib\ndash: /bin/sh\n", "dash"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ownerName(tt.out), tt.out)
	}
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{}

	assert.IsType(t, Unavailable{}, Detect(r, []string{dir}, nil))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dpkg-query"), []byte("#!/bin/sh\n"), 0o755))
	assert.IsType(t, &DPKG{}, Detect(r, []string{dir}, nil))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "rpm"), []byte("#!/bin/sh\n"), 0o755))
	q := Detect(r, []string{dir}, nil)
	require.IsType(t, &RPM{}, q)
	assert.Equal(t, filepath.Join(dir, "rpm"), q.(*RPM).Command)
}

func TestCollector(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		_, err := (&Collector{Querier: Unavailable{}}).Collect(context.Background())
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("query failure", func(t *testing.T) {
		r := &fakeRunner{results: map[string]*run.Result{
			"rpm -qa --queryformat " + rpmQueryFormat: {ExitCode: 1, StdErr: "error: rpmdb open failed\n"},
		}}
		_, err := (&Collector{Querier: &RPM{Runner: r}}).Collect(context.Background())
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))
	})

	t.Run("success", func(t *testing.T) {
		r := &fakeRunner{results: map[string]*run.Result{
			"rpm -qa --queryformat " + rpmQueryFormat: {StdOut: "1#a#1#1#v\n"},
		}}
		recs, err := (&Collector{Querier: &RPM{Runner: r}}).Collect(context.Background())
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})
}

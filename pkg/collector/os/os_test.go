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

package os

import (
	"context"
	stdos "os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/host-assessment/pkg/defaults"
)

func writeUnder(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, stdos.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, stdos.WriteFile(full, []byte(content), 0o600))
}

func TestCollectorPath(t *testing.T) {
	assert.Equal(t, "/etc/fstab", (&Collector{}).Path("/etc/fstab"))
	assert.Equal(t, "/mnt/img/etc/fstab", NewCollector("/mnt/img").Path("/etc/fstab"))
}

func TestLinesCommentConventions(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		content string
	}{
		{
			name:    "hash comments",
			source:  SourceFstab,
			content: "# skip\n\nreal=value\n",
		},
		{
			name:    "semicolon comments",
			source:  SourceDNS,
			content: "; skip\n\nreal=value\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeUnder(t, root, tt.source.Path, tt.content)
			c := NewCollector(root)

			first, err := c.Lines(context.Background(), tt.source)
			require.NoError(t, err)
			assert.Equal(t, []string{"real=value"}, first)

			second, err := c.Lines(context.Background(), tt.source)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestDNSKeepsHashLines(t *testing.T) {
	root := t.TempDir()
	writeUnder(t, root, defaults.ResolvPath, "; generated\n# search example.com\nnameserver 10.0.0.1\n")

	got, err := NewCollector(root).DNS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"# search example.com", "nameserver 10.0.0.1"}, got)
}

func TestMissingSourcesAreEmpty(t *testing.T) {
	c := NewCollector(t.TempDir())
	ctx := context.Background()

	for name, fn := range map[string]func(context.Context) ([]string, error){
		"sudoers": c.Sudoers,
		"fstab":   c.Fstab,
		"ntp":     c.NTP,
		"dns":     c.DNS,
		"limits":  c.Limits,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := fn(ctx)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}

	params, err := c.Sysctl(ctx)
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestSysctl(t *testing.T) {
	root := t.TempDir()
	writeUnder(t, root, defaults.SysctlPath, `# kernel tuning
vm.swappiness = 10
net.ipv4.ip_forward=1
kernel.printk = 4 4 1 7
bogus_line
kernel.msg = a=b
kernel.core_pattern =
`)

	got, err := NewCollector(root).Sysctl(context.Background())
	require.NoError(t, err)

	want := []Sysctl{
		{Name: "vm.swappiness", Value: "10"},
		{Name: "net.ipv4.ip_forward", Value: "1"},
		{Name: "kernel.printk", Value: "4 4 1 7"},
		{Name: "kernel.msg", Value: "a=b"},
		{Name: "kernel.core_pattern", Value: ""},
	}
	assert.Equal(t, want, got)
}

func TestLinesOversized(t *testing.T) {
	root := t.TempDir()
	big := make([]byte, defaults.ConfigMaxSize+1)
	for i := range big {
		big[i] = 'a'
	}
	writeUnder(t, root, defaults.LimitsPath, string(big))

	_, err := NewCollector(root).Limits(context.Background())
	assert.Error(t, err)
}

func TestLinesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector(t.TempDir()).NTP(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

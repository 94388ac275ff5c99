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
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/NVIDIA/host-assessment/pkg/collector/file"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
)

// Source is a free-form host configuration file and its comment convention.
type Source struct {
	Name          string
	Path          string
	CommentPrefix string
}

// Line-oriented sources reported verbatim.
var (
	SourceSudoers = Source{Name: "sudoers", Path: defaults.SudoersPath, CommentPrefix: defaults.CommentHash}
	SourceFstab   = Source{Name: "fstab", Path: defaults.FstabPath, CommentPrefix: defaults.CommentHash}
	SourceNTP     = Source{Name: "ntp", Path: defaults.NTPPath, CommentPrefix: defaults.CommentHash}
	SourceDNS     = Source{Name: "dns", Path: defaults.ResolvPath, CommentPrefix: defaults.CommentSemicolon}
	SourceLimits  = Source{Name: "limits", Path: defaults.LimitsPath, CommentPrefix: defaults.CommentHash}
	SourceSysctl  = Source{Name: "sysctl", Path: defaults.SysctlPath, CommentPrefix: defaults.CommentHash}
)

// Collector reads static host configuration files. Root, when set, is
// prepended to every source path so a mounted image can be assessed.
type Collector struct {
	Root string
}

// NewCollector returns a Collector reading sources under root.
func NewCollector(root string) *Collector {
	return &Collector{Root: root}
}

// Path returns the on-disk location of p under the collector root.
func (c *Collector) Path(p string) string {
	if c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Lines returns the uncommented lines of src. A missing file yields an empty slice.
func (c *Collector) Lines(ctx context.Context, src Source) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := c.Path(src.Path)
	p := file.NewParser(
		file.WithCommentPrefix(src.CommentPrefix),
		file.WithMaxSize(defaults.ConfigMaxSize),
	)

	lines, err := p.GetUncommentedLines(path)
	if err != nil {
		return nil, apperrors.FromSource(fmt.Sprintf("failed to read %s configuration", src.Name), err)
	}

	slog.Debug("collected configuration",
		slog.String("source", src.Name),
		slog.String("path", path),
		slog.Int("lines", len(lines)))

	return lines, nil
}

// Sudoers returns the active sudoers rules.
func (c *Collector) Sudoers(ctx context.Context) ([]string, error) {
	return c.Lines(ctx, SourceSudoers)
}

// Fstab returns the active filesystem table entries.
func (c *Collector) Fstab(ctx context.Context) ([]string, error) {
	return c.Lines(ctx, SourceFstab)
}

// NTP returns the active time synchronization directives.
func (c *Collector) NTP(ctx context.Context) ([]string, error) {
	return c.Lines(ctx, SourceNTP)
}

// DNS returns the active resolver directives. The resolver file uses ';' comments.
func (c *Collector) DNS(ctx context.Context) ([]string, error) {
	return c.Lines(ctx, SourceDNS)
}

// Limits returns the active resource limit entries.
func (c *Collector) Limits(ctx context.Context) ([]string, error) {
	return c.Lines(ctx, SourceLimits)
}

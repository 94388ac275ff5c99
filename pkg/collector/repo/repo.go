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

package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/go-ini/ini"

	"github.com/NVIDIA/host-assessment/pkg/collector/file"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
)

// Definition is one repository file: section name to its key/value settings.
type Definition struct {
	File     string                       `json:"file" yaml:"file"`
	Sections map[string]map[string]string `json:"sections" yaml:"sections"`
}

// Collector walks a repository definition directory.
type Collector struct {
	Dir string
	Ext string
}

// NewCollector returns a Collector for the repository directory under root.
func NewCollector(root string) *Collector {
	return &Collector{
		Dir: filepath.Join(root, defaults.RepoDir),
		Ext: defaults.RepoFileExt,
	}
}

var loadOptions = ini.LoadOptions{
	Loose:                      true,
	InsensitiveKeys:            true,
	AllowPythonMultilineValues: true,
}

// Collect parses every file below Dir carrying the repository extension, in
// walk order. A missing directory yields an empty slice; a file that cannot be
// parsed fails the collection.
func (c *Collector) Collect(ctx context.Context) ([]Definition, error) {
	defs := []Definition{}

	ok, err := file.Exists(c.Dir)
	if err != nil {
		return nil, apperrors.FromSource("failed to read repository directory", err)
	}
	if !ok {
		slog.Debug("repository directory not present", slog.String("path", c.Dir))
		return defs, nil
	}

	err = filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() || filepath.Ext(path) != c.Ext {
			return nil
		}

		def, err := Parse(path)
		if err != nil {
			return err
		}
		defs = append(defs, *def)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var se *apperrors.StructuredError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, apperrors.FromSource(fmt.Sprintf("failed to walk repository directory %s", c.Dir), err)
	}

	slog.Debug("collected repositories", slog.Int("files", len(defs)))
	return defs, nil
}

// Parse reads a single repository file. Key names are lower-cased and an
// empty default section is omitted.
func Parse(path string) (*Definition, error) {
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeParse,
			"failed to parse repository file", err, map[string]any{"path": path})
	}

	def := &Definition{
		File:     filepath.Base(path),
		Sections: make(map[string]map[string]string),
	}
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}
		def.Sections[sec.Name()] = sec.KeysHash()
	}
	return def, nil
}

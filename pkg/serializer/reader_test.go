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

package serializer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Domains map[string]bool `json:"domains" yaml:"domains"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"config.json", FormatJSON},
		{"config.YAML", FormatYAML},
		{"config.yml", FormatYAML},
		{"out.table", FormatTable},
		{"out.txt", FormatTable},
		{"config", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestNewReader_RejectsTable(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)
}

func TestReader_DeserializeJSON(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader(`{"domains":{"procs":false}}`))
	require.NoError(t, err)
	defer r.Close()

	var cfg sampleConfig
	require.NoError(t, r.Deserialize(&cfg))
	assert.Equal(t, map[string]bool{"procs": false}, cfg.Domains)
}

func TestReader_StrictRejectsUnknownFields(t *testing.T) {
	r, err := NewReader(FormatYAML, strings.NewReader("domainz:\n  procs: false\n"))
	require.NoError(t, err)

	var cfg sampleConfig
	assert.Error(t, r.Strict().Deserialize(&cfg))
}

func TestReader_NilSafe(t *testing.T) {
	var r *Reader
	assert.Error(t, r.Deserialize(&sampleConfig{}))
	assert.NoError(t, r.Close())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "hostassess.yaml")
		require.NoError(t, os.WriteFile(path, []byte("domains:\n  procs: false\n  users: true\n"), 0o600))

		cfg, err := FromFile[sampleConfig](path)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"procs": false, "users": true}, cfg.Domains)
	})

	t.Run("empty yaml", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		cfg, err := FromFile[sampleConfig](path)
		require.NoError(t, err)
		assert.Nil(t, cfg.Domains)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := FromFile[sampleConfig](filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})
}

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

	"github.com/NVIDIA/host-assessment/pkg/collector/file"
)

// Sysctl is a single kernel tunable from the sysctl configuration.
type Sysctl struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Sysctl returns the configured kernel tunables in file order. Each line is
// split on the first '=' and both sides trimmed; lines without '=' are skipped.
func (c *Collector) Sysctl(ctx context.Context) ([]Sysctl, error) {
	lines, err := c.Lines(ctx, SourceSysctl)
	if err != nil {
		return nil, err
	}

	pairs := file.NewParser().Pairs(lines)
	params := make([]Sysctl, 0, len(pairs))
	for _, kv := range pairs {
		params = append(params, Sysctl{Name: kv.Key, Value: kv.Value})
	}

	return params, nil
}

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

package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"

	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
	"github.com/NVIDIA/host-assessment/pkg/serializer"
	"github.com/NVIDIA/host-assessment/pkg/snapshotter"
)

// fileConfig is the on-disk configuration accepted by --config.
type fileConfig struct {
	Domains map[string]bool `json:"domains" yaml:"domains"`
}

func domainFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(snapshotter.Domains))
	for _, d := range snapshotter.Domains {
		flags = append(flags, &cli.BoolFlag{
			Name:     string(d),
			Value:    true,
			Category: "Domains",
			Usage:    fmt.Sprintf("Collect %s (disable with --%s=false)", d.Key(), d),
		})
	}
	return flags
}

// buildConfig starts from every domain enabled, applies the config file and
// then any domain flag set on the command line.
func buildConfig(cmd *cli.Command) (snapshotter.Config, error) {
	cfg := snapshotter.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		fc, err := serializer.FromFile[fileConfig](path)
		if err != nil {
			return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid config file", err)
		}
		for k, v := range fc.Domains {
			d, err := snapshotter.ParseDomain(k)
			if err != nil {
				return cfg, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
					"invalid config file", err, map[string]any{"path": path})
			}
			cfg.Set(d, v)
		}
	}

	for _, d := range snapshotter.Domains {
		if cmd.IsSet(string(d)) {
			cfg.Set(d, cmd.Bool(string(d)))
		}
	}

	return cfg, nil
}

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
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/host-assessment/pkg/header"
	"github.com/NVIDIA/host-assessment/pkg/serializer"
	"github.com/NVIDIA/host-assessment/pkg/snapshotter"
)

type domainInfo struct {
	Name    string `json:"name" yaml:"name"`
	Key     string `json:"key" yaml:"key"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

type domainList struct {
	header.Header `json:",inline" yaml:",inline"`

	Domains []domainInfo `json:"domains" yaml:"domains"`
}

func listDomains(cfg snapshotter.Config) *domainList {
	list := &domainList{Domains: make([]domainInfo, 0, len(snapshotter.Domains))}
	list.Init(header.KindDomainList, snapshotter.APIVersion, version)
	for _, d := range snapshotter.Domains {
		list.Domains = append(list.Domains, domainInfo{
			Name:    string(d),
			Key:     d.Key(),
			Enabled: cfg.Enabled(d),
		})
	}
	return list
}

func domainsCmd() *cli.Command {
	return &cli.Command{
		Name:  "domains",
		Usage: "List assessment domains and whether they would be collected",
		Description: `Lists every domain in collection order with the key it is stored under
in the assessment, after applying --config and any domain flags.`,
		Flags: append([]cli.Flag{configFlag(), outputFlag(), formatFlag()}, domainFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			out, err := serializer.NewOutput(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			if closer, ok := out.(serializer.Closer); ok {
				defer closer.Close()
			}

			return out.Serialize(ctx, listDomains(cfg))
		},
	}
}

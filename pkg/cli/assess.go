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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/host-assessment/pkg/collector"
	"github.com/NVIDIA/host-assessment/pkg/collector/systemd"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	"github.com/NVIDIA/host-assessment/pkg/run"
	"github.com/NVIDIA/host-assessment/pkg/serializer"
	"github.com/NVIDIA/host-assessment/pkg/snapshotter"
)

func assessCmd() *cli.Command {
	flags := []cli.Flag{
		configFlag(),
		outputFlag(),
		formatFlag(),
		&cli.StringFlag{
			Name:  "root",
			Usage: "Directory prefixed to every file-based source (e.g. a mounted host image)",
		},
		&cli.StringFlag{
			Name:  "proc",
			Value: defaults.ProcRoot,
			Usage: "Mount point of the proc filesystem used to inspect processes",
		},
		&cli.StringFlag{
			Name:    "search-path",
			Sources: cli.EnvVars("PATH"),
			Usage:   "Directories searched when resolving process executables (default: $PATH)",
		},
		&cli.BoolFlag{
			Name:  "units",
			Usage: "Decorate processes with their systemd unit (requires the system bus)",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write collection metrics in Prometheus text format to this file",
		},
		&cli.BoolFlag{
			Name:  "plain-http",
			Usage: "Use HTTP instead of HTTPS for oci:// output",
		},
		&cli.BoolFlag{
			Name:  "insecure-tls",
			Usage: "Skip TLS certificate verification for oci:// output",
		},
	}

	return &cli.Command{
		Name:                  "assess",
		EnableShellCompletion: true,
		Usage:                 "Capture a point-in-time host assessment",
		Description: `Capture a snapshot of the identity, security and configuration state of
the current host:
  - Accounts, groups and credential metadata (uid/gid above 99)
  - Sudoers rules, cron jobs, sysctl tunables
  - Filesystem table, resource limits, NTP and DNS configuration
  - Installed packages and package repositories
  - Running processes attributed to the package owning their executable

Every domain is collected by default; disable one with --<domain>=false or a
config file:

  domains:
    procs: false
    packages: false

Collection stops at the first failing domain and no document is written.

# Examples

Full assessment to stdout:
  hostassess assess

Skip process attribution, write YAML to a file:
  hostassess assess --procs=false --format yaml --output host.yaml

Assess a mounted image:
  hostassess assess --root /mnt/image --procs=false --packages=false

Push to an OCI registry:
  hostassess assess --output oci://ghcr.io/acme/assessments:node-1`,
		Flags: append(flags, domainFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			opts := []collector.Option{
				collector.WithRoot(cmd.String("root")),
				collector.WithProcRoot(cmd.String("proc")),
				collector.WithSearchPath(run.SplitPathList(cmd.String("search-path"))),
			}

			if cmd.Bool("units") && cfg.Enabled(snapshotter.DomainProcs) {
				units, uerr := systemd.Connect(ctx)
				if uerr != nil {
					slog.Warn("systemd unit decoration disabled", slog.String("error", uerr.Error()))
				} else {
					defer units.Close()
					opts = append(opts, collector.WithUnitResolver(units))
				}
			}

			out, err := serializer.NewOutput(outFormat, cmd.String("output"),
				serializer.WithPlainHTTP(cmd.Bool("plain-http")),
				serializer.WithInsecureTLS(cmd.Bool("insecure-tls")))
			if err != nil {
				return err
			}
			if closer, ok := out.(serializer.Closer); ok {
				defer func() {
					if cerr := closer.Close(); cerr != nil {
						slog.Warn("failed to close output", slog.String("error", cerr.Error()))
					}
				}()
			}

			hs := snapshotter.HostSnapshotter{
				Version:    version,
				Factory:    collector.NewDefaultFactory(opts...),
				Config:     cfg,
				Serializer: out,
			}

			err = hs.Measure(ctx)

			if path := cmd.String("metrics-file"); path != "" {
				if merr := snapshotter.WriteMetrics(path); merr != nil {
					slog.Warn("failed to write metrics", slog.String("path", path), slog.String("error", merr.Error()))
				}
			}

			return err
		},
	}
}

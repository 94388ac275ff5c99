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

// Package snapshotter assembles a point-in-time host assessment.
//
// A HostSnapshotter walks the assessment domains in a fixed order (users,
// groups, creds, sudoers, cron, sysctl, packages, procs, fstab, limits, ntp,
// dns, repos) and collects only those enabled in its Config. Each domain is
// stored in Snapshot.Assessment under its key (creds as "credentials", cron
// as "crontab").
//
// Collection is sequential and fail-fast: the first domain that fails ends
// the run with a StructuredError carrying the domain name, and Measure
// serializes nothing.
//
// # Usage
//
//	cfg := snapshotter.DefaultConfig()
//	cfg.Set(snapshotter.DomainProcs, false)
//
//	h := &snapshotter.HostSnapshotter{
//	    Version:    version,
//	    Factory:    collector.NewDefaultFactory(),
//	    Config:     cfg,
//	    Serializer: serializer.NewStdoutWriter(serializer.FormatYAML),
//	}
//	if err := h.Measure(ctx); err != nil {
//	    return err
//	}
//
// # Document
//
//	kind: Assessment
//	apiVersion: hostassess.nvidia.com/v1alpha1
//	metadata:
//	  id: 6f1c...
//	  hostname: node-1
//	  timestamp: "2025-01-01T00:00:00Z"
//	assessment:
//	  users: [...]
//	  sysctl: [...]
//
// # Metrics
//
// Collection duration, outcome and per-domain timings are registered with the
// default Prometheus registry. WriteMetrics dumps them in the textfile format.
package snapshotter

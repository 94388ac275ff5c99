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

// Package cli implements the hostassess command-line interface.
//
// # Commands
//
// assess - Capture a host assessment:
//
//	hostassess assess [--<domain>=false ...] [--config hostassess.yaml] [--output host.json]
//
// Collects the enabled domains (users, groups, creds, sudoers, cron, sysctl,
// packages, procs, fstab, limits, ntp, dns, repos) one after another. The first
// failing domain ends the run with a single error on stderr and exit code 1;
// nothing is written.
//
// domains - List domains and their effective selection:
//
//	hostassess domains --config hostassess.yaml --format table
//
// # Flags
//
//	--output, -o    Output file path, "-" for stdout, or oci://registry/repo[:tag]
//	--format, -t    Output format: json (default), yaml, table
//	--config, -c    Domain selection file; explicit domain flags take precedence
//	--root          Prefix for file-based sources
//	--proc          proc filesystem mount (default /proc)
//	--search-path   Executable search path (default $PATH)
//	--units         Attach systemd units to processes
//	--metrics-file  Write Prometheus textfile metrics
//	--log-level     debug, info, warn, error (env LOG_LEVEL)
//
// # Configuration File
//
//	domains:
//	  procs: false
//	  credentials: false
//
// Keys are domain names or assessment keys.
//
// # Exit Codes
//
//	0  Success
//	1  Any failure (invalid arguments, collection or output failure)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/host-assessment/pkg/cli.version=1.0.0'"
package cli

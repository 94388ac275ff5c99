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

// Package collector wires the host assessment collectors.
//
// Each assessment domain has its own subpackage:
//   - collector/file - comment-aware line reader shared by the file sources
//   - collector/identity - accounts, groups and credential metadata
//   - collector/os - sudoers, sysctl, fstab, limits, ntp and dns
//   - collector/cron - per-user crontabs
//   - collector/repo - package repository definitions
//   - collector/pkgdb - installed packages and file ownership
//   - collector/process - the process table attributed to packages
//   - collector/systemd - process to systemd unit resolution
//
// # Factory Pattern
//
// The Factory interface abstracts collector creation so the snapshotter can
// be tested with fixtures. DefaultFactory builds production collectors and is
// configured with functional options:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithRoot("/mnt/image"),
//	    collector.WithSearchPath(run.SplitPathList(os.Getenv("PATH"))),
//	)
//	accounts, err := factory.CreateIdentityCollector().Accounts(ctx)
//
// Collectors never read process environment themselves; everything they
// depend on (root, search path, runner, clock) comes through the factory.
package collector

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

// Package pkgdb queries the host package database.
//
// Two backends are provided: RPM, which reports install times, and DPKG.
// Detect picks the one whose query command is on the search path. Both
// distinguish a path that no package owns (ErrNotOwned) from a database that
// cannot be queried at all (ErrUnavailable).
//
// Usage:
//
//	q := pkgdb.Detect(run.Exec{}, dirs, time.Local)
//	pkgs, err := (&pkgdb.Collector{Querier: q}).Collect(ctx)
//	owner, err := q.Owner(ctx, "/usr/sbin/sshd")
package pkgdb

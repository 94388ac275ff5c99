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

// Package os collects static operating system configuration from free-form
// host files.
//
// # Collected Data
//
//   - sudoers: /etc/sudoers rules
//   - sysctl: /etc/sysctl.conf tunables as name/value pairs
//   - fstab: /etc/fstab entries
//   - limits: /etc/security/limits.conf entries
//   - ntp: /etc/ntp.conf directives
//   - dns: /etc/resolv.conf directives
//
// Every source uses '#' comments except the resolver configuration, which
// uses ';'. Blank and comment lines are dropped and the rest are trimmed.
//
// # Usage
//
//	c := os.NewCollector("")
//	params, err := c.Sysctl(ctx)
//	resolvers, err := c.DNS(ctx)
//
// A non-empty root is prepended to every path, which allows assessing a
// mounted filesystem image instead of the live host.
//
// # Error Handling
//
// A missing source is expected and yields an empty result. Any other read
// failure (permission denied, oversized or non UTF-8 content) is returned as
// a *errors.StructuredError.
package os

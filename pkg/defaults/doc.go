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

// Package defaults provides centralized configuration constants for hostassess.
//
// This package defines the host source paths, comment conventions, thresholds,
// external command names and the few timeouts used across the codebase.
//
// # Usage
//
//	import "github.com/NVIDIA/host-assessment/pkg/defaults"
//
//	lines, err := parser.GetUncommentedLines(filepath.Join(root, defaults.FstabPath))
//
// # Timeouts
//
// Collectors and package-manager queries have no deadline: a hung query blocks the
// run. Only the optional systemd unit decoration and the OCI output sink are bounded.
package defaults

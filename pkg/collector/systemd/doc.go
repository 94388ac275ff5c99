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

// Package systemd resolves running processes to the systemd units that own
// them.
//
// The resolver talks to the system instance of systemd over D-Bus:
//
//	units, err := systemd.Connect(ctx)
//	if err != nil {
//	    // no system bus; unit decoration is skipped
//	}
//	defer units.Close()
//
//	name, err := units.Unit(ctx, pid) // e.g. "sshd.service"
//
// Connect and each lookup are bounded by the timeouts in pkg/defaults.
package systemd

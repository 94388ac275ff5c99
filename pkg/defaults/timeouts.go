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

package defaults

import "time"

// Timeouts only bound the optional decorations and delivery sinks. Host collectors
// and package queries run without a deadline and block until the child exits.
const (
	// SystemdConnectTimeout bounds connecting to the system bus for unit lookups.
	SystemdConnectTimeout = 5 * time.Second

	// SystemdUnitLookupTimeout bounds a single pid-to-unit lookup.
	SystemdUnitLookupTimeout = 2 * time.Second

	// OCIPushTimeout bounds publishing a snapshot to an OCI registry.
	OCIPushTimeout = 2 * time.Minute
)

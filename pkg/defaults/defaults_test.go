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

import (
	"path/filepath"
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"SystemdConnectTimeout", SystemdConnectTimeout, time.Second, 30 * time.Second},
		{"SystemdUnitLookupTimeout", SystemdUnitLookupTimeout, 100 * time.Millisecond, 10 * time.Second},
		{"OCIPushTimeout", OCIPushTimeout, 30 * time.Second, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestSourcePathsAreAbsolute(t *testing.T) {
	paths := []string{
		PasswdPath, GroupPath, ShadowPath, SudoersPath, SysctlPath, FstabPath,
		NTPPath, ResolvPath, LimitsPath, CronSpoolDir, RepoDir, ProcRoot,
	}

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			t.Errorf("%q is not absolute", p)
		}
	}
}

func TestThresholds(t *testing.T) {
	if MinRegularID != 100 {
		t.Errorf("MinRegularID = %d, want 100 (ids > 99)", MinRegularID)
	}
	if MinUserPID != 3 {
		t.Errorf("MinUserPID = %d, want 3 (pids > 2)", MinUserPID)
	}
}

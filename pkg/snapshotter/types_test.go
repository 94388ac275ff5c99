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

package snapshotter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomain_Key(t *testing.T) {
	keys := make([]string, 0, len(Domains))
	for _, d := range Domains {
		keys = append(keys, d.Key())
	}
	assert.Equal(t, []string{
		"users", "groups", "credentials", "sudoers", "crontab", "sysctl",
		"packages", "procs", "fstab", "limits", "ntp", "dns", "repos",
	}, keys)
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    Domain
		wantErr bool
	}{
		{in: "users", want: DomainUsers},
		{in: " Creds ", want: DomainCreds},
		{in: "credentials", want: DomainCreds},
		{in: "crontab", want: DomainCron},
		{in: "gpu", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDomain(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, Domains, c.EnabledDomains())

	c.Set(DomainProcs, false)
	c.Set(Domain("gpu"), true)
	assert.False(t, c.Enabled(DomainProcs))
	assert.False(t, c.Enabled(Domain("gpu")))
	assert.Len(t, c.EnabledDomains(), len(Domains)-1)

	var empty Config
	assert.Empty(t, empty.EnabledDomains())
}

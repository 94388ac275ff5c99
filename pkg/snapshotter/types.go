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
	"context"
	"fmt"
	"strings"

	"github.com/NVIDIA/host-assessment/pkg/header"
)

// APIVersion is the apiVersion stamped on every assessment document.
const APIVersion = "hostassess.nvidia.com/v1alpha1"

// Domain names one independently switchable area of the assessment.
type Domain string

const (
	DomainUsers    Domain = "users"
	DomainGroups   Domain = "groups"
	DomainCreds    Domain = "creds"
	DomainSudoers  Domain = "sudoers"
	DomainCron     Domain = "cron"
	DomainSysctl   Domain = "sysctl"
	DomainPackages Domain = "packages"
	DomainProcs    Domain = "procs"
	DomainFstab    Domain = "fstab"
	DomainLimits   Domain = "limits"
	DomainNTP      Domain = "ntp"
	DomainDNS      Domain = "dns"
	DomainRepos    Domain = "repos"
)

// Domains lists every domain in collection order.
var Domains = []Domain{
	DomainUsers,
	DomainGroups,
	DomainCreds,
	DomainSudoers,
	DomainCron,
	DomainSysctl,
	DomainPackages,
	DomainProcs,
	DomainFstab,
	DomainLimits,
	DomainNTP,
	DomainDNS,
	DomainRepos,
}

// Key returns the key the domain is stored under in the assessment.
func (d Domain) Key() string {
	switch d {
	case DomainCreds:
		return "credentials"
	case DomainCron:
		return "crontab"
	default:
		return string(d)
	}
}

func (d Domain) String() string {
	return string(d)
}

// ParseDomain returns the domain named s, accepting either the domain name
// or its assessment key.
func ParseDomain(s string) (Domain, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Domains {
		if string(d) == s || d.Key() == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// Config selects the domains to collect.
type Config struct {
	Users    bool `json:"users" yaml:"users"`
	Groups   bool `json:"groups" yaml:"groups"`
	Creds    bool `json:"creds" yaml:"creds"`
	Sudoers  bool `json:"sudoers" yaml:"sudoers"`
	Cron     bool `json:"cron" yaml:"cron"`
	Sysctl   bool `json:"sysctl" yaml:"sysctl"`
	Packages bool `json:"packages" yaml:"packages"`
	Procs    bool `json:"procs" yaml:"procs"`
	Fstab    bool `json:"fstab" yaml:"fstab"`
	Limits   bool `json:"limits" yaml:"limits"`
	NTP      bool `json:"ntp" yaml:"ntp"`
	DNS      bool `json:"dns" yaml:"dns"`
	Repos    bool `json:"repos" yaml:"repos"`
}

// DefaultConfig returns a Config with every domain enabled.
func DefaultConfig() Config {
	var c Config
	for _, d := range Domains {
		c.Set(d, true)
	}
	return c
}

// Enabled reports whether d is selected.
func (c Config) Enabled(d Domain) bool {
	if f := c.field(d); f != nil {
		return *f
	}
	return false
}

// Set selects or deselects d. Unknown domains are ignored.
func (c *Config) Set(d Domain, enabled bool) {
	if f := c.field(d); f != nil {
		*f = enabled
	}
}

// EnabledDomains returns the selected domains in collection order.
func (c Config) EnabledDomains() []Domain {
	out := make([]Domain, 0, len(Domains))
	for _, d := range Domains {
		if c.Enabled(d) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Config) field(d Domain) *bool {
	switch d {
	case DomainUsers:
		return &c.Users
	case DomainGroups:
		return &c.Groups
	case DomainCreds:
		return &c.Creds
	case DomainSudoers:
		return &c.Sudoers
	case DomainCron:
		return &c.Cron
	case DomainSysctl:
		return &c.Sysctl
	case DomainPackages:
		return &c.Packages
	case DomainProcs:
		return &c.Procs
	case DomainFstab:
		return &c.Fstab
	case DomainLimits:
		return &c.Limits
	case DomainNTP:
		return &c.NTP
	case DomainDNS:
		return &c.DNS
	case DomainRepos:
		return &c.Repos
	default:
		return nil
	}
}

// Snapshotter defines the interface for producing host assessments.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// NewSnapshot creates a new Snapshot instance with an initialized Assessment map.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Assessment: make(map[string]any),
	}
}

// Snapshot is one assessment document. Assessment holds one entry per
// enabled domain, keyed by Domain.Key.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	Assessment map[string]any `json:"assessment" yaml:"assessment"`
}

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

package identity

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/NVIDIA/host-assessment/pkg/collector/file"
	"github.com/NVIDIA/host-assessment/pkg/defaults"
	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
)

const (
	passwdFields = 7
	groupFields  = 4
)

// Account is a regular (non-system) login account from the passwd source.
type Account struct {
	Username    string   `json:"username" yaml:"username"`
	UID         int      `json:"uid" yaml:"uid"`
	GID         int      `json:"gid" yaml:"gid"`
	Description *string  `json:"description" yaml:"description"`
	Home        *string  `json:"home" yaml:"home"`
	Shell       *string  `json:"shell" yaml:"shell"`
	Groups      []string `json:"groups" yaml:"groups"`
}

// Group is a regular (non-system) group from the group source.
// Members is nil when the group lists no members.
type Group struct {
	Name    string   `json:"group_name" yaml:"group_name"`
	GID     int      `json:"gid" yaml:"gid"`
	Members []string `json:"userlist" yaml:"userlist"`
}

// Collector extracts accounts, groups and credential metadata.
type Collector struct {
	PasswdPath string
	GroupPath  string
	ShadowPath string
}

// NewCollector returns a Collector reading the standard sources.
func NewCollector() *Collector {
	return &Collector{
		PasswdPath: defaults.PasswdPath,
		GroupPath:  defaults.GroupPath,
		ShadowPath: defaults.ShadowPath,
	}
}

func newSourceParser() *file.Parser {
	return file.NewParser(
		file.WithSkipComments(false),
		file.WithMaxSize(defaults.ConfigMaxSize),
	)
}

// Accounts returns every account with uid > 99, in source order, each with an
// empty group list. Usernames are unique: a later entry repeating a username
// is skipped, as name lookups resolve to the first one.
func (c *Collector) Accounts(ctx context.Context) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := newSourceParser().GetLines(c.PasswdPath)
	if err != nil {
		return nil, apperrors.FromSource("failed to read accounts", err)
	}

	accounts := make([]Account, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for i, line := range lines {
		a, ok := parseAccount(line)
		if !ok {
			slog.Warn("skipping malformed account entry",
				slog.String("path", c.PasswdPath),
				slog.Int("entry", i+1))
			continue
		}
		if seen[a.Username] {
			slog.Warn("skipping duplicate account entry",
				slog.String("path", c.PasswdPath),
				slog.String("username", a.Username),
				slog.Int("entry", i+1))
			continue
		}
		seen[a.Username] = true
		if a.UID < defaults.MinRegularID {
			continue
		}
		accounts = append(accounts, a)
	}

	slog.Debug("extracted accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}

func parseAccount(line string) (Account, bool) {
	f := strings.Split(line, ":")
	if len(f) != passwdFields || f[0] == "" {
		return Account{}, false
	}
	uid, err := strconv.Atoi(f[2])
	if err != nil {
		return Account{}, false
	}
	gid, err := strconv.Atoi(f[3])
	if err != nil {
		return Account{}, false
	}
	return Account{
		Username:    f[0],
		UID:         uid,
		GID:         gid,
		Description: optional(f[4]),
		Home:        optional(f[5]),
		Shell:       optional(f[6]),
		Groups:      []string{},
	}, true
}

// Groups returns every group with gid > 99 and appends each group's name to the
// group list of every account named in its member list. accounts is modified in place.
func (c *Collector) Groups(ctx context.Context, accounts []Account) ([]Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := newSourceParser().GetLines(c.GroupPath)
	if err != nil {
		return nil, apperrors.FromSource("failed to read groups", err)
	}

	groups := make([]Group, 0, len(lines))
	for i, line := range lines {
		g, ok := parseGroup(line)
		if !ok {
			slog.Warn("skipping malformed group entry",
				slog.String("path", c.GroupPath),
				slog.Int("entry", i+1))
			continue
		}
		if g.GID < defaults.MinRegularID {
			continue
		}
		Link(accounts, g)
		groups = append(groups, g)
	}

	slog.Debug("extracted groups", slog.Int("count", len(groups)))
	return groups, nil
}

// Link appends g.Name to the group list of every account listed as a member of g.
func Link(accounts []Account, g Group) {
	if len(g.Members) == 0 {
		return
	}
	for i := range accounts {
		if slices.Contains(g.Members, accounts[i].Username) {
			accounts[i].Groups = append(accounts[i].Groups, g.Name)
		}
	}
}

func parseGroup(line string) (Group, bool) {
	f := strings.Split(line, ":")
	if len(f) != groupFields || f[0] == "" {
		return Group{}, false
	}
	gid, err := strconv.Atoi(f[2])
	if err != nil {
		return Group{}, false
	}

	var members []string
	for _, m := range strings.Split(f[3], ",") {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}

	return Group{Name: f[0], GID: gid, Members: members}, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

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
	"strings"

	apperrors "github.com/NVIDIA/host-assessment/pkg/errors"
)

const minShadowFields = 8

// Credential is the password metadata of one collected account. The hash
// field is carried verbatim; aging fields are the raw strings from the source.
type Credential struct {
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	LastChange  string `json:"last_pwd_change" yaml:"last_pwd_change"`
	MinAge      string `json:"min_age" yaml:"min_age"`
	MaxAge      string `json:"max_age" yaml:"max_age"`
	WarnAge     string `json:"warn_age" yaml:"warn_age"`
	InactiveAge string `json:"inact_age" yaml:"inact_age"`
	Expires     string `json:"expires" yaml:"expires"`
}

// Credentials returns one Credential per shadow entry whose username belongs to
// accounts, in source order. Entries for other users and entries with fewer
// than eight fields are skipped.
func (c *Collector) Credentials(ctx context.Context, accounts []Account) ([]Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := newSourceParser().GetLines(c.ShadowPath)
	if err != nil {
		return nil, apperrors.FromSource("failed to read credentials", err)
	}

	known := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		known[a.Username] = struct{}{}
	}

	creds := make([]Credential, 0, len(accounts))
	for i, line := range lines {
		f := strings.Split(line, ":")
		if len(f) < minShadowFields {
			slog.Warn("skipping malformed credential entry",
				slog.String("path", c.ShadowPath),
				slog.Int("entry", i+1))
			continue
		}
		if _, ok := known[f[0]]; !ok {
			continue
		}
		creds = append(creds, Credential{
			Username:    f[0],
			Password:    f[1],
			LastChange:  f[2],
			MinAge:      f[3],
			MaxAge:      f[4],
			WarnAge:     f[5],
			InactiveAge: f[6],
			Expires:     f[7],
		})
	}

	slog.Debug("extracted credentials", slog.Int("count", len(creds)))
	return creds, nil
}

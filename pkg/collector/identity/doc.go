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

// Package identity extracts local accounts, groups and credential metadata
// from the passwd, group and shadow databases.
//
// System accounts and groups (id below 100) are filtered out. Group
// membership is linked back onto the collected accounts, and credential
// metadata is only reported for accounts that were collected.
//
// Usage:
//
//	c := identity.NewCollector()
//	accounts, err := c.Accounts(ctx)
//	groups, err := c.Groups(ctx, accounts)
//	creds, err := c.Credentials(ctx, accounts)
//
// Malformed entries are skipped with a warning. A missing or unreadable
// source is returned as a *errors.StructuredError.
package identity

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

// Host sources read by the file-based collectors. All paths are absolute and are
// joined under the configured root when assessing a mounted image.
const (
	PasswdPath  = "/etc/passwd"
	GroupPath   = "/etc/group"
	ShadowPath  = "/etc/shadow"
	SudoersPath = "/etc/sudoers"
	SysctlPath  = "/etc/sysctl.conf"
	FstabPath   = "/etc/fstab"
	NTPPath     = "/etc/ntp.conf"
	ResolvPath  = "/etc/resolv.conf"
	LimitsPath  = "/etc/security/limits.conf"

	CronSpoolDir = "/var/spool/cron"
	RepoDir      = "/etc/yum.repos.d"
	RepoFileExt  = ".repo"

	ProcRoot = "/proc"
)

// Comment prefixes per source convention.
const (
	CommentHash      = "#"
	CommentSemicolon = ";"
)

const (
	// MinRegularID is the lowest uid/gid reported; system accounts and groups (<= 99) are excluded.
	MinRegularID = 100

	// MinUserPID is the lowest pid reported; pids 1 and 2 are init and kthreadd.
	MinUserPID = 3

	// ConfigMaxSize caps how much of a single host source is read.
	ConfigMaxSize = 4 << 20
)

// External commands.
const (
	PSCommand       = "ps"
	PSArgs          = "auxww"
	RPMCommand      = "rpm"
	DPKGQueryCmd    = "dpkg-query"
	InstallTimeForm = "2006-01-02 15:04:05"
)

// CommandEnv is added to the environment of every external command so ps,
// rpm and dpkg-query print untranslated, C-locale output.
var CommandEnv = []string{"LC_ALL=C"}

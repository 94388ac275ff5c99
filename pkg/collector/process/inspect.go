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

package process

import (
	"fmt"

	"github.com/prometheus/procfs"
)

// Inspector reads per-process details from the live host. It is consulted
// after listing, so every method must tolerate a process that has exited.
type Inspector interface {
	// Alive reports whether pid still has a process entry.
	Alive(pid int) bool
	// Cwd returns the working directory of pid.
	Cwd(pid int) (string, error)
	// Executable returns the target of the executable link of pid.
	Executable(pid int) (string, error)
}

// ProcFS is the Inspector backed by a proc filesystem mount.
type ProcFS struct {
	fs procfs.FS
}

// NewProcFS returns an Inspector reading the proc filesystem at mountPoint.
func NewProcFS(mountPoint string) (*ProcFS, error) {
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("failed to open proc filesystem %s: %w", mountPoint, err)
	}
	return &ProcFS{fs: fs}, nil
}

// Alive implements Inspector.
func (p *ProcFS) Alive(pid int) bool {
	_, err := p.fs.Proc(pid)
	return err == nil
}

// Cwd implements Inspector.
func (p *ProcFS) Cwd(pid int) (string, error) {
	proc, err := p.fs.Proc(pid)
	if err != nil {
		return "", err
	}
	return proc.Cwd()
}

// Executable implements Inspector.
func (p *ProcFS) Executable(pid int) (string, error) {
	proc, err := p.fs.Proc(pid)
	if err != nil {
		return "", err
	}
	return proc.Executable()
}

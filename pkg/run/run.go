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

// Package run executes external commands synchronously and captures their results.
package run

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Result wraps a command execution result.
type Result struct {
	// Exit code. Set to -1 if the command could not be started.
	ExitCode int
	// StdOut is the complete standard output.
	StdOut string
	// StdErr is the standard error, or err.Error() if the command could not be started.
	StdErr string
	// Err is the start or wait error, if any.
	Err error
}

// Started reports whether the command was actually executed.
func (r *Result) Started() bool {
	return r.ExitCode != -1
}

// Error returns the trimmed stderr content.
func (r *Result) Error() string {
	return strings.TrimSuffix(r.StdErr, "\n")
}

// Runner runs commands. Implementations must read stdout to completion and
// record the exit status before returning.
type Runner interface {
	WithOutput(ctx context.Context, name string, args ...string) *Result
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) *Result

// WithOutput calls f.
func (f RunnerFunc) WithOutput(ctx context.Context, name string, args ...string) *Result {
	return f(ctx, name, args...)
}

// Exec is the Runner backed by os/exec.
type Exec struct {
	// Env entries are added to the inherited environment, overriding
	// variables of the same name.
	Env []string
}

// WithOutput runs a command and returns the result.
func (e Exec) WithOutput(ctx context.Context, name string, args ...string) *Result {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return &Result{StdOut: stdout.String(), StdErr: stderr.String()}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{
			ExitCode: exitErr.ExitCode(),
			StdOut:   stdout.String(),
			StdErr:   stderr.String(),
			Err:      err,
		}
	}

	return &Result{ExitCode: -1, StdErr: err.Error(), Err: err}
}

// LookPath searches dirs in order for an executable regular file named name.
// Names containing a path separator are checked as-is. The first match wins.
func LookPath(name string, dirs []string) (string, bool) {
	if name == "" {
		return "", false
	}
	if strings.ContainsRune(name, os.PathSeparator) {
		if filepath.IsAbs(name) && IsExecutable(name) {
			return name, true
		}
		return "", false
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if IsExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// IsExecutable reports whether path is a regular file with at least one execute bit.
func IsExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular() && fi.Mode().Perm()&0o111 != 0
}

// SplitPathList splits a PATH-style value into directories, dropping empty entries.
func SplitPathList(value string) []string {
	parts := filepath.SplitList(value)
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

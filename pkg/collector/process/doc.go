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

// Package process builds the attributed process table.
//
// The pipeline lists live processes with ps, drops pids 1 and 2, the
// collector itself and kernel threads, then resolves each command line to
// the file it executes and asks the package database which package owns it.
//
// # Executable Resolution
//
// Commands whose base name contains a known interpreter name (see
// DefaultInterpreters) resolve to their first argument that is an executable
// regular file, so "python /opt/app/run.py" is attributed through
// /opt/app/run.py. Relative arguments are anchored at the process working
// directory. Other commands resolve to the command token itself, searched by
// base name in the configured search path when it is not an existing
// absolute path. As a last resort the executable link under /proc is used.
// Scripts are never opened to read an interpreter line.
//
// # Races
//
// The process table changes while it is walked. A pid whose /proc entry is
// gone by the time it is inspected is dropped silently. A process that
// cannot be resolved or attributed is reported with nil executable or
// package fields.
package process

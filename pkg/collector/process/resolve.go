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
	"os"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/host-assessment/pkg/run"
)

// Interpreter names a runtime whose processes execute a script given as an
// argument. When ScriptArg is set the first executable argument is preferred
// over the interpreter itself.
type Interpreter struct {
	Name      string
	ScriptArg bool
}

// InterpreterTable is matched in order against the base name of a command.
type InterpreterTable []Interpreter

// DefaultInterpreters are the runtimes recognized out of the box.
var DefaultInterpreters = InterpreterTable{
	{Name: "python", ScriptArg: true},
	{Name: "perl", ScriptArg: true},
	{Name: "ruby", ScriptArg: true},
	{Name: "php", ScriptArg: true},
	{Name: "node", ScriptArg: true},
	{Name: "bash", ScriptArg: true},
	{Name: "sh", ScriptArg: true},
}

// Lookup returns the first entry whose name is a substring of the base name
// of command.
func (t InterpreterTable) Lookup(command string) (Interpreter, bool) {
	base := filepath.Base(command)
	for _, in := range t {
		if strings.Contains(base, in.Name) {
			return in, true
		}
	}
	return Interpreter{}, false
}

// Resolver turns a command line into the absolute path of the file it runs.
type Resolver struct {
	SearchPath   []string
	Interpreters InterpreterTable
}

// Resolve returns the executable for command and args. cwd, when known, is
// used to anchor relative script arguments.
//
// Interpreted commands resolve to their first executable argument. Otherwise
// the command token is used with any login shell '-' prefix and process title
// ':' suffix removed; a token that is not an existing absolute path is looked
// up by base name in SearchPath.
func (r *Resolver) Resolve(command string, args []string, cwd string) (string, bool) {
	if in, ok := r.Interpreters.Lookup(command); ok && in.ScriptArg {
		if script, ok := scriptArg(args, cwd); ok {
			return script, true
		}
	}

	token := strings.TrimSuffix(strings.TrimPrefix(command, "-"), ":")
	if token == "" {
		return "", false
	}
	if filepath.IsAbs(token) && isFile(token) {
		return token, true
	}
	return run.LookPath(filepath.Base(token), r.SearchPath)
}

func scriptArg(args []string, cwd string) (string, bool) {
	for _, arg := range args {
		if arg == "" {
			continue
		}
		candidate := arg
		if !filepath.IsAbs(candidate) {
			if cwd == "" {
				continue
			}
			candidate = filepath.Join(cwd, candidate)
		}
		if run.IsExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

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

// Package file provides the line reader shared by every file-based collector.
//
// A Parser reads a text source, splits it into lines, trims each line and
// drops blank entries and comment lines. Comment conventions differ per source
// ("#" for most of /etc, ";" for resolv.conf), so the prefix is an option.
//
// # Usage
//
// Optional host configuration, where absence means "nothing configured":
//
//	p := file.NewParser(file.WithCommentPrefix(";"))
//	lines, err := p.GetUncommentedLines("/etc/resolv.conf")
//	// lines == []string{} and err == nil when the file does not exist
//
// Ordered key-value sources:
//
//	p := file.NewParser()
//	lines, err := p.GetUncommentedLines("/etc/sysctl.conf")
//	pairs := p.Pairs(lines)
//
// # Error Handling
//
// GetLines treats a missing file as an error. Oversized files,
// invalid UTF-8 and read failures (e.g. permission denied) are errors for every
// method, including GetUncommentedLines.
package file

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

package file

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Options for configuring the Parser.
type Option func(*Parser)

// kvDelimiter separates a key from its value in Pairs.
const kvDelimiter = "="

// Parser parses configuration files with customizable settings.
type Parser struct {
	maxSize       int
	skipComments  bool
	commentPrefix string
}

// Pair is a single key-value entry, in file order.
type Pair struct {
	Key   string
	Value string
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether to skip comment lines in the file.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithCommentPrefix sets the character sequence that starts a comment line.
// Default is "#".
func WithCommentPrefix(prefix string) Option {
	return func(p *Parser) {
		p.commentPrefix = prefix
	}
}

// NewParser creates a new file parser with the provided options.
// Default settings: 1MB max file size, "#" comments skipped.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:       1 << 20, // 1MB default
		skipComments:  true,
		commentPrefix: "#",
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Exists reports whether path is present. A missing path is not an error;
// any other stat failure (e.g. permission denied on a parent) is.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}

// GetUncommentedLines returns the trimmed, non-blank lines of an optional file
// that do not start with the comment prefix. A file that does not exist yields
// an empty slice and no error.
func (p *Parser) GetUncommentedLines(path string) ([]string, error) {
	ok, err := Exists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Debug("optional source not present", slog.String("path", path))
		return []string{}, nil
	}

	cp := *p
	cp.skipComments = true
	return cp.GetLines(path)
}

// Pairs splits lines into key-value pairs on the first "=", trimming both
// sides and preserving order and duplicates. Lines without "=" are skipped;
// a key with an empty value is kept.
func (p *Parser) Pairs(lines []string) []Pair {
	result := make([]Pair, 0, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, kvDelimiter)
		if !ok {
			slog.Debug("skipping entry without value", slog.String("line", line))
			continue
		}
		result = append(result, Pair{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return result
}

// GetLines reads the file at the given path and splits its content into
// trimmed lines. It returns a slice of non-empty lines.
// An error is returned if the file cannot be read, exceeds the maximum size,
// or contains invalid UTF-8 content.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	parts := strings.Split(string(b), "\n")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		cleanPart := strings.TrimSpace(part)
		if cleanPart == "" {
			continue
		}

		if p.skipComments && p.commentPrefix != "" && strings.HasPrefix(cleanPart, p.commentPrefix) {
			continue
		}

		result = append(result, cleanPart)
	}

	return result, nil
}

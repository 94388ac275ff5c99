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

// Package serializer encodes assessment documents and delivers them to an
// output target.
//
// # Supported Formats
//
//   - JSON: indented, machine-readable
//   - YAML: human-readable, gopkg.in/yaml.v3
//   - Table: flattened FIELD/VALUE listing keyed by JSON field names (write-only)
//
// # Output Targets
//
// NewOutput picks the sink from the target string.
//
//   - "" or "-": stdout
//   - "oci://registry/repo[:tag]": pushed to an OCI registry as a single-layer artifact
//   - anything else: a local file
//
// Usage:
//
//	s, err := serializer.NewOutput(serializer.FormatJSON, target)
//	if err != nil {
//	    return err
//	}
//	if c, ok := s.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	err = s.Serialize(ctx, snapshot)
//
// # Decoding
//
// Reader decodes JSON or YAML from files or streams. FromFile is the
// one-call form used for configuration files:
//
//	cfg, err := serializer.FromFile[Config]("hostassess.yaml")
package serializer

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

// Package header provides the common header carried by every hostassess document.
//
// The Header contains standard fields for API versioning and metadata:
//
//	type Header struct {
//	    Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
//	    APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
//	    Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
//	}
//
// # Usage
//
//	var h header.Header
//	h.Init(header.KindAssessment, "hostassess.nvidia.com/v1alpha1", "v1.0.0")
//	h.Metadata[header.MetaHostname] = "db-01"
//
// # Serialization
//
//	{
//	  "kind": "Assessment",
//	  "apiVersion": "hostassess.nvidia.com/v1alpha1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0",
//	    "hostname": "db-01"
//	  }
//	}
package header

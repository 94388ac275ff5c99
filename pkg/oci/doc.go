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

// Package oci publishes assessment documents to OCI registries.
//
// An output target of the form oci://registry/repository[:tag] is parsed
// into a Reference, and Push uploads the serialized document as the single
// layer of an OCI 1.1 artifact using ORAS.
//
// # Usage
//
//	ref, err := oci.ParseReference("oci://ghcr.io/acme/assessments:host-01")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{
//	    Reference: ref,
//	    FileName:  "assessment.json",
//	    MediaType: "application/json",
//	    Content:   data,
//	})
//
// # Authentication
//
// Credentials are loaded from the standard Docker configuration
// (~/.docker/config.json) through the ORAS credentials package.
//
// # Artifact Type
//
// Artifacts are pushed with the artifact type
// "application/vnd.nvidia.hostassess.assessment" so consumers can tell them
// apart from runnable container images.
package oci

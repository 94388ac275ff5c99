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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/NVIDIA/host-assessment/pkg/defaults"
	"github.com/NVIDIA/host-assessment/pkg/oci"
)

// OCIOption configures an OCIWriter.
type OCIOption func(*OCIWriter)

// WithPlainHTTP uses HTTP instead of HTTPS for the registry connection.
func WithPlainHTTP(plain bool) OCIOption {
	return func(w *OCIWriter) {
		w.plainHTTP = plain
	}
}

// WithInsecureTLS skips registry TLS certificate verification.
func WithInsecureTLS(insecure bool) OCIOption {
	return func(w *OCIWriter) {
		w.insecureTLS = insecure
	}
}

// WithAnnotations adds manifest annotations to the pushed artifact.
func WithAnnotations(annotations map[string]string) OCIOption {
	return func(w *OCIWriter) {
		w.annotations = annotations
	}
}

// WithPushFunc replaces the registry push, for tests.
func WithPushFunc(push func(context.Context, oci.PushOptions) (*oci.PushResult, error)) OCIOption {
	return func(w *OCIWriter) {
		w.push = push
	}
}

// OCIWriter serializes data and pushes it as a single-layer OCI artifact.
type OCIWriter struct {
	format      Format
	ref         *oci.Reference
	plainHTTP   bool
	insecureTLS bool
	annotations map[string]string
	push        func(context.Context, oci.PushOptions) (*oci.PushResult, error)

	// Result is the outcome of the last successful push.
	Result *oci.PushResult
}

// NewOCIWriter returns a Serializer pushing to ref.
func NewOCIWriter(format Format, ref *oci.Reference, opts ...OCIOption) *OCIWriter {
	w := &OCIWriter{
		format: normalize(format),
		ref:    ref,
		push:   oci.Push,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize encodes data and pushes it to the registry.
func (w *OCIWriter) Serialize(ctx context.Context, data any) error {
	content, err := Marshal(w.format, data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	annotations := map[string]string{
		ociv1.AnnotationCreated: time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range w.annotations {
		annotations[k] = v
	}

	res, err := w.push(ctx, oci.PushOptions{
		Reference:   w.ref,
		FileName:    "assessment." + w.extension(),
		MediaType:   w.mediaType(),
		Content:     content,
		Annotations: annotations,
		PlainHTTP:   w.plainHTTP,
		InsecureTLS: w.insecureTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to push assessment to %s: %w", w.ref, err)
	}

	w.Result = res
	slog.Info("assessment pushed",
		slog.String("reference", res.Reference),
		slog.String("digest", res.Digest))
	return nil
}

func (w *OCIWriter) extension() string {
	if w.format == FormatTable {
		return "txt"
	}
	return string(w.format)
}

func (w *OCIWriter) mediaType() string {
	switch w.format {
	case FormatYAML:
		return "application/yaml"
	case FormatTable:
		return "text/plain"
	default:
		return "application/json"
	}
}

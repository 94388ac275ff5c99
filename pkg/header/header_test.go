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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeader_Init(t *testing.T) {
	var h Header
	h.Init(KindAssessment, "hostassess.nvidia.com/v1alpha1", "v1.2.3")

	assert.Equal(t, KindAssessment, h.Kind)
	assert.Equal(t, "hostassess.nvidia.com/v1alpha1", h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata[MetaVersion])

	_, err := time.Parse(time.RFC3339, h.Metadata[MetaTimestamp])
	assert.NoError(t, err)
}

func TestHeader_InitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindAssessment, "v1", "")

	_, ok := h.Metadata[MetaVersion]
	assert.False(t, ok)
}

func TestNew_Options(t *testing.T) {
	h := New(
		WithKind(KindDomainList),
		WithAPIVersion("v1"),
		WithMetadata(MetaHostname, "db-01"),
	)

	assert.Equal(t, KindDomainList, h.GetKind())
	assert.Equal(t, "v1", h.APIVersion)
	assert.Equal(t, "db-01", h.GetMetadata()[MetaHostname])
}

func TestKind_IsValid(t *testing.T) {
	valid := KindAssessment
	assert.True(t, valid.IsValid())

	invalid := Kind("Recipe")
	assert.False(t, invalid.IsValid())
}

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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Assessment collection metrics
	snapshotCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostassess_collection_duration_seconds",
			Help:    "Time taken to collect a complete host assessment",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	snapshotCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostassess_collection_total",
			Help: "Total number of assessment collection attempts",
		},
		[]string{"status"}, // success or error
	)

	snapshotDomainDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostassess_domain_duration_seconds",
			Help:    "Time taken to collect individual assessment domains",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"domain"},
	)

	snapshotDomainCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostassess_domains",
			Help: "Number of domains in the last collected assessment",
		},
	)
)

// WriteMetrics writes the collection metrics in the Prometheus text format
// to path, for pickup by a node exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

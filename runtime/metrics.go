// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/dappforce/subsocial-go/metrics"

var (
	metricCalls         = metrics.LazyLoadCounterVec("runtime_calls_count", []string{"call", "outcome"})
	metricBlockNumber   = metrics.LazyLoadGauge("runtime_block_number")
	metricBlockDuration = metrics.LazyLoadHistogram("runtime_block_duration_ms", metrics.Bucket10s)
	metricPoolSize      = metrics.LazyLoadGauge("runtime_pool_size")
)

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package processor

import "github.com/vechain/nftstake/metrics"

var (
	metricOperations = metrics.LazyLoadCounterVec("operation_count", []string{"op", "status"})
	metricExecution  = metrics.LazyLoadHistogramVec("operation_duration_us", []string{"op"}, metrics.BucketExecution)
)

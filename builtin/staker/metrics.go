// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import "github.com/vechain/nftstake/metrics"

var (
	metricRewardsMinted = metrics.LazyLoadCounter("staker_rewards_minted_count")
	metricPoolStaked    = metrics.LazyLoadGaugeVec("staker_pool_staked", []string{"pool"})
	metricCustody       = metrics.LazyLoadCounterVec("staker_custody_count", []string{"mode", "direction"})
)

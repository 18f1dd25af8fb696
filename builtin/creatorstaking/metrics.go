// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/metrics"
)

var (
	metricCurrentEra   = metrics.LazyLoadGauge("creator_staking_current_era")
	metricRotatedCount = metrics.LazyLoadCounter("creator_staking_rotated_creators_count")
	metricClaims       = metrics.LazyLoadCounterVec("creator_staking_claims_count", []string{"kind", "restaked"})
	metricRewardsPaid  = metrics.LazyLoadCounterVec("creator_staking_rewards_paid", []string{"kind"})
	metricStakeOps     = metrics.LazyLoadCounterVec("creator_staking_stake_ops_count", []string{"op"})
)

// meterAmount converts a balance for the int64 counters, saturating at math.MaxInt64.
func meterAmount(amount *uint256.Int) int64 {
	if !amount.IsUint64() || amount.Uint64() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(amount.Uint64())
}

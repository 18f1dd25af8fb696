// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Billion is the denominator of Perbill.
const Billion = 1_000_000_000

// Perbill is a fraction in parts per billion, saturated at one.
type Perbill uint32

// PerbillFromPercent returns n percent, saturated at 100.
func PerbillFromPercent(n uint32) Perbill {
	if n >= 100 {
		return Billion
	}
	return Perbill(n * (Billion / 100))
}

// Mul returns floor(v * p).
func (p Perbill) Mul(v *uint256.Int) uint256.Int {
	parts := uint64(p)
	if parts > Billion {
		parts = Billion
	}
	var z uint256.Int
	z.MulDivOverflow(v, uint256.NewInt(parts), uint256.NewInt(Billion))
	return z
}

// Split returns the share of pot proportional to part/total, rounded down.
// The ratio saturates at one, and a zero total yields nothing.
func Split(part, total, pot *uint256.Int) uint256.Int {
	if total.IsZero() || part.IsZero() || pot.IsZero() {
		return uint256.Int{}
	}
	if part.Cmp(total) >= 0 {
		return *pot
	}
	// part < total, so the result is below pot and cannot overflow
	var z uint256.Int
	z.MulDivOverflow(pot, part, total)
	return z
}

// RewardInfo is a reward pot split between creators and backers.
type RewardInfo struct {
	Creators uint256.Int
	Backers  uint256.Int
}

// Add accumulates other into r.
func (r *RewardInfo) Add(other *RewardInfo) error {
	var creators, backers uint256.Int
	if _, overflow := creators.AddOverflow(&r.Creators, &other.Creators); overflow {
		return reverts.ErrArithmeticOverflow
	}
	if _, overflow := backers.AddOverflow(&r.Backers, &other.Backers); overflow {
		return reverts.ErrArithmeticOverflow
	}
	r.Creators, r.Backers = creators, backers
	return nil
}

// Total returns creators + backers.
func (r *RewardInfo) Total() uint256.Int {
	var t uint256.Int
	t.Add(&r.Creators, &r.Backers)
	return t
}

// DistributionConfig is how every block reward is split.
type DistributionConfig struct {
	Creators Perbill
	Backers  Perbill
	Treasury Perbill
}

// NewDistributionConfig converts the parts per billion of the runtime config.
func NewDistributionConfig(cfg subsocial.DistributionConfig) DistributionConfig {
	return DistributionConfig{
		Creators: Perbill(cfg.Creators),
		Backers:  Perbill(cfg.Backers),
		Treasury: Perbill(cfg.Treasury),
	}
}

// IsSumEqualToOne reports whether the three parts add up to exactly 100%.
func (c DistributionConfig) IsSumEqualToOne() bool {
	return uint64(c.Creators)+uint64(c.Backers)+uint64(c.Treasury) == Billion
}

// Split distributes reward. The treasury receives the rounding remainder so that
// the three parts always add up to reward.
func (c DistributionConfig) Split(reward *uint256.Int) (RewardInfo, uint256.Int) {
	info := RewardInfo{
		Creators: c.Creators.Mul(reward),
		Backers:  c.Backers.Mul(reward),
	}
	total := info.Total()
	var treasury uint256.Int
	if total.Cmp(reward) < 0 {
		treasury.Sub(reward, &total)
	}
	return info, treasury
}

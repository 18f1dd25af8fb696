// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package era

import (
	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
)

// Forcing tells the rotation whether to start a new era regardless of the block height.
type Forcing uint8

const (
	NotForcing Forcing = iota
	ForceNew
)

// Info is the aggregate of one era.
// Rewards are written once, when the era ends. Staked and Locked are live during the era.
type Info struct {
	Rewards rewards.RewardInfo
	Staked  uint256.Int // actively staked on all creators
	Locked  uint256.Int // staked plus unbonding
}

// AddStake records newly staked funds, which are locked as well.
func (i *Info) AddStake(amount *uint256.Int) error {
	var staked, locked uint256.Int
	if _, overflow := staked.AddOverflow(&i.Staked, amount); overflow {
		return reverts.ErrArithmeticOverflow
	}
	if _, overflow := locked.AddOverflow(&i.Locked, amount); overflow {
		return reverts.ErrArithmeticOverflow
	}
	i.Staked, i.Locked = staked, locked
	return nil
}

// SubStaked removes funds from the active stake. They stay locked until withdrawn.
func (i *Info) SubStaked(amount *uint256.Int) error {
	var staked uint256.Int
	if _, underflow := staked.SubOverflow(&i.Staked, amount); underflow {
		return reverts.ErrArithmeticUnderflow
	}
	i.Staked = staked
	return nil
}

// SubLocked releases withdrawn funds.
func (i *Info) SubLocked(amount *uint256.Int) error {
	var locked uint256.Int
	if _, underflow := locked.SubOverflow(&i.Locked, amount); underflow {
		return reverts.ErrArithmeticUnderflow
	}
	i.Locked = locked
	return nil
}

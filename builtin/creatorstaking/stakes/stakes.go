// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakes implements the stake history of a backer on a creator.
//
// The history is run-length encoded: an entry (era, staked) means the backer had staked
// that amount from era on, until the era of the next entry. Eras between two entries
// implicitly repeat the amount of the earlier one, so the storage grows with the number
// of stake changes and not with the number of eras.
package stakes

import (
	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/subsocial"
)

// ErrRoundNumberOutOfBounds is returned when a change targets an era before the latest entry.
var ErrRoundNumberOutOfBounds = reverts.New("era is before the latest stake entry")

// EraStake is the staked amount as of an era.
type EraStake struct {
	Staked uint256.Int
	Era    subsocial.EraIndex
}

// StakesInfo is the era ascending stake history, at most one entry per era.
type StakesInfo struct {
	Stakes []EraStake
}

func (s *StakesInfo) Len() int {
	return len(s.Stakes)
}

func (s *StakesInfo) IsEmpty() bool {
	return len(s.Stakes) == 0
}

// Latest returns the current stake, zero when the history is empty.
func (s *StakesInfo) Latest() uint256.Int {
	if len(s.Stakes) == 0 {
		return uint256.Int{}
	}
	return s.Stakes[len(s.Stakes)-1].Staked
}

// Clone returns a deep copy.
func (s *StakesInfo) Clone() StakesInfo {
	return StakesInfo{Stakes: append([]EraStake(nil), s.Stakes...)}
}

// Stake adds value as of era and returns the new stake.
func (s *StakesInfo) Stake(era subsocial.EraIndex, value *uint256.Int) (uint256.Int, error) {
	if len(s.Stakes) == 0 {
		s.Stakes = append(s.Stakes, EraStake{Staked: *value, Era: era})
		return *value, nil
	}

	last := &s.Stakes[len(s.Stakes)-1]
	if era < last.Era {
		return uint256.Int{}, ErrRoundNumberOutOfBounds
	}
	var total uint256.Int
	if _, overflow := total.AddOverflow(&last.Staked, value); overflow {
		return uint256.Int{}, reverts.ErrArithmeticOverflow
	}
	s.set(era, total)
	return total, nil
}

// Unstake removes value as of era and returns the remaining stake.
// A leading zero entry carries no reward and is dropped.
func (s *StakesInfo) Unstake(era subsocial.EraIndex, value *uint256.Int) (uint256.Int, error) {
	if len(s.Stakes) == 0 {
		if value.IsZero() {
			return uint256.Int{}, nil
		}
		return uint256.Int{}, reverts.ErrArithmeticUnderflow
	}

	last := &s.Stakes[len(s.Stakes)-1]
	if era < last.Era {
		return uint256.Int{}, ErrRoundNumberOutOfBounds
	}
	var remaining uint256.Int
	if _, underflow := remaining.SubOverflow(&last.Staked, value); underflow {
		return uint256.Int{}, reverts.ErrArithmeticUnderflow
	}
	s.set(era, remaining)
	s.dropZeroHead()
	return remaining, nil
}

// Claim pops the oldest unclaimed era and the amount staked in it.
// ok is false when there is nothing left to claim.
func (s *StakesInfo) Claim() (era subsocial.EraIndex, staked uint256.Int, ok bool) {
	if len(s.Stakes) == 0 {
		return 0, uint256.Int{}, false
	}

	head := s.Stakes[0]
	if len(s.Stakes) > 1 && s.Stakes[1].Era == head.Era+1 {
		s.Stakes = s.Stakes[1:]
	} else {
		s.Stakes[0].Era = head.Era + 1
	}
	s.dropZeroHead()
	return head.Era, head.Staked, true
}

// set replaces the last entry if it belongs to era, or appends a new one.
func (s *StakesInfo) set(era subsocial.EraIndex, staked uint256.Int) {
	if last := &s.Stakes[len(s.Stakes)-1]; last.Era == era {
		last.Staked = staked
		return
	}
	s.Stakes = append(s.Stakes, EraStake{Staked: staked, Era: era})
}

func (s *StakesInfo) dropZeroHead() {
	if len(s.Stakes) > 0 && s.Stakes[0].Staked.IsZero() {
		s.Stakes = s.Stakes[1:]
	}
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creator

import (
	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/subsocial"
)

type StatusKind uint8

const (
	StatusActive StatusKind = iota
	StatusInactive
)

// Status of a registered creator. Inactive is terminal and carries the unregistration era.
type Status struct {
	Kind StatusKind
	Era  subsocial.EraIndex
}

func Active() Status {
	return Status{Kind: StatusActive}
}

func Inactive(era subsocial.EraIndex) Status {
	return Status{Kind: StatusInactive, Era: era}
}

func (s Status) IsActive() bool {
	return s.Kind == StatusActive
}

// UnregisteredAt returns the unregistration era of an inactive creator.
func (s Status) UnregisteredAt() (subsocial.EraIndex, bool) {
	if s.Kind != StatusInactive {
		return 0, false
	}
	return s.Era, true
}

// Info is a registered creator.
type Info struct {
	Stakeholder subsocial.AccountID
	Status      Status
}

// AcceptsRewardsFor reports whether era precedes the unregistration, if any.
func (i *Info) AcceptsRewardsFor(era subsocial.EraIndex) bool {
	unregistered, ok := i.Status.UnregisteredAt()
	return !ok || era < unregistered
}

// StakeInfo is the ledger of a creator in one era.
type StakeInfo struct {
	Total          uint256.Int
	BackersCount   uint32
	RewardsClaimed bool
}

// AddStake records value staked by a backer whose stake on the creator was previous.
// A zero previous stake makes the backer count as a new one, within maxBackers.
func (s *StakeInfo) AddStake(previous, value *uint256.Int, maxBackers uint32) error {
	if previous.IsZero() {
		if s.BackersCount >= maxBackers {
			return reverts.ErrMaxNumberOfStakersExceeded
		}
	}
	var total uint256.Int
	if _, overflow := total.AddOverflow(&s.Total, value); overflow {
		return reverts.ErrArithmeticOverflow
	}
	if previous.IsZero() {
		s.BackersCount++
	}
	s.Total = total
	return nil
}

// SubStake records value removed by a backer. left tells whether the backer's stake dropped to zero.
func (s *StakeInfo) SubStake(value *uint256.Int, left bool) error {
	var total uint256.Int
	if _, underflow := total.SubOverflow(&s.Total, value); underflow {
		return reverts.ErrArithmeticUnderflow
	}
	s.Total = total
	if left && s.BackersCount > 0 {
		s.BackersCount--
	}
	return nil
}

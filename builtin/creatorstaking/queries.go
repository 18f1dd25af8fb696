// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/subsocial"
)

// CreatorAmount is an amount associated with a creator.
type CreatorAmount struct {
	CreatorID subsocial.SpaceID
	Amount    uint256.Int
}

// CreatorClaims is the number of eras a backer can claim on a creator.
type CreatorClaims struct {
	CreatorID subsocial.SpaceID
	Eras      uint32
}

// EstimatedBackerRewardsByCreators sums, per creator, the rewards the backer would receive by
// claiming every claimable era now. Unknown creators yield zero.
func (s *Staker) EstimatedBackerRewardsByCreators(who subsocial.AccountID, ids []subsocial.SpaceID) ([]CreatorAmount, error) {
	current, err := s.eraService.CurrentEra()
	if err != nil {
		return nil, err
	}
	result := make([]CreatorAmount, 0, len(ids))
	for _, id := range ids {
		entry := CreatorAmount{CreatorID: id}
		info, ok, err := s.creatorService.GetCreator(id)
		if err != nil {
			return nil, err
		}
		if ok {
			backerStakes, err := s.backerService.GetStakes(who, id)
			if err != nil {
				return nil, err
			}
			err = pendingClaims(&backerStakes, &info, current, func(e subsocial.EraIndex, staked uint256.Int) (bool, error) {
				reward, err := s.backerReward(id, e, &staked)
				if err != nil {
					if errors.Is(err, reverts.ErrEraNotFound) {
						return true, nil
					}
					return false, err
				}
				if _, overflow := entry.Amount.AddOverflow(&entry.Amount, &reward); overflow {
					return false, reverts.ErrArithmeticOverflow
				}
				return true, nil
			})
			if err != nil {
				return nil, err
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

// WithdrawableAmountsFromInactiveCreators lists the stakes of the backer on unregistered creators
// that WithdrawFromInactiveCreator would release now.
func (s *Staker) WithdrawableAmountsFromInactiveCreators(who subsocial.AccountID) ([]CreatorAmount, error) {
	ids, err := s.backerService.Creators(who)
	if err != nil {
		return nil, err
	}
	var result []CreatorAmount
	for _, id := range ids {
		info, ok, err := s.creatorService.GetCreator(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		unregisteredAt, inactive := info.Status.UnregisteredAt()
		if !inactive {
			continue
		}
		backerStakes, err := s.backerService.GetStakes(who, id)
		if err != nil {
			return nil, err
		}
		staked := backerStakes.Latest()
		if staked.IsZero() {
			continue
		}
		pending := backerStakes.Clone()
		if e, _, ok := pending.Claim(); ok && e < unregisteredAt {
			continue
		}
		result = append(result, CreatorAmount{CreatorID: id, Amount: staked})
	}
	return result, nil
}

// AvailableClaimsByBacker counts, per creator, the eras the backer can claim rewards for.
func (s *Staker) AvailableClaimsByBacker(who subsocial.AccountID) ([]CreatorClaims, error) {
	current, err := s.eraService.CurrentEra()
	if err != nil {
		return nil, err
	}
	ids, err := s.backerService.Creators(who)
	if err != nil {
		return nil, err
	}
	var result []CreatorClaims
	for _, id := range ids {
		info, ok, err := s.creatorService.GetCreator(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		backerStakes, err := s.backerService.GetStakes(who, id)
		if err != nil {
			return nil, err
		}
		var count uint32
		if err := pendingClaims(&backerStakes, &info, current, func(subsocial.EraIndex, uint256.Int) (bool, error) {
			count++
			return true, nil
		}); err != nil {
			return nil, err
		}
		if count > 0 {
			result = append(result, CreatorClaims{CreatorID: id, Eras: count})
		}
	}
	return result, nil
}

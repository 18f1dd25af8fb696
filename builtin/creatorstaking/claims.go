// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"strconv"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/creator"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/era"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/stakes"
	"github.com/dappforce/subsocial-go/subsocial"
)

// ClaimBackerReward pays the backer's reward for the oldest unclaimed era of its stake on a creator.
// With restake, the reward is staked again on the creator when it is still active and the stake
// history has room for it. Otherwise the reward stays liquid.
func (s *Staker) ClaimBackerReward(who subsocial.AccountID, id subsocial.SpaceID, restake bool) (uint256.Int, error) {
	logger.Debug("claiming backer reward", "backer", who.AbbrevString(), "creatorID", id, "restake", restake)
	reward, restaked, err := s.claimBackerReward(who, id, restake)
	if err != nil {
		logger.Info("claim backer reward failed", "creatorID", id, "error", err)
		return uint256.Int{}, err
	}
	metricClaims().AddWithLabel(1, map[string]string{"kind": "backer", "restaked": strconv.FormatBool(restaked)})
	metricRewardsPaid().AddWithLabel(meterAmount(&reward), map[string]string{"kind": "backer"})
	logger.Info("claimed backer reward", "creatorID", id, "amount", reward.Dec(), "restaked", restaked)
	return reward, nil
}

func (s *Staker) claimBackerReward(who subsocial.AccountID, id subsocial.SpaceID, restake bool) (uint256.Int, bool, error) {
	if err := s.ensureEnabled(); err != nil {
		return uint256.Int{}, false, err
	}
	backerStakes, err := s.backerService.GetStakes(who, id)
	if err != nil {
		return uint256.Int{}, false, err
	}
	claimEra, staked, ok := backerStakes.Claim()
	if !ok || staked.IsZero() {
		return uint256.Int{}, false, reverts.ErrNotStakedCreator
	}
	info, err := s.creatorService.GetExistingCreator(id)
	if err != nil {
		return uint256.Int{}, false, err
	}
	if !info.AcceptsRewardsFor(claimEra) {
		return uint256.Int{}, false, reverts.ErrInactiveCreator
	}
	current, err := s.eraService.CurrentEra()
	if err != nil {
		return uint256.Int{}, false, err
	}
	if claimEra >= current {
		return uint256.Int{}, false, reverts.ErrCannotClaimInFutureEra
	}

	reward, err := s.backerReward(id, claimEra, &staked)
	if err != nil {
		return uint256.Int{}, false, err
	}
	imbalance, err := s.currency.Withdraw(s.params.PotAccount, &reward)
	if err != nil {
		return uint256.Int{}, false, errors.Wrap(err, "failed to withdraw reward from pot")
	}
	if err := s.currency.ResolveCreating(who, imbalance); err != nil {
		return uint256.Int{}, false, errors.Wrap(err, "failed to pay reward")
	}

	restaked := false
	if restake && info.Status.IsActive() && !reward.IsZero() {
		if latest := backerStakes.Latest(); !latest.IsZero() {
			candidate := backerStakes.Clone()
			if _, err := candidate.Stake(current, &reward); err == nil && candidate.Len() < int(s.params.MaxEraStakeItems) {
				backerStakes = candidate
				restaked = true
			} else {
				logger.Debug("reward not restaked", "creatorID", id, "items", candidate.Len(), "error", err)
			}
		}
	}
	if restaked {
		if err := s.restake(who, id, &reward, current); err != nil {
			return uint256.Int{}, false, err
		}
	}

	if err := s.backerService.SetStakes(who, id, backerStakes); err != nil {
		return uint256.Int{}, false, err
	}
	s.emitter.Emit(BackerRewardsClaimed{Who: who, CreatorID: id, Era: claimEra, Amount: reward, Restaked: restaked})
	return reward, restaked, nil
}

// restake locks a just paid reward and adds it to the creator's ledger of the current era.
// The backer's stake history has been updated by the caller.
func (s *Staker) restake(who subsocial.AccountID, id subsocial.SpaceID, reward *uint256.Int, current subsocial.EraIndex) error {
	locks, err := s.backerService.GetLocks(who)
	if err != nil {
		return err
	}
	if err := locks.Lock(reward); err != nil {
		return err
	}
	if err := s.updateLocks(who, locks); err != nil {
		return err
	}

	stakeInfo, err := s.creatorService.GetStakeInfo(id, current)
	if err != nil {
		return err
	}
	var total uint256.Int
	if _, overflow := total.AddOverflow(&stakeInfo.Total, reward); overflow {
		return reverts.ErrArithmeticOverflow
	}
	stakeInfo.Total = total
	if err := s.creatorService.SetStakeInfo(id, current, stakeInfo); err != nil {
		return err
	}
	if err := s.eraService.Update(current, func(e *era.Info) error {
		return e.AddStake(reward)
	}); err != nil {
		return err
	}
	s.emitter.Emit(Staked{Who: who, CreatorID: id, Era: current, Amount: *reward})
	return nil
}

// ClaimCreatorReward pays the creator's reward of a past era to its stakeholder. Anyone may call it.
func (s *Staker) ClaimCreatorReward(id subsocial.SpaceID, e subsocial.EraIndex) (uint256.Int, error) {
	logger.Debug("claiming creator reward", "creatorID", id, "era", e)
	reward, err := s.claimCreatorReward(id, e)
	if err != nil {
		logger.Info("claim creator reward failed", "creatorID", id, "era", e, "error", err)
		return uint256.Int{}, err
	}
	metricClaims().AddWithLabel(1, map[string]string{"kind": "creator", "restaked": "false"})
	metricRewardsPaid().AddWithLabel(meterAmount(&reward), map[string]string{"kind": "creator"})
	logger.Info("claimed creator reward", "creatorID", id, "era", e, "amount", reward.Dec())
	return reward, nil
}

func (s *Staker) claimCreatorReward(id subsocial.SpaceID, e subsocial.EraIndex) (uint256.Int, error) {
	if err := s.ensureEnabled(); err != nil {
		return uint256.Int{}, err
	}
	info, err := s.creatorService.GetExistingCreator(id)
	if err != nil {
		return uint256.Int{}, err
	}
	current, err := s.eraService.CurrentEra()
	if err != nil {
		return uint256.Int{}, err
	}
	if e >= current {
		return uint256.Int{}, reverts.ErrCannotClaimInFutureEra
	}
	if !info.AcceptsRewardsFor(e) {
		return uint256.Int{}, reverts.ErrInactiveCreator
	}
	stakeInfo, err := s.creatorService.GetStakeInfo(id, e)
	if err != nil {
		return uint256.Int{}, err
	}
	if stakeInfo.Total.IsZero() {
		return uint256.Int{}, reverts.ErrNotStakedCreator
	}
	if stakeInfo.RewardsClaimed {
		return uint256.Int{}, reverts.ErrAlreadyClaimedInThisEra
	}
	eraInfo, ok, err := s.eraService.GetInfo(e)
	if err != nil {
		return uint256.Int{}, err
	}
	if !ok {
		return uint256.Int{}, reverts.ErrEraNotFound
	}

	reward, _ := combinedRewards(&stakeInfo, &eraInfo)
	imbalance, err := s.currency.Withdraw(s.params.PotAccount, &reward)
	if err != nil {
		return uint256.Int{}, errors.Wrap(err, "failed to withdraw reward from pot")
	}
	if err := s.currency.ResolveCreating(info.Stakeholder, imbalance); err != nil {
		return uint256.Int{}, errors.Wrap(err, "failed to pay reward")
	}

	stakeInfo.RewardsClaimed = true
	if err := s.creatorService.SetStakeInfo(id, e, stakeInfo); err != nil {
		return uint256.Int{}, err
	}
	s.emitter.Emit(CreatorRewardsClaimed{Who: info.Stakeholder, CreatorID: id, Era: e, Amount: reward})
	return reward, nil
}

// backerReward is the reward of staked on creator id in era e.
func (s *Staker) backerReward(id subsocial.SpaceID, e subsocial.EraIndex, staked *uint256.Int) (uint256.Int, error) {
	stakeInfo, err := s.creatorService.GetStakeInfo(id, e)
	if err != nil {
		return uint256.Int{}, err
	}
	eraInfo, ok, err := s.eraService.GetInfo(e)
	if err != nil {
		return uint256.Int{}, err
	}
	if !ok {
		return uint256.Int{}, reverts.ErrEraNotFound
	}
	_, backers := combinedRewards(&stakeInfo, &eraInfo)
	return rewards.Split(staked, &stakeInfo.Total, &backers), nil
}

// combinedRewards is the share of a creator and of all its backers in the rewards of an era,
// proportional to the creator's part of the total stake.
func combinedRewards(stakeInfo *creator.StakeInfo, eraInfo *era.Info) (creators, backers uint256.Int) {
	creators = rewards.Split(&stakeInfo.Total, &eraInfo.Staked, &eraInfo.Rewards.Creators)
	backers = rewards.Split(&stakeInfo.Total, &eraInfo.Staked, &eraInfo.Rewards.Backers)
	return creators, backers
}

// pendingClaims walks the unclaimed eras of a stake history, oldest first, until the current
// era or the unregistration of the creator. fn returning false stops the walk.
func pendingClaims(
	backerStakes *stakes.StakesInfo,
	info *creator.Info,
	current subsocial.EraIndex,
	fn func(e subsocial.EraIndex, staked uint256.Int) (bool, error),
) error {
	pending := backerStakes.Clone()
	for {
		e, staked, ok := pending.Claim()
		if !ok || e >= current || !info.AcceptsRewardsFor(e) {
			return nil
		}
		if staked.IsZero() {
			continue
		}
		next, err := fn(e, staked)
		if err != nil {
			return err
		}
		if !next {
			return nil
		}
	}
}

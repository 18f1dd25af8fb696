// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/backer"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/creator"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/era"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/stakes"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Stake locks up to amount of the backer's free balance on an active creator.
// The amount is capped to what is not locked yet. It returns the amount actually staked.
func (s *Staker) Stake(who subsocial.AccountID, id subsocial.SpaceID, amount *uint256.Int) (uint256.Int, error) {
	logger.Debug("staking", "backer", who.AbbrevString(), "creatorID", id, "amount", amount.Dec())
	staked, err := s.stake(who, id, amount)
	if err != nil {
		logger.Info("stake failed", "creatorID", id, "error", err)
		return uint256.Int{}, err
	}
	metricStakeOps().AddWithLabel(1, map[string]string{"op": "stake"})
	logger.Info("staked", "creatorID", id, "amount", staked.Dec())
	return staked, nil
}

func (s *Staker) stake(who subsocial.AccountID, id subsocial.SpaceID, amount *uint256.Int) (uint256.Int, error) {
	if err := s.ensureEnabled(); err != nil {
		return uint256.Int{}, err
	}
	if amount.IsZero() {
		return uint256.Int{}, reverts.ErrCannotStakeZero
	}
	if _, err := s.creatorService.GetActiveCreator(id); err != nil {
		return uint256.Int{}, err
	}

	locks, err := s.backerService.GetLocks(who)
	if err != nil {
		return uint256.Int{}, err
	}
	available, err := s.availableForStaking(who, &locks)
	if err != nil {
		return uint256.Int{}, err
	}
	value := *amount
	if available.Lt(&value) {
		value = available
	}
	if value.IsZero() {
		return uint256.Int{}, reverts.ErrInsufficientStakingAmount
	}

	current, err := s.eraService.CurrentEra()
	if err != nil {
		return uint256.Int{}, err
	}
	backerStakes, err := s.backerService.GetStakes(who, id)
	if err != nil {
		return uint256.Int{}, err
	}
	stakeInfo, err := s.creatorService.GetStakeInfo(id, current)
	if err != nil {
		return uint256.Int{}, err
	}
	if err := s.stakeToCreator(&backerStakes, &stakeInfo, &value, current); err != nil {
		return uint256.Int{}, err
	}
	if err := locks.Lock(&value); err != nil {
		return uint256.Int{}, err
	}
	if err := s.eraService.Update(current, func(e *era.Info) error {
		return e.AddStake(&value)
	}); err != nil {
		return uint256.Int{}, err
	}

	if err := s.updateLocks(who, locks); err != nil {
		return uint256.Int{}, err
	}
	if err := s.backerService.SetStakes(who, id, backerStakes); err != nil {
		return uint256.Int{}, err
	}
	if err := s.creatorService.SetStakeInfo(id, current, stakeInfo); err != nil {
		return uint256.Int{}, err
	}
	s.emitter.Emit(Staked{Who: who, CreatorID: id, Era: current, Amount: value})
	return value, nil
}

// Unstake starts unbonding amount of the backer's stake on an active creator.
// Leaving less than the minimum stake unstakes everything. It returns the amount unstaked.
func (s *Staker) Unstake(who subsocial.AccountID, id subsocial.SpaceID, amount *uint256.Int) (uint256.Int, error) {
	logger.Debug("unstaking", "backer", who.AbbrevString(), "creatorID", id, "amount", amount.Dec())
	unstaked, err := s.unstake(who, id, amount)
	if err != nil {
		logger.Info("unstake failed", "creatorID", id, "error", err)
		return uint256.Int{}, err
	}
	metricStakeOps().AddWithLabel(1, map[string]string{"op": "unstake"})
	logger.Info("unstaked", "creatorID", id, "amount", unstaked.Dec())
	return unstaked, nil
}

func (s *Staker) unstake(who subsocial.AccountID, id subsocial.SpaceID, amount *uint256.Int) (uint256.Int, error) {
	if err := s.ensureEnabled(); err != nil {
		return uint256.Int{}, err
	}
	if amount.IsZero() {
		return uint256.Int{}, reverts.ErrCannotUnstakeZero
	}
	if _, err := s.creatorService.GetActiveCreator(id); err != nil {
		return uint256.Int{}, err
	}

	current, err := s.eraService.CurrentEra()
	if err != nil {
		return uint256.Int{}, err
	}
	backerStakes, err := s.backerService.GetStakes(who, id)
	if err != nil {
		return uint256.Int{}, err
	}
	stakeInfo, err := s.creatorService.GetStakeInfo(id, current)
	if err != nil {
		return uint256.Int{}, err
	}
	value, err := s.applyStakeDecrease(&backerStakes, &stakeInfo, amount, current)
	if err != nil {
		return uint256.Int{}, err
	}

	locks, err := s.backerService.GetLocks(who)
	if err != nil {
		return uint256.Int{}, err
	}
	if err := locks.UnbondingInfo.Add(backer.UnbondingChunk{
		Amount:    value,
		UnlockEra: current + subsocial.EraIndex(s.params.UnbondingPeriodInEras),
	}); err != nil {
		return uint256.Int{}, err
	}
	if locks.UnbondingInfo.Len() > int(s.params.MaxUnbondingChunks) {
		return uint256.Int{}, reverts.ErrTooManyUnbondingChunks
	}
	if err := s.eraService.Update(current, func(e *era.Info) error {
		return e.SubStaked(&value)
	}); err != nil {
		return uint256.Int{}, err
	}

	if err := s.updateLocks(who, locks); err != nil {
		return uint256.Int{}, err
	}
	if err := s.backerService.SetStakes(who, id, backerStakes); err != nil {
		return uint256.Int{}, err
	}
	if err := s.creatorService.SetStakeInfo(id, current, stakeInfo); err != nil {
		return uint256.Int{}, err
	}
	s.emitter.Emit(Unstaked{Who: who, CreatorID: id, Era: current, Amount: value})
	return value, nil
}

// MoveStake moves up to amount of the backer's stake between two active creators without
// unbonding. Like Unstake, leaving less than the minimum stake on the source moves everything.
func (s *Staker) MoveStake(who subsocial.AccountID, from, to subsocial.SpaceID, amount *uint256.Int) (uint256.Int, error) {
	logger.Debug("moving stake", "backer", who.AbbrevString(), "from", from, "to", to, "amount", amount.Dec())
	moved, err := s.moveStake(who, from, to, amount)
	if err != nil {
		logger.Info("move stake failed", "from", from, "to", to, "error", err)
		return uint256.Int{}, err
	}
	metricStakeOps().AddWithLabel(1, map[string]string{"op": "move"})
	logger.Info("moved stake", "from", from, "to", to, "amount", moved.Dec())
	return moved, nil
}

func (s *Staker) moveStake(who subsocial.AccountID, from, to subsocial.SpaceID, amount *uint256.Int) (uint256.Int, error) {
	if err := s.ensureEnabled(); err != nil {
		return uint256.Int{}, err
	}
	if from == to {
		return uint256.Int{}, reverts.ErrCannotMoveStakeToSameCreator
	}
	if amount.IsZero() {
		return uint256.Int{}, reverts.ErrCannotMoveZeroStake
	}
	if _, err := s.creatorService.GetActiveCreator(from); err != nil {
		return uint256.Int{}, err
	}
	if _, err := s.creatorService.GetActiveCreator(to); err != nil {
		return uint256.Int{}, err
	}

	current, err := s.eraService.CurrentEra()
	if err != nil {
		return uint256.Int{}, err
	}

	fromStakes, err := s.backerService.GetStakes(who, from)
	if err != nil {
		return uint256.Int{}, err
	}
	fromInfo, err := s.creatorService.GetStakeInfo(from, current)
	if err != nil {
		return uint256.Int{}, err
	}
	value, err := s.applyStakeDecrease(&fromStakes, &fromInfo, amount, current)
	if err != nil {
		return uint256.Int{}, err
	}

	toStakes, err := s.backerService.GetStakes(who, to)
	if err != nil {
		return uint256.Int{}, err
	}
	toInfo, err := s.creatorService.GetStakeInfo(to, current)
	if err != nil {
		return uint256.Int{}, err
	}
	if err := s.stakeToCreator(&toStakes, &toInfo, &value, current); err != nil {
		return uint256.Int{}, err
	}

	if err := s.backerService.SetStakes(who, from, fromStakes); err != nil {
		return uint256.Int{}, err
	}
	if err := s.backerService.SetStakes(who, to, toStakes); err != nil {
		return uint256.Int{}, err
	}
	if err := s.creatorService.SetStakeInfo(from, current, fromInfo); err != nil {
		return uint256.Int{}, err
	}
	if err := s.creatorService.SetStakeInfo(to, current, toInfo); err != nil {
		return uint256.Int{}, err
	}
	s.emitter.Emit(StakeMoved{Who: who, From: from, To: to, Amount: value})
	return value, nil
}

// WithdrawUnstaked releases every unbonding chunk whose unlock era has been reached.
func (s *Staker) WithdrawUnstaked(who subsocial.AccountID) (uint256.Int, error) {
	logger.Debug("withdrawing unstaked", "backer", who.AbbrevString())
	withdrawn, err := s.withdrawUnstaked(who)
	if err != nil {
		logger.Info("withdraw unstaked failed", "backer", who.AbbrevString(), "error", err)
		return uint256.Int{}, err
	}
	metricStakeOps().AddWithLabel(1, map[string]string{"op": "withdraw"})
	logger.Info("withdrew unstaked", "backer", who.AbbrevString(), "amount", withdrawn.Dec())
	return withdrawn, nil
}

func (s *Staker) withdrawUnstaked(who subsocial.AccountID) (uint256.Int, error) {
	if err := s.ensureEnabled(); err != nil {
		return uint256.Int{}, err
	}
	current, err := s.eraService.CurrentEra()
	if err != nil {
		return uint256.Int{}, err
	}
	locks, err := s.backerService.GetLocks(who)
	if err != nil {
		return uint256.Int{}, err
	}
	unlocked, remaining := locks.UnbondingInfo.Partition(current)
	sum := unlocked.Sum()
	if sum.IsZero() {
		return uint256.Int{}, reverts.ErrNothingToWithdraw
	}
	if err := locks.Unlock(&sum); err != nil {
		return uint256.Int{}, err
	}
	locks.UnbondingInfo = remaining
	if err := s.eraService.Update(current, func(e *era.Info) error {
		return e.SubLocked(&sum)
	}); err != nil {
		return uint256.Int{}, err
	}
	if err := s.updateLocks(who, locks); err != nil {
		return uint256.Int{}, err
	}
	s.emitter.Emit(StakeWithdrawn{Who: who, Amount: sum})
	return sum, nil
}

// WithdrawFromInactiveCreator releases, without unbonding, the whole stake of a backer on an
// unregistered creator. Every era the creator was active in must have been claimed first.
func (s *Staker) WithdrawFromInactiveCreator(who subsocial.AccountID, id subsocial.SpaceID) (uint256.Int, error) {
	logger.Debug("withdrawing from inactive creator", "backer", who.AbbrevString(), "creatorID", id)
	withdrawn, err := s.withdrawFromInactiveCreator(who, id)
	if err != nil {
		logger.Info("withdraw from inactive creator failed", "creatorID", id, "error", err)
		return uint256.Int{}, err
	}
	metricStakeOps().AddWithLabel(1, map[string]string{"op": "withdraw_inactive"})
	logger.Info("withdrew from inactive creator", "creatorID", id, "amount", withdrawn.Dec())
	return withdrawn, nil
}

func (s *Staker) withdrawFromInactiveCreator(who subsocial.AccountID, id subsocial.SpaceID) (uint256.Int, error) {
	if err := s.ensureEnabled(); err != nil {
		return uint256.Int{}, err
	}
	info, err := s.creatorService.GetExistingCreator(id)
	if err != nil {
		return uint256.Int{}, err
	}
	unregisteredAt, inactive := info.Status.UnregisteredAt()
	if !inactive {
		return uint256.Int{}, reverts.ErrCreatorIsActive
	}

	current, err := s.eraService.CurrentEra()
	if err != nil {
		return uint256.Int{}, err
	}
	backerStakes, err := s.backerService.GetStakes(who, id)
	if err != nil {
		return uint256.Int{}, err
	}
	staked := backerStakes.Latest()
	if staked.IsZero() {
		return uint256.Int{}, reverts.ErrNotStakedCreator
	}
	pending := backerStakes.Clone()
	if claimEra, _, ok := pending.Claim(); ok && claimEra < unregisteredAt {
		return uint256.Int{}, reverts.ErrUnclaimedRewardsRemaining
	}

	locks, err := s.backerService.GetLocks(who)
	if err != nil {
		return uint256.Int{}, err
	}
	if err := locks.Unlock(&staked); err != nil {
		return uint256.Int{}, err
	}
	if err := s.eraService.Update(current, func(e *era.Info) error {
		return e.SubLocked(&staked)
	}); err != nil {
		return uint256.Int{}, err
	}
	if err := s.updateLocks(who, locks); err != nil {
		return uint256.Int{}, err
	}
	if err := s.backerService.SetStakes(who, id, stakes.StakesInfo{}); err != nil {
		return uint256.Int{}, err
	}
	s.emitter.Emit(WithdrawnFromInactiveCreator{Who: who, CreatorID: id, Amount: staked})
	return staked, nil
}

// stakeToCreator adds value to the backer's history and the creator's ledger of era.
func (s *Staker) stakeToCreator(
	backerStakes *stakes.StakesInfo,
	stakeInfo *creator.StakeInfo,
	value *uint256.Int,
	current subsocial.EraIndex,
) error {
	previous := backerStakes.Latest()
	if err := stakeInfo.AddStake(&previous, value, s.params.MaxNumberOfBackersPerCreator); err != nil {
		return err
	}
	if _, err := backerStakes.Stake(current, value); err != nil {
		return err
	}
	if backerStakes.Len() >= int(s.params.MaxEraStakeItems) {
		return reverts.ErrTooManyEraStakeValues
	}
	if latest := backerStakes.Latest(); latest.Lt(&s.params.MinimumStake) {
		return reverts.ErrInsufficientStakingAmount
	}
	return nil
}

// applyStakeDecrease removes up to desired from the backer's history and the creator's ledger.
// When less than the minimum stake would remain, the whole stake is removed.
func (s *Staker) applyStakeDecrease(
	backerStakes *stakes.StakesInfo,
	stakeInfo *creator.StakeInfo,
	desired *uint256.Int,
	current subsocial.EraIndex,
) (uint256.Int, error) {
	staked := backerStakes.Latest()
	if staked.IsZero() {
		return uint256.Int{}, reverts.ErrNotStakedCreator
	}

	var remaining uint256.Int
	if staked.Gt(desired) {
		remaining.Sub(&staked, desired)
	}
	value := *desired
	left := remaining.IsZero() || remaining.Lt(&s.params.MinimumStake)
	if left {
		value = staked
	}

	if err := stakeInfo.SubStake(&value, left); err != nil {
		return uint256.Int{}, err
	}
	if _, err := backerStakes.Unstake(current, &value); err != nil {
		return uint256.Int{}, err
	}
	if backerStakes.Len() > int(s.params.MaxEraStakeItems) {
		return uint256.Int{}, reverts.ErrTooManyEraStakeValues
	}
	return value, nil
}

// availableForStaking is the free balance not yet under the staking lock.
func (s *Staker) availableForStaking(who subsocial.AccountID, locks *backer.Locks) (uint256.Int, error) {
	free, err := s.currency.FreeBalance(who)
	if err != nil {
		return uint256.Int{}, err
	}
	var available uint256.Int
	if free.Gt(&locks.TotalLocked) {
		available.Sub(&free, &locks.TotalLocked)
	}
	return available, nil
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package creatorstaking implements the era based staking of backers on content creators:
// registration of creators, staking and unbonding, reward accrual per era and claiming.
package creatorstaking

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/balances"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/backer"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/creator"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/era"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/stakes"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/log"
	"github.com/dappforce/subsocial-go/subsocial"
)

var logger = log.WithContext("pkg", "creatorstaking")

// LockID is the balance lock holding the staked and unbonding funds of a backer.
var LockID = balances.NewLockID("crtstake")

// Currency is the part of the balances module the engine depends on.
type Currency interface {
	FreeBalance(who subsocial.AccountID) (uint256.Int, error)
	Reserve(who subsocial.AccountID, amount *uint256.Int) error
	Unreserve(who subsocial.AccountID, amount *uint256.Int) (uint256.Int, error)
	SetLock(id balances.LockID, who subsocial.AccountID, amount *uint256.Int) error
	RemoveLock(id balances.LockID, who subsocial.AccountID) error
	Withdraw(who subsocial.AccountID, amount *uint256.Int) (balances.Imbalance, error)
	ResolveCreating(who subsocial.AccountID, imbalance balances.Imbalance) error
	Issue(amount *uint256.Int) (balances.Imbalance, error)
}

// SpacesProvider resolves the owner of a space.
type SpacesProvider interface {
	SpaceOwner(id subsocial.SpaceID) (subsocial.AccountID, error)
}

// Staker implements the creator staking calls, block hooks and queries.
type Staker struct {
	params   Params
	currency Currency
	spaces   SpacesProvider
	emitter  Emitter

	eraService     *era.Service
	creatorService *creator.Service
	backerService  *backer.Service

	palletDisabled *storage.Value[bool]
	distribution   *storage.Value[rewards.DistributionConfig]
	rewardPerBlock *storage.Value[uint256.Int]
}

// New create a new instance. A nil emitter discards the events.
func New(sctx *storage.Context, params Params, currency Currency, spaces SpacesProvider, emitter Emitter) *Staker {
	if emitter == nil {
		emitter = noopEmitter{}
	}
	return &Staker{
		params:   params,
		currency: currency,
		spaces:   spaces,
		emitter:  emitter,

		eraService:     era.New(sctx),
		creatorService: creator.New(sctx),
		backerService:  backer.New(sctx),

		palletDisabled: storage.NewValue[bool](sctx, "PalletDisabled"),
		distribution:   storage.NewValue[rewards.DistributionConfig](sctx, "RewardDistributionConfig"),
		rewardPerBlock: storage.NewValue[uint256.Int](sctx, "RewardPerBlock"),
	}
}

// InitGenesis writes the initial reward settings from the params.
func (s *Staker) InitGenesis() error {
	if !s.params.Distribution.IsSumEqualToOne() {
		return reverts.ErrInvalidSumOfRewardDistribution
	}
	if err := s.distribution.Set(s.params.Distribution); err != nil {
		return errors.Wrap(err, "failed to set reward distribution")
	}
	if err := s.rewardPerBlock.Set(s.params.RewardPerBlock); err != nil {
		return errors.Wrap(err, "failed to set reward per block")
	}
	return nil
}

func (s *Staker) Params() Params {
	return s.params
}

//
// Getters - no state change
//

func (s *Staker) CurrentEra() (subsocial.EraIndex, error) {
	return s.eraService.CurrentEra()
}

func (s *Staker) NextEraStartingBlock() (subsocial.BlockNumber, error) {
	return s.eraService.NextEraStartingBlock()
}

func (s *Staker) ForceEra() (era.Forcing, error) {
	return s.eraService.ForceEra()
}

func (s *Staker) PalletDisabled() (bool, error) {
	return s.palletDisabled.Get()
}

func (s *Staker) RewardPerBlock() (uint256.Int, error) {
	return s.rewardPerBlock.Get()
}

func (s *Staker) RewardDistributionConfig() (rewards.DistributionConfig, error) {
	return s.distribution.Get()
}

func (s *Staker) BlockRewardAccumulator() (rewards.RewardInfo, error) {
	return s.eraService.Accumulator()
}

// EraInfo returns the ledger of an era, ok is false if the era never started.
func (s *Staker) EraInfo(e subsocial.EraIndex) (era.Info, bool, error) {
	return s.eraService.GetInfo(e)
}

func (s *Staker) Creator(id subsocial.SpaceID) (creator.Info, bool, error) {
	return s.creatorService.GetCreator(id)
}

func (s *Staker) CreatorStakeInfo(id subsocial.SpaceID, e subsocial.EraIndex) (creator.StakeInfo, error) {
	return s.creatorService.GetStakeInfo(id, e)
}

func (s *Staker) BackerLocks(who subsocial.AccountID) (backer.Locks, error) {
	return s.backerService.GetLocks(who)
}

func (s *Staker) BackerStakes(who subsocial.AccountID, id subsocial.SpaceID) (stakes.StakesInfo, error) {
	return s.backerService.GetStakes(who, id)
}

//
// Setters - state change
//

// RegisterCreator registers the space of who as a creator and reserves the registration deposit.
func (s *Staker) RegisterCreator(who subsocial.AccountID, id subsocial.SpaceID) error {
	logger.Debug("registering creator", "who", who.AbbrevString(), "creatorID", id)
	if err := s.registerCreator(&who, id); err != nil {
		logger.Info("register creator failed", "creatorID", id, "error", err)
		return err
	}
	logger.Info("registered creator", "creatorID", id)
	return nil
}

// ForceRegisterCreator registers a space as a creator without deposit.
func (s *Staker) ForceRegisterCreator(id subsocial.SpaceID) error {
	logger.Debug("force registering creator", "creatorID", id)
	if err := s.registerCreator(nil, id); err != nil {
		logger.Info("force register creator failed", "creatorID", id, "error", err)
		return err
	}
	logger.Info("registered creator", "creatorID", id, "forced", true)
	return nil
}

func (s *Staker) registerCreator(who *subsocial.AccountID, id subsocial.SpaceID) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	_, exists, err := s.creatorService.GetCreator(id)
	if err != nil {
		return err
	}
	if exists {
		return reverts.ErrCreatorAlreadyRegistered
	}
	owner, err := s.spaces.SpaceOwner(id)
	if err != nil {
		return errors.Wrap(err, "failed to get space owner")
	}
	if who != nil {
		if *who != owner {
			return reverts.ErrNotSpaceOwner
		}
		if err := s.currency.Reserve(owner, &s.params.CreatorRegistrationDeposit); err != nil {
			return errors.Wrap(err, "failed to reserve registration deposit")
		}
	}
	if err := s.creatorService.SetCreator(id, creator.Info{Stakeholder: owner, Status: creator.Active()}); err != nil {
		return err
	}
	s.emitter.Emit(CreatorRegistered{Who: owner, CreatorID: id})
	return nil
}

// UnregisterCreator is called by the stakeholder of an active creator.
func (s *Staker) UnregisterCreator(who subsocial.AccountID, id subsocial.SpaceID) error {
	logger.Debug("unregistering creator", "who", who.AbbrevString(), "creatorID", id)
	if err := s.unregisterCreator(&who, id); err != nil {
		logger.Info("unregister creator failed", "creatorID", id, "error", err)
		return err
	}
	logger.Info("unregistered creator", "creatorID", id)
	return nil
}

// ForceUnregisterCreator unregisters any active creator.
func (s *Staker) ForceUnregisterCreator(id subsocial.SpaceID) error {
	logger.Debug("force unregistering creator", "creatorID", id)
	if err := s.unregisterCreator(nil, id); err != nil {
		logger.Info("force unregister creator failed", "creatorID", id, "error", err)
		return err
	}
	logger.Info("unregistered creator", "creatorID", id, "forced", true)
	return nil
}

// unregisterCreator removes the creator's stake from the era total, returns the deposit
// and marks the creator inactive from the current era on. Backer stakes stay until withdrawn.
func (s *Staker) unregisterCreator(who *subsocial.AccountID, id subsocial.SpaceID) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	info, err := s.creatorService.GetActiveCreator(id)
	if err != nil {
		return err
	}
	if who != nil && *who != info.Stakeholder {
		return reverts.ErrNotOwner
	}

	current, err := s.eraService.CurrentEra()
	if err != nil {
		return err
	}
	stakeInfo, err := s.creatorService.GetStakeInfo(id, current)
	if err != nil {
		return err
	}
	if err := s.eraService.Update(current, func(e *era.Info) error {
		return e.SubStaked(&stakeInfo.Total)
	}); err != nil {
		return err
	}
	if _, err := s.currency.Unreserve(info.Stakeholder, &s.params.CreatorRegistrationDeposit); err != nil {
		return errors.Wrap(err, "failed to unreserve registration deposit")
	}

	info.Status = creator.Inactive(current)
	if err := s.creatorService.SetCreator(id, info); err != nil {
		return err
	}
	s.emitter.Emit(CreatorUnregistered{Who: info.Stakeholder, CreatorID: id})
	return nil
}

// SetMaintenanceMode disables or enables the engine. Toggling to the current mode fails.
func (s *Staker) SetMaintenanceMode(enabled bool) error {
	disabled, err := s.palletDisabled.Get()
	if err != nil {
		return err
	}
	if disabled == enabled {
		return reverts.ErrNoMaintenanceModeChange
	}
	if err := s.palletDisabled.Set(enabled); err != nil {
		return err
	}
	logger.Info("maintenance mode changed", "enabled", enabled)
	s.emitter.Emit(MaintenanceModeSet{Enabled: enabled})
	return nil
}

// ForceNewEra makes the next block start a new era.
func (s *Staker) ForceNewEra() error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	return s.eraService.SetForceEra(era.ForceNew)
}

func (s *Staker) SetRewardDistributionConfig(cfg rewards.DistributionConfig) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	if !cfg.IsSumEqualToOne() {
		return reverts.ErrInvalidSumOfRewardDistribution
	}
	if err := s.distribution.Set(cfg); err != nil {
		return err
	}
	s.emitter.Emit(RewardDistributionConfigChanged{Config: cfg})
	return nil
}

func (s *Staker) SetPerBlockReward(amount *uint256.Int) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	if err := s.rewardPerBlock.Set(*amount); err != nil {
		return err
	}
	s.emitter.Emit(PerBlockRewardChanged{Amount: *amount})
	return nil
}

func (s *Staker) ensureEnabled() error {
	disabled, err := s.palletDisabled.Get()
	if err != nil {
		return err
	}
	if disabled {
		return reverts.ErrPalletIsDisabled
	}
	return nil
}

// updateLocks applies the backer's total locked amount to the currency lock and stores the locks.
func (s *Staker) updateLocks(who subsocial.AccountID, locks backer.Locks) error {
	if locks.IsEmpty() {
		if err := s.currency.RemoveLock(LockID, who); err != nil {
			return errors.Wrap(err, "failed to remove lock")
		}
	} else if err := s.currency.SetLock(LockID, who, &locks.TotalLocked); err != nil {
		return errors.Wrap(err, "failed to set lock")
	}
	return s.backerService.SetLocks(who, locks)
}

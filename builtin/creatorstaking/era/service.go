// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package era

import (
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Service manages the era scalars, the block reward accumulator and the per era ledger.
type Service struct {
	currentEra           *storage.Value[subsocial.EraIndex]
	nextEraStartingBlock *storage.Value[subsocial.BlockNumber]
	forceEra             *storage.Value[Forcing]
	accumulator          *storage.Value[rewards.RewardInfo]
	generalEraInfo       *storage.Map[subsocial.EraIndex, Info]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		currentEra:           storage.NewValue[subsocial.EraIndex](sctx, "CurrentEra"),
		nextEraStartingBlock: storage.NewValue[subsocial.BlockNumber](sctx, "NextEraStartingBlock"),
		forceEra:             storage.NewValue[Forcing](sctx, "ForceEra"),
		accumulator:          storage.NewValue[rewards.RewardInfo](sctx, "BlockRewardAccumulator"),
		generalEraInfo:       storage.NewMap[subsocial.EraIndex, Info](sctx, "GeneralEraInfo", subsocial.DecodeEraIndex),
	}
}

func (s *Service) CurrentEra() (subsocial.EraIndex, error) {
	return s.currentEra.Get()
}

func (s *Service) NextEraStartingBlock() (subsocial.BlockNumber, error) {
	return s.nextEraStartingBlock.Get()
}

func (s *Service) ForceEra() (Forcing, error) {
	return s.forceEra.Get()
}

func (s *Service) SetForceEra(f Forcing) error {
	return s.forceEra.Set(f)
}

// Accumulator returns the rewards collected for the running era.
func (s *Service) Accumulator() (rewards.RewardInfo, error) {
	return s.accumulator.Get()
}

// Accumulate adds a block reward to the running era's pot.
func (s *Service) Accumulate(reward *rewards.RewardInfo) error {
	acc, err := s.accumulator.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get reward accumulator")
	}
	if err := acc.Add(reward); err != nil {
		return err
	}
	return s.accumulator.Set(acc)
}

// GetInfo returns the ledger of era. ok is false if the era was never recorded.
func (s *Service) GetInfo(era subsocial.EraIndex) (info Info, ok bool, err error) {
	info, ok, err = s.generalEraInfo.TryGet(era)
	if err != nil {
		return Info{}, false, errors.Wrap(err, "failed to get era info")
	}
	return info, ok, nil
}

func (s *Service) SetInfo(era subsocial.EraIndex, info Info) error {
	if err := s.generalEraInfo.Set(era, info); err != nil {
		return errors.Wrap(err, "failed to set era info")
	}
	return nil
}

// Update applies fn to the ledger of era, starting from a zero ledger if absent.
func (s *Service) Update(era subsocial.EraIndex, fn func(*Info) error) error {
	info, _, err := s.GetInfo(era)
	if err != nil {
		return err
	}
	if err := fn(&info); err != nil {
		return err
	}
	return s.SetInfo(era, info)
}

// Advance moves to the next era, starting at block now, and finalizes the
// rewards of the era that ends. It returns the new era.
func (s *Service) Advance(now, blockPerEra subsocial.BlockNumber) (subsocial.EraIndex, error) {
	previous, err := s.currentEra.Get()
	if err != nil {
		return 0, err
	}
	next := previous + 1
	if err := s.currentEra.Set(next); err != nil {
		return 0, err
	}
	if err := s.nextEraStartingBlock.Set(now + blockPerEra); err != nil {
		return 0, err
	}

	reward, err := s.accumulator.Get()
	if err != nil {
		return 0, err
	}
	s.accumulator.Kill()

	if err := s.snapshot(previous, reward); err != nil {
		return 0, err
	}
	return next, nil
}

// snapshot writes the rewards of the ending era and seeds the next era with its totals.
func (s *Service) snapshot(era subsocial.EraIndex, reward rewards.RewardInfo) error {
	info, _, err := s.GetInfo(era)
	if err != nil {
		return err
	}
	if err := s.SetInfo(era+1, Info{Staked: info.Staked, Locked: info.Locked}); err != nil {
		return err
	}
	info.Rewards = reward
	return s.SetInfo(era, info)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/era"
	"github.com/dappforce/subsocial-go/subsocial"
)

// OnInitialize runs at the start of every block and starts a new era when the era's last block
// has passed, when a new era was forced, or on the very first block.
// It reports whether a new era started.
func (s *Staker) OnInitialize(now subsocial.BlockNumber) (bool, error) {
	disabled, err := s.palletDisabled.Get()
	if err != nil {
		return false, err
	}
	if disabled {
		return false, nil
	}

	previous, err := s.eraService.CurrentEra()
	if err != nil {
		return false, err
	}
	nextStart, err := s.eraService.NextEraStartingBlock()
	if err != nil {
		return false, err
	}
	force, err := s.eraService.ForceEra()
	if err != nil {
		return false, err
	}
	if now < nextStart && force != era.ForceNew && previous != 0 {
		return false, nil
	}

	next, err := s.eraService.Advance(now, s.params.BlockPerEra)
	if err != nil {
		return false, errors.Wrap(err, "failed to advance era")
	}
	rotated, err := s.creatorService.Rotate(previous)
	if err != nil {
		return false, errors.Wrap(err, "failed to rotate creators")
	}
	if force == era.ForceNew {
		if err := s.eraService.SetForceEra(era.NotForcing); err != nil {
			return false, err
		}
	}

	logger.Info("🏠new creator staking era", "era", next, "block", now, "creators", rotated, "forced", force == era.ForceNew)
	metricCurrentEra().Set(int64(next))
	metricRotatedCount().Add(int64(rotated))
	s.emitter.Emit(NewCreatorStakingEra{Era: next})
	return true, nil
}

// OnFinalize runs at the end of every block. It issues the block reward: the creators and
// backers parts go to the rewards pot of the running era, the rest to the treasury.
func (s *Staker) OnFinalize(now subsocial.BlockNumber) error {
	disabled, err := s.palletDisabled.Get()
	if err != nil {
		return err
	}
	if disabled {
		return nil
	}
	reward, err := s.rewardPerBlock.Get()
	if err != nil {
		return err
	}
	if reward.IsZero() {
		return nil
	}
	distribution, err := s.distribution.Get()
	if err != nil {
		return err
	}

	info, _ := distribution.Split(&reward)
	staking := info.Total()
	issued, err := s.currency.Issue(&reward)
	if err != nil {
		return errors.Wrap(err, "failed to issue block reward")
	}
	toPot, toTreasury := issued.Split(&staking)
	if err := s.currency.ResolveCreating(s.params.PotAccount, toPot); err != nil {
		return errors.Wrap(err, "failed to fund rewards pot")
	}
	if err := s.currency.ResolveCreating(s.params.TreasuryAccount, toTreasury); err != nil {
		return errors.Wrap(err, "failed to fund treasury")
	}
	if err := s.eraService.Accumulate(&info); err != nil {
		return err
	}
	logger.Trace("block reward issued", "block", now, "amount", reward.Dec())
	return nil
}

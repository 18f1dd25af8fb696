// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creator

import (
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Service manages the creator registry and the per era creator ledgers.
type Service struct {
	registered *storage.Map[subsocial.SpaceID, Info]
	stakeInfo  *storage.DoubleMap[subsocial.SpaceID, subsocial.EraIndex, StakeInfo]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		registered: storage.NewMap[subsocial.SpaceID, Info](sctx, "RegisteredCreators", subsocial.DecodeSpaceID),
		stakeInfo: storage.NewDoubleMap[subsocial.SpaceID, subsocial.EraIndex, StakeInfo](
			sctx, "CreatorStakeInfoByEra", subsocial.DecodeEraIndex),
	}
}

// GetCreator returns the registered creator. ok is false if it was never registered.
func (s *Service) GetCreator(id subsocial.SpaceID) (info Info, ok bool, err error) {
	info, ok, err = s.registered.TryGet(id)
	if err != nil {
		return Info{}, false, errors.Wrap(err, "failed to get creator")
	}
	return info, ok, nil
}

// GetExistingCreator is GetCreator failing with ErrCreatorNotFound.
func (s *Service) GetExistingCreator(id subsocial.SpaceID) (Info, error) {
	info, ok, err := s.GetCreator(id)
	if err != nil {
		return Info{}, err
	}
	if !ok {
		return Info{}, reverts.ErrCreatorNotFound
	}
	return info, nil
}

// GetActiveCreator is GetExistingCreator failing with ErrInactiveCreator once unregistered.
func (s *Service) GetActiveCreator(id subsocial.SpaceID) (Info, error) {
	info, err := s.GetExistingCreator(id)
	if err != nil {
		return Info{}, err
	}
	if !info.Status.IsActive() {
		return Info{}, reverts.ErrInactiveCreator
	}
	return info, nil
}

func (s *Service) SetCreator(id subsocial.SpaceID, info Info) error {
	if err := s.registered.Set(id, info); err != nil {
		return errors.Wrap(err, "failed to set creator")
	}
	return nil
}

// GetStakeInfo returns the ledger of creator id in era, zero if absent.
func (s *Service) GetStakeInfo(id subsocial.SpaceID, era subsocial.EraIndex) (StakeInfo, error) {
	info, err := s.stakeInfo.Get(id, era)
	if err != nil {
		return StakeInfo{}, errors.Wrap(err, "failed to get creator stake info")
	}
	return info, nil
}

func (s *Service) SetStakeInfo(id subsocial.SpaceID, era subsocial.EraIndex, info StakeInfo) error {
	if err := s.stakeInfo.Set(id, era, info); err != nil {
		return errors.Wrap(err, "failed to set creator stake info")
	}
	return nil
}

// Rotate copies the era ledger of every active creator into the next era, with
// rewards not yet claimed. Inactive creators stop propagating.
// It returns the number of ledgers carried forward.
func (s *Service) Rotate(era subsocial.EraIndex) (int, error) {
	var active []subsocial.SpaceID
	err := s.registered.Iterate(func(id subsocial.SpaceID, info Info) (bool, error) {
		if info.Status.IsActive() {
			active = append(active, id)
		}
		return true, nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to iterate creators")
	}

	var rotated int
	for _, id := range active {
		info, ok, err := s.stakeInfo.TryGet(id, era)
		if err != nil {
			return 0, errors.Wrap(err, "failed to get creator stake info")
		}
		if !ok {
			continue
		}
		info.RewardsClaimed = false
		if err := s.SetStakeInfo(id, era+1, info); err != nil {
			return 0, err
		}
		rotated++
	}
	return rotated, nil
}

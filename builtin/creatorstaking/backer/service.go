// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package backer

import (
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/stakes"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Service manages backer locks and the stake history of every (backer, creator) pair.
// Empty records are removed from storage.
type Service struct {
	locks  *storage.Map[subsocial.AccountID, Locks]
	stakes *storage.DoubleMap[subsocial.AccountID, subsocial.SpaceID, stakes.StakesInfo]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		locks: storage.NewMap[subsocial.AccountID, Locks](sctx, "BackerLocksByAccount", subsocial.DecodeAccountID),
		stakes: storage.NewDoubleMap[subsocial.AccountID, subsocial.SpaceID, stakes.StakesInfo](
			sctx, "BackerStakesByCreator", subsocial.DecodeSpaceID),
	}
}

func (s *Service) GetLocks(backer subsocial.AccountID) (Locks, error) {
	l, err := s.locks.Get(backer)
	if err != nil {
		return Locks{}, errors.Wrap(err, "failed to get backer locks")
	}
	return l, nil
}

func (s *Service) SetLocks(backer subsocial.AccountID, l Locks) error {
	if l.IsEmpty() {
		s.locks.Remove(backer)
		return nil
	}
	if err := s.locks.Set(backer, l); err != nil {
		return errors.Wrap(err, "failed to set backer locks")
	}
	return nil
}

func (s *Service) GetStakes(backer subsocial.AccountID, creator subsocial.SpaceID) (stakes.StakesInfo, error) {
	st, err := s.stakes.Get(backer, creator)
	if err != nil {
		return stakes.StakesInfo{}, errors.Wrap(err, "failed to get backer stakes")
	}
	return st, nil
}

func (s *Service) SetStakes(backer subsocial.AccountID, creator subsocial.SpaceID, st stakes.StakesInfo) error {
	if st.IsEmpty() {
		s.stakes.Remove(backer, creator)
		return nil
	}
	if err := s.stakes.Set(backer, creator, st); err != nil {
		return errors.Wrap(err, "failed to set backer stakes")
	}
	return nil
}

// Creators returns every creator the backer holds a stake history on, in id order.
func (s *Service) Creators(backer subsocial.AccountID) ([]subsocial.SpaceID, error) {
	var ids []subsocial.SpaceID
	err := s.stakes.IteratePrefix(backer, func(id subsocial.SpaceID, _ stakes.StakesInfo) (bool, error) {
		ids = append(ids, id)
		return true, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to iterate backer stakes")
	}
	return ids, nil
}

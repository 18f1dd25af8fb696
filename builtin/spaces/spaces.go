// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package spaces keeps the owner of every space. The rest of the space model lives elsewhere.
package spaces

import (
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/subsocial"
)

// FirstSpaceID is the id of the first space created by a user. Lower ids are reserved.
const FirstSpaceID subsocial.SpaceID = 1001

var (
	ErrSpaceNotFound      = errors.New("space not found")
	ErrSpaceAlreadyExists = errors.New("space already exists")
)

type Spaces struct {
	owners      *storage.Map[subsocial.SpaceID, subsocial.AccountID]
	nextSpaceID *storage.Value[subsocial.SpaceID]
}

func New(sctx *storage.Context) *Spaces {
	return &Spaces{
		owners:      storage.NewMap[subsocial.SpaceID, subsocial.AccountID](sctx, "SpaceOwners", subsocial.DecodeSpaceID),
		nextSpaceID: storage.NewValue[subsocial.SpaceID](sctx, "NextSpaceId"),
	}
}

// CreateSpace registers a new space owned by owner and returns its id.
func (s *Spaces) CreateSpace(owner subsocial.AccountID) (subsocial.SpaceID, error) {
	id, err := s.nextSpaceID.Get()
	if err != nil {
		return 0, err
	}
	if id < FirstSpaceID {
		id = FirstSpaceID
	}
	// skip ids taken by ForceCreateSpace
	for {
		taken, err := s.owners.Contains(id)
		if err != nil {
			return 0, err
		}
		if !taken {
			break
		}
		id++
	}
	if err := s.owners.Set(id, owner); err != nil {
		return 0, errors.Wrap(err, "failed to set space owner")
	}
	if err := s.nextSpaceID.Set(id + 1); err != nil {
		return 0, err
	}
	return id, nil
}

// ForceCreateSpace registers a space with a given id, e.g. the reserved ones at genesis.
func (s *Spaces) ForceCreateSpace(id subsocial.SpaceID, owner subsocial.AccountID) error {
	ok, err := s.owners.Contains(id)
	if err != nil {
		return err
	}
	if ok {
		return ErrSpaceAlreadyExists
	}
	return s.owners.Set(id, owner)
}

// TransferOwnership hands the space over to a new owner.
func (s *Spaces) TransferOwnership(id subsocial.SpaceID, newOwner subsocial.AccountID) error {
	if _, err := s.SpaceOwner(id); err != nil {
		return err
	}
	return s.owners.Set(id, newOwner)
}

// SpaceOwner returns the owner of the space.
func (s *Spaces) SpaceOwner(id subsocial.SpaceID) (subsocial.AccountID, error) {
	owner, ok, err := s.owners.TryGet(id)
	if err != nil {
		return subsocial.AccountID{}, errors.Wrap(err, "failed to get space owner")
	}
	if !ok {
		return subsocial.AccountID{}, ErrSpaceNotFound
	}
	return owner, nil
}

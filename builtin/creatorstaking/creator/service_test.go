// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creator

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/state"
	"github.com/dappforce/subsocial-go/subsocial"
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(storage.NewContext("CreatorStaking", state.New(db)))
}

func TestStatus(t *testing.T) {
	assert.True(t, Active().IsActive())
	_, ok := Active().UnregisteredAt()
	assert.False(t, ok)

	st := Inactive(5)
	assert.False(t, st.IsActive())
	era, ok := st.UnregisteredAt()
	assert.True(t, ok)
	assert.Equal(t, subsocial.EraIndex(5), era)

	info := Info{Status: st}
	assert.True(t, info.AcceptsRewardsFor(4))
	assert.False(t, info.AcceptsRewardsFor(5))
	assert.False(t, info.AcceptsRewardsFor(6))
}

func TestStakeInfo_BackersCount(t *testing.T) {
	var si StakeInfo

	require.NoError(t, si.AddStake(u(0), u(100), 2))
	require.NoError(t, si.AddStake(u(100), u(50), 2), "existing backer does not count again")
	require.NoError(t, si.AddStake(u(0), u(10), 2))
	assert.Equal(t, uint32(2), si.BackersCount)
	assert.Equal(t, uint64(160), si.Total.Uint64())

	assert.ErrorIs(t, si.AddStake(u(0), u(10), 2), reverts.ErrMaxNumberOfStakersExceeded)
	assert.Equal(t, uint64(160), si.Total.Uint64())

	require.NoError(t, si.SubStake(u(10), true))
	assert.Equal(t, uint32(1), si.BackersCount)
	require.NoError(t, si.SubStake(u(50), false))
	assert.Equal(t, uint32(1), si.BackersCount)
	assert.Equal(t, uint64(100), si.Total.Uint64())

	assert.ErrorIs(t, si.SubStake(u(101), true), reverts.ErrArithmeticUnderflow)
}

func TestService_Registry(t *testing.T) {
	svc := newService(t)
	alice := subsocial.DevAccount("alice")

	_, err := svc.GetExistingCreator(1001)
	assert.ErrorIs(t, err, reverts.ErrCreatorNotFound)

	require.NoError(t, svc.SetCreator(1001, Info{Stakeholder: alice, Status: Active()}))
	info, err := svc.GetActiveCreator(1001)
	require.NoError(t, err)
	assert.Equal(t, alice, info.Stakeholder)

	info.Status = Inactive(3)
	require.NoError(t, svc.SetCreator(1001, info))
	_, err = svc.GetActiveCreator(1001)
	assert.ErrorIs(t, err, reverts.ErrInactiveCreator)
}

func TestService_Rotate(t *testing.T) {
	svc := newService(t)
	alice := subsocial.DevAccount("alice")

	require.NoError(t, svc.SetCreator(1, Info{Stakeholder: alice, Status: Active()}))
	require.NoError(t, svc.SetCreator(2, Info{Stakeholder: alice, Status: Inactive(4)}))
	require.NoError(t, svc.SetCreator(3, Info{Stakeholder: alice, Status: Active()}))

	require.NoError(t, svc.SetStakeInfo(1, 4, StakeInfo{Total: *u(100), BackersCount: 1, RewardsClaimed: true}))
	require.NoError(t, svc.SetStakeInfo(2, 4, StakeInfo{Total: *u(200), BackersCount: 2}))

	rotated, err := svc.Rotate(4)
	require.NoError(t, err)
	assert.Equal(t, 1, rotated)

	next, err := svc.GetStakeInfo(1, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), next.Total.Uint64())
	assert.Equal(t, uint32(1), next.BackersCount)
	assert.False(t, next.RewardsClaimed)

	inactive, err := svc.GetStakeInfo(2, 5)
	require.NoError(t, err)
	assert.True(t, inactive.Total.IsZero(), "inactive creators are not carried forward")

	// the claimed flag of the ended era is untouched
	prev, err := svc.GetStakeInfo(1, 4)
	require.NoError(t, err)
	assert.True(t, prev.RewardsClaimed)
}

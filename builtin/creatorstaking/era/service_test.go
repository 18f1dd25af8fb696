// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package era

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/state"
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(storage.NewContext("CreatorStaking", state.New(db)))
}

func TestInfo_StakeAccounting(t *testing.T) {
	var info Info
	require.NoError(t, info.AddStake(u(100)))
	require.NoError(t, info.SubStaked(u(30)))
	assert.Equal(t, uint64(70), info.Staked.Uint64())
	assert.Equal(t, uint64(100), info.Locked.Uint64(), "unstaked funds stay locked")

	require.NoError(t, info.SubLocked(u(30)))
	assert.Equal(t, uint64(70), info.Locked.Uint64())

	assert.ErrorIs(t, info.SubStaked(u(71)), reverts.ErrArithmeticUnderflow)
	assert.ErrorIs(t, info.SubLocked(u(71)), reverts.ErrArithmeticUnderflow)
	assert.Equal(t, uint64(70), info.Staked.Uint64())
	assert.Equal(t, uint64(70), info.Locked.Uint64())
}

func TestService_Advance(t *testing.T) {
	svc := newService(t)

	era, err := svc.Advance(1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), uint32(era))

	next, err := svc.NextEraStartingBlock()
	require.NoError(t, err)
	assert.Equal(t, uint32(11), next)

	require.NoError(t, svc.Update(1, func(info *Info) error { return info.AddStake(u(500)) }))
	require.NoError(t, svc.Accumulate(&rewards.RewardInfo{Creators: *u(10), Backers: *u(90)}))
	require.NoError(t, svc.Accumulate(&rewards.RewardInfo{Creators: *u(10), Backers: *u(90)}))

	era, err = svc.Advance(11, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), uint32(era))

	ended, ok, err := svc.GetInfo(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(20), ended.Rewards.Creators.Uint64())
	assert.Equal(t, uint64(180), ended.Rewards.Backers.Uint64())

	started, ok, err := svc.GetInfo(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ended.Staked, started.Staked, "totals carry forward at rollover")
	assert.Equal(t, ended.Locked, started.Locked)
	assert.True(t, started.Rewards.Creators.IsZero())

	acc, err := svc.Accumulator()
	require.NoError(t, err)
	total := acc.Total()
	assert.True(t, total.IsZero(), "accumulator is reset")
}

func TestService_ForceEra(t *testing.T) {
	svc := newService(t)

	f, err := svc.ForceEra()
	require.NoError(t, err)
	assert.Equal(t, NotForcing, f)

	require.NoError(t, svc.SetForceEra(ForceNew))
	f, err = svc.ForceEra()
	require.NoError(t, err)
	assert.Equal(t, ForceNew, f)
}

func TestService_GetInfoMissing(t *testing.T) {
	svc := newService(t)
	_, ok, err := svc.GetInfo(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

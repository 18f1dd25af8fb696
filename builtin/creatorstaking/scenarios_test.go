// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/subsocial"
)

func TestScenario_StakeThenClaimTwoEras(t *testing.T) {
	env := newTestEnv(t)
	id := env.createCreator(alice)
	first := env.era()
	env.stake(bob, id, 1000)
	env.toEra(first + 2)

	for _, e := range []subsocial.EraIndex{first, first + 1} {
		_, err := env.staker.ClaimBackerReward(bob, id, false)
		require.NoError(t, err)
		ev := lastEvent[BackerRewardsClaimed](t, env.events)
		assert.Equal(t, e, ev.Era)
		assert.Equal(t, uint64(backersPerEra), ev.Amount.Uint64(), "amount persists without changes")
	}
}

func TestScenario_StakeAndUnstakeSameEra(t *testing.T) {
	env := newTestEnv(t)
	id := env.createCreator(alice)
	env.stake(bob, id, 1000)
	_, err := env.staker.Unstake(bob, id, u(1000))
	require.NoError(t, err)

	st, err := env.staker.BackerStakes(bob, id)
	require.NoError(t, err)
	assert.True(t, st.IsEmpty())
	info, err := env.staker.CreatorStakeInfo(id, env.era())
	require.NoError(t, err)
	assert.Equal(t, uint32(0), info.BackersCount)

	env.nextEra()
	_, err = env.staker.ClaimBackerReward(bob, id, false)
	assert.ErrorIs(t, err, reverts.ErrNotStakedCreator)
}

func TestScenario_UnregisterWithUnclaimedEras(t *testing.T) {
	env := newTestEnv(t)
	id := env.createCreator(alice)
	first := env.era()
	env.stake(bob, id, 1000)

	unregisterEra := first + 4
	env.toEra(unregisterEra)
	require.NoError(t, env.staker.UnregisterCreator(alice, id))

	claims, err := env.staker.AvailableClaimsByBacker(bob)
	require.NoError(t, err)
	assert.Equal(t, []CreatorClaims{{CreatorID: id, Eras: 4}}, claims)
	withdrawable, err := env.staker.WithdrawableAmountsFromInactiveCreators(bob)
	require.NoError(t, err)
	assert.Empty(t, withdrawable)

	for e := first; e < unregisterEra; e++ {
		_, err := env.staker.WithdrawFromInactiveCreator(bob, id)
		assert.ErrorIs(t, err, reverts.ErrUnclaimedRewardsRemaining)

		reward, err := env.staker.ClaimBackerReward(bob, id, true)
		require.NoError(t, err)
		assert.Equal(t, uint64(backersPerEra), reward.Uint64())
		ev := lastEvent[BackerRewardsClaimed](t, env.events)
		assert.Equal(t, e, ev.Era)
		assert.False(t, ev.Restaked, "no restake on an inactive creator")
	}
	_, err = env.staker.ClaimBackerReward(bob, id, false)
	assert.ErrorIs(t, err, reverts.ErrInactiveCreator)

	for e := first; e < unregisterEra; e++ {
		_, err := env.staker.ClaimCreatorReward(id, e)
		require.NoError(t, err)
	}
	env.nextEra()
	_, err = env.staker.ClaimCreatorReward(id, unregisterEra)
	assert.ErrorIs(t, err, reverts.ErrInactiveCreator)

	withdrawable, err = env.staker.WithdrawableAmountsFromInactiveCreators(bob)
	require.NoError(t, err)
	require.Len(t, withdrawable, 1)
	assert.Equal(t, uint64(1000), withdrawable[0].Amount.Uint64())

	withdrawn, err := env.staker.WithdrawFromInactiveCreator(bob, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), withdrawn.Uint64())
	assert.Equal(t, uint64(0), env.totalLocked(bob))
	assert.Equal(t, env.free(bob), env.usable(bob), "no unbonding delay")
	st, err := env.staker.BackerStakes(bob, id)
	require.NoError(t, err)
	assert.True(t, st.IsEmpty())

	eraInfo, _, err := env.staker.EraInfo(env.era())
	require.NoError(t, err)
	assert.True(t, eraInfo.Locked.IsZero())

	_, err = env.staker.WithdrawFromInactiveCreator(bob, id)
	assert.ErrorIs(t, err, reverts.ErrNotStakedCreator)
	_, err = env.staker.WithdrawFromInactiveCreator(bob, 9999)
	assert.ErrorIs(t, err, reverts.ErrCreatorNotFound)
	env.checkIssuance()
}

func TestWithdrawFromInactiveCreator_ActiveCreator(t *testing.T) {
	env := newTestEnv(t)
	id := env.createCreator(alice)
	env.stake(bob, id, 1000)

	_, err := env.staker.WithdrawFromInactiveCreator(bob, id)
	assert.ErrorIs(t, err, reverts.ErrCreatorIsActive)
}

func TestScenario_RewardIndependentOfCreatorTotal(t *testing.T) {
	env := newTestEnv(t)
	small := env.createCreator(alice)
	large := env.createCreator(carol)

	env.stake(dave, small, 1000)
	env.stake(eve, large, 10000)
	env.stake(bob, small, 100)
	env.stake(alice, large, 100)
	env.nextEra()

	estimated, err := env.staker.EstimatedBackerRewardsByCreators(bob, []subsocial.SpaceID{small, large, 9999})
	require.NoError(t, err)
	require.Len(t, estimated, 3)
	assert.Equal(t, uint64(44), estimated[0].Amount.Uint64())
	assert.True(t, estimated[1].Amount.IsZero())
	assert.True(t, estimated[2].Amount.IsZero())

	r1, err := env.staker.ClaimBackerReward(bob, small, false)
	require.NoError(t, err)
	r2, err := env.staker.ClaimBackerReward(alice, large, false)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.Equal(t, uint64(44), r1.Uint64())
}

func TestQueries(t *testing.T) {
	env := newTestEnv(t)
	c1 := env.createCreator(alice)
	c2 := env.createCreator(carol)
	env.stake(bob, c1, 1000)
	env.stake(bob, c2, 1000)
	env.toEra(env.era() + 2)

	claims, err := env.staker.AvailableClaimsByBacker(bob)
	require.NoError(t, err)
	assert.ElementsMatch(t, []CreatorClaims{{CreatorID: c1, Eras: 2}, {CreatorID: c2, Eras: 2}}, claims)

	// both creators hold half of the era stake
	estimated, err := env.staker.EstimatedBackerRewardsByCreators(bob, []subsocial.SpaceID{c1})
	require.NoError(t, err)
	assert.Equal(t, uint64(backersPerEra), estimated[0].Amount.Uint64())

	_, err = env.staker.ClaimBackerReward(bob, c1, false)
	require.NoError(t, err)
	estimated, err = env.staker.EstimatedBackerRewardsByCreators(bob, []subsocial.SpaceID{c1})
	require.NoError(t, err)
	assert.Equal(t, uint64(backersPerEra/2), estimated[0].Amount.Uint64())

	claims, err = env.staker.AvailableClaimsByBacker(carol)
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestIssuanceConservation(t *testing.T) {
	env := newTestEnv(t)
	c1 := env.createCreator(alice)
	c2 := env.createCreator(carol)
	start := env.era()

	env.stake(bob, c1, 3000)
	env.stake(dave, c1, 1700)
	env.stake(eve, c2, 2900)
	env.nextEra()
	_, err := env.staker.MoveStake(bob, c1, c2, u(1200))
	require.NoError(t, err)
	_, err = env.staker.Unstake(dave, c1, u(300))
	require.NoError(t, err)
	env.nextEra()
	env.checkIssuance()

	for _, backer := range []subsocial.AccountID{bob, dave} {
		for {
			_, err := env.staker.ClaimBackerReward(backer, c1, true)
			if err != nil {
				assert.ErrorIs(t, err, reverts.ErrCannotClaimInFutureEra)
				break
			}
		}
	}
	for e := start; e < env.era(); e++ {
		for _, id := range []subsocial.SpaceID{c1, c2} {
			_, err := env.staker.ClaimCreatorReward(id, e)
			require.NoError(t, err)
		}
	}
	env.checkIssuance()

	treasury := env.free(testParams().TreasuryAccount)
	assert.Equal(t, uint64(400)*uint64(env.block), treasury)

	pot, err := env.balances.FreeBalance(testParams().PotAccount)
	require.NoError(t, err)
	assert.False(t, pot.IsZero(), "unclaimed rewards and rounding stay in the pot")
}

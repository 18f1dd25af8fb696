// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/builtin/balances"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/builtin/spaces"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/state"
	"github.com/dappforce/subsocial-go/subsocial"
)

const (
	blockPerEra = 10
	endowment   = 100_000

	// per block: 100 to creators, 500 to backers, 400 to the treasury
	rewardPerBlock = 1000
	creatorsPerEra = 100 * blockPerEra
	backersPerEra  = 500 * blockPerEra

	registerDeposit  = 10
	minimumStake     = 100
	unbondingPeriod  = 2
	maxBackers       = 3
	maxEraStakeItems = 5
	maxUnbonding     = 2
)

var (
	alice = subsocial.DevAccount("alice")
	bob   = subsocial.DevAccount("bob")
	carol = subsocial.DevAccount("carol")
	dave  = subsocial.DevAccount("dave")
	eve   = subsocial.DevAccount("eve")
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func testParams() Params {
	pallet, _ := subsocial.NewPalletID("df/crtst")
	treasury, _ := subsocial.NewPalletID("py/trsry")
	return Params{
		BlockPerEra:                  blockPerEra,
		UnbondingPeriodInEras:        unbondingPeriod,
		MaxNumberOfBackersPerCreator: maxBackers,
		MaxEraStakeItems:             maxEraStakeItems,
		MaxUnbondingChunks:           maxUnbonding,
		MinimumStake:                 *u(minimumStake),
		CreatorRegistrationDeposit:   *u(registerDeposit),
		PotAccount:                   pallet.Account(),
		TreasuryAccount:              treasury.Account(),
		RewardPerBlock:               *u(rewardPerBlock),
		Distribution: rewards.DistributionConfig{
			Creators: rewards.PerbillFromPercent(10),
			Backers:  rewards.PerbillFromPercent(50),
			Treasury: rewards.PerbillFromPercent(40),
		},
	}
}

type testEnv struct {
	t        *testing.T
	staker   *Staker
	balances *balances.Balances
	spaces   *spaces.Spaces
	events   []Event
	block    subsocial.BlockNumber
	accounts []subsocial.AccountID
}

// newTestEnv returns an engine at era 1 with every test account endowed.
func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db)

	env := &testEnv{
		t:        t,
		balances: balances.New(storage.NewContext("Balances", st)),
		spaces:   spaces.New(storage.NewContext("Spaces", st)),
	}
	params := testParams()
	env.staker = New(storage.NewContext("CreatorStaking", st), params, env.balances, env.spaces,
		EmitterFunc(func(e Event) { env.events = append(env.events, e) }))
	require.NoError(t, env.staker.InitGenesis())

	env.accounts = []subsocial.AccountID{alice, bob, carol, dave, eve, params.PotAccount, params.TreasuryAccount}
	for _, acc := range []subsocial.AccountID{alice, bob, carol, dave, eve} {
		require.NoError(t, env.balances.Deposit(acc, u(endowment)))
	}
	env.nextBlock()
	return env
}

func (e *testEnv) nextBlock() {
	e.block++
	_, err := e.staker.OnInitialize(e.block)
	require.NoError(e.t, err)
	require.NoError(e.t, e.staker.OnFinalize(e.block))
}

// nextEra produces blocks until a new era starts.
func (e *testEnv) nextEra() subsocial.EraIndex {
	current := e.era()
	for e.era() == current {
		e.nextBlock()
	}
	return e.era()
}

func (e *testEnv) toEra(target subsocial.EraIndex) {
	for e.era() < target {
		e.nextEra()
	}
}

func (e *testEnv) era() subsocial.EraIndex {
	current, err := e.staker.CurrentEra()
	require.NoError(e.t, err)
	return current
}

func (e *testEnv) createCreator(owner subsocial.AccountID) subsocial.SpaceID {
	id, err := e.spaces.CreateSpace(owner)
	require.NoError(e.t, err)
	require.NoError(e.t, e.staker.RegisterCreator(owner, id))
	return id
}

func (e *testEnv) stake(who subsocial.AccountID, id subsocial.SpaceID, amount uint64) {
	staked, err := e.staker.Stake(who, id, u(amount))
	require.NoError(e.t, err)
	require.Equal(e.t, amount, staked.Uint64())
}

func (e *testEnv) free(who subsocial.AccountID) uint64 {
	v, err := e.balances.FreeBalance(who)
	require.NoError(e.t, err)
	return v.Uint64()
}

func (e *testEnv) usable(who subsocial.AccountID) uint64 {
	v, err := e.balances.Usable(who)
	require.NoError(e.t, err)
	return v.Uint64()
}

func (e *testEnv) latestStake(who subsocial.AccountID, id subsocial.SpaceID) uint64 {
	st, err := e.staker.BackerStakes(who, id)
	require.NoError(e.t, err)
	latest := st.Latest()
	return latest.Uint64()
}

func (e *testEnv) totalLocked(who subsocial.AccountID) uint64 {
	locks, err := e.staker.BackerLocks(who)
	require.NoError(e.t, err)
	return locks.TotalLocked.Uint64()
}

// checkIssuance asserts that the balances of all known accounts add up to the total issuance.
func (e *testEnv) checkIssuance() {
	var sum uint256.Int
	for _, acc := range e.accounts {
		free, err := e.balances.FreeBalance(acc)
		require.NoError(e.t, err)
		reserved, err := e.balances.ReservedBalance(acc)
		require.NoError(e.t, err)
		sum.Add(&sum, &free)
		sum.Add(&sum, &reserved)
	}
	issuance, err := e.balances.TotalIssuance()
	require.NoError(e.t, err)
	require.Equal(e.t, issuance.Dec(), sum.Dec(), "issuance must equal the sum of balances")
}

func lastEvent[T Event](t *testing.T, events []Event) T {
	for i := len(events) - 1; i >= 0; i-- {
		if e, ok := events[i].(T); ok {
			return e
		}
	}
	var zero T
	t.Fatalf("no %s event", zero.EventName())
	return zero
}

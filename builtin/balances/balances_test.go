// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/state"
	"github.com/dappforce/subsocial-go/subsocial"
)

var (
	alice = subsocial.DevAccount("alice")
	bob   = subsocial.DevAccount("bob")
	lock1 = NewLockID("lock/one")
	lock2 = NewLockID("lock/two")
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func newBalances(t *testing.T) *Balances {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(storage.NewContext("Balances", state.New(db)))
}

func free(t *testing.T, b *Balances, who subsocial.AccountID) uint64 {
	v, err := b.FreeBalance(who)
	require.NoError(t, err)
	return v.Uint64()
}

func issuance(t *testing.T, b *Balances) uint64 {
	v, err := b.TotalIssuance()
	require.NoError(t, err)
	return v.Uint64()
}

func TestDepositAndTransfer(t *testing.T) {
	b := newBalances(t)

	require.NoError(t, b.Deposit(alice, u(1000)))
	assert.Equal(t, uint64(1000), free(t, b, alice))
	assert.Equal(t, uint64(1000), issuance(t, b))

	require.NoError(t, b.Transfer(alice, bob, u(300)))
	assert.Equal(t, uint64(700), free(t, b, alice))
	assert.Equal(t, uint64(300), free(t, b, bob))
	assert.Equal(t, uint64(1000), issuance(t, b), "transfers conserve issuance")

	assert.ErrorIs(t, b.Transfer(bob, alice, u(301)), ErrInsufficientBalance)
}

func TestReserve(t *testing.T) {
	b := newBalances(t)
	require.NoError(t, b.Deposit(alice, u(100)))

	require.NoError(t, b.Reserve(alice, u(40)))
	assert.Equal(t, uint64(60), free(t, b, alice))
	reserved, err := b.ReservedBalance(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), reserved.Uint64())

	assert.ErrorIs(t, b.Reserve(alice, u(61)), ErrInsufficientBalance)

	missing, err := b.Unreserve(alice, u(50))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), missing.Uint64())
	assert.Equal(t, uint64(100), free(t, b, alice))
}

func TestLocks(t *testing.T) {
	b := newBalances(t)
	require.NoError(t, b.Deposit(alice, u(100)))

	require.NoError(t, b.SetLock(lock1, alice, u(60)))
	require.NoError(t, b.SetLock(lock2, alice, u(30)))

	frozen, err := b.Frozen(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), frozen.Uint64(), "locks overlap")

	usable, err := b.Usable(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), usable.Uint64())

	assert.ErrorIs(t, b.Transfer(alice, bob, u(41)), ErrLiquidityRestrictions)
	assert.ErrorIs(t, b.Reserve(alice, u(41)), ErrLiquidityRestrictions)
	require.NoError(t, b.Transfer(alice, bob, u(40)))

	require.NoError(t, b.RemoveLock(lock1, alice))
	usable, err = b.Usable(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), usable.Uint64())

	require.NoError(t, b.SetLock(lock2, alice, u(0)))
	l, err := b.Lock(lock2, alice)
	require.NoError(t, err)
	assert.True(t, l.IsZero())
}

func TestWithdrawResolveConservesIssuance(t *testing.T) {
	b := newBalances(t)
	require.NoError(t, b.Deposit(alice, u(500)))

	imbalance, err := b.Withdraw(alice, u(200))
	require.NoError(t, err)
	assert.Equal(t, uint64(300), issuance(t, b), "withdrawn funds are out of circulation")

	require.NoError(t, b.ResolveCreating(bob, imbalance))
	assert.Equal(t, uint64(500), issuance(t, b))
	assert.Equal(t, uint64(200), free(t, b, bob))
}

func TestIssueSplit(t *testing.T) {
	b := newBalances(t)

	imbalance, err := b.Issue(u(10))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), issuance(t, b), "issued funds count once resolved")

	first, rest := imbalance.Split(u(7))
	a, r := first.Amount(), rest.Amount()
	assert.Equal(t, uint64(7), a.Uint64())
	assert.Equal(t, uint64(3), r.Uint64())

	require.NoError(t, b.ResolveCreating(alice, first))
	require.NoError(t, b.ResolveCreating(bob, rest))
	assert.Equal(t, uint64(10), issuance(t, b))

	all, none := imbalance.Split(u(99))
	a, r = all.Amount(), none.Amount()
	assert.Equal(t, uint64(10), a.Uint64())
	assert.True(t, r.IsZero())
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/state"
	"github.com/dappforce/subsocial-go/subsocial"
)

type testRecord struct {
	Owner  subsocial.AccountID
	Amount uint256.Int
	Active bool
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext("test", state.New(db))
}

func TestValue(t *testing.T) {
	ctx := newTestContext(t)
	v := NewValue[uint32](ctx, "Counter")

	got, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got)

	ok, err := v.Exists()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Set(7))
	got, err = v.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got)

	v.Kill()
	ok, err = v.Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValueStruct(t *testing.T) {
	ctx := newTestContext(t)
	v := NewValue[testRecord](ctx, "Record")

	rec := testRecord{
		Owner:  subsocial.DevAccount("alice"),
		Amount: *uint256.NewInt(1_000),
		Active: true,
	}
	require.NoError(t, v.Set(rec))

	got, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, rec.Owner, got.Owner)
	assert.Equal(t, uint64(1_000), got.Amount.Uint64())
	assert.True(t, got.Active)
}

func TestMap(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMap[subsocial.SpaceID, testRecord](ctx, "Records", subsocial.DecodeSpaceID)
	other := NewMap[subsocial.SpaceID, testRecord](ctx, "Others", subsocial.DecodeSpaceID)

	_, ok, err := m.TryGet(1)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, id := range []subsocial.SpaceID{3, 1, 2} {
		require.NoError(t, m.Set(id, testRecord{Amount: *uint256.NewInt(uint64(id) * 10)}))
	}
	require.NoError(t, other.Set(9, testRecord{}))

	got, ok, err := m.TryGet(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(20), got.Amount.Uint64())

	m.Remove(3)
	has, err := m.Contains(3)
	require.NoError(t, err)
	assert.False(t, has)

	var keys []subsocial.SpaceID
	require.NoError(t, m.Iterate(func(id subsocial.SpaceID, rec testRecord) (bool, error) {
		keys = append(keys, id)
		return true, nil
	}))
	assert.Equal(t, []subsocial.SpaceID{1, 2}, keys)

	boom := errors.New("boom")
	err = m.Iterate(func(subsocial.SpaceID, testRecord) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestDoubleMap(t *testing.T) {
	ctx := newTestContext(t)
	m := NewDoubleMap[subsocial.AccountID, subsocial.SpaceID, uint64](ctx, "Stakes", subsocial.DecodeSpaceID)

	alice := subsocial.DevAccount("alice")
	bob := subsocial.DevAccount("bob")

	require.NoError(t, m.Set(alice, 2, 20))
	require.NoError(t, m.Set(alice, 1, 10))
	require.NoError(t, m.Set(bob, 1, 99))

	v, err := m.Get(alice, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), v)

	type entry struct {
		id subsocial.SpaceID
		v  uint64
	}
	var got []entry
	require.NoError(t, m.IteratePrefix(alice, func(id subsocial.SpaceID, v uint64) (bool, error) {
		got = append(got, entry{id, v})
		return true, nil
	}))
	assert.Equal(t, []entry{{1, 10}, {2, 20}}, got)

	m.Remove(alice, 1)
	has, err := m.Contains(alice, 1)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = m.Contains(bob, 1)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRevertDiscardsWrites(t *testing.T) {
	ctx := newTestContext(t)
	v := NewValue[uint64](ctx, "Counter")
	require.NoError(t, v.Set(1))

	rev := ctx.State().NewCheckpoint()
	require.NoError(t, v.Set(2))
	ctx.State().RevertTo(rev)

	got, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)
}

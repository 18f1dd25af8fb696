// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/lvldb"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateGetSet(t *testing.T) {
	st, _ := newTestState(t)

	v, err := st.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, v)

	st.Set([]byte("k"), []byte("v"))
	v, err = st.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	has, err := st.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)

	st.Delete([]byte("k"))
	has, err = st.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStateRevert(t *testing.T) {
	st, _ := newTestState(t)

	st.Set([]byte("a"), []byte("1"))
	rev := st.NewCheckpoint()
	st.Set([]byte("a"), []byte("2"))
	st.Set([]byte("b"), []byte("3"))

	nested := st.NewCheckpoint()
	st.Delete([]byte("a"))
	st.RevertTo(nested)

	v, err := st.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	st.RevertTo(rev)
	v, err = st.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	v, err = st.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStateCommit(t *testing.T) {
	st, db := newTestState(t)

	require.NoError(t, db.Put([]byte("old"), []byte("x")))

	st.Set([]byte("new"), []byte("y"))
	st.Delete([]byte("old"))

	has, err := db.Has([]byte("new"))
	require.NoError(t, err)
	assert.False(t, has, "nothing hits the store before commit")

	require.NoError(t, st.Commit())

	v, err := db.Get([]byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), v)

	has, err = db.Has([]byte("old"))
	require.NoError(t, err)
	assert.False(t, has)

	// a fresh state over the same store sees committed values
	v, err = New(db).Get([]byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), v)

	// committed changes survive a revert to the base revision
	st.RevertTo(0)
	v, err = st.Get([]byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), v)
}

func TestStateIterate(t *testing.T) {
	st, db := newTestState(t)

	require.NoError(t, db.Put([]byte("p/1"), []byte("a")))
	require.NoError(t, db.Put([]byte("p/3"), []byte("c")))
	require.NoError(t, db.Put([]byte("q/1"), []byte("z")))

	st.Set([]byte("p/2"), []byte("b"))
	st.Set([]byte("p/3"), []byte("C"))
	st.Delete([]byte("p/1"))
	st.Set([]byte("p/4"), []byte("d"))

	type pair struct{ k, v string }
	var got []pair
	require.NoError(t, st.Iterate([]byte("p/"), func(k, v []byte) bool {
		got = append(got, pair{string(k), string(v)})
		return true
	}))
	assert.Equal(t, []pair{{"p/2", "b"}, {"p/3", "C"}, {"p/4", "d"}}, got)

	var n int
	require.NoError(t, st.Iterate([]byte("p/"), func(k, v []byte) bool {
		n++
		return false
	}))
	assert.Equal(t, 1, n)
}

func TestStateCacheStats(t *testing.T) {
	st, _ := newTestState(t)

	_, err := st.Get([]byte("k"))
	require.NoError(t, err)
	_, err = st.Get([]byte("k"))
	require.NoError(t, err)

	hit, miss := st.CacheStats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}
